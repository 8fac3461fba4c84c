package supabase

import (
	"encoding/json"
	"fmt"

	"formulaihu/flow-bot/types"
)

// ProfileByDiscordID resolves the profile linked to a Discord user id.
// Returns nil without error when no profile is linked.
func ProfileByDiscordID(client *Client, discordUserID string) (*types.Profile, error) {
	resp, _, err := client.From("profiles").
		Select("id, full_name, discord_user_id, discord_role", "", false).
		Eq("discord_user_id", discordUserID).
		Limit(1, "").
		Execute()

	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	var profiles []types.Profile
	if err := json.Unmarshal(resp, &profiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	return &profiles[0], nil
}

// ProfileByLinkCode finds the profile holding an unused link code. Codes are
// matched case-insensitively; a cleared code matches nothing.
func ProfileByLinkCode(client *Client, code string) (*types.Profile, error) {
	resp, _, err := client.From("profiles").
		Select("id, full_name, discord_user_id, discord_link_code", "", false).
		Ilike("discord_link_code", code).
		Limit(1, "").
		Execute()

	if err != nil {
		return nil, fmt.Errorf("failed to look up link code: %w", err)
	}

	var profiles []types.Profile
	if err := json.Unmarshal(resp, &profiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	return &profiles[0], nil
}

// LinkDiscordAccount claims a profile for a Discord user and burns the link
// code in the same update. The code stays in the predicate, so once any
// writer clears it every later attempt matches zero rows and reports false.
func LinkDiscordAccount(client *Client, profileID, code, discordUserID string) (bool, error) {
	resp, _, err := client.From("profiles").
		Update(map[string]interface{}{
			"discord_user_id":   discordUserID,
			"discord_link_code": nil,
		}, "", "").
		Eq("id", profileID).
		Ilike("discord_link_code", code).
		Execute()

	if err != nil {
		return false, fmt.Errorf("failed to link account: %w", err)
	}

	var updated []types.Profile
	if err := json.Unmarshal(resp, &updated); err != nil {
		return false, fmt.Errorf("failed to parse link result: %w", err)
	}
	return len(updated) > 0, nil
}

// SetDiscordRole records the team role picked from the welcome message.
func SetDiscordRole(client *Client, profileID, role string) error {
	_, _, err := client.From("profiles").
		Update(map[string]interface{}{"discord_role": role}, "", "").
		Eq("id", profileID).
		Execute()

	if err != nil {
		return fmt.Errorf("failed to update discord role: %w", err)
	}
	return nil
}
