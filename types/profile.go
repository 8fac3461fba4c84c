package types

// Profile is the application user record. The interactions service only
// touches the discord_* columns; everything else belongs to the web app.
type Profile struct {
	ID              string  `json:"id"`
	FullName        string  `json:"full_name,omitempty"`
	DiscordUserID   *string `json:"discord_user_id,omitempty"`
	DiscordLinkCode *string `json:"discord_link_code,omitempty"`
	DiscordRole     *string `json:"discord_role,omitempty"`
}
