package handlers

import (
	"strings"

	"formulaihu/flow-bot/config"
	"formulaihu/flow-bot/discord"
	"formulaihu/flow-bot/supabase"
	"formulaihu/flow-bot/types"
)

// handleRoleButton assigns the team role behind a welcome-message button.
// No account linking is required: new members click these before they have a
// Flow profile. Replies are ephemeral so the welcome channel stays clean.
func handleRoleButton(cfg config.Config, db *supabase.Client, bot *discord.Client, in types.Interaction) types.InteractionResponse {
	key := strings.TrimPrefix(in.CustomID(), config.RoleButtonPrefix)

	role := config.TeamRoleByKey(key)
	if role == nil {
		return ephemeralMessage("❌ This role isn't configured.")
	}
	roleID := cfg.RoleIDs[key]
	if roleID == "" {
		return ephemeralMessage("❌ This role isn't configured.")
	}

	if in.GuildID == "" {
		return ephemeralMessage("❌ Role buttons only work inside a server.")
	}

	if err := bot.AddGuildMemberRole(in.GuildID, in.InvokerID(), roleID); err != nil {
		config.Logger.Error("Failed to assign guild role:", err)
		return ephemeralMessage("❌ Error: " + err.Error())
	}

	// Best effort: record the pick on the profile when one is linked. An
	// unlinked member still gets the Discord role.
	profile, err := supabase.ProfileByDiscordID(db, in.InvokerID())
	if err != nil {
		config.Logger.Warn("Profile lookup failed after role assignment:", err)
	} else if profile != nil {
		if err := supabase.SetDiscordRole(db, profile.ID, role.Label); err != nil {
			config.Logger.Warn("Failed to record discord role on profile:", err)
		}
	}

	return ephemeralMessage("✅ You now have the " + role.Label + " role!")
}

// handleCompleteButton completes a task from the button attached by
// /listtasks. Same ownership predicate as /completetask, but the reply
// rewrites the original message and clears its buttons.
func handleCompleteButton(db *supabase.Client, profile *types.Profile, in types.Interaction) types.InteractionResponse {
	taskID := strings.TrimPrefix(in.CustomID(), completeButtonPrefix)

	task, err := supabase.CompleteOwnedTask(db, taskID, profile.ID)
	if err != nil {
		config.Logger.Error("Failed to complete task from button:", err)
		return ephemeralMessage("❌ Error: " + err.Error())
	}
	if task == nil {
		return ephemeralMessage("❌ Task not found or you don't have permission to complete it.")
	}

	return updateMessage("✅ Task completed: " + task.Content)
}
