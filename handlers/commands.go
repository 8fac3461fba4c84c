package handlers

import (
	"fmt"
	"strings"

	"formulaihu/flow-bot/config"
	"formulaihu/flow-bot/discord"
	"formulaihu/flow-bot/supabase"
	"formulaihu/flow-bot/types"

	"github.com/google/uuid"
)

const notLinkedText = "🔗 Your Discord account isn't linked to Flow yet. " +
	"Generate a link code from your Flow profile page, then run `/linkaccount code:<your code>`."

func handleAddTask(db *supabase.Client, in types.Interaction) types.InteractionResponse {
	content := strings.TrimSpace(in.StringOption("content"))
	if content == "" {
		return channelMessage("❌ Please provide the task content.")
	}

	// Anonymous capture is allowed: a linked profile improves the row but
	// is not required to jot a task down from Discord.
	var createdBy *string
	profile, err := supabase.ProfileByDiscordID(db, in.InvokerID())
	if err != nil {
		config.Logger.Warn("Profile lookup failed during addtask, capturing anonymously:", err)
	} else if profile != nil {
		createdBy = &profile.ID
	}

	task, err := supabase.InsertTask(db, content, in.InvokerID(), createdBy)
	if err != nil {
		config.Logger.Error("Failed to insert task:", err)
		return errorReply(err)
	}

	return channelMessage("✅ Task added: " + task.Content)
}

func handleListTasks(db *supabase.Client, in types.Interaction) types.InteractionResponse {
	profile, err := supabase.ProfileByDiscordID(db, in.InvokerID())
	if err != nil {
		config.Logger.Error("Failed to resolve profile:", err)
		return errorReply(err)
	}
	if profile == nil {
		return channelMessage(notLinkedText)
	}

	tasks, err := supabase.TasksCreatedBy(db, profile.ID)
	if err != nil {
		config.Logger.Error("Failed to list tasks:", err)
		return errorReply(err)
	}
	if len(tasks) == 0 {
		return channelMessage("📝 You have no tasks yet. Use `/addtask` to create one.")
	}

	var sb strings.Builder
	sb.WriteString("📋 **Your tasks:**\n")
	for i, task := range tasks {
		fmt.Fprintf(&sb, "%d. %s %s\n", i+1, statusGlyph(task.Status), task.Content)
	}

	resp := channelMessage(sb.String())
	if newest := tasks[0]; newest.Status != types.TaskStatusCompleted {
		resp.Data.Components = []types.ActionRow{{
			Type: types.ComponentActionRow,
			Components: []types.Button{{
				Type:     types.ComponentButton,
				Style:    types.ButtonSuccess,
				Label:    "Complete latest task",
				CustomID: completeButtonPrefix + newest.ID,
			}},
		}}
	}
	return resp
}

func handleMyTasks(db *supabase.Client, in types.Interaction) types.InteractionResponse {
	profile, err := supabase.ProfileByDiscordID(db, in.InvokerID())
	if err != nil {
		config.Logger.Error("Failed to resolve profile:", err)
		return errorReply(err)
	}
	if profile == nil {
		return channelMessage(notLinkedText)
	}

	tasks, err := supabase.TasksAssignedTo(db, profile.ID)
	if err != nil {
		config.Logger.Error("Failed to list assigned tasks:", err)
		return errorReply(err)
	}
	if len(tasks) == 0 {
		return channelMessage("🎉 You're all caught up! No tasks are assigned to you.")
	}

	var sb strings.Builder
	sb.WriteString("📌 **Tasks assigned to you:**\n")
	for i, task := range tasks {
		fmt.Fprintf(&sb, "%d. %s %s %s\n", i+1, statusGlyph(task.Status), priorityGlyph(task.Priority), task.Content)
	}
	return channelMessage(sb.String())
}

func handleCompleteTask(db *supabase.Client, in types.Interaction) types.InteractionResponse {
	taskID := strings.TrimSpace(in.StringOption("task_id"))
	if taskID == "" {
		return channelMessage("❌ Please provide the task id.")
	}
	if _, err := uuid.Parse(taskID); err != nil {
		return channelMessage("❌ Invalid task id.")
	}

	profile, err := supabase.ProfileByDiscordID(db, in.InvokerID())
	if err != nil {
		config.Logger.Error("Failed to resolve profile:", err)
		return errorReply(err)
	}
	if profile == nil {
		return channelMessage(notLinkedText)
	}

	task, err := supabase.CompleteOwnedTask(db, taskID, profile.ID)
	if err != nil {
		config.Logger.Error("Failed to complete task:", err)
		return errorReply(err)
	}
	if task == nil {
		// Deliberately the same answer for "doesn't exist" and "not yours".
		return channelMessage("❌ Task not found or you don't have permission to complete it.")
	}

	return channelMessage("✅ Task completed: " + task.Content)
}

func handleLinkAccount(db *supabase.Client, in types.Interaction) types.InteractionResponse {
	code := strings.TrimSpace(in.StringOption("code"))
	if code == "" {
		return channelMessage("❌ Please provide your link code.")
	}
	if !validLinkCode(code) {
		return channelMessage("❌ Invalid code. Generate a new link code from your Flow profile page and try again.")
	}

	target, err := supabase.ProfileByLinkCode(db, code)
	if err != nil {
		config.Logger.Error("Failed to look up link code:", err)
		return errorReply(err)
	}
	if target == nil {
		return channelMessage("❌ Invalid code. Generate a new link code from your Flow profile page and try again.")
	}

	discordID := in.InvokerID()
	existing, err := supabase.ProfileByDiscordID(db, discordID)
	if err != nil {
		config.Logger.Error("Failed to check existing link:", err)
		return errorReply(err)
	}
	if existing != nil && existing.ID != target.ID {
		return channelMessage("❌ This Discord account is already linked to " + existing.FullName + ".")
	}

	linked, err := supabase.LinkDiscordAccount(db, target.ID, code, discordID)
	if err != nil {
		config.Logger.Error("Failed to link account:", err)
		return errorReply(err)
	}
	if !linked {
		// The code was burned between lookup and update.
		return channelMessage("❌ Invalid code. Generate a new link code from your Flow profile page and try again.")
	}

	return channelMessage(fmt.Sprintf(
		"✅ Welcome, %s! Your Discord account is now linked to Flow.\n"+
			"Available commands: `/addtask`, `/listtasks`, `/mytasks`, `/completetask`.",
		target.FullName))
}

func handleSetupWelcome(cfg config.Config, bot *discord.Client, in types.Interaction) types.InteractionResponse {
	if in.GuildID == "" {
		return channelMessage("❌ This command can only be used inside a server.")
	}

	channelID := stripChannelMention(in.StringOption("channel"))
	if channelID == "" {
		return channelMessage("❌ Please provide the channel to post the welcome message in.")
	}

	message := types.ChannelMessage{
		Content: "👋 **Welcome to the Formula IHU team server!**\n" +
			"Pick your section below to get the matching role.",
		Components: roleButtonRows(),
	}

	if err := bot.CreateMessage(channelID, message); err != nil {
		config.Logger.Error("Failed to post welcome message:", err)
		return errorReply(err)
	}

	return ephemeralMessage("✅ Welcome message posted in <#" + channelID + ">.")
}

// validLinkCode reports whether a code is safe to put in a lookup predicate.
// The app issues codes as alphanumerics and dashes; anything else — notably
// the %, _ and * pattern wildcards, which ilike would otherwise honor — is
// rejected before it reaches the data store.
func validLinkCode(code string) bool {
	for _, c := range code {
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-') {
			return false
		}
	}
	return len(code) > 0
}

// stripChannelMention turns "<#123456>" into "123456"; raw ids pass through.
func stripChannelMention(value string) string {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "<#")
	return strings.TrimSuffix(value, ">")
}

// roleButtonRows lays the team-role buttons out in rows of at most five,
// the platform's per-row component limit.
func roleButtonRows() []types.ActionRow {
	var rows []types.ActionRow
	row := types.ActionRow{Type: types.ComponentActionRow}
	for _, role := range config.TeamRoles {
		if len(row.Components) == 5 {
			rows = append(rows, row)
			row = types.ActionRow{Type: types.ComponentActionRow}
		}
		row.Components = append(row.Components, types.Button{
			Type:     types.ComponentButton,
			Style:    types.ButtonSecondary,
			Label:    role.Label,
			Emoji:    &types.Emoji{Name: role.Emoji},
			CustomID: config.RoleButtonPrefix + role.Key,
		})
	}
	if len(row.Components) > 0 {
		rows = append(rows, row)
	}
	return rows
}

func statusGlyph(status string) string {
	switch status {
	case types.TaskStatusCompleted:
		return "✅"
	case types.TaskStatusInProgress:
		return "🔄"
	default:
		return "⏳"
	}
}

func priorityGlyph(priority string) string {
	switch priority {
	case "high":
		return "🔴"
	case "medium":
		return "🟡"
	case "low":
		return "🟢"
	default:
		return "⚪"
	}
}
