package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"formulaihu/flow-bot/config"
	"formulaihu/flow-bot/discord"
	"formulaihu/flow-bot/supabase"
	"formulaihu/flow-bot/types"
)

// Signed request bodies are small; anything past this is not Discord.
const maxBodyBytes = 1 << 20

const completeButtonPrefix = "complete_task_"

// InteractionsHandler returns the single webhook endpoint Discord posts
// interactions to. The ordering here is part of the security contract: the
// raw body is verified against the signature headers before it is parsed,
// and nothing runs on an unverified body.
func InteractionsHandler(cfg config.Config, db *supabase.Client, bot *discord.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			config.Logger.Error("Failed to read interaction body:", err)
			writeError(w, err.Error(), http.StatusInternalServerError)
			return
		}

		sig := r.Header.Get(discord.SignatureHeader)
		ts := r.Header.Get(discord.TimestampHeader)
		if !discord.VerifyInteraction(cfg.DiscordPublicKey, sig, ts, body) {
			config.Logger.Warn("Rejected interaction with invalid signature")
			writeError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var interaction types.Interaction
		if err := json.Unmarshal(body, &interaction); err != nil {
			config.Logger.Error("Failed to decode interaction JSON:", err)
			writeError(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, route(cfg, db, bot, interaction))
	}
}

// route dispatches a verified interaction. Every parseable interaction gets
// an HTTP 200; the reply type carries the platform-level semantics.
func route(cfg config.Config, db *supabase.Client, bot *discord.Client, in types.Interaction) types.InteractionResponse {
	switch in.Type {
	case types.InteractionPing:
		return types.InteractionResponse{Type: types.ResponsePong}
	case types.InteractionApplicationCommand:
		return routeCommand(cfg, db, bot, in)
	case types.InteractionMessageComponent:
		return routeComponent(cfg, db, bot, in)
	default:
		return channelMessage("❓ Unknown interaction type.")
	}
}

func routeCommand(cfg config.Config, db *supabase.Client, bot *discord.Client, in types.Interaction) types.InteractionResponse {
	switch types.ParseCommand(in.CommandName()) {
	case types.CommandAddTask:
		return handleAddTask(db, in)
	case types.CommandListTasks:
		return handleListTasks(db, in)
	case types.CommandMyTasks:
		return handleMyTasks(db, in)
	case types.CommandCompleteTask:
		return handleCompleteTask(db, in)
	case types.CommandLinkAccount:
		return handleLinkAccount(db, in)
	case types.CommandSetupWelcome:
		return handleSetupWelcome(cfg, bot, in)
	default:
		return channelMessage("❓ Unknown command: " + in.CommandName())
	}
}

func routeComponent(cfg config.Config, db *supabase.Client, bot *discord.Client, in types.Interaction) types.InteractionResponse {
	customID := in.CustomID()

	// Role buttons work for brand-new members, before any account linking.
	if strings.HasPrefix(customID, config.RoleButtonPrefix) {
		return handleRoleButton(cfg, db, bot, in)
	}

	profile, err := supabase.ProfileByDiscordID(db, in.InvokerID())
	if err != nil {
		config.Logger.Error("Failed to resolve profile for component:", err)
		return errorReply(err)
	}
	if profile == nil {
		return ephemeralMessage(notLinkedText)
	}

	if strings.HasPrefix(customID, completeButtonPrefix) {
		return handleCompleteButton(db, profile, in)
	}
	return ephemeralMessage("❓ Unknown action.")
}
