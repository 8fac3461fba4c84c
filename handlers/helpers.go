package handlers

import (
	"encoding/json"
	"net/http"

	"formulaihu/flow-bot/types"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// channelMessage replies with a visible message in the invoking channel.
// Components is always a non-nil slice so the payload carries "components":[]
// rather than null.
func channelMessage(content string) types.InteractionResponse {
	return types.InteractionResponse{
		Type: types.ResponseChannelMessage,
		Data: &types.ResponseData{
			Content:    content,
			Components: []types.ActionRow{},
		},
	}
}

// ephemeralMessage replies visibly only to the invoking user.
func ephemeralMessage(content string) types.InteractionResponse {
	return types.InteractionResponse{
		Type: types.ResponseChannelMessage,
		Data: &types.ResponseData{
			Content:    content,
			Components: []types.ActionRow{},
			Flags:      types.FlagEphemeral,
		},
	}
}

// updateMessage rewrites the original message and clears its buttons.
func updateMessage(content string) types.InteractionResponse {
	return types.InteractionResponse{
		Type: types.ResponseUpdateMessage,
		Data: &types.ResponseData{
			Content:    content,
			Components: []types.ActionRow{},
		},
	}
}

// errorReply converts a downstream failure into a user-facing reply. The
// caller is expected to have logged the full error already.
func errorReply(err error) types.InteractionResponse {
	return channelMessage("❌ Error: " + err.Error())
}
