package routes

import (
	"net/http"

	"formulaihu/flow-bot/config"
	"formulaihu/flow-bot/discord"
	"formulaihu/flow-bot/handlers"
	"formulaihu/flow-bot/supabase"
)

// RegisterInteractionRoutes registers the Discord webhook endpoint. Method
// and CORS handling live in the handler and middleware, so the route is
// registered without a method pattern.
func RegisterInteractionRoutes(mux *http.ServeMux, cfg config.Config, db *supabase.Client, bot *discord.Client) {
	mux.HandleFunc("/api/discord/interactions", handlers.InteractionsHandler(cfg, db, bot))
}
