package main

import (
	"log"
	"net/http"

	"formulaihu/flow-bot/config"
	"formulaihu/flow-bot/discord"
	"formulaihu/flow-bot/middleware"
	"formulaihu/flow-bot/routes"
	"formulaihu/flow-bot/supabase"
)

func main() {

	config.InitLogger()
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		config.Logger.Fatal("Invalid configuration: ", err)
	}

	db, err := supabase.NewClient(cfg)
	if err != nil {
		config.Logger.Fatal("Failed to create Supabase client: ", err)
	}

	bot := discord.NewClient(cfg)

	mux := http.NewServeMux()
	routes.RegisterInteractionRoutes(mux, cfg, db, bot)

	handler := middleware.Chain(
		middleware.LoggingMiddleware,
		middleware.RecoveryMiddleware,
		middleware.CORSMiddleware,
	)(mux)

	config.Logger.Info("Interactions server is running on port ", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
