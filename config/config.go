package config

import (
	"fmt"
	"os"
	"strings"
)

const defaultDiscordAPIBase = "https://discord.com/api/v10"

// Config carries everything the interactions service reads from the
// environment. It is built once at cold start and passed into the router
// and handlers, so nothing below this level touches os.Getenv.
type Config struct {
	DiscordPublicKey string
	DiscordBotToken  string
	DiscordAPIBase   string

	SupabaseURL       string
	SupabaseKey       string
	SupabaseJWTSecret string

	// RoleIDs maps a team-role key (the custom_id suffix on the welcome
	// buttons) to the Discord role snowflake for this server.
	RoleIDs map[string]string

	Port string
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	cfg := Config{
		DiscordPublicKey:  strings.TrimSpace(os.Getenv("DISCORD_PUBLIC_KEY")),
		DiscordBotToken:   strings.TrimSpace(os.Getenv("DISCORD_BOT_TOKEN")),
		DiscordAPIBase:    strings.TrimSpace(os.Getenv("DISCORD_API_BASE")),
		SupabaseURL:       strings.TrimSpace(os.Getenv("SUPABASE_URL")),
		SupabaseKey:       strings.TrimSpace(os.Getenv("SUPABASE_SERVICE_KEY")),
		SupabaseJWTSecret: strings.TrimSpace(os.Getenv("SUPABASE_JWT_SECRET")),
		RoleIDs:           make(map[string]string),
		Port:              strings.TrimSpace(os.Getenv("PORT")),
	}

	if cfg.DiscordAPIBase == "" {
		cfg.DiscordAPIBase = defaultDiscordAPIBase
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	for _, role := range TeamRoles {
		if id := strings.TrimSpace(os.Getenv(role.EnvVar)); id != "" {
			cfg.RoleIDs[role.Key] = id
		} else {
			cfg.RoleIDs[role.Key] = role.FallbackID
		}
	}

	if cfg.DiscordPublicKey == "" {
		return cfg, fmt.Errorf("DISCORD_PUBLIC_KEY is required")
	}
	if cfg.DiscordBotToken == "" {
		return cfg, fmt.Errorf("DISCORD_BOT_TOKEN is required")
	}
	if cfg.SupabaseURL == "" {
		return cfg, fmt.Errorf("SUPABASE_URL is required")
	}
	if cfg.SupabaseKey == "" && cfg.SupabaseJWTSecret == "" {
		return cfg, fmt.Errorf("SUPABASE_SERVICE_KEY or SUPABASE_JWT_SECRET is required")
	}

	return cfg, nil
}
