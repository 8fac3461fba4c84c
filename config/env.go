package config

import (
	"github.com/joho/godotenv"
)

// LoadEnv pulls a local .env into the process environment when one exists.
// Deployed environments set real variables, so a missing file is fine.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		Logger.Warn("No .env file found, using environment variables:", err)
	}
}
