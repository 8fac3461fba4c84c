package supabase

import (
	"fmt"

	"formulaihu/flow-bot/config"

	"github.com/supabase-community/supabase-go"
)

// Client aliases the supabase-go client so callers only import this package.
type Client = supabase.Client

// NewClient builds the service-role Supabase client used by all handlers.
// When no service key is configured, a service token is minted from the
// project JWT secret instead (the hosted service key is the same thing).
func NewClient(cfg config.Config) (*Client, error) {
	key := cfg.SupabaseKey
	if key == "" {
		minted, err := MintServiceToken(cfg.SupabaseJWTSecret)
		if err != nil {
			return nil, fmt.Errorf("failed to mint service token: %w", err)
		}
		key = minted
	}

	client, err := supabase.NewClient(cfg.SupabaseURL, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create Supabase client: %w", err)
	}
	return client, nil
}
