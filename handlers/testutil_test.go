package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"formulaihu/flow-bot/config"
	"formulaihu/flow-bot/discord"
	"formulaihu/flow-bot/supabase"
	"formulaihu/flow-bot/types"

	"github.com/stretchr/testify/require"
)

// newFakeSupabase stands up an httptest server playing PostgREST and returns
// a real supabase client pointed at it. The handler sees paths like
// "/rest/v1/tasks" with the usual query-string predicates.
func newFakeSupabase(t *testing.T, handler http.HandlerFunc) *supabase.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := supabase.NewClient(config.Config{
		SupabaseURL: srv.URL,
		SupabaseKey: "test-key",
	})
	require.NoError(t, err)
	return client
}

// deadSupabase fails the test if any request reaches the data store.
func deadSupabase(t *testing.T) *supabase.Client {
	t.Helper()
	return newFakeSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected data-store request: %s %s", r.Method, r.URL.Path)
		w.Write([]byte(`[]`))
	})
}

func newFakeDiscord(t *testing.T, handler http.HandlerFunc) *discord.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return discord.NewClient(config.Config{
		DiscordBotToken: "test-token",
		DiscordAPIBase:  srv.URL,
	})
}

func commandInteraction(name, discordUserID string, opts map[string]string) types.Interaction {
	data := &types.InteractionData{Name: name}
	for k, v := range opts {
		data.Options = append(data.Options, types.CommandOption{Name: k, Value: v})
	}
	return types.Interaction{
		Type:   types.InteractionApplicationCommand,
		Data:   data,
		Member: &types.Member{User: &types.User{ID: discordUserID, Username: "racer"}},
	}
}

func componentInteraction(customID, discordUserID, guildID string) types.Interaction {
	return types.Interaction{
		Type:    types.InteractionMessageComponent,
		GuildID: guildID,
		Data:    &types.InteractionData{CustomID: customID},
		Member:  &types.Member{User: &types.User{ID: discordUserID, Username: "racer"}},
	}
}

func testConfig() config.Config {
	cfg := config.Config{
		DiscordPublicKey: "unused",
		DiscordBotToken:  "test-token",
		RoleIDs:          make(map[string]string),
	}
	for _, role := range config.TeamRoles {
		cfg.RoleIDs[role.Key] = role.FallbackID
	}
	return cfg
}
