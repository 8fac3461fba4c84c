package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"formulaihu/flow-bot/config"
	"formulaihu/flow-bot/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testDiscordID = "42"
	testProfileID = "6f1e8a4e-5b2d-4c3a-9e8f-1a2b3c4d5e6f"
	testTaskID    = "0d9f2b7c-4a1e-4f6d-8c3b-5e6f7a8b9c0d"
)

func profileRow() string {
	return `[{"id":"` + testProfileID + `","full_name":"Eleni Papadopoulou","discord_user_id":"` + testDiscordID + `"}]`
}

func TestAddTaskRequiresContent(t *testing.T) {
	db := deadSupabase(t)

	resp := handleAddTask(db, commandInteraction("addtask", testDiscordID, nil))

	assert.Equal(t, types.ResponseChannelMessage, resp.Type)
	assert.Contains(t, resp.Data.Content, "provide the task content")
}

func TestAddTaskInsertsPendingTask(t *testing.T) {
	var inserted []types.Task

	db := newFakeSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/profiles"):
			w.Write([]byte(`[]`)) // anonymous capture, no linked profile
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/tasks"):
			raw, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(raw, &inserted))
			w.Write(raw)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	})

	resp := handleAddTask(db, commandInteraction("addtask", testDiscordID, map[string]string{
		"content": "Order new brake pads",
	}))

	require.Len(t, inserted, 1)
	assert.Equal(t, "Order new brake pads", inserted[0].Content)
	assert.Equal(t, types.TaskStatusPending, inserted[0].Status)
	require.NotNil(t, inserted[0].DiscordUserID)
	assert.Equal(t, testDiscordID, *inserted[0].DiscordUserID)
	assert.Nil(t, inserted[0].CreatedBy)

	assert.Contains(t, resp.Data.Content, "✅ Task added")
}

func TestListTasksRequiresLinkedProfile(t *testing.T) {
	db := newFakeSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	resp := handleListTasks(db, commandInteraction("listtasks", testDiscordID, nil))
	assert.Contains(t, resp.Data.Content, "linkaccount")
}

func TestListTasksEmptyState(t *testing.T) {
	db := newFakeSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/profiles") {
			w.Write([]byte(profileRow()))
			return
		}
		assert.Equal(t, "eq."+testProfileID, r.URL.Query().Get("created_by"))
		w.Write([]byte(`[]`))
	})

	resp := handleListTasks(db, commandInteraction("listtasks", testDiscordID, nil))
	assert.Contains(t, resp.Data.Content, "no tasks yet")
}

func TestMyTasksEmptyStateIsDistinct(t *testing.T) {
	db := newFakeSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/profiles") {
			w.Write([]byte(profileRow()))
			return
		}
		assert.Equal(t, "eq."+testProfileID, r.URL.Query().Get("assigned_to"))
		w.Write([]byte(`[]`))
	})

	resp := handleMyTasks(db, commandInteraction("mytasks", testDiscordID, nil))
	assert.Contains(t, resp.Data.Content, "all caught up")
	assert.NotContains(t, resp.Data.Content, "no tasks yet")
}

func TestListTasksAttachesButtonToNewestIncompleteTask(t *testing.T) {
	db := newFakeSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/profiles") {
			w.Write([]byte(profileRow()))
			return
		}
		w.Write([]byte(`[
			{"id":"` + testTaskID + `","content":"Bleed brakes","status":"pending"},
			{"id":"other","content":"Done thing","status":"completed"}
		]`))
	})

	resp := handleListTasks(db, commandInteraction("listtasks", testDiscordID, nil))

	require.Len(t, resp.Data.Components, 1)
	require.Len(t, resp.Data.Components[0].Components, 1)
	assert.Equal(t, completeButtonPrefix+testTaskID, resp.Data.Components[0].Components[0].CustomID)
	assert.Contains(t, resp.Data.Content, "⏳ Bleed brakes")
	assert.Contains(t, resp.Data.Content, "✅ Done thing")
}

func TestListTasksNoButtonWhenNewestCompleted(t *testing.T) {
	db := newFakeSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/profiles") {
			w.Write([]byte(profileRow()))
			return
		}
		w.Write([]byte(`[{"id":"` + testTaskID + `","content":"Done","status":"completed"}]`))
	})

	resp := handleListTasks(db, commandInteraction("listtasks", testDiscordID, nil))
	assert.Empty(t, resp.Data.Components)
}

func TestListTasksNormalizesLegacyTitleColumn(t *testing.T) {
	db := newFakeSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/profiles") {
			w.Write([]byte(profileRow()))
			return
		}
		w.Write([]byte(`[{"id":"` + testTaskID + `","title":"Legacy row","status":"pending"}]`))
	})

	resp := handleListTasks(db, commandInteraction("listtasks", testDiscordID, nil))
	assert.Contains(t, resp.Data.Content, "Legacy row")
}

func TestCompleteTaskRejectsInvalidID(t *testing.T) {
	db := deadSupabase(t)

	resp := handleCompleteTask(db, commandInteraction("completetask", testDiscordID, map[string]string{
		"task_id": "not-a-uuid",
	}))
	assert.Contains(t, resp.Data.Content, "Invalid task id")
}

func TestCompleteTaskEnforcesOwnershipInPredicate(t *testing.T) {
	var patchQuery map[string][]string

	db := newFakeSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/profiles") {
			w.Write([]byte(profileRow()))
			return
		}
		require.Equal(t, http.MethodPatch, r.Method)
		patchQuery = r.URL.Query()
		// Task exists but belongs to someone else: zero rows match.
		w.Write([]byte(`[]`))
	})

	resp := handleCompleteTask(db, commandInteraction("completetask", testDiscordID, map[string]string{
		"task_id": testTaskID,
	}))

	require.NotNil(t, patchQuery)
	assert.Equal(t, []string{"eq." + testTaskID}, patchQuery["id"])
	assert.Equal(t, []string{"eq." + testProfileID}, patchQuery["created_by"])
	assert.Contains(t, resp.Data.Content, "not found or you don't have permission")
}

func TestCompleteTaskSuccess(t *testing.T) {
	db := newFakeSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/profiles") {
			w.Write([]byte(profileRow()))
			return
		}
		w.Write([]byte(`[{"id":"` + testTaskID + `","content":"Bleed brakes","status":"completed"}]`))
	})

	resp := handleCompleteTask(db, commandInteraction("completetask", testDiscordID, map[string]string{
		"task_id": testTaskID,
	}))
	assert.Contains(t, resp.Data.Content, "✅ Task completed: Bleed brakes")
}

func TestLinkAccountInvalidCode(t *testing.T) {
	db := newFakeSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("discord_link_code"), "ilike.")
		w.Write([]byte(`[]`))
	})

	resp := handleLinkAccount(db, commandInteraction("linkaccount", testDiscordID, map[string]string{
		"code": "FLOW-0000",
	}))
	assert.Contains(t, resp.Data.Content, "Invalid code")
}

func TestLinkAccountRejectsPatternWildcards(t *testing.T) {
	// ilike treats %, _ and * as wildcards; a code like "%" would match any
	// pending link code and let an attacker claim someone else's profile.
	// Such codes must be answered like any other invalid code, with no
	// lookup or update ever issued.
	db := deadSupabase(t)

	for _, code := range []string{"%", "_", "*", "FLOW%", "FLOW_1234", "*-*", "FLOW 1234"} {
		resp := handleLinkAccount(db, commandInteraction("linkaccount", testDiscordID, map[string]string{
			"code": code,
		}))
		assert.Equal(t, types.ResponseChannelMessage, resp.Type, code)
		assert.Contains(t, resp.Data.Content, "Invalid code", code)
	}
}

func TestLinkAccountAcceptsIssuedCodeFormat(t *testing.T) {
	db := newFakeSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	resp := handleLinkAccount(db, commandInteraction("linkaccount", testDiscordID, map[string]string{
		"code": "FLOW-ab12",
	}))
	// Well-formed but unknown code still reaches the lookup and comes back
	// invalid, rather than being rejected by the format check.
	assert.Contains(t, resp.Data.Content, "Invalid code")
}

func TestLinkAccountRefusesAlreadyLinkedIdentity(t *testing.T) {
	db := newFakeSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("discord_link_code") != "":
			w.Write([]byte(`[{"id":"` + testProfileID + `","full_name":"Eleni Papadopoulou"}]`))
		case q.Get("discord_user_id") != "":
			w.Write([]byte(`[{"id":"another-profile","full_name":"Nikos Georgiou","discord_user_id":"` + testDiscordID + `"}]`))
		default:
			t.Errorf("unexpected profiles query: %s", r.URL.RawQuery)
		}
	})

	resp := handleLinkAccount(db, commandInteraction("linkaccount", testDiscordID, map[string]string{
		"code": "FLOW-1234",
	}))
	assert.Contains(t, resp.Data.Content, "already linked to Nikos Georgiou")
}

func TestLinkAccountSuccessBurnsCode(t *testing.T) {
	var patch map[string]interface{}
	var patchQuery map[string][]string

	db := newFakeSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			patchQuery = r.URL.Query()
			raw, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(raw, &patch))
			w.Write([]byte(profileRow()))
			return
		}
		q := r.URL.Query()
		switch {
		case q.Get("discord_link_code") != "":
			w.Write([]byte(`[{"id":"` + testProfileID + `","full_name":"Eleni Papadopoulou"}]`))
		case q.Get("discord_user_id") != "":
			w.Write([]byte(`[]`))
		}
	})

	resp := handleLinkAccount(db, commandInteraction("linkaccount", testDiscordID, map[string]string{
		"code": "FLOW-1234",
	}))

	require.NotNil(t, patch)
	assert.Equal(t, testDiscordID, patch["discord_user_id"])
	val, present := patch["discord_link_code"]
	assert.True(t, present, "update must clear the link code")
	assert.Nil(t, val)

	// The code stays in the update predicate, so a burned code matches
	// nothing even when two writers race.
	assert.Equal(t, []string{"eq." + testProfileID}, patchQuery["id"])
	assert.Contains(t, patchQuery["discord_link_code"][0], "ilike.")

	assert.Contains(t, resp.Data.Content, "Welcome, Eleni Papadopoulou")
	assert.Contains(t, resp.Data.Content, "/addtask")
}

func TestLinkAccountReusedCodeFails(t *testing.T) {
	db := newFakeSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			// Another writer already cleared the code.
			w.Write([]byte(`[]`))
			return
		}
		q := r.URL.Query()
		switch {
		case q.Get("discord_link_code") != "":
			w.Write([]byte(`[{"id":"` + testProfileID + `","full_name":"Eleni Papadopoulou"}]`))
		case q.Get("discord_user_id") != "":
			w.Write([]byte(`[]`))
		}
	})

	resp := handleLinkAccount(db, commandInteraction("linkaccount", testDiscordID, map[string]string{
		"code": "FLOW-1234",
	}))
	assert.Contains(t, resp.Data.Content, "Invalid code")
}

func TestSetupWelcomeRefusedOutsideGuild(t *testing.T) {
	bot := newFakeDiscord(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no bot API call expected")
	})

	in := commandInteraction("setupwelcome", testDiscordID, map[string]string{"channel": "<#555>"})
	in.GuildID = ""
	// DM-style interaction: user at top level, no member.
	in.User = in.Member.User
	in.Member = nil

	resp := handleSetupWelcome(testConfig(), bot, in)
	assert.Contains(t, resp.Data.Content, "inside a server")
}

func TestSetupWelcomePostsRoleButtons(t *testing.T) {
	var gotPath string
	var message types.ChannelMessage

	bot := newFakeDiscord(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &message))
		w.WriteHeader(http.StatusOK)
	})

	in := commandInteraction("setupwelcome", testDiscordID, map[string]string{"channel": "<#555>"})
	in.GuildID = "guild1"

	resp := handleSetupWelcome(testConfig(), bot, in)

	assert.Equal(t, "/channels/555/messages", gotPath, "channel mention must be stripped to the raw id")

	total := 0
	for _, row := range message.Components {
		assert.LessOrEqual(t, len(row.Components), 5)
		for _, btn := range row.Components {
			assert.True(t, strings.HasPrefix(btn.CustomID, config.RoleButtonPrefix))
			total++
		}
	}
	assert.Equal(t, len(config.TeamRoles), total)

	assert.Equal(t, types.FlagEphemeral, resp.Data.Flags)
	assert.Contains(t, resp.Data.Content, "posted")
}

func TestSetupWelcomeSurfacesBotAPIFailure(t *testing.T) {
	bot := newFakeDiscord(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	in := commandInteraction("setupwelcome", testDiscordID, map[string]string{"channel": "555"})
	in.GuildID = "guild1"

	resp := handleSetupWelcome(testConfig(), bot, in)
	assert.Equal(t, types.ResponseChannelMessage, resp.Type)
	assert.Contains(t, resp.Data.Content, "❌ Error:")
}
