package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindwell-ai/mindwell/ai/agent"
	"github.com/mindwell-ai/mindwell/store"
	"github.com/mindwell-ai/mindwell/store/db/memdb"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st := store.New(memdb.New(), nil)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func userCtx(userID string) context.Context {
	return agent.WithUserID(context.Background(), userID)
}

func TestCreateTask_Output(t *testing.T) {
	st := newTestStore(t)
	tool := NewCreateTask(st)

	out, err := tool.Run(userCtx("alice"), `{"title":"buy groceries","due_date":"2026-09-01"}`)
	require.NoError(t, err)
	assert.Equal(t, "✓ Task created: buy groceries (due: 2026-09-01)", out)

	out, err = tool.Run(userCtx("alice"), `{"title":"call dentist"}`)
	require.NoError(t, err)
	assert.Equal(t, "✓ Task created: call dentist", out)
}

func TestCreateTask_InvalidPriorityRejected(t *testing.T) {
	st := newTestStore(t)
	tool := NewCreateTask(st)

	_, err := tool.Run(userCtx("alice"), `{"title":"x","priority":"urgent"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid priority")

	tasks, err := st.ListTasks(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestCreateTask_RequiresUserIdentity(t *testing.T) {
	tool := NewCreateTask(newTestStore(t))
	_, err := tool.Run(context.Background(), `{"title":"x"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user identity")
}

func TestGetTasks_Formatting(t *testing.T) {
	st := newTestStore(t)
	ctx := userCtx("alice")

	out, err := NewGetTasks(st).Run(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "You have no tasks.", out)

	_, err = NewCreateTask(st).Run(ctx, `{"title":"finish report","due_date":"2026-09-02","priority":"high"}`)
	require.NoError(t, err)
	_, err = NewCreateTask(st).Run(ctx, `{"title":"water plants"}`)
	require.NoError(t, err)

	out, err = NewGetTasks(st).Run(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "You have 2 task(s):\n"+
		"\n• finish report - Priority: high (due: 2026-09-02)"+
		"\n• water plants - Priority: medium", out)
}

func TestReminders_RoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := userCtx("alice")

	out, err := NewGetReminders(st).Run(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "You have no reminders scheduled.", out)

	out, err = NewScheduleReminder(st).Run(ctx, `{"title":"dentist","date":"2026-09-03","time":"14:30"}`)
	require.NoError(t, err)
	assert.Equal(t, "✓ Reminder set: dentist on 2026-09-03 at 14:30", out)

	out, err = NewGetReminders(st).Run(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "You have 1 reminder(s):\n\n• dentist - 2026-09-03 at 14:30", out)
}

func TestGetAllItems_CombinedView(t *testing.T) {
	st := newTestStore(t)
	ctx := userCtx("alice")

	out, err := NewGetAllItems(st).Run(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "You have no tasks or reminders.", out)

	_, err = NewCreateTask(st).Run(ctx, `{"title":"pack bags"}`)
	require.NoError(t, err)
	_, err = NewScheduleReminder(st).Run(ctx, `{"title":"flight","date":"2026-09-10","time":"08:00"}`)
	require.NoError(t, err)

	out, err = NewGetAllItems(st).Run(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "📋 **Tasks** (1):\n"+
		"\n• pack bags - Priority: medium\n"+
		"\n📅 **Reminders** (1):\n"+
		"\n• flight - 2026-09-10 at 08:00", out)
}

func TestGetAllItems_ScopedToUser(t *testing.T) {
	st := newTestStore(t)

	_, err := NewCreateTask(st).Run(userCtx("alice"), `{"title":"alice task"}`)
	require.NoError(t, err)

	out, err := NewGetAllItems(st).Run(userCtx("bob"), "")
	require.NoError(t, err)
	assert.Equal(t, "You have no tasks or reminders.", out)
}

func TestCreateGoalWithRoutine_Card(t *testing.T) {
	st := newTestStore(t)
	args := `{"title":"Morning Fitness","goal_description":"Get in shape","routine":"20 min jog","frequency":"daily","duration":"30 days","start_date":"2026-09-01"}`

	out, err := NewCreateGoalWithRoutine(st).Run(userCtx("alice"), args)
	require.NoError(t, err)
	assert.Contains(t, out, "📋 Goal Created (ID: 1) - Pending Your Approval")
	assert.Contains(t, out, "**Morning Fitness**")
	assert.Contains(t, out, "🎯 Goal: Get in shape")
	assert.Contains(t, out, "📅 Routine:\n20 min jog")
	assert.Contains(t, out, "⏰ Frequency: daily")
	assert.Contains(t, out, "Type 'approve' to activate this goal")
}

func createGoal(t *testing.T, st *store.Store, userID string) *store.Goal {
	t.Helper()
	goal, err := st.CreateGoal(context.Background(), userID, store.CreateGoal{
		Title:       "Better Sleep",
		Description: "Sleep 8 hours",
		Routine:     "No screens after 22:00",
		Frequency:   "daily",
		Duration:    "2 weeks",
		StartDate:   "2026-09-01",
	})
	require.NoError(t, err)
	return goal
}

func TestApproveGoal(t *testing.T) {
	st := newTestStore(t)
	goal := createGoal(t, st, "alice")

	out, err := NewApproveGoal(st).Run(userCtx("alice"), fmt.Sprintf(`{"goal_id":%d}`, goal.ID))
	require.NoError(t, err)
	assert.Equal(t, "✅ Goal 'Better Sleep' is now active! Let's make it happen! 🎉", out)

	// Second approval is a no-op that still reports success.
	out, err = NewApproveGoal(st).Run(userCtx("alice"), fmt.Sprintf(`{"goal_id":%d}`, goal.ID))
	require.NoError(t, err)
	assert.Equal(t, "✅ Goal 'Better Sleep' is now active! Let's make it happen! 🎉", out)

	out, err = NewApproveGoal(st).Run(userCtx("alice"), `{"goal_id":99}`)
	require.NoError(t, err)
	assert.Equal(t, "❌ Goal ID 99 not found.", out)

	// Another user cannot approve alice's goal.
	out, err = NewApproveGoal(st).Run(userCtx("bob"), fmt.Sprintf(`{"goal_id":%d}`, goal.ID))
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("❌ Goal ID %d not found.", goal.ID), out)
}

func TestGetGoal_StatusRendering(t *testing.T) {
	st := newTestStore(t)
	goal := createGoal(t, st, "alice")
	input := fmt.Sprintf(`{"goal_id":%d}`, goal.ID)

	out, err := NewGetGoal(st).Run(userCtx("alice"), input)
	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("⏳ Goal #%d: **Better Sleep** (Pending Approval)", goal.ID))

	_, err = st.ApproveGoal(context.Background(), "alice", goal.ID)
	require.NoError(t, err)

	out, err = NewGetGoal(st).Run(userCtx("alice"), input)
	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("✅ Goal #%d: **Better Sleep** (Active)", goal.ID))
	assert.Contains(t, out, "📆 Created: "+goal.CreatedAt.Format("2006-01-02"))
}

func TestListGoals(t *testing.T) {
	st := newTestStore(t)

	out, err := NewListGoals(st).Run(userCtx("alice"), "")
	require.NoError(t, err)
	assert.Equal(t, "You don't have any goals yet. Let's create one!", out)

	goal := createGoal(t, st, "alice")
	out, err = NewListGoals(st).Run(userCtx("alice"), "")
	require.NoError(t, err)
	assert.Contains(t, out, "📋 Your Goals (1):")
	assert.Contains(t, out, fmt.Sprintf("⏳ #%d: **Better Sleep** - Pending", goal.ID))
	assert.Contains(t, out, "daily | Start: 2026-09-01")
	assert.Contains(t, out, "Use 'show goal #ID' to see full details of any goal.")
}

func TestUpdateGoalStatus_Messages(t *testing.T) {
	st := newTestStore(t)
	goal := createGoal(t, st, "alice")
	tool := NewUpdateGoalStatus(st)

	cases := map[string]string{
		"completed": "🎉 Congratulations! Goal 'Better Sleep' marked as completed!",
		"paused":    "⏸️ Goal 'Better Sleep' paused. You can resume it anytime.",
		"cancelled": "🚫 Goal 'Better Sleep' cancelled.",
		"active":    "✅ Goal 'Better Sleep' is now active!",
	}
	for status, want := range cases {
		out, err := tool.Run(userCtx("alice"), fmt.Sprintf(`{"goal_id":%d,"status":%q}`, goal.ID, status))
		require.NoError(t, err)
		assert.Equal(t, want, out)
	}

	_, err := tool.Run(userCtx("alice"), fmt.Sprintf(`{"goal_id":%d,"status":"done"}`, goal.ID))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid goal status")

	out, err := tool.Run(userCtx("alice"), `{"goal_id":42,"status":"paused"}`)
	require.NoError(t, err)
	assert.Equal(t, "❌ Goal ID 42 not found.", out)
}

func TestSaveToMemory_AndLoad(t *testing.T) {
	st := newTestStore(t)
	ctx := userCtx("alice")

	out, err := NewSaveToMemory(st).Run(ctx, `{"key":"name","value":"Alice"}`)
	require.NoError(t, err)
	assert.Equal(t, "✓ Saved name to memory", out)

	out, err = NewSaveToMemory(st).Run(ctx, `{"key":"interests","value":"hiking"}`)
	require.NoError(t, err)
	assert.Equal(t, "✓ Saved interests to memory", out)

	out, err = NewLoadMemory(st).Run(ctx, "")
	require.NoError(t, err)

	var decoded struct {
		UserID string        `json:"user_id"`
		Memory *store.Memory `json:"memory"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "alice", decoded.UserID)
	assert.Equal(t, "Alice", decoded.Memory.PersonalDetails["name"])
	assert.Equal(t, []string{"hiking"}, decoded.Memory.Interests)
}

func TestSaveTherapeuticPattern_Messages(t *testing.T) {
	st := newTestStore(t)
	ctx := userCtx("alice")
	tool := NewSaveTherapeuticPattern(st)

	out, err := tool.Run(ctx, `{"trigger":"Overwhelmed","response":"breathing exercise","helpful":true}`)
	require.NoError(t, err)
	assert.Equal(t, "✓ Marked as helpful for 'Overwhelmed'", out)

	out, err = tool.Run(ctx, `{"trigger":"overwhelmed ","response":"tough love","helpful":false}`)
	require.NoError(t, err)
	assert.Equal(t, "✓ Marked as unhelpful for 'overwhelmed ' - will try different approach next time", out)

	// Both writes land in the same normalized bucket.
	memory, err := st.LoadMemory(context.Background(), "alice")
	require.NoError(t, err)
	bucket := memory.Therapeutic.Triggers["overwhelmed"]
	require.NotNil(t, bucket)
	assert.Len(t, bucket.HelpfulResponses, 1)
	assert.Len(t, bucket.UnhelpfulResponses, 1)
}

func TestGetCurrentDatetime_Format(t *testing.T) {
	fixed := time.Date(2026, 9, 4, 15, 4, 0, 0, time.UTC)
	tool := NewGetCurrentDatetime(func() time.Time { return fixed })

	out, err := tool.Run(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Date: 2026-09-04 (Friday), Time: 15:04", out)
}

type fakeSearchProvider struct {
	results []SearchResult
	query   string
}

func (f *fakeSearchProvider) Search(_ context.Context, query string, _ int) ([]SearchResult, error) {
	f.query = query
	return f.results, nil
}

func TestWebSearch_FormatsResults(t *testing.T) {
	provider := &fakeSearchProvider{results: []SearchResult{
		{Title: "What is CBT", Content: "CBT is a talk therapy.", URL: "https://example.org/cbt"},
	}}
	tool := NewWebSearch(provider)

	out, err := tool.Run(context.Background(), `{"query":"cognitive behavioral therapy"}`)
	require.NoError(t, err)
	assert.Equal(t, "cognitive behavioral therapy", provider.query)
	assert.Equal(t, "1. What is CBT\nCBT is a talk therapy.\nhttps://example.org/cbt", out)
}

func TestWebSearch_EmptyQueryRejected(t *testing.T) {
	tool := NewWebSearch(&fakeSearchProvider{})
	_, err := tool.Run(context.Background(), `{"query":"  "}`)
	require.Error(t, err)
}

func TestHTTPSearchProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "meditation research", req["query"])
		assert.Equal(t, "secret", req["api_key"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []SearchResult{{Title: "Meditation", URL: "https://example.org", Content: "It helps."}},
		})
	}))
	defer server.Close()

	provider := NewHTTPSearchProvider(server.URL, "secret")
	results, err := provider.Search(context.Background(), "meditation research", 3)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Meditation", results[0].Title)
}

func TestHTTPSearchProvider_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	provider := NewHTTPSearchProvider(server.URL, "secret")
	_, err := provider.Search(context.Background(), "q", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}
