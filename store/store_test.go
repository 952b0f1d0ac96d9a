package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindwell-ai/mindwell/internal/profile"
	"github.com/mindwell-ai/mindwell/store"
	"github.com/mindwell-ai/mindwell/store/db/memdb"
)

func newTestStore() *store.Store {
	return store.New(memdb.New(), &profile.Profile{Mode: "dev", Driver: "memory"})
}

func TestCreateTask_ReturnsOwnTasksInCreationOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	titles := []string{"buy groceries", "call dentist", "finish report"}
	for _, title := range titles {
		_, err := s.CreateTask(ctx, "alice", store.CreateTask{Title: title, Priority: store.PriorityMedium})
		require.NoError(t, err)
	}
	// Another user's task must not leak into alice's listing.
	_, err := s.CreateTask(ctx, "bob", store.CreateTask{Title: "walk dog", Priority: store.PriorityLow})
	require.NoError(t, err)

	tasks, err := s.ListTasks(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	for i, task := range tasks {
		assert.Equal(t, titles[i], task.Title)
		assert.Equal(t, i+1, task.ID)
		assert.Equal(t, "alice", task.UserID)
		assert.False(t, task.Completed)
	}
}

func TestCreateTask_ConcurrentUsersGetIndependentIDs(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	const perUser = 50
	var wg sync.WaitGroup
	for _, userID := range []string{"alice", "bob"} {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			for i := 0; i < perUser; i++ {
				_, err := s.CreateTask(ctx, userID, store.CreateTask{Title: fmt.Sprintf("task %d", i), Priority: store.PriorityMedium})
				assert.NoError(t, err)
			}
		}(userID)
	}
	wg.Wait()

	for _, userID := range []string{"alice", "bob"} {
		tasks, err := s.ListTasks(ctx, userID)
		require.NoError(t, err)
		require.Len(t, tasks, perUser)

		seen := make(map[int]bool)
		for _, task := range tasks {
			assert.False(t, seen[task.ID], "duplicate id %d for user %s", task.ID, userID)
			seen[task.ID] = true
		}
		// IDs are user-scoped sequences starting at 1, so both users
		// legitimately own an id 1.
		assert.True(t, seen[1])
		assert.True(t, seen[perUser])
	}
}

func TestApproveGoal_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	goal, err := s.CreateGoal(ctx, "alice", store.CreateGoal{Title: "Morning Walk Routine"})
	require.NoError(t, err)
	assert.Equal(t, store.GoalStatusPendingApproval, goal.Status)
	assert.False(t, goal.Approved)

	first, err := s.ApproveGoal(ctx, "alice", goal.ID)
	require.NoError(t, err)
	assert.True(t, first.Approved)
	assert.Equal(t, store.GoalStatusActive, first.Status)
	require.NotNil(t, first.ApprovedAt)

	second, err := s.ApproveGoal(ctx, "alice", goal.ID)
	require.NoError(t, err)
	assert.True(t, second.Approved)
	assert.Equal(t, store.GoalStatusActive, second.Status)
	assert.Equal(t, first.ApprovedAt.Unix(), second.ApprovedAt.Unix())
}

func TestApproveGoal_NotFoundForWrongUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	goal, err := s.CreateGoal(ctx, "alice", store.CreateGoal{Title: "Better Sleep"})
	require.NoError(t, err)

	_, err = s.ApproveGoal(ctx, "bob", goal.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateGoalStatus_NoApprovalGuard(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	goal, err := s.CreateGoal(ctx, "alice", store.CreateGoal{Title: "Read More"})
	require.NoError(t, err)

	// Completing a never-approved goal succeeds: there is intentionally
	// no guard on direct status updates.
	updated, err := s.UpdateGoalStatus(ctx, "alice", goal.ID, store.GoalStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, store.GoalStatusCompleted, updated.Status)
	assert.False(t, updated.Approved)
	require.NotNil(t, updated.UpdatedAt)

	// Terminal states are not enforced either; further updates stick.
	updated, err = s.UpdateGoalStatus(ctx, "alice", goal.ID, store.GoalStatusActive)
	require.NoError(t, err)
	assert.Equal(t, store.GoalStatusActive, updated.Status)
}

func TestSaveTherapeuticPattern_TriggerNormalization(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	require.NoError(t, s.SaveTherapeuticPattern(ctx, "alice", "Stressed", "4-7-8 breathing", true))
	require.NoError(t, s.SaveTherapeuticPattern(ctx, "alice", "stressed ", "quick walk", false))

	memory, err := s.LoadMemory(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, memory.Therapeutic.Triggers, 1)

	bucket := memory.Therapeutic.Triggers["stressed"]
	require.NotNil(t, bucket)
	require.Len(t, bucket.HelpfulResponses, 1)
	require.Len(t, bucket.UnhelpfulResponses, 1)
	assert.Equal(t, "4-7-8 breathing", bucket.HelpfulResponses[0].Response)
	assert.Equal(t, "quick walk", bucket.UnhelpfulResponses[0].Response)
	assert.False(t, bucket.HelpfulResponses[0].Timestamp.IsZero())
}

func TestSaveToMemory_KeyRouting(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	require.NoError(t, s.SaveToMemory(ctx, "alice", "name", "Alice"))
	require.NoError(t, s.SaveToMemory(ctx, "alice", "interests", "hiking"))
	require.NoError(t, s.SaveToMemory(ctx, "alice", "interests", "piano"))
	require.NoError(t, s.SaveToMemory(ctx, "alice", "preferences", "short answers"))
	require.NoError(t, s.SaveToMemory(ctx, "alice", "history", "talked about work stress"))
	require.NoError(t, s.SaveToMemory(ctx, "alice", "favorite_color", "green"))

	memory, err := s.LoadMemory(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", memory.PersonalDetails["name"])
	assert.Equal(t, []string{"hiking", "piano"}, memory.Interests)
	assert.Equal(t, "short answers", memory.Preferences["general"])
	assert.Equal(t, []string{"talked about work stress"}, memory.History)
	// Unrecognized keys are accepted, not rejected.
	assert.Equal(t, "green", memory.Extra["favorite_color"])
}

func TestLoadMemory_CreatesDefaultShape(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	memory, err := s.LoadMemory(ctx, "fresh-user")
	require.NoError(t, err)
	require.NotNil(t, memory)
	assert.Empty(t, memory.PersonalDetails)
	assert.Empty(t, memory.History)
	assert.NotNil(t, memory.Therapeutic.Triggers)
}

func TestAddJournalEntry_AppendsWithID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	entry, err := s.AddJournalEntry(ctx, "alice", store.JournalEntry{
		Entry:    "Work was brutal and I yelled at my kid",
		Emotions: []string{"anger", "guilt"},
		Insight:  "carrying too much at once",
		Action:   "pick one thing to tackle today",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.NotEmpty(t, entry.Date)

	memory, err := s.LoadMemory(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, memory.JournalEntries, 1)
	assert.Equal(t, "Work was brutal and I yelled at my kid", memory.JournalEntries[0].Entry)
}

func TestParseGoalStatus(t *testing.T) {
	for _, valid := range []string{"pending_approval", "active", "completed", "paused", "cancelled"} {
		status, err := store.ParseGoalStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, store.GoalStatus(valid), status)
	}

	_, err := store.ParseGoalStatus("done")
	assert.Error(t, err)
	_, err = store.ParseGoalStatus("")
	assert.Error(t, err)
}

func TestParsePriority(t *testing.T) {
	priority, err := store.ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, store.PriorityMedium, priority)

	_, err = store.ParsePriority("urgent")
	assert.Error(t, err)
}
