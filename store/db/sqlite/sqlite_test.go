package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindwell-ai/mindwell/internal/profile"
	"github.com/mindwell-ai/mindwell/store"
)

func newTestDB(t *testing.T) store.Driver {
	t.Helper()
	p := &profile.Profile{
		Mode:   "dev",
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "mindwell_test.db"),
	}
	driver, err := NewDB(p)
	require.NoError(t, err)
	t.Cleanup(func() { _ = driver.Close() })
	return driver
}

func TestSQLite_TaskRoundtrip(t *testing.T) {
	ctx := context.Background()
	d := newTestDB(t)

	created, err := d.CreateTask(ctx, "alice", store.CreateTask{Title: "finish report", DueDate: "2026-09-04", Priority: store.PriorityHigh})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)

	second, err := d.CreateTask(ctx, "alice", store.CreateTask{Title: "call dentist", Priority: store.PriorityMedium})
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)

	// A different user starts its own sequence.
	other, err := d.CreateTask(ctx, "bob", store.CreateTask{Title: "walk dog", Priority: store.PriorityLow})
	require.NoError(t, err)
	assert.Equal(t, 1, other.ID)

	tasks, err := d.ListTasks(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "finish report", tasks[0].Title)
	assert.Equal(t, "2026-09-04", tasks[0].DueDate)
	assert.Equal(t, store.PriorityHigh, tasks[0].Priority)
	assert.False(t, tasks[0].Completed)
	assert.False(t, tasks[0].CreatedAt.IsZero())
}

func TestSQLite_ReminderRoundtrip(t *testing.T) {
	ctx := context.Background()
	d := newTestDB(t)

	created, err := d.CreateReminder(ctx, "alice", store.CreateReminder{Title: "Take medicine", Date: "2026-09-01", Time: "15:00"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)

	reminders, err := d.ListReminders(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, "Take medicine", reminders[0].Title)
	assert.Equal(t, "15:00", reminders[0].Time)
}

func TestSQLite_GoalLifecycle(t *testing.T) {
	ctx := context.Background()
	d := newTestDB(t)

	goal, err := d.CreateGoal(ctx, "alice", store.CreateGoal{
		Title:       "Morning Walk Routine",
		Description: "Build a consistent walking habit",
		Routine:     "Walk outside for 20 minutes",
		Frequency:   "3x per week",
		Duration:    "30 days",
		StartDate:   "2026-09-01",
	})
	require.NoError(t, err)
	assert.Equal(t, store.GoalStatusPendingApproval, goal.Status)

	_, err = d.GetGoal(ctx, "bob", goal.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	approved, err := d.ApproveGoal(ctx, "alice", goal.ID)
	require.NoError(t, err)
	assert.True(t, approved.Approved)
	assert.Equal(t, store.GoalStatusActive, approved.Status)
	require.NotNil(t, approved.ApprovedAt)

	// Approving twice is a no-op.
	again, err := d.ApproveGoal(ctx, "alice", goal.ID)
	require.NoError(t, err)
	assert.Equal(t, store.GoalStatusActive, again.Status)

	updated, err := d.UpdateGoalStatus(ctx, "alice", goal.ID, store.GoalStatusPaused)
	require.NoError(t, err)
	assert.Equal(t, store.GoalStatusPaused, updated.Status)
	require.NotNil(t, updated.UpdatedAt)

	fetched, err := d.GetGoal(ctx, "alice", goal.ID)
	require.NoError(t, err)
	assert.Equal(t, store.GoalStatusPaused, fetched.Status)
	assert.True(t, fetched.Approved)
}

func TestSQLite_MemoryRoundtrip(t *testing.T) {
	ctx := context.Background()
	d := newTestDB(t)

	memory, err := d.LoadMemory(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, memory.History)

	err = d.UpdateMemory(ctx, "alice", func(m *store.Memory) {
		m.PersonalDetails["name"] = "Alice"
		m.History = append(m.History, "first session")
		m.Therapeutic.Triggers["stressed"] = &store.TriggerHistory{
			HelpfulResponses: []store.ResponseRecord{{Response: "4-7-8 breathing"}},
		}
	})
	require.NoError(t, err)

	reloaded, err := d.LoadMemory(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", reloaded.PersonalDetails["name"])
	assert.Equal(t, []string{"first session"}, reloaded.History)
	require.NotNil(t, reloaded.Therapeutic.Triggers["stressed"])
	assert.Equal(t, "4-7-8 breathing", reloaded.Therapeutic.Triggers["stressed"].HelpfulResponses[0].Response)
}
