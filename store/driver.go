package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a goal lookup misses by id+user.
var ErrNotFound = errors.New("not found")

// Driver provides persistence for per-user assistant state.
//
// Every method is scoped to a single user. Implementations must serialize
// access per user record and allocate task/reminder/goal ids from a per-user
// monotonically increasing sequence starting at 1, so concurrent creates for
// different users can never interfere with each other's ids.
type Driver interface {
	CreateTask(ctx context.Context, userID string, create CreateTask) (*Task, error)
	ListTasks(ctx context.Context, userID string) ([]Task, error)

	CreateReminder(ctx context.Context, userID string, create CreateReminder) (*Reminder, error)
	ListReminders(ctx context.Context, userID string) ([]Reminder, error)

	CreateGoal(ctx context.Context, userID string, create CreateGoal) (*Goal, error)
	GetGoal(ctx context.Context, userID string, id int) (*Goal, error)
	ListGoals(ctx context.Context, userID string) ([]Goal, error)
	// ApproveGoal sets approved=true and status=active. Approving an
	// already-approved goal is a no-op, not an error.
	ApproveGoal(ctx context.Context, userID string, id int) (*Goal, error)
	// UpdateGoalStatus overwrites the status unconditionally. There is no
	// approval guard and no terminal-state enforcement.
	UpdateGoalStatus(ctx context.Context, userID string, id int, status GoalStatus) (*Goal, error)

	// LoadMemory returns a copy of the user's memory, lazily creating the
	// default empty shape on first access.
	LoadMemory(ctx context.Context, userID string) (*Memory, error)
	// UpdateMemory runs mutate against the user's memory under the record
	// lock, lazily creating the default shape first.
	UpdateMemory(ctx context.Context, userID string, mutate func(*Memory)) error

	Close() error
}
