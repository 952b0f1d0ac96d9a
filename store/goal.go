package store

import (
	"fmt"
	"time"
)

// GoalStatus is the closed set of goal lifecycle states.
type GoalStatus string

const (
	GoalStatusPendingApproval GoalStatus = "pending_approval"
	GoalStatusActive          GoalStatus = "active"
	GoalStatusCompleted       GoalStatus = "completed"
	GoalStatusPaused          GoalStatus = "paused"
	GoalStatusCancelled       GoalStatus = "cancelled"
)

// ParseGoalStatus validates a status string against the closed set.
func ParseGoalStatus(s string) (GoalStatus, error) {
	switch GoalStatus(s) {
	case GoalStatusPendingApproval, GoalStatusActive, GoalStatusCompleted, GoalStatusPaused, GoalStatusCancelled:
		return GoalStatus(s), nil
	default:
		return "", fmt.Errorf("invalid goal status %q (expected pending_approval, active, completed, paused or cancelled)", s)
	}
}

// Goal represents a user goal with an associated routine.
//
// Lifecycle: created as pending_approval; Approve sets approved=true and
// status=active. Direct status updates have no approval guard and no
// terminal-state enforcement: an unapproved goal can be force-set to active
// and a completed goal can still be updated. Both are intentional.
type Goal struct {
	ID          int        `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Routine     string     `json:"routine"`
	Frequency   string     `json:"frequency"`
	Duration    string     `json:"duration"`
	StartDate   string     `json:"start_date"`
	Status      GoalStatus `json:"status"`
	Approved    bool       `json:"approved"`
	CreatedAt   time.Time  `json:"created_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// CreateGoal holds parameters for creating a goal with a routine.
type CreateGoal struct {
	Title       string
	Description string
	Routine     string
	Frequency   string
	Duration    string
	StartDate   string
}
