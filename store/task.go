package store

import (
	"fmt"
	"time"
)

// Priority is the closed set of task priorities.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority validates a priority string. An empty string falls back to
// medium, matching the tool default. Unknown values are rejected rather than
// stored as-is.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), nil
	case "":
		return PriorityMedium, nil
	default:
		return "", fmt.Errorf("invalid priority %q (expected low, medium or high)", s)
	}
}

// Task represents a todo item owned by one user.
// IDs are allocated from a per-user sequence starting at 1, so the same
// numeric ID may appear under different users.
type Task struct {
	ID        int       `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	DueDate   string    `json:"due_date,omitempty"`
	Priority  Priority  `json:"priority"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTask holds parameters for creating a task.
type CreateTask struct {
	Title    string
	DueDate  string
	Priority Priority
}

// Reminder represents a scheduled reminder owned by one user.
type Reminder struct {
	ID        int       `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateReminder holds parameters for scheduling a reminder.
type CreateReminder struct {
	Title string
	Date  string
	Time  string
}
