// Package store provides the per-user state store backing the assistant's
// tool functions: tasks, reminders, goals and the nested memory structure.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mindwell-ai/mindwell/internal/profile"
)

// Store provides access to all per-user assistant state.
// It wraps a Driver and adds the key-routing and normalization rules the
// tool layer relies on.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	return s.driver.Close()
}

func (s *Store) CreateTask(ctx context.Context, userID string, create CreateTask) (*Task, error) {
	return s.driver.CreateTask(ctx, userID, create)
}

func (s *Store) ListTasks(ctx context.Context, userID string) ([]Task, error) {
	return s.driver.ListTasks(ctx, userID)
}

func (s *Store) CreateReminder(ctx context.Context, userID string, create CreateReminder) (*Reminder, error) {
	return s.driver.CreateReminder(ctx, userID, create)
}

func (s *Store) ListReminders(ctx context.Context, userID string) ([]Reminder, error) {
	return s.driver.ListReminders(ctx, userID)
}

func (s *Store) CreateGoal(ctx context.Context, userID string, create CreateGoal) (*Goal, error) {
	return s.driver.CreateGoal(ctx, userID, create)
}

func (s *Store) GetGoal(ctx context.Context, userID string, id int) (*Goal, error) {
	return s.driver.GetGoal(ctx, userID, id)
}

func (s *Store) ListGoals(ctx context.Context, userID string) ([]Goal, error) {
	return s.driver.ListGoals(ctx, userID)
}

func (s *Store) ApproveGoal(ctx context.Context, userID string, id int) (*Goal, error) {
	return s.driver.ApproveGoal(ctx, userID, id)
}

func (s *Store) UpdateGoalStatus(ctx context.Context, userID string, id int, status GoalStatus) (*Goal, error) {
	return s.driver.UpdateGoalStatus(ctx, userID, id, status)
}

func (s *Store) LoadMemory(ctx context.Context, userID string) (*Memory, error) {
	return s.driver.LoadMemory(ctx, userID)
}

// SaveToMemory routes a key/value pair into the matching memory sub-field.
// Known keys: name, interests, preferences, history. Anything else lands in
// the Extra map so arbitrary keys are still accepted.
func (s *Store) SaveToMemory(ctx context.Context, userID, key, value string) error {
	return s.driver.UpdateMemory(ctx, userID, func(m *Memory) {
		switch key {
		case "name":
			m.PersonalDetails["name"] = value
		case "interests":
			m.Interests = append(m.Interests, value)
		case "preferences":
			m.Preferences["general"] = value
		case "history":
			m.History = append(m.History, value)
		default:
			m.Extra[key] = value
		}
	})
}

// SaveTherapeuticPattern appends a timestamped response record to the
// normalized trigger's helpful or unhelpful bucket, creating the bucket on
// first use.
func (s *Store) SaveTherapeuticPattern(ctx context.Context, userID, trigger, response string, helpful bool) error {
	key := NormalizeTrigger(trigger)
	record := ResponseRecord{Response: response, Timestamp: time.Now()}
	return s.driver.UpdateMemory(ctx, userID, func(m *Memory) {
		bucket, ok := m.Therapeutic.Triggers[key]
		if !ok {
			bucket = &TriggerHistory{}
			m.Therapeutic.Triggers[key] = bucket
		}
		if helpful {
			bucket.HelpfulResponses = append(bucket.HelpfulResponses, record)
		} else {
			bucket.UnhelpfulResponses = append(bucket.UnhelpfulResponses, record)
		}
	})
}

// AddJournalEntry appends a structured reflection to the user's history.
// The journal pipeline calls this before its user-facing reply is produced.
func (s *Store) AddJournalEntry(ctx context.Context, userID string, entry JournalEntry) (*JournalEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if entry.Date == "" {
		entry.Date = entry.CreatedAt.Format("2006-01-02")
	}
	err := s.driver.UpdateMemory(ctx, userID, func(m *Memory) {
		m.JournalEntries = append(m.JournalEntries, entry)
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
