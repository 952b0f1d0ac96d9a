// Package memdb implements the store driver as process-lifetime in-memory
// state. This is the default driver; nothing survives a restart.
package memdb

import (
	"context"
	"sync"
	"time"

	"github.com/mindwell-ai/mindwell/store"
)

// userRecord holds one user's state plus the id sequences for it.
// The mutex serializes all reads and writes for this user; cross-user calls
// never contend with each other beyond the outer map lookup.
type userRecord struct {
	mu          sync.Mutex
	tasks       []store.Task
	reminders   []store.Reminder
	goals       []store.Goal
	memory      *store.Memory
	taskSeq     int
	reminderSeq int
	goalSeq     int
}

// DB is the in-memory driver.
type DB struct {
	mu      sync.RWMutex
	records map[string]*userRecord
}

// New creates an empty in-memory driver.
func New() *DB {
	return &DB{records: make(map[string]*userRecord)}
}

// getOrCreate returns the record for userID, creating it lazily on first
// access. Records are never destroyed.
func (d *DB) getOrCreate(userID string) *userRecord {
	d.mu.RLock()
	rec, ok := d.records[userID]
	d.mu.RUnlock()
	if ok {
		return rec
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if rec, ok = d.records[userID]; ok {
		return rec
	}
	rec = &userRecord{memory: store.NewMemory()}
	d.records[userID] = rec
	return rec
}

func (d *DB) CreateTask(_ context.Context, userID string, create store.CreateTask) (*store.Task, error) {
	rec := d.getOrCreate(userID)
	rec.mu.Lock()
	defer rec.mu.Unlock()

	rec.taskSeq++
	task := store.Task{
		ID:        rec.taskSeq,
		UserID:    userID,
		Title:     create.Title,
		DueDate:   create.DueDate,
		Priority:  create.Priority,
		Completed: false,
		CreatedAt: time.Now(),
	}
	rec.tasks = append(rec.tasks, task)
	return &task, nil
}

func (d *DB) ListTasks(_ context.Context, userID string) ([]store.Task, error) {
	rec := d.getOrCreate(userID)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]store.Task(nil), rec.tasks...), nil
}

func (d *DB) CreateReminder(_ context.Context, userID string, create store.CreateReminder) (*store.Reminder, error) {
	rec := d.getOrCreate(userID)
	rec.mu.Lock()
	defer rec.mu.Unlock()

	rec.reminderSeq++
	reminder := store.Reminder{
		ID:        rec.reminderSeq,
		UserID:    userID,
		Title:     create.Title,
		Date:      create.Date,
		Time:      create.Time,
		CreatedAt: time.Now(),
	}
	rec.reminders = append(rec.reminders, reminder)
	return &reminder, nil
}

func (d *DB) ListReminders(_ context.Context, userID string) ([]store.Reminder, error) {
	rec := d.getOrCreate(userID)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]store.Reminder(nil), rec.reminders...), nil
}

func (d *DB) CreateGoal(_ context.Context, userID string, create store.CreateGoal) (*store.Goal, error) {
	rec := d.getOrCreate(userID)
	rec.mu.Lock()
	defer rec.mu.Unlock()

	rec.goalSeq++
	goal := store.Goal{
		ID:          rec.goalSeq,
		UserID:      userID,
		Title:       create.Title,
		Description: create.Description,
		Routine:     create.Routine,
		Frequency:   create.Frequency,
		Duration:    create.Duration,
		StartDate:   create.StartDate,
		Status:      store.GoalStatusPendingApproval,
		Approved:    false,
		CreatedAt:   time.Now(),
	}
	rec.goals = append(rec.goals, goal)
	return &goal, nil
}

func (d *DB) GetGoal(_ context.Context, userID string, id int) (*store.Goal, error) {
	rec := d.getOrCreate(userID)
	rec.mu.Lock()
	defer rec.mu.Unlock()

	for i := range rec.goals {
		if rec.goals[i].ID == id {
			goal := rec.goals[i]
			return &goal, nil
		}
	}
	return nil, store.ErrNotFound
}

func (d *DB) ListGoals(_ context.Context, userID string) ([]store.Goal, error) {
	rec := d.getOrCreate(userID)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]store.Goal(nil), rec.goals...), nil
}

func (d *DB) ApproveGoal(_ context.Context, userID string, id int) (*store.Goal, error) {
	rec := d.getOrCreate(userID)
	rec.mu.Lock()
	defer rec.mu.Unlock()

	for i := range rec.goals {
		if rec.goals[i].ID != id {
			continue
		}
		goal := &rec.goals[i]
		if !goal.Approved {
			now := time.Now()
			goal.Approved = true
			goal.Status = store.GoalStatusActive
			goal.ApprovedAt = &now
		}
		copied := *goal
		return &copied, nil
	}
	return nil, store.ErrNotFound
}

func (d *DB) UpdateGoalStatus(_ context.Context, userID string, id int, status store.GoalStatus) (*store.Goal, error) {
	rec := d.getOrCreate(userID)
	rec.mu.Lock()
	defer rec.mu.Unlock()

	for i := range rec.goals {
		if rec.goals[i].ID != id {
			continue
		}
		now := time.Now()
		rec.goals[i].Status = status
		rec.goals[i].UpdatedAt = &now
		copied := rec.goals[i]
		return &copied, nil
	}
	return nil, store.ErrNotFound
}

func (d *DB) LoadMemory(_ context.Context, userID string) (*store.Memory, error) {
	rec := d.getOrCreate(userID)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.memory.Clone(), nil
}

func (d *DB) UpdateMemory(_ context.Context, userID string, mutate func(*store.Memory)) error {
	rec := d.getOrCreate(userID)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	mutate(rec.memory)
	return nil
}

func (d *DB) Close() error {
	return nil
}
