package sqlite

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/mindwell-ai/mindwell/store"
)

func (d *DB) CreateTask(ctx context.Context, userID string, create store.CreateTask) (*store.Task, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id, err := d.nextID(ctx, "task", userID)
	if err != nil {
		return nil, err
	}

	task := store.Task{
		ID:        id,
		UserID:    userID,
		Title:     create.Title,
		DueDate:   create.DueDate,
		Priority:  create.Priority,
		CreatedAt: time.Now(),
	}

	stmt := `
		INSERT INTO task (user_id, id, title, due_date, priority, completed, created_at)
		VALUES (?, ?, ?, ?, ?, 0, ?)
	`
	if _, err := d.db.ExecContext(ctx, stmt,
		task.UserID,
		task.ID,
		task.Title,
		task.DueDate,
		string(task.Priority),
		task.CreatedAt.Format(time.RFC3339Nano),
	); err != nil {
		return nil, errors.Wrap(err, "failed to create task")
	}
	return &task, nil
}

func (d *DB) ListTasks(ctx context.Context, userID string) ([]store.Task, error) {
	query := `
		SELECT user_id, id, title, due_date, priority, completed, created_at
		FROM task
		WHERE user_id = ?
		ORDER BY id ASC
	`
	rows, err := d.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tasks")
	}
	defer rows.Close()

	var tasks []store.Task
	for rows.Next() {
		var task store.Task
		var priority, createdAt string
		var completed int
		if err := rows.Scan(&task.UserID, &task.ID, &task.Title, &task.DueDate, &priority, &completed, &createdAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan task")
		}
		task.Priority = store.Priority(priority)
		task.Completed = completed != 0
		task.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (d *DB) CreateReminder(ctx context.Context, userID string, create store.CreateReminder) (*store.Reminder, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id, err := d.nextID(ctx, "reminder", userID)
	if err != nil {
		return nil, err
	}

	reminder := store.Reminder{
		ID:        id,
		UserID:    userID,
		Title:     create.Title,
		Date:      create.Date,
		Time:      create.Time,
		CreatedAt: time.Now(),
	}

	stmt := `
		INSERT INTO reminder (user_id, id, title, date, time, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := d.db.ExecContext(ctx, stmt,
		reminder.UserID,
		reminder.ID,
		reminder.Title,
		reminder.Date,
		reminder.Time,
		reminder.CreatedAt.Format(time.RFC3339Nano),
	); err != nil {
		return nil, errors.Wrap(err, "failed to create reminder")
	}
	return &reminder, nil
}

func (d *DB) ListReminders(ctx context.Context, userID string) ([]store.Reminder, error) {
	query := `
		SELECT user_id, id, title, date, time, created_at
		FROM reminder
		WHERE user_id = ?
		ORDER BY id ASC
	`
	rows, err := d.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reminders")
	}
	defer rows.Close()

	var reminders []store.Reminder
	for rows.Next() {
		var reminder store.Reminder
		var createdAt string
		if err := rows.Scan(&reminder.UserID, &reminder.ID, &reminder.Title, &reminder.Date, &reminder.Time, &createdAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan reminder")
		}
		reminder.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}
