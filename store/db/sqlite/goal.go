package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/mindwell-ai/mindwell/store"
)

func (d *DB) CreateGoal(ctx context.Context, userID string, create store.CreateGoal) (*store.Goal, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id, err := d.nextID(ctx, "goal", userID)
	if err != nil {
		return nil, err
	}

	goal := store.Goal{
		ID:          id,
		UserID:      userID,
		Title:       create.Title,
		Description: create.Description,
		Routine:     create.Routine,
		Frequency:   create.Frequency,
		Duration:    create.Duration,
		StartDate:   create.StartDate,
		Status:      store.GoalStatusPendingApproval,
		CreatedAt:   time.Now(),
	}

	stmt := `
		INSERT INTO goal (user_id, id, title, description, routine, frequency, duration, start_date, status, approved, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?)
	`
	if _, err := d.db.ExecContext(ctx, stmt,
		goal.UserID,
		goal.ID,
		goal.Title,
		goal.Description,
		goal.Routine,
		goal.Frequency,
		goal.Duration,
		goal.StartDate,
		string(goal.Status),
		goal.CreatedAt.Format(time.RFC3339Nano),
	); err != nil {
		return nil, errors.Wrap(err, "failed to create goal")
	}
	return &goal, nil
}

const goalColumns = `user_id, id, title, description, routine, frequency, duration, start_date, status, approved, created_at, approved_at, updated_at`

func scanGoal(scan func(dest ...any) error) (*store.Goal, error) {
	var goal store.Goal
	var status, createdAt string
	var approved int
	var approvedAt, updatedAt sql.NullString
	if err := scan(
		&goal.UserID, &goal.ID, &goal.Title, &goal.Description, &goal.Routine,
		&goal.Frequency, &goal.Duration, &goal.StartDate, &status, &approved,
		&createdAt, &approvedAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	goal.Status = store.GoalStatus(status)
	goal.Approved = approved != 0
	goal.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	if approvedAt.Valid {
		t, _ := time.Parse(time.RFC3339Nano, approvedAt.String)
		goal.ApprovedAt = &t
	}
	if updatedAt.Valid {
		t, _ := time.Parse(time.RFC3339Nano, updatedAt.String)
		goal.UpdatedAt = &t
	}
	return &goal, nil
}

func (d *DB) GetGoal(ctx context.Context, userID string, id int) (*store.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goal WHERE user_id = ? AND id = ?`
	goal, err := scanGoal(d.db.QueryRowContext(ctx, query, userID, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get goal")
	}
	return goal, nil
}

func (d *DB) ListGoals(ctx context.Context, userID string) ([]store.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goal WHERE user_id = ? ORDER BY id ASC`
	rows, err := d.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list goals")
	}
	defer rows.Close()

	var goals []store.Goal
	for rows.Next() {
		goal, err := scanGoal(rows.Scan)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan goal")
		}
		goals = append(goals, *goal)
	}
	return goals, rows.Err()
}

func (d *DB) ApproveGoal(ctx context.Context, userID string, id int) (*store.Goal, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	goal, err := d.GetGoal(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if goal.Approved {
		return goal, nil
	}

	now := time.Now()
	stmt := `UPDATE goal SET approved = 1, status = ?, approved_at = ? WHERE user_id = ? AND id = ?`
	if _, err := d.db.ExecContext(ctx, stmt,
		string(store.GoalStatusActive),
		now.Format(time.RFC3339Nano),
		userID, id,
	); err != nil {
		return nil, errors.Wrap(err, "failed to approve goal")
	}
	goal.Approved = true
	goal.Status = store.GoalStatusActive
	goal.ApprovedAt = &now
	return goal, nil
}

func (d *DB) UpdateGoalStatus(ctx context.Context, userID string, id int, status store.GoalStatus) (*store.Goal, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	goal, err := d.GetGoal(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stmt := `UPDATE goal SET status = ?, updated_at = ? WHERE user_id = ? AND id = ?`
	if _, err := d.db.ExecContext(ctx, stmt,
		string(status),
		now.Format(time.RFC3339Nano),
		userID, id,
	); err != nil {
		return nil, errors.Wrap(err, "failed to update goal status")
	}
	goal.Status = status
	goal.UpdatedAt = &now
	return goal, nil
}
