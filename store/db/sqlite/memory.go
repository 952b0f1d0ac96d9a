package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/mindwell-ai/mindwell/store"
)

// loadMemoryLocked reads and decodes the memory blob, returning the default
// empty shape when the row does not exist yet. Caller must hold d.mu when
// the result will be written back.
func (d *DB) loadMemory(ctx context.Context, userID string) (*store.Memory, error) {
	var payload string
	err := d.db.QueryRowContext(ctx, `SELECT payload FROM user_memory WHERE user_id = ?`, userID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return store.NewMemory(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load memory")
	}

	memory := store.NewMemory()
	if err := json.Unmarshal([]byte(payload), memory); err != nil {
		return nil, errors.Wrap(err, "failed to decode memory payload")
	}
	// Maps may come back nil after decoding an older payload.
	if memory.PersonalDetails == nil {
		memory.PersonalDetails = map[string]string{}
	}
	if memory.Preferences == nil {
		memory.Preferences = map[string]string{}
	}
	if memory.Extra == nil {
		memory.Extra = map[string]string{}
	}
	if memory.Therapeutic.Triggers == nil {
		memory.Therapeutic.Triggers = map[string]*store.TriggerHistory{}
	}
	return memory, nil
}

func (d *DB) LoadMemory(ctx context.Context, userID string) (*store.Memory, error) {
	return d.loadMemory(ctx, userID)
}

func (d *DB) UpdateMemory(ctx context.Context, userID string, mutate func(*store.Memory)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	memory, err := d.loadMemory(ctx, userID)
	if err != nil {
		return err
	}
	mutate(memory)

	payload, err := json.Marshal(memory)
	if err != nil {
		return errors.Wrap(err, "failed to encode memory payload")
	}

	stmt := `
		INSERT INTO user_memory (user_id, payload)
		VALUES (?, ?)
		ON CONFLICT (user_id) DO UPDATE SET payload = excluded.payload
	`
	if _, err := d.db.ExecContext(ctx, stmt, userID, string(payload)); err != nil {
		return errors.Wrap(err, "failed to save memory")
	}
	return nil
}
