// Package db selects a store driver based on the instance profile.
package db

import (
	"github.com/pkg/errors"

	"github.com/mindwell-ai/mindwell/internal/profile"
	"github.com/mindwell-ai/mindwell/store"
	"github.com/mindwell-ai/mindwell/store/db/memdb"
	"github.com/mindwell-ai/mindwell/store/db/sqlite"
)

// NewDBDriver creates a new driver based on the profile.
// The memory driver keeps state for the process lifetime only; sqlite
// persists across restarts.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	switch profile.Driver {
	case "", "memory":
		return memdb.New(), nil
	case "sqlite":
		return sqlite.NewDB(profile)
	default:
		return nil, errors.Errorf("unknown db driver %q", profile.Driver)
	}
}
