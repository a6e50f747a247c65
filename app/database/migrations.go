package database

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// ErrDirtyHistory means an earlier migration of the history database was
// interrupted. The file has to be repaired or removed by hand.
var ErrDirtyHistory = errors.New("history database schema is dirty")

// SchemaState describes the history schema before and after RunMigrations.
type SchemaState struct {
	Previous uint // 0 for a fresh database
	Version  uint
}

func (s SchemaState) Upgraded() bool {
	return s.Version != s.Previous
}

// RunMigrations brings the run history schema up to date.
func RunMigrations(db *DB) (SchemaState, error) {
	var state SchemaState

	driver, err := sqlite.WithInstance(db.DB, &sqlite.Config{})
	if err != nil {
		return state, fmt.Errorf("failed to open history schema: %w", err)
	}

	source, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return state, fmt.Errorf("failed to load history migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return state, fmt.Errorf("failed to prepare history migrations: %w", err)
	}

	previous, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		previous = 0
	case err != nil:
		return state, fmt.Errorf("failed to read history schema version: %w", err)
	case dirty:
		return state, fmt.Errorf("%w at version %d", ErrDirtyHistory, previous)
	}
	state.Previous = previous
	state.Version = previous

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Debug("History schema is up to date", "version", previous)
			return state, nil
		}
		return state, fmt.Errorf("failed to migrate history schema from version %d: %w", previous, err)
	}

	version, _, err := m.Version()
	if err != nil {
		return state, fmt.Errorf("failed to read history schema version: %w", err)
	}
	state.Version = version

	slog.Info("History schema migrated", "from", previous, "to", version)
	return state, nil
}
