// Package store opens the local SQLite database and brings its schema to
// the target version before anyone reads or writes. The *sql.DB it
// returns is the single process-wide handle shared by all repositories.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/bottlerun/bottlerun/internal/client/migrations"
	"github.com/bottlerun/bottlerun/internal/common"
)

// RunMigrations applies the embedded migration scripts forward until the
// stored schema version matches the target. Re-running on an up-to-date
// database applies nothing.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the database at dsn and migrates it.
// Any failure wraps common.ErrStorageOpen and is fatal to the caller:
// the app cannot run without its session store.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageOpen, err)
	}

	// Migration must complete before any read or write is issued, and
	// the single handle keeps store access serialized.
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: migration failed: %v", common.ErrStorageOpen, err)
	}
	return db, nil
}
