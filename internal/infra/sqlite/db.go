package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open opens (or creates) the SQLite database at path. WAL mode and a busy
// timeout avoid "database is locked" errors while whatsmeow shares the file.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("open: empty db path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("open: create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open: ping: %w", err)
	}
	return db, nil
}

type tableInitializer interface {
	InitTable(ctx context.Context) error
}

// Migrate creates every table used by the repositories. It is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	tables := []tableInitializer{
		NewProfileRepository(db),
		NewRecordRepository(db),
		NewStreakRepository(db),
		NewSettingsRepository(db),
	}
	for _, t := range tables {
		if err := t.InitTable(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
