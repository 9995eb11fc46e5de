package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps Settings in a single-row table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the settings database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create settings directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
CREATE TABLE IF NOT EXISTS settings (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    dark_mode INTEGER NOT NULL DEFAULT 0,
    show_dot_files INTEGER NOT NULL DEFAULT 0,
    updated_at TEXT NOT NULL
);
`
	_, err := s.db.Exec(schema)
	return err
}

// Get returns the stored settings, or the defaults when the row does not exist.
func (s *SQLiteStore) Get(ctx context.Context) (Settings, error) {
	var dark, dot int
	err := s.db.QueryRowContext(ctx,
		`SELECT dark_mode, show_dot_files FROM settings WHERE id = 1`,
	).Scan(&dark, &dot)
	if errors.Is(err, sql.ErrNoRows) {
		return Settings{}, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return Settings{DarkMode: dark != 0, ShowDotFiles: dot != 0}, nil
}

// Save overwrites the stored settings.
func (s *SQLiteStore) Save(ctx context.Context, v Settings) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO settings (id, dark_mode, show_dot_files, updated_at)
VALUES (1, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    dark_mode = excluded.dark_mode,
    show_dot_files = excluded.show_dot_files,
    updated_at = excluded.updated_at`,
		boolToInt(v.DarkMode), boolToInt(v.ShowDotFiles), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
