package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rcliao/cosmic-whispers/internal/model"
)

// SQLiteStore implements HistoryStore as a single keyed record in SQLite.
type SQLiteStore struct {
	db  *sql.DB
	key string
	log *slog.Logger
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string, log *slog.Logger) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if log == nil {
		log = slog.Default()
	}
	s := &SQLiteStore{
		db:  db,
		key: HistoryKey,
		log: log.With("component", "history", "db", dbPath),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Load(ctx context.Context) []model.AstrologyReading {
	history, err := s.read(ctx, s.db)
	if err != nil {
		s.log.WarnContext(ctx, "failed to retrieve reading history", "error", err)
		return []model.AstrologyReading{}
	}
	return history
}

func (s *SQLiteStore) Append(ctx context.Context, r model.AstrologyReading) {
	if err := s.append(ctx, r); err != nil {
		s.log.ErrorContext(ctx, "failed to save reading to history", "id", r.ID, "error", err)
	}
}

func (s *SQLiteStore) append(ctx context.Context, r model.AstrologyReading) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	history, err := s.read(ctx, tx)
	if err != nil {
		s.log.WarnContext(ctx, "discarding unreadable history", "error", err)
		history = nil
	}

	if err := s.write(ctx, tx, prepend(history, r)); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) Replace(ctx context.Context, history []model.AstrologyReading) {
	if err := s.write(ctx, s.db, capped(history)); err != nil {
		s.log.ErrorContext(ctx, "failed to replace reading history", "readings", len(history), "error", err)
	}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *SQLiteStore) write(ctx context.Context, e execer, history []model.AstrologyReading) error {
	b, err := encodeHistory(history)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	_, err = e.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, string(b), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// read returns the persisted history. A missing record is an empty history.
func (s *SQLiteStore) read(ctx context.Context, q queryer) ([]model.AstrologyReading, error) {
	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return []model.AstrologyReading{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	history, err := decodeHistory([]byte(value))
	if err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return history, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
