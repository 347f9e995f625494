package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rcliao/cosmic-whispers/internal/model"
)

// MemoryStore keeps the encoded history in process memory. It is used for
// ephemeral sessions and tests, and stores the same encoded value the
// SQLite store does.
type MemoryStore struct {
	mu    sync.Mutex
	value []byte
	log   *slog.Logger
}

// NewMemoryStore constructs an empty in-memory history.
func NewMemoryStore(log *slog.Logger) *MemoryStore {
	if log == nil {
		log = slog.Default()
	}
	return &MemoryStore{log: log.With("component", "history")}
}

func (s *MemoryStore) Load(ctx context.Context) []model.AstrologyReading {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *MemoryStore) loadLocked(ctx context.Context) []model.AstrologyReading {
	if s.value == nil {
		return []model.AstrologyReading{}
	}
	history, err := decodeHistory(s.value)
	if err != nil {
		s.log.WarnContext(ctx, "failed to retrieve reading history", "error", err)
		return []model.AstrologyReading{}
	}
	return history
}

func (s *MemoryStore) Append(ctx context.Context, r model.AstrologyReading) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := encodeHistory(prepend(s.loadLocked(ctx), r))
	if err != nil {
		s.log.ErrorContext(ctx, "failed to save reading to history", "id", r.ID, "error", err)
		return
	}
	s.value = b
}

func (s *MemoryStore) Replace(ctx context.Context, history []model.AstrologyReading) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := encodeHistory(capped(history))
	if err != nil {
		s.log.ErrorContext(ctx, "failed to replace reading history", "readings", len(history), "error", err)
		return
	}
	s.value = b
}

// SetRaw replaces the stored value verbatim.
func (s *MemoryStore) SetRaw(b []byte) {
	s.mu.Lock()
	s.value = append([]byte(nil), b...)
	s.mu.Unlock()
}

func (s *MemoryStore) Close() error { return nil }
