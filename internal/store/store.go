// Package store provides the reading history interface and its SQLite and
// in-memory implementations.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rcliao/cosmic-whispers/internal/model"
)

// MaxHistory is the number of readings kept, newest first.
const MaxHistory = 10

// HistoryKey names the persisted record holding the history.
const HistoryKey = "cosmicWhispersHistory"

// HistoryStore persists generated readings across sessions. It is a
// best-effort cache: storage failures are logged, never returned.
type HistoryStore interface {
	// Load returns the history, newest first. Missing or corrupt state
	// yields an empty history.
	Load(ctx context.Context) []model.AstrologyReading

	// Append inserts r at the front, keeps the first MaxHistory entries and
	// persists the result as one value.
	Append(ctx context.Context, r model.AstrologyReading)

	// Replace persists history as the whole value, keeping the first
	// MaxHistory entries. It is used by Import, which merges by creation time.
	Replace(ctx context.Context, history []model.AstrologyReading)

	// Close releases the underlying storage.
	Close() error
}

// Find returns the reading with the given id.
func Find(history []model.AstrologyReading, id string) (model.AstrologyReading, bool) {
	for _, r := range history {
		if r.ID == id {
			return r, true
		}
	}
	return model.AstrologyReading{}, false
}

// prepend returns a new slice with r in front of history, capped at MaxHistory.
func prepend(history []model.AstrologyReading, r model.AstrologyReading) []model.AstrologyReading {
	out := make([]model.AstrologyReading, 0, min(len(history)+1, MaxHistory))
	out = append(out, r)
	for _, h := range history {
		if len(out) == MaxHistory {
			break
		}
		out = append(out, h)
	}
	return out
}

// capped returns at most the first MaxHistory entries of history.
func capped(history []model.AstrologyReading) []model.AstrologyReading {
	if len(history) > MaxHistory {
		return history[:MaxHistory]
	}
	return history
}

func encodeHistory(history []model.AstrologyReading) ([]byte, error) {
	if history == nil {
		history = []model.AstrologyReading{}
	}
	return json.Marshal(history)
}

// decodeHistory parses a persisted history value. Entries without an id or
// sections make the whole value invalid.
func decodeHistory(b []byte) ([]model.AstrologyReading, error) {
	var history []model.AstrologyReading
	if err := json.Unmarshal(b, &history); err != nil {
		return nil, err
	}
	for i, r := range history {
		if r.ID == "" || len(r.Sections) == 0 {
			return nil, fmt.Errorf("entry %d: missing id or sections", i)
		}
	}
	return capped(history), nil
}
