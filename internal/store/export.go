package store

import (
	"cmp"
	"context"
	"slices"

	"github.com/rcliao/cosmic-whispers/internal/model"
)

// ExportAll returns the full history, newest first.
func ExportAll(ctx context.Context, s HistoryStore) []model.AstrologyReading {
	return s.Load(ctx)
}

// Import merges readings from an export into the history. The merged history
// is ordered by creation time, newest first, and only the MaxHistory newest
// readings are kept. Readings already in the history (same id) and readings
// without sections are skipped. It returns how many imported readings were
// kept.
func Import(ctx context.Context, s HistoryStore, readings []model.AstrologyReading) int {
	merged := s.Load(ctx)
	seen := map[string]bool{}
	for _, r := range merged {
		seen[r.ID] = true
	}

	added := map[string]bool{}
	for _, r := range readings {
		if r.ID == "" || len(r.Sections) == 0 || seen[r.ID] {
			continue
		}
		merged = append(merged, r)
		seen[r.ID] = true
		added[r.ID] = true
	}
	if len(added) == 0 {
		return 0
	}

	slices.SortStableFunc(merged, func(a, b model.AstrologyReading) int {
		return cmp.Compare(b.Timestamp, a.Timestamp)
	})
	merged = capped(merged)
	s.Replace(ctx, merged)

	kept := 0
	for _, r := range merged {
		if added[r.ID] {
			kept++
		}
	}
	return kept
}
