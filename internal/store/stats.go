package store

import (
	"context"
	"os"
	"time"

	"github.com/rcliao/cosmic-whispers/internal/model"
)

// Stats holds history statistics.
type Stats struct {
	DBPath      string         `json:"db_path,omitempty"`
	DBSizeBytes int64          `json:"db_size_bytes,omitempty"`
	Readings    int            `json:"readings"`
	Capacity    int            `json:"capacity"`
	Newest      *time.Time     `json:"newest,omitempty"`
	Oldest      *time.Time     `json:"oldest,omitempty"`
	ByType      []TypeStats    `json:"by_type"`
	BySign      map[string]int `json:"by_sign,omitempty"`
}

// TypeStats holds per reading type counts.
type TypeStats struct {
	Type  model.ReadingType `json:"type"`
	Count int               `json:"count"`
}

// ComputeStats summarizes a history. signOf resolves the sign of a reading's
// birth details; it may be nil to skip the per-sign breakdown.
func ComputeStats(ctx context.Context, s HistoryStore, dbPath string, signOf func(model.UserDetails) string) *Stats {
	st := &Stats{DBPath: dbPath, Capacity: MaxHistory}

	if dbPath != "" {
		if info, err := os.Stat(dbPath); err == nil {
			st.DBSizeBytes = info.Size()
		}
	}

	history := s.Load(ctx)
	st.Readings = len(history)
	if len(history) > 0 {
		newest, oldest := history[0].Timestamp, history[0].Timestamp
		for _, r := range history[1:] {
			newest = max(newest, r.Timestamp)
			oldest = min(oldest, r.Timestamp)
		}
		n, o := time.UnixMilli(newest), time.UnixMilli(oldest)
		st.Newest, st.Oldest = &n, &o
	}

	counts := map[model.ReadingType]int{}
	var order []model.ReadingType
	for _, r := range history {
		if counts[r.UserDetails.ReadingType] == 0 {
			order = append(order, r.UserDetails.ReadingType)
		}
		counts[r.UserDetails.ReadingType]++
		if signOf != nil {
			if st.BySign == nil {
				st.BySign = map[string]int{}
			}
			st.BySign[signOf(r.UserDetails)]++
		}
	}
	for _, t := range order {
		st.ByType = append(st.ByType, TypeStats{Type: t, Count: counts[t]})
	}

	return st
}
