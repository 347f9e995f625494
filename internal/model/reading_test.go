package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseReadingType(t *testing.T) {
	tests := []struct {
		in   string
		want ReadingType
		ok   bool
	}{
		{"quick", ReadingQuick, true},
		{"FULL", ReadingFull, true},
		{" deep-dive ", ReadingDeepDive, true},
		{"compatibility", ReadingCompatibility, true},
		{"tarot", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, err := ParseReadingType(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseReadingType(%q) err = %v, want ok=%v", tt.in, err, tt.ok)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseReadingType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLabel(t *testing.T) {
	if got := ReadingDeepDive.Label(); got != "Cosmic Deep Dive" {
		t.Errorf("expected Cosmic Deep Dive, got %q", got)
	}
	if got := ReadingType("custom").Label(); got != "custom" {
		t.Errorf("expected unknown type to label as itself, got %q", got)
	}
}

func TestMissing(t *testing.T) {
	if got := (UserDetails{}).Missing(); strings.Join(got, ",") != "birth_date,birth_time,birth_location,reading_type" {
		t.Errorf("unexpected missing fields: %v", got)
	}

	d, err := ParseBirthDate("1990-07-04")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	full := UserDetails{BirthDate: d, BirthTime: "12:00", BirthLocation: "  ", ReadingType: ReadingQuick}
	if got := full.Missing(); len(got) != 1 || got[0] != "birth_location" {
		t.Errorf("expected blank location to count as missing, got %v", got)
	}
}

func TestParseBirthDate(t *testing.T) {
	d, err := ParseBirthDate("2000-02-29")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Location() != time.Local || d.Month() != time.February || d.Day() != 29 {
		t.Errorf("unexpected date %v", d)
	}
	if _, err := ParseBirthDate("29/02/2000"); err == nil {
		t.Error("expected error for wrong layout")
	}
}

func TestReadingJSON(t *testing.T) {
	r := AstrologyReading{
		ID:        "r1",
		Timestamp: 1700000000123,
		Sections:  []ReadingSection{{Title: "Overall Energy", Content: "..."}},
	}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"user_details"`, `"birth_date":null`, `"timestamp":1700000000123`} {
		if !strings.Contains(string(b), key) {
			t.Errorf("expected %s in %s", key, b)
		}
	}
	if got := r.CreatedAt().UnixMilli(); got != r.Timestamp {
		t.Errorf("CreatedAt round trip: got %d", got)
	}
}
