// Package model defines the core reading data types.
package model

import (
	"fmt"
	"strings"
	"time"
)

// ReadingType selects which section template set a reading uses.
type ReadingType string

const (
	ReadingQuick         ReadingType = "quick"
	ReadingFull          ReadingType = "full"
	ReadingDeepDive      ReadingType = "deep-dive"
	ReadingCompatibility ReadingType = "compatibility"
)

// ValidReadingTypes are the reading types offered to the user.
var ValidReadingTypes = map[ReadingType]bool{
	ReadingQuick:         true,
	ReadingFull:          true,
	ReadingDeepDive:      true,
	ReadingCompatibility: true,
}

var readingLabels = map[ReadingType]string{
	ReadingQuick:         "Quick Glimpse",
	ReadingFull:          "Full Chart Reading",
	ReadingDeepDive:      "Cosmic Deep Dive",
	ReadingCompatibility: "Compatibility Reading",
}

// Label returns the display name of the reading type.
func (t ReadingType) Label() string {
	if l, ok := readingLabels[t]; ok {
		return l
	}
	return string(t)
}

// ParseReadingType accepts a reading type tag, case-insensitively.
func ParseReadingType(s string) (ReadingType, error) {
	t := ReadingType(strings.ToLower(strings.TrimSpace(s)))
	if !ValidReadingTypes[t] {
		return "", fmt.Errorf("invalid reading type %q (valid: quick, full, deep-dive, compatibility)", s)
	}
	return t, nil
}

// BirthTimeLayout is the wall-clock layout of UserDetails.BirthTime.
const BirthTimeLayout = "15:04"

// BirthDateLayout is the calendar layout accepted for birth dates.
const BirthDateLayout = "2006-01-02"

// UserDetails holds the birth details a reading is generated from.
type UserDetails struct {
	BirthDate     *time.Time  `json:"birth_date"`
	BirthTime     string      `json:"birth_time"`
	BirthLocation string      `json:"birth_location"`
	ReadingType   ReadingType `json:"reading_type"`
}

// Missing returns the names of the required fields that are absent.
func (d UserDetails) Missing() []string {
	var missing []string
	if d.BirthDate == nil {
		missing = append(missing, "birth_date")
	}
	if strings.TrimSpace(d.BirthTime) == "" {
		missing = append(missing, "birth_time")
	}
	if strings.TrimSpace(d.BirthLocation) == "" {
		missing = append(missing, "birth_location")
	}
	if d.ReadingType == "" {
		missing = append(missing, "reading_type")
	}
	return missing
}

// ParseBirthDate parses a YYYY-MM-DD date in the local time zone.
func ParseBirthDate(s string) (*time.Time, error) {
	t, err := time.ParseInLocation(BirthDateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid birth date %q (use YYYY-MM-DD)", s)
	}
	return &t, nil
}

// ReadingSection is a titled block of text within a reading.
type ReadingSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// AstrologyReading is one generated reading. It is not modified after creation.
type AstrologyReading struct {
	ID          string           `json:"id"`
	Timestamp   int64            `json:"timestamp"` // epoch milliseconds
	UserDetails UserDetails      `json:"user_details"`
	Sections    []ReadingSection `json:"sections"`
}

// CreatedAt returns the reading timestamp as a time.
func (r AstrologyReading) CreatedAt() time.Time {
	return time.UnixMilli(r.Timestamp)
}
