// Package zodiac maps calendar dates to tropical zodiac signs.
package zodiac

import "time"

// Seeker is the label used when no birth date is known.
const Seeker = "Seeker"

// window is the first (month, day) a sign starts on.
type window struct {
	sign  string
	month time.Month
	day   int
}

// starts lists sign windows in calendar order. Each sign runs until the day
// before the next one starts; Capricorn wraps over the new year.
var starts = []window{
	{"Capricorn", time.January, 1},
	{"Aquarius", time.January, 20},
	{"Pisces", time.February, 19},
	{"Aries", time.March, 21},
	{"Taurus", time.April, 20},
	{"Gemini", time.May, 21},
	{"Cancer", time.June, 21},
	{"Leo", time.July, 23},
	{"Virgo", time.August, 23},
	{"Libra", time.September, 23},
	{"Scorpio", time.October, 23},
	{"Sagittarius", time.November, 22},
	{"Capricorn", time.December, 22},
}

// Signs are the twelve sign labels in zodiac order, starting at Aries.
var Signs = []string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

var traits = map[string]string{
	"Aries":       "fiery independence and pioneering spirit",
	"Taurus":      "grounded determination and sensual appreciation",
	"Gemini":      "curious intellect and adaptable communication",
	"Cancer":      "nurturing sensitivity and emotional depth",
	"Leo":         "radiant creativity and generous leadership",
	"Virgo":       "analytical precision and practical service",
	"Libra":       "harmonious balance and diplomatic grace",
	"Scorpio":     "intense passion and transformative power",
	"Sagittarius": "expansive vision and philosophical wisdom",
	"Capricorn":   "disciplined ambition and patient persistence",
	"Aquarius":    "innovative brilliance and humanitarian vision",
	"Pisces":      "compassionate empathy and mystical intuition",
	Seeker:        "unique cosmic blueprint and spiritual potential",
}

// Resolve returns the sign for date, or Seeker when date is nil.
// Month and day are read in the date's own location.
func Resolve(date *time.Time) string {
	if date == nil {
		return Seeker
	}
	return ForMonthDay(date.Month(), date.Day())
}

// ForMonthDay returns the sign whose window contains (month, day).
func ForMonthDay(month time.Month, day int) string {
	sign := starts[0].sign
	for _, w := range starts {
		if month > w.month || (month == w.month && day >= w.day) {
			sign = w.sign
			continue
		}
		break
	}
	return sign
}

// Trait returns the descriptive phrase for a sign label. Unknown labels get
// the Seeker phrase.
func Trait(sign string) string {
	if t, ok := traits[sign]; ok {
		return t
	}
	return traits[Seeker]
}
