package appointment

import (
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time in minutes since midnight.
type TimeOfDay int

const MinutesPerDay TimeOfDay = 24 * 60

var timeOfDayLayouts = []string{"15:04", "15:04:05"}

// ParseTimeOfDay accepts "HH:mm" (and "HH:mm:ss" as stored by Postgres time columns).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeOfDayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay(t.Hour()*60 + t.Minute()), nil
		}
	}
	return 0, ErrInvalidTimeOfDay
}

// MustTimeOfDay panics on malformed input. Only for constants and tests.
func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(fmt.Sprintf("invalid time of day %q", s))
	}
	return t
}

func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

func (t TimeOfDay) Minutes() int { return int(t) }

func (t TimeOfDay) Add(minutes int) TimeOfDay { return t + TimeOfDay(minutes) }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// On places t on the calendar day of date, in date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, int(t)/60, int(t)%60, 0, 0, date.Location())
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	v, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// DateOf truncates t to midnight of its calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
