package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TimeOfDay is a wall-clock time without date, minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// At returns the TimeOfDay for hour:minute. It does not validate.
func At(hour, minute int) TimeOfDay { return TimeOfDay{Hour: hour, Minute: minute} }

// FromMinutes converts minutes since midnight back to a TimeOfDay.
func FromMinutes(m int) TimeOfDay { return TimeOfDay{Hour: m / 60, Minute: m % 60} }

// Minutes returns the number of minutes since midnight.
func (t TimeOfDay) Minutes() int { return t.Hour*60 + t.Minute }

// Valid reports whether t is inside a single day.
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour < 24 && t.Minute >= 0 && t.Minute < 60
}

func (t TimeOfDay) String() string { return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute) }

// ParseTimeOfDay parses "H:MM", "HH:MM" and "HH:MM:SS", optionally followed
// by an AM/PM marker ("9:00 AM"). Spreadsheets that store times as a
// fraction of a day ("0.375") are accepted as well; the value is rounded to
// the nearest minute.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TimeOfDay{}, fmt.Errorf("empty time")
	}
	if clock, pm, ok := cutMeridiem(s); ok {
		t, err := ParseTimeOfDay(clock)
		if err != nil || !strings.Contains(clock, ":") || t.Hour < 1 || t.Hour > 12 {
			return TimeOfDay{}, fmt.Errorf("invalid time %q", s)
		}
		t.Hour %= 12
		if pm {
			t.Hour += 12
		}
		return t, nil
	}
	if !strings.Contains(s, ":") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f < 0 || f >= 1 {
			return TimeOfDay{}, fmt.Errorf("invalid time %q", s)
		}
		t := FromMinutes(int(math.Round(f * 24 * 60)))
		if !t.Valid() {
			return TimeOfDay{}, fmt.Errorf("time out of range %q", s)
		}
		return t, nil
	}
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return TimeOfDay{}, fmt.Errorf("invalid time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid minute in %q", s)
	}
	if len(parts) == 3 {
		if _, err := strconv.Atoi(parts[2]); err != nil {
			return TimeOfDay{}, fmt.Errorf("invalid second in %q", s)
		}
	}
	t := TimeOfDay{Hour: h, Minute: m}
	if !t.Valid() {
		return TimeOfDay{}, fmt.Errorf("time out of range %q", s)
	}
	return t, nil
}

func cutMeridiem(s string) (clock string, pm, ok bool) {
	l := strings.ToLower(s)
	for _, suffix := range []string{"a.m.", "am", "p.m.", "pm"} {
		if strings.HasSuffix(l, suffix) {
			return strings.TrimSpace(s[:len(s)-len(suffix)]), suffix[0] == 'p', true
		}
	}
	return s, false, false
}

// MarshalText implements encoding.TextMarshaler.
func (t TimeOfDay) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(b []byte) error {
	v, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
