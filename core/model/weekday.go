package model

import (
	"fmt"
	"strings"
)

// Weekday identifies one of the six teaching days of the week.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// Weekdays lists the teaching days in calendar order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// String returns a human-readable representation of the weekday.
func (d Weekday) String() string {
	switch d {
	case Monday:
		return "Monday"
	case Tuesday:
		return "Tuesday"
	case Wednesday:
		return "Wednesday"
	case Thursday:
		return "Thursday"
	case Friday:
		return "Friday"
	case Saturday:
		return "Saturday"
	default:
		return "unknown"
	}
}

// Column returns the calendar column (0-5) used when rendering the day.
func (d Weekday) Column() int { return int(d) }

// Valid reports whether d is one of the six teaching days.
func (d Weekday) Valid() bool { return d >= Monday && d <= Saturday }

// ParseWeekday accepts English names, their three letter forms and the
// Spanish abbreviations used by the offering sheets (Lun, Mar, Mier, ...).
func ParseWeekday(s string) (Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monday", "mon", "lun", "lunes":
		return Monday, nil
	case "tuesday", "tue", "mar", "martes":
		return Tuesday, nil
	case "wednesday", "wed", "mie", "mier", "miércoles", "miercoles":
		return Wednesday, nil
	case "thursday", "thu", "jue", "jueves":
		return Thursday, nil
	case "friday", "fri", "vie", "vier", "viernes":
		return Friday, nil
	case "saturday", "sat", "sab", "sáb", "sábado", "sabado":
		return Saturday, nil
	default:
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Weekday) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid weekday %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Weekday) UnmarshalText(b []byte) error {
	w, err := ParseWeekday(string(b))
	if err != nil {
		return err
	}
	*d = w
	return nil
}
