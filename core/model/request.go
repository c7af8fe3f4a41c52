package model

import (
	"fmt"
	"strings"
)

// Window selects the daytime band every meeting must fit in.
type Window int

const (
	WindowMixed Window = iota
	WindowMorning
	WindowEvening
)

func (w Window) String() string {
	switch w {
	case WindowMorning:
		return "morning"
	case WindowEvening:
		return "evening"
	case WindowMixed:
		return "mixed"
	default:
		return "unknown"
	}
}

// ParseWindow accepts the English names and the Spanish labels used by
// the registration forms (mañana, noche, mixta).
func ParseWindow(s string) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "morning", "mañana", "manana":
		return WindowMorning, nil
	case "evening", "night", "noche":
		return WindowEvening, nil
	case "", "mixed", "mixta":
		return WindowMixed, nil
	default:
		return 0, fmt.Errorf("unknown window %q", s)
	}
}

// Campus selects which rooms are acceptable.
type Campus int

const (
	CampusAll Campus = iota
	CampusCentral
	CampusSouth
	CampusLuque
)

func (c Campus) String() string {
	switch c {
	case CampusAll:
		return "all"
	case CampusCentral:
		return "central"
	case CampusSouth:
		return "south"
	case CampusLuque:
		return "luque"
	default:
		return "unknown"
	}
}

// ParseCampus accepts the English names and the campus names of the source
// institution (Chapinero, Sur, Crisanto Luque).
func ParseCampus(s string) (Campus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "todas":
		return CampusAll, nil
	case "central", "chapinero":
		return CampusCentral, nil
	case "south", "sur":
		return CampusSouth, nil
	case "luque", "crisanto luque", "crisanto-luque":
		return CampusLuque, nil
	default:
		return 0, fmt.Errorf("unknown campus %q", s)
	}
}

// Request is a schedule generation request.
type Request struct {
	Courses []string `validate:"dive,required"`
	Window  Window   `validate:"gte=0,lte=2"`
	Campus  Campus   `validate:"gte=0,lte=3"`
}

// Normalize trims course names and drops blanks and duplicates while
// keeping the first-seen order.
func (r Request) Normalize() Request {
	seen := make(map[string]bool, len(r.Courses))
	out := make([]string, 0, len(r.Courses))
	for _, c := range r.Courses {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	r.Courses = out
	return r
}

// Validate checks that every course name is set and that the window and
// campus are known values.
func (r Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		return describeValidation("request", err)
	}
	return nil
}
