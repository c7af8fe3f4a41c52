package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SectionID identifies a section within a course. Offering sheets use
// integers ("Nº Clase") but any non-empty label is accepted.
type SectionID string

// Less orders section IDs numerically when both are integers and
// lexicographically otherwise. Integers sort before other labels.
func (id SectionID) Less(other SectionID) bool {
	a, aerr := strconv.Atoi(strings.TrimSpace(string(id)))
	b, berr := strconv.Atoi(strings.TrimSpace(string(other)))
	switch {
	case aerr == nil && berr == nil:
		return a < b
	case aerr == nil:
		return true
	case berr == nil:
		return false
	default:
		return id < other
	}
}

// Meeting is one weekly occurrence of a section: a weekday with a start and
// end time in a given room. Meetings are values and are never mutated once
// built by NewMeeting.
type Meeting struct {
	Course   string    `json:"course" yaml:"course" validate:"required"`
	Section  SectionID `json:"section" yaml:"section" validate:"required"`
	Day      Weekday   `json:"day" yaml:"day" validate:"gte=0,lte=5"`
	Start    TimeOfDay `json:"start" yaml:"start"`
	End      TimeOfDay `json:"end" yaml:"end"`
	Location string    `json:"location" yaml:"location"`
	Campus   string    `json:"campus" yaml:"campus"`
	Enrolled int       `json:"enrolled" yaml:"enrolled" validate:"gte=0"`
	Capacity int       `json:"capacity" yaml:"capacity" validate:"gte=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(meetingStructLevel, Meeting{})
	return v
}

func meetingStructLevel(sl validator.StructLevel) {
	m := sl.Current().Interface().(Meeting)
	if !m.Start.Valid() {
		sl.ReportError(m.Start, "Start", "Start", "timeofday", "")
	}
	if !m.End.Valid() {
		sl.ReportError(m.End, "End", "End", "timeofday", "")
	}
	if m.Start.Minutes() >= m.End.Minutes() {
		sl.ReportError(m.End, "End", "End", "gtstart", "")
	}
}

// NewMeeting validates m and returns it. Course and section must be set,
// counts must be non-negative and the meeting must start before it ends.
func NewMeeting(m Meeting) (Meeting, error) {
	m.Course = strings.TrimSpace(m.Course)
	m.Section = SectionID(strings.TrimSpace(string(m.Section)))
	if err := validate.Struct(m); err != nil {
		return Meeting{}, describeValidation("meeting", err)
	}
	return m, nil
}

// Validate checks the meeting invariants without normalising fields.
func (m Meeting) Validate() error {
	if err := validate.Struct(m); err != nil {
		return describeValidation("meeting", err)
	}
	return nil
}

// Duration returns the meeting length in minutes.
func (m Meeting) Duration() int { return m.End.Minutes() - m.Start.Minutes() }

// Occupancy returns enrolled/capacity as a percentage. ok is false when the
// capacity is not positive.
func (m Meeting) Occupancy() (pct float64, ok bool) {
	if m.Capacity <= 0 {
		return 0, false
	}
	return float64(m.Enrolled) / float64(m.Capacity) * 100, true
}

// Full reports whether no seat is left.
func (m Meeting) Full() bool { return m.Enrolled >= m.Capacity }

func describeValidation(kind string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s(%s)", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid %s: %s", kind, strings.Join(fields, ", "))
}
