package model

import "strings"

// Section groups the meetings of one enrollable offering of a course.
// All meetings share Course and ID.
type Section struct {
	Course   string    `json:"course"`
	ID       SectionID `json:"id"`
	Meetings []Meeting `json:"meetings"`
}

// Enrolled returns the number of enrolled students. Counts are per section,
// so the first meeting is authoritative.
func (s Section) Enrolled() int {
	if len(s.Meetings) == 0 {
		return 0
	}
	return s.Meetings[0].Enrolled
}

// Capacity returns the section capacity.
func (s Section) Capacity() int {
	if len(s.Meetings) == 0 {
		return 0
	}
	return s.Meetings[0].Capacity
}

// Occupancy returns enrolled/capacity*100; ok is false for zero capacity.
func (s Section) Occupancy() (float64, bool) {
	if len(s.Meetings) == 0 {
		return 0, false
	}
	return s.Meetings[0].Occupancy()
}

// Combination is one complete weekly schedule: exactly one section per
// requested course, in request order.
type Combination struct {
	Sections []Section `json:"sections"`
}

// Section returns the section chosen for course.
func (c Combination) Section(course string) (Section, bool) {
	for _, s := range c.Sections {
		if s.Course == course {
			return s, true
		}
	}
	return Section{}, false
}

// Meetings flattens the meetings of every chosen section.
func (c Combination) Meetings() []Meeting {
	var res []Meeting
	for _, s := range c.Sections {
		res = append(res, s.Meetings...)
	}
	return res
}

// Key returns a compact "course:section|..." identifier, handy in logs and tests.
func (c Combination) Key() string {
	parts := make([]string, len(c.Sections))
	for i, s := range c.Sections {
		parts[i] = s.Course + ":" + string(s.ID)
	}
	return strings.Join(parts, "|")
}
