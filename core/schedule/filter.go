package schedule

import (
	"strings"

	"github.com/kilianp07/schedgen/core/model"
)

// MeetingFilter decides whether a meeting is acceptable. Filters run before
// grouping; a section is dropped as a whole when any of its meetings is
// rejected.
type MeetingFilter interface {
	Keep(m model.Meeting) bool
}

// CourseFilter keeps meetings of the listed courses.
type CourseFilter map[string]bool

// NewCourseFilter builds a CourseFilter from course names.
func NewCourseFilter(courses []string) CourseFilter {
	f := make(CourseFilter, len(courses))
	for _, c := range courses {
		f[c] = true
	}
	return f
}

func (f CourseFilter) Keep(m model.Meeting) bool { return f[m.Course] }

// CapacityFilter rejects sections without a usable capacity and, unless
// IncludeFull is set, sections with no seat left.
type CapacityFilter struct {
	IncludeFull bool
}

func (f CapacityFilter) Keep(m model.Meeting) bool {
	if m.Capacity <= 0 {
		return false
	}
	return f.IncludeFull || m.Enrolled < m.Capacity
}

// CampusFilter matches room labels against the campus rules: south rooms
// start with SouthPrefix, Luque rooms contain LuqueMarker and central rooms
// match neither.
type CampusFilter struct {
	Campus      model.Campus
	SouthPrefix string
	LuqueMarker string
}

func (f CampusFilter) Keep(m model.Meeting) bool {
	south := f.SouthPrefix != "" && strings.HasPrefix(m.Location, f.SouthPrefix)
	luque := f.LuqueMarker != "" && strings.Contains(m.Location, f.LuqueMarker)
	switch f.Campus {
	case model.CampusSouth:
		return south
	case model.CampusLuque:
		return luque
	case model.CampusCentral:
		return !south && !luque
	default:
		return true
	}
}

// SelectMeetings applies the filters with section atomicity: if any meeting
// of a (course, section) is rejected, every meeting of that section is
// removed. Source order is preserved.
func SelectMeetings(meetings []model.Meeting, filters ...MeetingFilter) []model.Meeting {
	rejected := make(map[sectionKey]bool)
	for _, m := range meetings {
		for _, f := range filters {
			if !f.Keep(m) {
				rejected[sectionKey{course: m.Course, id: m.Section}] = true
				break
			}
		}
	}
	res := make([]model.Meeting, 0, len(meetings))
	for _, m := range meetings {
		if rejected[sectionKey{course: m.Course, id: m.Section}] {
			continue
		}
		res = append(res, m)
	}
	return res
}

// Bounds is an inclusive daytime window in minutes since midnight.
type Bounds struct {
	Start int
	End   int
}

// Contains reports whether minute lies within the bounds, both ends included.
func (b Bounds) Contains(minute int) bool { return minute >= b.Start && minute <= b.End }

// DefaultWindows are the presets of the offering forms.
var DefaultWindows = map[model.Window]Bounds{
	model.WindowMorning: {Start: 6 * 60, End: 14 * 60},
	model.WindowEvening: {Start: 18 * 60, End: 22 * 60},
	model.WindowMixed:   {Start: 6 * 60, End: 22 * 60},
}

// FitsWindow reports whether every meeting of c starts and ends inside b.
func FitsWindow(c model.Combination, b Bounds) bool {
	for _, s := range c.Sections {
		for _, m := range s.Meetings {
			if !b.Contains(ToMinutes(m.Start)) || !b.Contains(ToMinutes(m.End)) {
				return false
			}
		}
	}
	return true
}

// FilterWindow keeps the combinations that fit b, preserving order.
func FilterWindow(combos []model.Combination, b Bounds) []model.Combination {
	res := make([]model.Combination, 0, len(combos))
	for _, c := range combos {
		if FitsWindow(c, b) {
			res = append(res, c)
		}
	}
	return res
}
