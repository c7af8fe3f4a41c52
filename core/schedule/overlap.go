package schedule

import "github.com/kilianp07/schedgen/core/model"

// ToMinutes converts a time of day into minutes since midnight.
func ToMinutes(t model.TimeOfDay) int {
	return t.Hour*60 + t.Minute
}

// Overlaps reports whether two meetings share a weekday and their intervals
// intersect. Intervals are half-open: a meeting ending at 10:00 does not
// overlap one starting at 10:00.
func Overlaps(a, b model.Meeting) bool {
	if a.Day != b.Day {
		return false
	}
	return max(ToMinutes(a.Start), ToMinutes(b.Start)) < min(ToMinutes(a.End), ToMinutes(b.End))
}

// Conflicts reports whether any meeting of a overlaps any meeting of b.
// Meetings of the same section are never compared with each other.
func Conflicts(a, b model.Section) bool {
	for _, ma := range a.Meetings {
		for _, mb := range b.Meetings {
			if Overlaps(ma, mb) {
				return true
			}
		}
	}
	return false
}

// Valid reports whether no two sections of c conflict.
func Valid(c model.Combination) bool {
	for i := range c.Sections {
		for j := i + 1; j < len(c.Sections); j++ {
			if Conflicts(c.Sections[i], c.Sections[j]) {
				return false
			}
		}
	}
	return true
}
