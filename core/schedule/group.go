package schedule

import (
	"sort"

	"github.com/kilianp07/schedgen/core/model"
)

type sectionKey struct {
	course string
	id     model.SectionID
}

// Group collects meetings into sections keyed strictly by (course, section
// ID). Meetings keep their source order inside a section; sections are
// ordered by course name, then by section ID ascending.
func Group(meetings []model.Meeting) []model.Section {
	index := make(map[sectionKey]int)
	var sections []model.Section
	for _, m := range meetings {
		k := sectionKey{course: m.Course, id: m.Section}
		i, ok := index[k]
		if !ok {
			i = len(sections)
			index[k] = i
			sections = append(sections, model.Section{Course: m.Course, ID: m.Section})
		}
		sections[i].Meetings = append(sections[i].Meetings, m)
	}
	sort.SliceStable(sections, func(i, j int) bool {
		if sections[i].Course != sections[j].Course {
			return sections[i].Course < sections[j].Course
		}
		return sections[i].ID.Less(sections[j].ID)
	})
	return sections
}

// GroupSections returns, for each course in order, its candidate sections.
// A course without meetings gets an empty slice rather than being dropped so
// callers can report which course has no candidates.
func GroupSections(courses []string, meetings []model.Meeting) [][]model.Section {
	byCourse := make(map[string][]model.Section, len(courses))
	for _, s := range Group(meetings) {
		byCourse[s.Course] = append(byCourse[s.Course], s)
	}
	res := make([][]model.Section, len(courses))
	for i, c := range courses {
		res[i] = byCourse[c]
		if res[i] == nil {
			res[i] = []model.Section{}
		}
	}
	return res
}
