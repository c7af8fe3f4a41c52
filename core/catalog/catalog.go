// Package catalog summarises an offering: the list of courses, a per-section
// overview and occupancy statistics per course.
package catalog

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/schedgen/core/model"
	"github.com/kilianp07/schedgen/core/schedule"
)

// Catalog indexes the meetings of an offering.
type Catalog struct {
	meetings []model.Meeting
	sections []model.Section
	courses  []string
}

// New builds a catalog from the long-form meetings.
func New(meetings []model.Meeting) *Catalog {
	sections := schedule.Group(meetings)
	seen := make(map[string]bool)
	var courses []string
	for _, s := range sections {
		if !seen[s.Course] {
			seen[s.Course] = true
			courses = append(courses, s.Course)
		}
	}
	sort.Strings(courses)
	return &Catalog{meetings: meetings, sections: sections, courses: courses}
}

// Meetings returns the indexed meetings.
func (c *Catalog) Meetings() []model.Meeting { return c.meetings }

// Courses returns the distinct course names in sorted order.
func (c *Catalog) Courses() []string { return c.courses }

// Has reports whether course is offered.
func (c *Catalog) Has(course string) bool {
	i := sort.SearchStrings(c.courses, course)
	return i < len(c.courses) && c.courses[i] == course
}

// Search returns the courses whose name contains query, ignoring case and
// accents ("calculo" matches "Cálculo"). An empty query returns every course.
func (c *Catalog) Search(query string) []string {
	q := fold(query)
	if q == "" {
		return c.courses
	}
	var res []string
	for _, name := range c.courses {
		if strings.Contains(fold(name), q) {
			res = append(res, name)
		}
	}
	return res
}

func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// SectionSummary is the overview line of one section.
type SectionSummary struct {
	Course    string          `json:"course"`
	Section   model.SectionID `json:"section"`
	Days      string          `json:"days"`
	Start     model.TimeOfDay `json:"start"`
	End       model.TimeOfDay `json:"end"`
	Enrolled  int             `json:"enrolled"`
	Capacity  int             `json:"capacity"`
	Occupancy float64         `json:"occupancy"`
}

// Summary returns one line per section: its weekdays in calendar order, the
// earliest start, the latest end and the occupancy.
func (c *Catalog) Summary() []SectionSummary {
	res := make([]SectionSummary, 0, len(c.sections))
	for _, s := range c.sections {
		days := make(map[model.Weekday]bool)
		first, last := s.Meetings[0].Start, s.Meetings[0].End
		for _, m := range s.Meetings {
			days[m.Day] = true
			if m.Start.Minutes() < first.Minutes() {
				first = m.Start
			}
			if m.End.Minutes() > last.Minutes() {
				last = m.End
			}
		}
		var names []string
		for _, d := range model.Weekdays {
			if days[d] {
				names = append(names, d.String())
			}
		}
		occ, _ := s.Occupancy()
		res = append(res, SectionSummary{
			Course:    s.Course,
			Section:   s.ID,
			Days:      strings.Join(names, ", "),
			Start:     first,
			End:       last,
			Enrolled:  s.Enrolled(),
			Capacity:  s.Capacity(),
			Occupancy: occ,
		})
	}
	return res
}

// CourseStats aggregates the sections of one course.
type CourseStats struct {
	Course          string  `json:"course"`
	Sections        int     `json:"sections"`
	OpenSections    int     `json:"open_sections"`
	MeanOccupancy   float64 `json:"mean_occupancy"`
	StdDevOccupancy float64 `json:"stddev_occupancy"`
}

// Stats returns occupancy statistics for every course, in course order.
// Sections without a usable capacity count towards Sections only.
func (c *Catalog) Stats() []CourseStats {
	byCourse := make(map[string][]model.Section)
	for _, s := range c.sections {
		byCourse[s.Course] = append(byCourse[s.Course], s)
	}
	res := make([]CourseStats, 0, len(c.courses))
	for _, course := range c.courses {
		st := CourseStats{Course: course, Sections: len(byCourse[course])}
		var occ []float64
		for _, s := range byCourse[course] {
			pct, ok := s.Occupancy()
			if !ok {
				continue
			}
			occ = append(occ, pct)
			if s.Enrolled() < s.Capacity() {
				st.OpenSections++
			}
		}
		if len(occ) > 0 {
			st.MeanOccupancy = stat.Mean(occ, nil)
		}
		if len(occ) > 1 {
			st.StdDevOccupancy = stat.StdDev(occ, nil)
		}
		res = append(res, st)
	}
	return res
}
