// Package browser keeps the result set of one generation request and lets a
// caller walk it cyclically, projecting the current schedule into table rows
// and calendar blocks.
package browser

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/kilianp07/schedgen/core/model"
)

// ErrNoResults is returned by navigation on an empty session.
var ErrNoResults = errors.New("no combinations generated")

// Bucket is the occupancy colour class of a calendar block.
type Bucket string

const (
	BucketLow     Bucket = "low"
	BucketMedium  Bucket = "medium"
	BucketHigh    Bucket = "high"
	BucketUnknown Bucket = "unknown"
)

// BucketFor classifies an occupancy percentage: below 50 is low, up to and
// including 90 is medium, above 90 is high.
func BucketFor(pct float64) Bucket {
	switch {
	case pct < 50:
		return BucketLow
	case pct <= 90:
		return BucketMedium
	default:
		return BucketHigh
	}
}

// Row is the tabular projection of one meeting.
type Row struct {
	Course   string          `json:"course" yaml:"course"`
	Section  model.SectionID `json:"section" yaml:"section"`
	Day      model.Weekday   `json:"day" yaml:"day"`
	Start    model.TimeOfDay `json:"start" yaml:"start"`
	End      model.TimeOfDay `json:"end" yaml:"end"`
	Location string          `json:"location" yaml:"location"`
}

// Block is a calendar render record: a column per weekday, a vertical
// position and height in minutes.
type Block struct {
	Column    int     `json:"column"`
	Top       int     `json:"top"`
	Height    int     `json:"height"`
	Occupancy float64 `json:"occupancy"`
	Bucket    Bucket  `json:"bucket"`
	Label     string  `json:"label"`
}

// View is the display-ready current combination.
type View struct {
	Index       int               `json:"index"`
	Total       int               `json:"total"`
	Combination model.Combination `json:"combination"`
	Rows        []Row             `json:"rows"`
	Blocks      []Block           `json:"blocks"`
}

// Session owns a result set and its cursor. A session belongs to a single
// caller and is not safe for concurrent use.
type Session struct {
	id      string
	results []model.Combination
	cursor  int
}

// NewSession returns a session holding results with the cursor on the first.
func NewSession(results []model.Combination) *Session {
	return &Session{id: uuid.NewString(), results: results}
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// Len returns the number of combinations held.
func (s *Session) Len() int { return len(s.results) }

// Cursor returns the current index.
func (s *Session) Cursor() int { return s.cursor }

// Results returns the held combinations.
func (s *Session) Results() []model.Combination { return s.results }

// Replace swaps the whole result set and rewinds the cursor.
func (s *Session) Replace(results []model.Combination) {
	s.results = results
	s.cursor = 0
}

// Next moves to the following combination, wrapping after the last.
func (s *Session) Next() error {
	if len(s.results) == 0 {
		return ErrNoResults
	}
	s.cursor = (s.cursor + 1) % len(s.results)
	return nil
}

// Previous moves to the preceding combination, wrapping before the first.
func (s *Session) Previous() error {
	if len(s.results) == 0 {
		return ErrNoResults
	}
	s.cursor = (s.cursor - 1 + len(s.results)) % len(s.results)
	return nil
}

// Seek moves the cursor to i.
func (s *Session) Seek(i int) error {
	if len(s.results) == 0 {
		return ErrNoResults
	}
	if i < 0 || i >= len(s.results) {
		return fmt.Errorf("index %d out of range [0,%d)", i, len(s.results))
	}
	s.cursor = i
	return nil
}

// Current returns the combination under the cursor with its projections.
func (s *Session) Current() (View, error) {
	if len(s.results) == 0 {
		return View{}, ErrNoResults
	}
	c := s.results[s.cursor]
	return View{
		Index:       s.cursor,
		Total:       len(s.results),
		Combination: c,
		Rows:        Rows(c),
		Blocks:      Blocks(c),
	}, nil
}

// Rows projects c into one row per meeting ordered by weekday, start time
// and course.
func Rows(c model.Combination) []Row {
	var rows []Row
	for _, m := range c.Meetings() {
		rows = append(rows, Row{
			Course:   m.Course,
			Section:  m.Section,
			Day:      m.Day,
			Start:    m.Start,
			End:      m.End,
			Location: m.Location,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Day != rows[j].Day {
			return rows[i].Day < rows[j].Day
		}
		if rows[i].Start != rows[j].Start {
			return rows[i].Start.Minutes() < rows[j].Start.Minutes()
		}
		return rows[i].Course < rows[j].Course
	})
	return rows
}

// Blocks derives one calendar block per meeting of c.
func Blocks(c model.Combination) []Block {
	var blocks []Block
	for _, m := range c.Meetings() {
		b := Block{
			Column: m.Day.Column(),
			Top:    m.Start.Minutes(),
			Height: m.Duration(),
			Bucket: BucketUnknown,
			Label:  fmt.Sprintf("%s\nClass #%s\n%s - %s", m.Course, m.Section, m.Start, m.End),
		}
		if pct, ok := m.Occupancy(); ok {
			b.Occupancy = pct
			b.Bucket = BucketFor(pct)
		}
		blocks = append(blocks, b)
	}
	return blocks
}
