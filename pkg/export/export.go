package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/schedgen/core/browser"
	"github.com/kilianp07/schedgen/core/catalog"
	"github.com/kilianp07/schedgen/core/model"
)

// Default calendar axis of the text grid, in hours. The axis widens to
// cover meetings outside it.
const (
	CalendarStartHour = 6
	CalendarEndHour   = 22
)

const weekdays = int(model.Saturday) + 1

var header = []string{"course", "section", "day", "start", "end", "location"}

func record(r browser.Row) []string {
	return []string{r.Course, string(r.Section), r.Day.String(), r.Start.String(), r.End.String(), r.Location}
}

// WriteJSON writes the schedule rows to w in JSON format.
func WriteJSON(w io.Writer, rows []browser.Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// WriteYAML writes the schedule rows to w as a YAML sequence.
func WriteYAML(w io.Writer, rows []browser.Row) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return err
	}
	return enc.Close()
}

// WriteCSV writes the schedule rows to w in CSV format with a header line.
func WriteCSV(w io.Writer, rows []browser.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(record(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable writes the rows as an aligned text table.
func WriteTable(w io.Writer, rows []browser.Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(header, "\t")))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(record(r), "\t"))
	}
	return tw.Flush()
}

// WriteCalendar draws the combination as a weekly grid: one column per
// weekday and one line per hour between CalendarStartHour and
// CalendarEndHour, extended to the earliest start and latest end of the
// combination. A cell names the section occupying any part of the hour.
func WriteCalendar(w io.Writer, c model.Combination) error {
	first, last := calendarHours(c.Meetings())
	grid := make([][weekdays][]string, last-first)
	for _, m := range c.Meetings() {
		for h := first; h < last; h++ {
			if m.Start.Minutes() < (h+1)*60 && m.End.Minutes() > h*60 {
				cell := &grid[h-first][m.Day.Column()]
				*cell = append(*cell, fmt.Sprintf("%s #%s", m.Course, m.Section))
			}
		}
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	cols := make([]string, 0, len(model.Weekdays)+1)
	cols = append(cols, "")
	for _, d := range model.Weekdays {
		cols = append(cols, d.String())
	}
	fmt.Fprintln(tw, strings.Join(cols, "\t"))
	for i, line := range grid {
		cols = cols[:0]
		cols = append(cols, model.At(first+i, 0).String())
		for _, cell := range line {
			if len(cell) == 0 {
				cols = append(cols, ".")
				continue
			}
			cols = append(cols, strings.Join(cell, " / "))
		}
		fmt.Fprintln(tw, strings.Join(cols, "\t"))
	}
	return tw.Flush()
}

func calendarHours(meetings []model.Meeting) (first, last int) {
	first, last = CalendarStartHour, CalendarEndHour
	for _, m := range meetings {
		first = min(first, m.Start.Hour)
		last = max(last, (m.End.Minutes()+59)/60)
	}
	return first, last
}

// WriteSummary writes one aligned line per offered section.
func WriteSummary(w io.Writer, sections []catalog.SectionSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COURSE\tSECTION\tDAYS\tSTART\tEND\tSEATS\tOCCUPANCY")
	for _, s := range sections {
		occ := "-"
		if s.Capacity > 0 {
			occ = fmt.Sprintf("%.0f%%", s.Occupancy)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d/%d\t%s\n", s.Course, s.Section, s.Days, s.Start, s.End, s.Enrolled, s.Capacity, occ)
	}
	return tw.Flush()
}

// WriteStats writes the occupancy statistics of every course.
func WriteStats(w io.Writer, stats []catalog.CourseStats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COURSE\tSECTIONS\tOPEN\tMEAN\tSTDDEV")
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f%%\t%.1f\n", s.Course, s.Sections, s.OpenSections, s.MeanOccupancy, s.StdDevOccupancy)
	}
	return tw.Flush()
}
