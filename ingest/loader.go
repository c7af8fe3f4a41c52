// Package ingest turns offering spreadsheets into long-form meetings: one
// meeting per section and active weekday. Workbooks (.xlsx) and CSV exports
// share the same wide layout with one flag column per weekday.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kilianp07/schedgen/core/logger"
	"github.com/kilianp07/schedgen/core/model"
	"github.com/kilianp07/schedgen/core/schedule"
)

// Dataset is the result of loading one or more offering files.
type Dataset struct {
	Meetings []model.Meeting
	Files    int
	// Rows counts the data rows read, including skipped and dropped ones.
	Rows int
	// Dropped counts rows discarded for unusable enrolment figures.
	Dropped int
}

func (d *Dataset) merge(o Dataset) {
	d.Meetings = append(d.Meetings, o.Meetings...)
	d.Files += o.Files
	d.Rows += o.Rows
	d.Dropped += o.Dropped
}

// Loader reads offering files according to its Config.
type Loader struct {
	cfg Config
	log logger.Logger
}

// NewLoader validates cfg and returns a Loader.
func NewLoader(cfg Config, log logger.Logger) (*Loader, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Loader{cfg: cfg, log: log}, nil
}

// LoadPaths reads every path. Directories contribute each .xlsx and .csv
// file they contain, in name order. The first malformed file aborts the load.
func (l *Loader) LoadPaths(ctx context.Context, paths ...string) (Dataset, error) {
	var ds Dataset
	if len(paths) == 0 {
		return ds, fmt.Errorf("no offering files given")
	}
	files, err := expand(paths)
	if err != nil {
		return ds, err
	}
	if len(files) == 0 {
		return ds, fmt.Errorf("no .xlsx or .csv files found in %s", strings.Join(paths, ", "))
	}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		part, err := l.LoadFile(f)
		if err != nil {
			return Dataset{}, err
		}
		ds.merge(part)
	}
	return ds, nil
}

func expand(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, err
		}
		var names []string
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || strings.HasPrefix(name, "~$") || !supported(name) {
				continue
			}
			names = append(names, name)
		}
		sort.Strings(names)
		for _, n := range names {
			files = append(files, filepath.Join(p, n))
		}
	}
	return files, nil
}

func supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".csv":
		return true
	}
	return false
}

// LoadFile reads a single .xlsx or .csv file.
func (l *Loader) LoadFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, err
	}
	defer func() { _ = f.Close() }()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return l.ReadXLSX(f, path)
	case ".csv":
		return l.ReadCSV(f, path)
	default:
		return Dataset{}, fmt.Errorf("unsupported offering format: %s", path)
	}
}

// ReadXLSX reads the configured sheet (or the first one) of a workbook.
func (l *Loader) ReadXLSX(r io.Reader, source string) (Dataset, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return Dataset{}, fmt.Errorf("open workbook %s: %w", source, err)
	}
	defer func() { _ = wb.Close() }()
	sheet := l.cfg.Sheet
	if sheet == "" {
		sheets := wb.GetSheetList()
		if len(sheets) == 0 {
			return Dataset{}, &schedule.MalformedInputError{Source: source, Reason: "workbook has no sheet"}
		}
		sheet = sheets[0]
	}
	// Raw values keep times as day fractions whatever the cell format.
	rows, err := wb.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return Dataset{}, fmt.Errorf("read sheet %s of %s: %w", sheet, source, err)
	}
	return l.Rows(source, rows, l.cfg.XLSXHeaderRow)
}

// ReadCSV reads a CSV export.
func (l *Loader) ReadCSV(r io.Reader, source string) (Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = []rune(l.cfg.Comma)[0]
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return Dataset{}, &schedule.MalformedInputError{Source: source, Reason: err.Error()}
	}
	return l.Rows(source, rows, l.cfg.CSVHeaderRow)
}

type layout struct {
	course, section, start, end, location, campus, enrolled, capacity int
	days                                                              []dayIndex
}

type dayIndex struct {
	day model.Weekday
	col int
}

func (l *Loader) layout(source string, header []string) (layout, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	var missing []string
	col := func(name string) int {
		i, ok := index[name]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}
	c := l.cfg.Columns
	lay := layout{
		course:   col(c.Course),
		section:  col(c.Section),
		start:    col(c.Start),
		end:      col(c.End),
		location: col(c.Location),
		campus:   col(c.Campus),
		enrolled: col(c.Enrolled),
		capacity: col(c.Capacity),
	}
	days, err := l.cfg.dayColumns()
	if err != nil {
		return layout{}, err
	}
	sort.Slice(days, func(i, j int) bool { return days[i].day < days[j].day })
	for _, d := range days {
		lay.days = append(lay.days, dayIndex{day: d.day, col: col(d.header)})
	}
	if len(missing) > 0 {
		return layout{}, &schedule.MalformedInputError{Source: source, Columns: missing, Reason: "missing required columns"}
	}
	return lay, nil
}

// Rows converts raw rows into meetings. headerRow is 1-based; rows above it
// are ignored.
func (l *Loader) Rows(source string, rows [][]string, headerRow int) (Dataset, error) {
	ds := Dataset{Files: 1}
	if len(rows) < headerRow {
		return ds, &schedule.MalformedInputError{Source: source, Reason: fmt.Sprintf("no header at row %d", headerRow)}
	}
	lay, err := l.layout(source, rows[headerRow-1])
	if err != nil {
		return Dataset{}, err
	}
	for i := headerRow; i < len(rows); i++ {
		row := rows[i]
		line := i + 1
		cell := func(col int) string {
			if col < len(row) {
				return strings.TrimSpace(row[col])
			}
			return ""
		}
		course := cell(lay.course)
		if course == "" {
			continue
		}
		ds.Rows++
		var active []model.Weekday
		for _, d := range lay.days {
			if strings.EqualFold(cell(d.col), l.cfg.ActiveFlag) {
				active = append(active, d.day)
			}
		}
		if len(active) == 0 {
			continue
		}
		enrolled, eok := parseCount(cell(lay.enrolled))
		capacity, cok := parseCount(cell(lay.capacity))
		if !eok || !cok || capacity <= 0 {
			ds.Dropped++
			l.log.Warnf("%s row %d: dropping %s, unusable enrolment %q/%q", source, line, course, cell(lay.enrolled), cell(lay.capacity))
			continue
		}
		start, err := model.ParseTimeOfDay(cell(lay.start))
		if err != nil {
			return Dataset{}, &schedule.MalformedInputError{Source: source, Row: line, Columns: []string{l.cfg.Columns.Start}, Reason: err.Error()}
		}
		end, err := model.ParseTimeOfDay(cell(lay.end))
		if err != nil {
			return Dataset{}, &schedule.MalformedInputError{Source: source, Row: line, Columns: []string{l.cfg.Columns.End}, Reason: err.Error()}
		}
		for _, day := range active {
			m, err := model.NewMeeting(model.Meeting{
				Course:   course,
				Section:  model.SectionID(normalizeID(cell(lay.section))),
				Day:      day,
				Start:    start,
				End:      end,
				Location: cell(lay.location),
				Campus:   cell(lay.campus),
				Enrolled: enrolled,
				Capacity: capacity,
			})
			if err != nil {
				return Dataset{}, &schedule.MalformedInputError{Source: source, Row: line, Reason: err.Error()}
			}
			ds.Meetings = append(ds.Meetings, m)
		}
	}
	l.log.Debugw("offering read", map[string]any{"source": source, "rows": ds.Rows, "meetings": len(ds.Meetings), "dropped": ds.Dropped})
	return ds, nil
}

// parseCount accepts integers and integral floats ("30", "30.0").
func parseCount(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// normalizeID strips the ".0" spreadsheets append to numeric section IDs.
func normalizeID(s string) string {
	if strings.HasSuffix(s, ".0") {
		if _, err := strconv.Atoi(strings.TrimSuffix(s, ".0")); err == nil {
			return strings.TrimSuffix(s, ".0")
		}
	}
	return s
}
