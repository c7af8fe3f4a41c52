package ingest

import (
	"fmt"

	"github.com/kilianp07/schedgen/core/model"
)

// Columns maps the semantic fields to spreadsheet header names.
type Columns struct {
	Course   string `json:"course"`
	Section  string `json:"section"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Location string `json:"location"`
	Campus   string `json:"campus"`
	Enrolled string `json:"enrolled"`
	Capacity string `json:"capacity"`
}

// Config defines how offering sheets are read.
type Config struct {
	// XLSXHeaderRow is the 1-based row holding the headers in workbooks.
	// Offering exports carry two title rows, hence the default of 3.
	XLSXHeaderRow int `json:"xlsx_header_row"`
	// CSVHeaderRow is the 1-based header row in CSV files.
	CSVHeaderRow int `json:"csv_header_row"`
	// Sheet selects the workbook sheet; empty means the first one.
	Sheet string `json:"sheet"`
	// Comma is the CSV field separator.
	Comma string `json:"comma"`
	// ActiveFlag is the cell value marking a weekday as active.
	ActiveFlag string  `json:"active_flag"`
	Columns    Columns `json:"columns"`
	// Days maps weekday names (monday..saturday) to day flag headers.
	Days map[string]string `json:"days"`
}

// SetDefaults applies the layout of the institution's offering exports.
func (c *Config) SetDefaults() {
	if c.XLSXHeaderRow == 0 {
		c.XLSXHeaderRow = 3
	}
	if c.CSVHeaderRow == 0 {
		c.CSVHeaderRow = 1
	}
	if c.Comma == "" {
		c.Comma = ","
	}
	if c.ActiveFlag == "" {
		c.ActiveFlag = "Y"
	}
	def := Columns{
		Course:   "Asignatura",
		Section:  "Nº Clase",
		Start:    "Hora Ini",
		End:      "Hora Fin",
		Location: "Salon",
		Campus:   "Campus",
		Enrolled: "Total Inscritos",
		Capacity: "Total Cupos",
	}
	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&c.Columns.Course, def.Course)
	fill(&c.Columns.Section, def.Section)
	fill(&c.Columns.Start, def.Start)
	fill(&c.Columns.End, def.End)
	fill(&c.Columns.Location, def.Location)
	fill(&c.Columns.Campus, def.Campus)
	fill(&c.Columns.Enrolled, def.Enrolled)
	fill(&c.Columns.Capacity, def.Capacity)
	if len(c.Days) == 0 {
		c.Days = map[string]string{
			"monday":    "Lun",
			"tuesday":   "Mar",
			"wednesday": "Mier",
			"thursday":  "Jue",
			"friday":    "Vier",
			"saturday":  "Sab",
		}
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.XLSXHeaderRow < 1 || c.CSVHeaderRow < 1 {
		return fmt.Errorf("header rows are 1-based")
	}
	if len([]rune(c.Comma)) != 1 {
		return fmt.Errorf("comma must be a single character")
	}
	for name := range c.Days {
		if _, err := model.ParseWeekday(name); err != nil {
			return fmt.Errorf("days: %w", err)
		}
	}
	return nil
}

func (c Config) dayColumns() ([]dayColumn, error) {
	var res []dayColumn
	for name, header := range c.Days {
		d, err := model.ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		res = append(res, dayColumn{day: d, header: header})
	}
	return res, nil
}

type dayColumn struct {
	day    model.Weekday
	header string
}
