package ingest

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kilianp07/schedgen/core/model"
	"github.com/kilianp07/schedgen/core/schedule"
	"github.com/kilianp07/schedgen/infra/logger"
)

const header = "Asignatura,Nº Clase,Hora Ini,Hora Fin,Salon,Campus,Total Inscritos,Total Cupos,Lun,Mar,Mier,Jue,Vier,Sab"

func newLoader(t *testing.T, cfg Config) *Loader {
	t.Helper()
	l, err := NewLoader(cfg, logger.NopLogger{})
	require.NoError(t, err)
	return l
}

func TestReadCSVMeltsDays(t *testing.T) {
	data := strings.Join([]string{
		header,
		"Calculo,101.0,7:00,9:00,SUR-201,Sur,10,40,Y,,Y,,,",
		"Fisica,7,18:00,20:00,A-1,Chapinero,40,40,,y,,,,",
		",,,,,,,,,,,,,",
	}, "\n")
	ds, err := newLoader(t, Config{}).ReadCSV(strings.NewReader(data), "offer.csv")
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Rows)
	require.Len(t, ds.Meetings, 3)

	first := ds.Meetings[0]
	assert.Equal(t, "Calculo", first.Course)
	assert.Equal(t, model.SectionID("101"), first.Section)
	assert.Equal(t, model.Monday, first.Day)
	assert.Equal(t, model.At(7, 0), first.Start)
	assert.Equal(t, "SUR-201", first.Location)
	assert.Equal(t, model.Wednesday, ds.Meetings[1].Day)

	assert.Equal(t, model.Tuesday, ds.Meetings[2].Day, "flag comparison ignores case")
	assert.True(t, ds.Meetings[2].Full())
}

func TestReadCSVDropsUnusableEnrolment(t *testing.T) {
	data := strings.Join([]string{
		header,
		"Calculo,1,7:00,9:00,R,Sur,n/a,40,Y,,,,,",
		"Calculo,2,7:00,9:00,R,Sur,10,0,Y,,,,,",
		"Calculo,3,7:00,9:00,R,Sur,10,30.0,Y,,,,,",
	}, "\n")
	ds, err := newLoader(t, Config{}).ReadCSV(strings.NewReader(data), "offer.csv")
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Dropped)
	require.Len(t, ds.Meetings, 1)
	assert.Equal(t, 30, ds.Meetings[0].Capacity)
}

func TestReadCSVMissingColumns(t *testing.T) {
	data := "Asignatura,Hora Ini,Hora Fin\nCalculo,7:00,9:00\n"
	_, err := newLoader(t, Config{}).ReadCSV(strings.NewReader(data), "offer.csv")
	require.ErrorIs(t, err, schedule.ErrMalformedInput)
	var mErr *schedule.MalformedInputError
	require.ErrorAs(t, err, &mErr)
	assert.Contains(t, mErr.Columns, "Nº Clase")
	assert.Contains(t, mErr.Columns, "Lun")
}

func TestReadCSVBadTime(t *testing.T) {
	data := header + "\nCalculo,1,7h,9:00,R,Sur,10,40,Y,,,,,\n"
	_, err := newLoader(t, Config{}).ReadCSV(strings.NewReader(data), "offer.csv")
	var mErr *schedule.MalformedInputError
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, 2, mErr.Row)
	assert.Equal(t, []string{"Hora Ini"}, mErr.Columns)
}

func TestReadCSVEndBeforeStart(t *testing.T) {
	data := header + "\nCalculo,1,9:00,7:00,R,Sur,10,40,Y,,,,,\n"
	_, err := newLoader(t, Config{}).ReadCSV(strings.NewReader(data), "offer.csv")
	assert.ErrorIs(t, err, schedule.ErrMalformedInput)
}

func TestCustomColumns(t *testing.T) {
	cfg := Config{
		Comma:      ";",
		ActiveFlag: "x",
		Columns:    Columns{Course: "course", Section: "nrc", Start: "from", End: "to", Location: "room", Campus: "site", Enrolled: "taken", Capacity: "seats"},
		Days:       map[string]string{"monday": "mon", "friday": "fri"},
	}
	data := "course;nrc;from;to;room;site;taken;seats;mon;fri\nAlgebra;3;10:00;12:00;B2;North;1;20;;X\n"
	ds, err := newLoader(t, cfg).ReadCSV(strings.NewReader(data), "custom.csv")
	require.NoError(t, err)
	require.Len(t, ds.Meetings, 1)
	assert.Equal(t, model.Friday, ds.Meetings[0].Day)
}

func TestConfigValidate(t *testing.T) {
	_, err := NewLoader(Config{Comma: ";;"}, logger.NopLogger{})
	assert.Error(t, err)
	_, err = NewLoader(Config{Days: map[string]string{"sunday": "Dom"}}, logger.NopLogger{})
	assert.Error(t, err)
}

func workbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func offeringRows() [][]any {
	return [][]any{
		{"Oferta académica"},
		{"Periodo 2024-1"},
		{"Asignatura", "Nº Clase", "Hora Ini", "Hora Fin", "Salon", "Campus", "Total Inscritos", "Total Cupos", "Lun", "Mar", "Mier", "Jue", "Vier", "Sab"},
		{"Calculo", "1", "07:00", "09:00", "SUR-1", "Sur", "5", "40", "", "Y", "", "Y", "", ""},
		{"Calculo", "2", "14:00", "16:00", "A-3", "Chapinero", "40", "40", "Y", "", "", "", "", ""},
	}
}

func TestReadXLSXHeaderOnThirdRow(t *testing.T) {
	data := workbook(t, offeringRows())
	ds, err := newLoader(t, Config{}).ReadXLSX(bytes.NewReader(data), "offer.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Rows)
	require.Len(t, ds.Meetings, 3)
	assert.Equal(t, model.Tuesday, ds.Meetings[0].Day)
	assert.Equal(t, model.Thursday, ds.Meetings[1].Day)
	assert.Equal(t, model.SectionID("2"), ds.Meetings[2].Section)
}

func TestReadXLSXFormattedTimes(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	rows := offeringRows()[:4]
	rows[3] = []any{"Calculo", 1, 0.375, 11.0 / 24, "SUR-1", "Sur", 5, 40, "Y", "", "", "", "", ""}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	style, err := f.NewStyle(&excelize.Style{NumFmt: 18})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "C4", "D4", style))
	formatted, err := f.GetCellValue(sheet, "C4")
	require.NoError(t, err)
	require.Equal(t, "9:00 AM", formatted)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	ds, err := newLoader(t, Config{}).ReadXLSX(bytes.NewReader(buf.Bytes()), "offer.xlsx")
	require.NoError(t, err)
	require.Len(t, ds.Meetings, 1)
	m := ds.Meetings[0]
	assert.Equal(t, model.At(9, 0), m.Start)
	assert.Equal(t, model.At(11, 0), m.End)
	assert.Equal(t, model.SectionID("1"), m.Section)
	assert.Equal(t, 40, m.Capacity)
}

func TestLoadPathsDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.xlsx"), workbook(t, offeringRows()), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte(header+"\nFisica,9,10:00,12:00,B,Luque,0,30,,,,,Y,\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "~$b.xlsx"), []byte("lock"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	ds, err := newLoader(t, Config{}).LoadPaths(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Files)
	require.Len(t, ds.Meetings, 4)
	assert.Equal(t, "Fisica", ds.Meetings[0].Course, "files read in name order")
}

func TestLoadPathsErrors(t *testing.T) {
	l := newLoader(t, Config{})
	_, err := l.LoadPaths(context.Background())
	assert.Error(t, err)
	_, err = l.LoadPaths(context.Background(), t.TempDir())
	assert.Error(t, err)
	_, err = l.LoadPaths(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte(header+"\n"), 0o600))
	_, err = l.LoadPaths(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}
