package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/schedgen/core/schedule"
)

const offering = `Asignatura,Nº Clase,Hora Ini,Hora Fin,Salon,Campus,Total Inscritos,Total Cupos,Lun,Mar,Mier,Jue,Vier,Sab
Cálculo,1,9:00,10:00,R1,Chapinero,10,30,Y,,,,,
Cálculo,2,10:00,11:00,SUR-2,Sur,29,30,Y,,,,,
Física,1,9:30,10:30,R3,Chapinero,5,30,Y,,,,,
Física,2,11:00,12:00,SUR-4,Sur,0,30,Y,,Y,,,
Química,1,7:00,9:00,R5,Chapinero,30,30,,Y,,,,
`

func writeOffering(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "offer.csv")
	require.NoError(t, os.WriteFile(path, []byte(offering), 0o600))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestCoursesCommand(t *testing.T) {
	path := writeOffering(t)
	out, _, err := run(t, "", "courses", path)
	require.NoError(t, err)
	assert.Equal(t, "Cálculo\nFísica\nQuímica\n", out)

	out, _, err = run(t, "", "courses", "--search", "fisica", path)
	require.NoError(t, err)
	assert.Equal(t, "Física\n", out)
}

func TestOfferCommand(t *testing.T) {
	path := writeOffering(t)
	out, _, err := run(t, "", "offer", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Monday, Wednesday")
	assert.Contains(t, out, "30/30")

	out, _, err = run(t, "", "offer", "--stats", path)
	require.NoError(t, err)
	assert.Contains(t, out, "SECTIONS")
}

func TestGenerateCommand(t *testing.T) {
	path := writeOffering(t)
	out, _, err := run(t, "", "generate", "-C", "Cálculo", "-C", "Física", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "2 schedules found\n"))
	assert.Contains(t, out, "Schedule 1/2")
	assert.NotContains(t, out, "Schedule 2/2")

	out, _, err = run(t, "", "generate", "-C", "Cálculo", "-C", "Física", "--all", "--format", "csv", path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "course,section,day,start,end,location"))

	out, _, err = run(t, "", "generate", "-C", "Cálculo", "-C", "Física", "--campus", "sur", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "1 schedules found\n"))
}

func TestGenerateErrors(t *testing.T) {
	path := writeOffering(t)
	_, _, err := run(t, "", "generate", path)
	assert.ErrorIs(t, err, schedule.ErrEmptyInput)

	_, _, err = run(t, "", "generate", "-C", "Química", path)
	assert.ErrorIs(t, err, schedule.ErrNoCandidates)

	_, _, err = run(t, "", "generate", "-C", "Cálculo", "--window", "evening", path)
	assert.ErrorIs(t, err, schedule.ErrNoValidCombinations)

	_, _, err = run(t, "", "generate", "-C", "Cálculo", "--format", "pdf", path)
	assert.ErrorContains(t, err, "unknown format")

	_, _, err = run(t, "", "generate", "-C", "Cálculo", "--window", "afternoon", path)
	assert.Error(t, err)
}

func TestFailedGenerateFlushesMetrics(t *testing.T) {
	path := writeOffering(t)
	dir := t.TempDir()
	prom := filepath.Join(dir, "schedgen.prom")
	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(fmt.Sprintf("metrics:\n  sinks:\n    - type: prometheus\n      conf:\n        textfile: %q\n", prom)), 0o600))

	_, _, err := run(t, "", "generate", "--config", cfg, "-C", "Química", path)
	require.ErrorIs(t, err, schedule.ErrNoCandidates)
	data, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(data), `schedule_generations_total{outcome="no_candidates"}`)
}

func TestBrowseCommand(t *testing.T) {
	path := writeOffering(t)
	out, _, err := run(t, "n\nx\np\np\nq\n", "browse", "-C", "Cálculo", "-C", "Física", path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "Schedule 1/2"))
	assert.Equal(t, 2, strings.Count(out, "Schedule 2/2"))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 2, ExitCode(fmt.Errorf("load: %w", &schedule.MalformedInputError{})))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, &schedule.NoCandidatesError{Course: "Química"})
	assert.Contains(t, buf.String(), `"Química"`)
	buf.Reset()
	printError(&buf, &schedule.SearchSpaceError{Size: 10, Limit: 5})
	assert.Contains(t, buf.String(), "limit 5")
}
