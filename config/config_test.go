package config

import (
	"os"
	"path/filepath"
	"testing"
)

//nolint:gocyclo
func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `ingest:
  xlsx_header_row: 2
  sheet: "Oferta"
  columns:
    course: "Materia"
schedule:
  include_full: true
  max_search_space: 5000
  windows:
    morning:
      start: "07:00"
      end: "13:00"
metrics:
  sinks:
    - type: "prometheus"
      conf:
        textfile: "/tmp/schedgen.prom"
logging:
  level: "debug"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"ingest.xlsx_header_row", cfg.Ingest.XLSXHeaderRow, 2},
		{"ingest.csv_header_row default", cfg.Ingest.CSVHeaderRow, 1},
		{"ingest.sheet", cfg.Ingest.Sheet, "Oferta"},
		{"ingest.columns.course", cfg.Ingest.Columns.Course, "Materia"},
		{"ingest.columns.section default", cfg.Ingest.Columns.Section, "Nº Clase"},
		{"schedule.include_full", cfg.Schedule.IncludeFull, true},
		{"schedule.max_search_space", cfg.Schedule.MaxSearchSpace, uint64(5000)},
		{"schedule.timeout_seconds default", cfg.Schedule.TimeoutSeconds, 10},
		{"schedule.windows", cfg.Schedule.Windows["morning"].End, "13:00"},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "prometheus", true},
		{"metrics_conf", cfg.Metrics.Sinks[0].Conf["textfile"], "/tmp/schedgen.prom"},
		{"logging.level", cfg.Logging.Level, "debug"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"schedule":{"max_search_space":10}}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("K_SCHEDULE__MAX_SEARCH_SPACE", "2500")
	t.Setenv("K_LOGGING__LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Schedule.MaxSearchSpace != 2500 {
		t.Errorf("expected env override, got %d", cfg.Schedule.MaxSearchSpace)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected warn, got %s", cfg.Logging.Level)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Schedule.SouthPrefix != "SUR" || cfg.Ingest.ActiveFlag != "Y" || cfg.Logging.Level != "info" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"format.toml": "",
		"level.yaml":  "logging:\n  level: loud\n",
		"window.yaml": "schedule:\n  windows:\n    morning:\n      start: \"14:00\"\n      end: \"08:00\"\n",
		"days.yaml":   "ingest:\n  days:\n    sunday: Dom\n",
	}
	for name, data := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
