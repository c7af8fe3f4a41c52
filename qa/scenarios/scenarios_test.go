package scenarios

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScenario(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no scenarios found")
	}
	for _, f := range files {
		sc, err := Load(f)
		if err != nil {
			t.Fatalf("load %s: %v", f, err)
		}
		t.Run(sc.Name, func(t *testing.T) {
			RunScenario(t, sc)
		})
	}
}

func TestMeetingDefRejectsBadValues(t *testing.T) {
	bad := []MeetingDef{
		{Course: "A", Section: "1", Day: "sunday", Start: "07:00", End: "08:00"},
		{Course: "A", Section: "1", Day: "monday", Start: "7h", End: "08:00"},
		{Course: "A", Section: "1", Day: "monday", Start: "09:00", End: "08:00"},
		{Course: "", Section: "1", Day: "monday", Start: "07:00", End: "08:00"},
	}
	for i, m := range bad {
		if _, err := m.ToModel(); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func TestLoadInvalid(t *testing.T) {
	if _, err := Load("no-file.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte(":"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Fatal("expected unmarshal error")
	}
	unnamed := filepath.Join(dir, "unnamed.yaml")
	if err := os.WriteFile(unnamed, []byte("request:\n  courses: [A]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(unnamed); err == nil {
		t.Fatal("expected missing name error")
	}
}
