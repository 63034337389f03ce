package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetup_WritesJSONLinesUnderLogsDir(t *testing.T) {
	root := t.TempDir()

	cleanup, err := Setup(Config{Root: root, Debug: true})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}

	if err := IsReady(); err != nil {
		t.Fatalf("expected logger ready: %v", err)
	}
	want := filepath.Join(root, "logs", FileName)
	if Path() != want {
		t.Fatalf("expected path %s, got %s", want, Path())
	}
	if InitTime().IsZero() {
		t.Fatalf("expected init time to be set")
	}

	L().Debug("calc.submit", "income", 100000.0)

	if err := cleanup(); err != nil {
		t.Fatalf("cleanup error: %v", err)
	}
	if err := IsReady(); err == nil {
		t.Fatalf("expected logger to be reset after cleanup")
	}

	b, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %s", len(lines), b)
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if rec["msg"] != "calc.submit" {
		t.Fatalf("unexpected msg: %v", rec["msg"])
	}
	if rec["app"] != "taxcalc" {
		t.Fatalf("expected app attr, got %v", rec["app"])
	}
	if _, ok := rec["source"]; !ok {
		t.Fatalf("expected source in debug mode")
	}
	ts, _ := rec["time"].(string)
	if !strings.HasSuffix(ts, "Z") {
		t.Fatalf("expected UTC timestamp, got %q", ts)
	}
}

func TestSetup_InfoLevelDropsDebug(t *testing.T) {
	root := t.TempDir()

	cleanup, err := Setup(Config{Root: root})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}
	L().Debug("hidden")
	L().Info("visible")
	_ = cleanup()

	b, err := os.ReadFile(filepath.Join(root, "logs", FileName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(b), "hidden") {
		t.Fatalf("debug record leaked at info level: %s", b)
	}
	if !strings.Contains(string(b), "visible") {
		t.Fatalf("expected info record: %s", b)
	}
}

func TestSetup_FailsWhenRootIsAFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(root, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Setup(Config{Root: root}); err == nil {
		t.Fatalf("expected error")
	}
	if err := IsReady(); err == nil {
		t.Fatalf("expected logger not ready after failed setup")
	}
	// Discard logger must still be usable.
	L().Info("ignored")
}
