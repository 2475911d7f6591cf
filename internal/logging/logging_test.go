package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "warn", Prefix: "threes"})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown", "moves", 12)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "moves=12") || !strings.Contains(out, "threes") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, Options{Level: "loud"}); err == nil {
		t.Error("unknown level should fail")
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "threes.log")

	logger, closeFn, err := NewFile(path, Options{Level: "debug"})
	if err != nil {
		t.Fatalf("NewFile() failed: %v", err)
	}
	logger.Debug("tick", "n", 1)
	if err := closeFn(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "tick") {
		t.Errorf("log file = %q", data)
	}
}

func TestNewFileEmptyPathDiscards(t *testing.T) {
	logger, closeFn, err := NewFile("", Options{})
	if err != nil {
		t.Fatal(err)
	}
	logger.Error("nowhere")
	if err := closeFn(); err != nil {
		t.Error(err)
	}
}
