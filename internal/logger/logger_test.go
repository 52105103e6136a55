package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"nonsense", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInitWritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "volview.log")

	if err := InitWithRotation("debug", DefaultRotation(path), false); err != nil {
		t.Fatalf("InitWithRotation: %v", err)
	}
	Info("volume ready")
	Debug("atlas uploaded")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "volume ready") || !strings.Contains(content, "atlas uploaded") {
		t.Errorf("log file missing entries:\n%s", content)
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "volview.log")

	if err := InitWithRotation("info", DefaultRotation(path), false); err != nil {
		t.Fatalf("InitWithRotation: %v", err)
	}
	Debug("dropped")
	Info("kept")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if strings.Contains(string(data), "dropped") {
		t.Error("debug entry should be filtered at info level")
	}
	if !strings.Contains(string(data), "kept") {
		t.Error("info entry missing")
	}
}

func TestInitWithoutFile(t *testing.T) {
	if err := Init("info", ""); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if Log == nil || Sugar == nil {
		t.Fatal("globals not set")
	}
}

func TestDefaultRotation(t *testing.T) {
	rot := DefaultRotation("viewer.log")
	if rot.Path != "viewer.log" {
		t.Errorf("path: got %s", rot.Path)
	}
	if rot.MaxSizeMB <= 0 || rot.MaxBackups <= 0 || rot.MaxAgeDays <= 0 {
		t.Errorf("rotation bounds must be positive: %+v", rot)
	}
}
