package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Error("chat request failed", "error", "connection refused")

	data, err := os.ReadFile(Path(configDir))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "chat request failed") {
		t.Errorf("log file missing entry, got %q", string(data))
	}
}

func TestLevelFiltering(t *testing.T) {
	configDir := t.TempDir()

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	Debug("hidden debug entry")
	Warn("visible warning")

	data, _ := os.ReadFile(Path(configDir))
	if strings.Contains(string(data), "hidden debug entry") {
		t.Error("debug entry written at warn level")
	}
	if !strings.Contains(string(data), "visible warning") {
		t.Error("warning entry missing")
	}

	if err := Init(Config{Debug: true, ConfigDir: configDir}); err != nil {
		t.Fatalf("Init(debug) error = %v", err)
	}
	Debug("shown debug entry")
	data, _ = os.ReadFile(Path(configDir))
	if !strings.Contains(string(data), "shown debug entry") {
		t.Error("debug entry missing in debug mode")
	}
}

func TestPath(t *testing.T) {
	got := Path("/tmp/cfg")
	want := filepath.Join("/tmp/cfg", "logs", "tablebot.log")
	if got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
