package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/babarot/tidyup/internal/config"
)

func TestSetup(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "logs", "tidyup.log")
	cfg := config.LoggingConfig{
		Enabled:  true,
		Level:    "info",
		Rotation: config.RotationConfig{MaxSize: "1MB", MaxFiles: 2},
	}
	logger, closeLog, err := Setup(cfg, path)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if slog.Default() != logger {
		t.Error("Setup should install the logger as the slog default")
	}

	logger.Debug("hidden detail")
	logger.Info("run finished", "moved", 3)
	Important(logger, "created example files")
	if err := closeLog(); err != nil {
		t.Fatalf("close error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	for _, want := range []string{"run finished", "moved=3", "created example files", "NOTE"} {
		if !strings.Contains(got, want) {
			t.Errorf("log file missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "hidden detail") {
		t.Errorf("debug line written at info level:\n%s", got)
	}
}

func TestSetupDisabled(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "tidyup.log")
	_, closeLog, err := Setup(config.LoggingConfig{Enabled: false}, path)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if err := closeLog(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("disabled logging must not create %s", path)
	}
}

func TestImportantPassesWarnFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(UseOutput(&buf), UseLevel(WarnLevel))

	logger.Info("routine")
	Important(logger, "milestone")

	if strings.Contains(buf.String(), "routine") {
		t.Errorf("info line should be filtered: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "milestone") {
		t.Errorf("important line missing: %q", buf.String())
	}
}
