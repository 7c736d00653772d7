package internal

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestDecodeConfig(t *testing.T) {
	cfg, err := DecodeConfig(strings.NewReader(`
log_level: debug
max_call_depth: 10
color: false
history_file: /tmp/history
`))
	if err != nil {
		t.Fatal(err)
	}
	expected := Config{
		LogLevel:     "debug",
		MaxCallDepth: 10,
		Color:        false,
		HistoryFile:  "/tmp/history",
	}
	if cfg != expected {
		t.Errorf("expected %+v, got %+v", expected, cfg)
	}
}

func TestDecodeConfigDefaults(t *testing.T) {
	cfg, err := DecodeConfig(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("empty input should give the defaults, got %+v", cfg)
	}

	cfg, err = DecodeConfig(strings.NewReader("max_call_depth: 99\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxCallDepth != 99 || cfg.LogLevel != "warn" || !cfg.Color {
		t.Errorf("missing keys should keep their defaults, got %+v", cfg)
	}
}

func TestDecodeConfigErrors(t *testing.T) {
	if _, err := DecodeConfig(strings.NewReader("colour: true\n")); err == nil {
		t.Error("unknown keys should be rejected")
	}
	if _, err := DecodeConfig(strings.NewReader("max_call_depth: many\n")); err == nil {
		t.Error("a mistyped value should be rejected")
	}
	if _, err := DecodeConfig(strings.NewReader("max_call_depth: 0\n")); !errors.Is(err, errInvalidCallDepth) {
		t.Errorf("expected errInvalidCallDepth, got %v", err)
	}
	if _, err := DecodeConfig(strings.NewReader("log_level: loud\n")); err == nil {
		t.Error("an unknown log level should be rejected")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glox.yaml")
	if err := os.WriteFile(path, []byte("log_level: info\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected info, got %s", cfg.LogLevel)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}

func TestConfigLogger(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "debug"

	var out bytes.Buffer
	logger, err := cfg.Logger(&out)
	if err != nil {
		t.Fatal(err)
	}
	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("expected debug level, got %v", logger.GetLevel())
	}

	tp := &testPrinter{}
	NewSessionWithLogger(tp, cfg, logger).Run("print 1;")
	for _, phase := range []string{"phase=scan", "phase=parse", "phase=resolve", "phase=exec"} {
		if !strings.Contains(out.String(), phase) {
			t.Errorf("expected a %s log entry in:\n%s", phase, out.String())
		}
	}
	if tp.printed != "1\n" {
		t.Errorf("logging must not reach program output, got %q", tp.printed)
	}
}
