package internal

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultMaxCallDepth bounds nested calls before a script fails with
// "Stack overflow."
const DefaultMaxCallDepth = 4096

// Config holds interpreter settings, optionally read from a YAML file
type Config struct {
	LogLevel     string `yaml:"log_level"`
	MaxCallDepth int    `yaml:"max_call_depth"`
	Color        bool   `yaml:"color"`
	HistoryFile  string `yaml:"history_file"`
}

// DefaultConfig returns the settings used when no file is given
func DefaultConfig() Config {
	return Config{
		LogLevel:     "warn",
		MaxCallDepth: DefaultMaxCallDepth,
		Color:        true,
		HistoryFile:  ".glox_history",
	}
}

var errInvalidCallDepth = errors.New("max_call_depth must be positive")

// LoadConfig reads path over the defaults. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()
	return DecodeConfig(file)
}

// DecodeConfig reads YAML settings from r over the defaults
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that DecodeConfig cannot check by type
func (c Config) Validate() error {
	if c.MaxCallDepth <= 0 {
		return fmt.Errorf("config: %w, got %d", errInvalidCallDepth, c.MaxCallDepth)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Logger builds the logger for the configured level, writing to w
func (c Config) Logger(w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	logger.Formatter = &logrus.TextFormatter{
		DisableTimestamp: true,
	}
	return logger, nil
}
