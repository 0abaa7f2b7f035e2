// Package config loads process settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds every setting of a gridtable process.
type Config struct {
	Log         LogConfig         `yaml:"log"`
	Interchange InterchangeConfig `yaml:"interchange"`
	Data        DataConfig        `yaml:"data"`
	Server      ServerConfig      `yaml:"server"`
	REPL        REPLConfig        `yaml:"repl"`
	Tracing     TracingConfig     `yaml:"tracing"`
}

type LogConfig struct {
	Level  string `yaml:"level"`   // debug, info, warn, error
	Color  *bool  `yaml:"color"`   // nil detects a terminal
	SeqURL string `yaml:"seq_url"` // empty disables Seq
	Source bool   `yaml:"source"`
}

type InterchangeConfig struct {
	Delimiter string `yaml:"delimiter"`
	Header    bool   `yaml:"header"`
	Null      string `yaml:"null"`
}

type DataConfig struct {
	Dir string `yaml:"dir"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type REPLConfig struct {
	HistoryFile string `yaml:"history_file"`
	Prompt      string `yaml:"prompt"`
}

type TracingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level: "info",
		},
		Interchange: InterchangeConfig{
			Delimiter: ";",
			Header:    true,
		},
		Data: DataConfig{
			Dir: "data",
		},
		Server: ServerConfig{
			Port: 4444,
		},
		REPL: REPLConfig{
			Prompt: "gridtable> ",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error when
// optional is set.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values the rest of the program relies on.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Interchange.Delimiter == "" {
		return errors.New("interchange.delimiter must not be empty")
	}
	if strings.ContainsAny(c.Interchange.Delimiter, "\r\n") {
		return errors.New("interchange.delimiter must not contain line breaks")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
