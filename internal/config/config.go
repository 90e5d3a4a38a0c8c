// Package config loads jakebox client settings from defaults, an optional
// YAML file, environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultLogFile = "jakebox.log"
	DefaultStyle   = "auto"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	UI     UIConfig     `yaml:"ui"`
}

type ServerConfig struct {
	BaseURL string `yaml:"base_url"`
	// JoinTimeout of zero leaves join requests without a deadline.
	JoinTimeout time.Duration `yaml:"join_timeout"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

type UIConfig struct {
	// Style is a glamour standard style: auto, dark, light, notty or ascii.
	Style string `yaml:"style"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL: DefaultBaseURL,
		},
		Log: LogConfig{
			File:  DefaultLogFile,
			Level: "info",
		},
		UI: UIConfig{
			Style: DefaultStyle,
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

var validStyles = map[string]bool{
	"auto":  true,
	"dark":  true,
	"light": true,
	"notty": true,
	"ascii": true,
	"pink":  true,
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base url %q: %w", c.Server.BaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base url %q: scheme and host are required", c.Server.BaseURL)
	}
	if c.Server.JoinTimeout < 0 {
		return errors.New("join timeout must not be negative")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	if !validStyles[c.UI.Style] {
		return fmt.Errorf("unknown ui style %q", c.UI.Style)
	}
	return nil
}
