package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"pixeld/internal/common/fsutil"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by WithDefaults.
type Config struct {
	Addr           string   `json:"addr" yaml:"addr" toml:"addr"`
	LogLevel       string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat      string   `json:"log_format" yaml:"log_format" toml:"log_format"`
	MaxUploadMB    int      `json:"max_upload_mb" yaml:"max_upload_mb" toml:"max_upload_mb"`
	CORSEnabled    *bool    `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins    []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	DefaultDivisor int      `json:"default_divisor" yaml:"default_divisor" toml:"default_divisor"`
}

// Log formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Defaults returns the built-in configuration.
func Defaults() Config {
	enabled := true
	return Config{
		Addr:        ":8080",
		LogLevel:    "info",
		LogFormat:   FormatConsole,
		MaxUploadMB: 32,
		CORSEnabled: &enabled,
		CORSOrigins: []string{"http://localhost:3000", "http://192.168.56.1:3000"},
	}
}

// WithDefaults fills every unspecified field of c from Defaults.
// DefaultDivisor stays 0 (no crop) unless set.
func (c Config) WithDefaults() Config {
	d := Defaults()
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = d.LogFormat
	}
	if c.MaxUploadMB <= 0 {
		c.MaxUploadMB = d.MaxUploadMB
	}
	if c.CORSEnabled == nil {
		c.CORSEnabled = d.CORSEnabled
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = d.CORSOrigins
	}
	return c
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch c.LogFormat {
	case "", FormatJSON, FormatConsole:
	default:
		return fmt.Errorf("log_format must be %q or %q, got %q", FormatJSON, FormatConsole, c.LogFormat)
	}
	if c.DefaultDivisor < 0 {
		return fmt.Errorf("default_divisor must not be negative, got %d", c.DefaultDivisor)
	}
	if c.MaxUploadMB < 0 {
		return fmt.Errorf("max_upload_mb must not be negative, got %d", c.MaxUploadMB)
	}
	return nil
}

// CORS reports whether CORS is enabled. Unset means enabled.
func (c Config) CORS() bool { return c.CORSEnabled == nil || *c.CORSEnabled }

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// SearchPaths lists where Discover looks for a config file, in order.
var SearchPaths = []string{
	"pixeld.yaml",
	"pixeld.yml",
	"pixeld.toml",
	"pixeld.json",
	"~/.config/pixeld/config.yaml",
	"~/.config/pixeld/config.toml",
}

// Discover returns the first config file found in SearchPaths, or "".
func Discover() string {
	return fsutil.FirstExisting(SearchPaths...)
}
