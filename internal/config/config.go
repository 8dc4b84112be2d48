// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	jsoniter "github.com/json-iterator/go"

	"github.com/jeranaias/charpick/internal/util"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete charpick configuration.
type Config struct {
	// Catalog configures the character directory client
	Catalog CatalogConfig `toml:"catalog" json:"catalog"`

	// Search configures the search control
	Search SearchConfig `toml:"search" json:"search"`

	// UI configures the host screen
	UI UIConfig `toml:"ui" json:"ui"`

	// Log configures the file logger
	Log LogConfig `toml:"log" json:"log"`
}

// CatalogConfig contains character directory settings.
type CatalogConfig struct {
	// BaseURL is the directory API base URL
	BaseURL string `toml:"base_url" json:"base_url"`
	// Timeout bounds a single lookup request
	Timeout Duration `toml:"timeout" json:"timeout"`
	// RateLimit is requests per second; negative disables limiting
	RateLimit float64 `toml:"rate_limit" json:"rate_limit"`
	// RateBurst is the limiter bucket size
	RateBurst int `toml:"rate_burst" json:"rate_burst"`
}

// SearchConfig contains search control settings.
type SearchConfig struct {
	// Debounce delays a lookup after the last keystroke; "0s" disables it
	Debounce Duration `toml:"debounce" json:"debounce"`
	// MaxVisible is the number of dropdown rows shown at once
	MaxVisible int `toml:"max_visible" json:"max_visible"`
	// Placeholder is shown in the empty input
	Placeholder string `toml:"placeholder" json:"placeholder"`
}

// UIConfig contains host screen settings.
type UIConfig struct {
	// Theme is "auto", "dark" or "light"
	Theme string `toml:"theme" json:"theme"`
	// Width caps the control width in cells; 0 follows the terminal
	Width int `toml:"width" json:"width"`
	// ShowDetails renders the details pane for the focused candidate
	ShowDetails bool `toml:"show_details" json:"show_details"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	// Level is "debug", "info", "warn" or "error"
	Level string `toml:"level" json:"level"`
	// File is the log file path (empty = ~/.charpick/charpick.log)
	File string `toml:"file" json:"file"`
}

// Duration is a time.Duration that reads and writes as a string like "250ms".
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. A bare integer is
// read as milliseconds.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config with all default values.
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:   "https://rickandmortyapi.com",
			Timeout:   Duration(10 * time.Second),
			RateLimit: 5,
			RateBurst: 5,
		},
		Search: SearchConfig{
			Debounce:    Duration(250 * time.Millisecond),
			MaxVisible:  8,
			Placeholder: "Search characters...",
		},
		UI: UIConfig{
			Theme:       "auto",
			Width:       0,
			ShowDetails: true,
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
	}
}

// =============================================================================
// PATH HELPERS
// =============================================================================

// ConfigDir returns the charpick configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".charpick"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LogPath returns the configured log file, or the default under ConfigDir.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "charpick.log"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// =============================================================================
// LOADING
// =============================================================================

// Load loads configuration from the default locations.
// Precedence: config.toml, then config.json, then built-in defaults.
// Environment overrides are applied last. A missing file is not an error.
func Load() (*Config, error) {
	var cfg *Config
	var loadErr error

	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			cfg, loadErr = LoadTOML(tomlPath)
		}
	}

	if cfg == nil && loadErr == nil {
		jsonPath, err := ConfigPathJSON()
		if err == nil {
			if _, statErr := os.Stat(jsonPath); statErr == nil {
				cfg, loadErr = LoadJSON(jsonPath)
			}
		}
	}

	if cfg == nil {
		cfg = Default()
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		// Only the offending fields fall back; the rest of the file and the
		// environment still apply.
		var verrs ValidateErrors
		if errors.As(err, &verrs) {
			cfg.resetFields(verrs)
		}
		if cfg.Validate() != nil {
			cfg = Default()
		}
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}

	// A broken file is reported while usable settings are still returned
	return cfg, loadErr
}

// resetFields restores the default for every field named in errs.
func (c *Config) resetFields(errs ValidateErrors) {
	d := Default()
	for _, e := range errs {
		switch e.Field {
		case "catalog.base_url":
			c.Catalog.BaseURL = d.Catalog.BaseURL
		case "catalog.timeout":
			c.Catalog.Timeout = d.Catalog.Timeout
		case "catalog.rate_burst":
			c.Catalog.RateBurst = d.Catalog.RateBurst
		case "search.debounce":
			c.Search.Debounce = d.Search.Debounce
		case "search.max_visible":
			c.Search.MaxVisible = d.Search.MaxVisible
		case "ui.theme":
			c.UI.Theme = d.UI.Theme
		case "ui.width":
			c.UI.Width = d.UI.Width
		case "log.level":
			c.Log.Level = d.Log.Level
		}
	}
}

// LoadFromPath loads configuration from a specific file, choosing the
// format by extension. Environment overrides are applied and the result is
// validated.
func LoadFromPath(path string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		cfg, err = LoadJSON(path)
	default:
		cfg, err = LoadTOML(path)
	}
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file. Keys absent from the file
// keep their default values.
func LoadTOML(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadJSON loads configuration from a JSON file. Keys absent from the file
// keep their default values.
func LoadJSON(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse JSON config %s: %w", path, err)
	}
	return cfg, nil
}

// SetDefaults fills zero values that have no meaningful zero setting.
// Search.Debounce is left alone since zero disables debouncing.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Catalog.BaseURL == "" {
		c.Catalog.BaseURL = d.Catalog.BaseURL
	}
	if c.Catalog.Timeout == 0 {
		c.Catalog.Timeout = d.Catalog.Timeout
	}
	if c.Catalog.RateLimit == 0 {
		c.Catalog.RateLimit = d.Catalog.RateLimit
	}
	if c.Catalog.RateBurst == 0 {
		c.Catalog.RateBurst = d.Catalog.RateBurst
	}
	if c.Search.MaxVisible == 0 {
		c.Search.MaxVisible = d.Search.MaxVisible
	}
	if c.Search.Placeholder == "" {
		c.Search.Placeholder = d.Search.Placeholder
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to the default TOML location.
func (c *Config) Save() error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return c.SaveTOML(path)
}

// SaveTOML writes the configuration to path as TOML.
func (c *Config) SaveTOML(path string) error {
	var buf bytes.Buffer
	buf.WriteString("# charpick configuration\n")
	buf.WriteString("# Durations accept Go syntax such as \"250ms\" or \"10s\".\n\n")

	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFileWithDir(path, buf.Bytes(), 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// SaveJSON writes the configuration to path as indented JSON.
func (c *Config) SaveJSON(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFileWithDir(path, data, 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidateErrors collects every invalid field found by Validate.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

var (
	validThemes    = map[string]bool{"auto": true, "dark": true, "light": true}
	validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
)

// Validate checks the configuration and returns ValidateErrors listing
// every problem, or nil.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.Catalog.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{"catalog.base_url", fmt.Sprintf("must be an absolute URL, got %q", c.Catalog.BaseURL)})
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, ValidationError{"catalog.base_url", "scheme must be http or https"})
	}
	if c.Catalog.Timeout < 0 {
		errs = append(errs, ValidationError{"catalog.timeout", "must not be negative"})
	}
	if c.Catalog.RateBurst < 0 {
		errs = append(errs, ValidationError{"catalog.rate_burst", "must not be negative"})
	}

	if c.Search.Debounce < 0 {
		errs = append(errs, ValidationError{"search.debounce", "must not be negative"})
	}
	if c.Search.Debounce.Std() > 5*time.Second {
		errs = append(errs, ValidationError{"search.debounce", "must be at most 5s"})
	}
	if c.Search.MaxVisible < 1 || c.Search.MaxVisible > 50 {
		errs = append(errs, ValidationError{"search.max_visible", fmt.Sprintf("must be between 1 and 50, got %d", c.Search.MaxVisible)})
	}

	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{"ui.theme", fmt.Sprintf("must be auto, dark or light, got %q", c.UI.Theme)})
	}
	if c.UI.Width < 0 {
		errs = append(errs, ValidationError{"ui.width", "must not be negative"})
	}

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{"log.level", fmt.Sprintf("must be debug, info, warn or error, got %q", c.Log.Level)})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - CHARPICK_BASE_URL: overrides catalog.base_url
//   - CHARPICK_DEBOUNCE: overrides search.debounce ("300ms", or bare milliseconds)
//   - CHARPICK_LOG_LEVEL: overrides log.level
//
// Malformed values are ignored.
func (c *Config) ApplyEnvOverrides() {
	if baseURL := os.Getenv("CHARPICK_BASE_URL"); baseURL != "" {
		c.Catalog.BaseURL = baseURL
	}

	if debounce := os.Getenv("CHARPICK_DEBOUNCE"); debounce != "" {
		var d Duration
		if err := d.UnmarshalText([]byte(debounce)); err == nil {
			c.Search.Debounce = d
		}
	}

	if level := os.Getenv("CHARPICK_LOG_LEVEL"); level != "" {
		c.Log.Level = strings.ToLower(level)
	}
}

// Clone returns an independent copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns an indented JSON rendering for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access unless SetGlobal ran first. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// Must not run concurrently with Global.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
