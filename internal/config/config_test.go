// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateHome points the default config locations at an empty directory.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("CHARPICK_BASE_URL", "")
	t.Setenv("CHARPICK_DEBOUNCE", "")
	t.Setenv("CHARPICK_LOG_LEVEL", "")
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

// =============================================================================
// DEFAULTS
// =============================================================================

func TestConfig_Default(t *testing.T) {
	cfg := Default()

	if cfg.Catalog.BaseURL != "https://rickandmortyapi.com" {
		t.Errorf("Catalog.BaseURL = %q, want %q", cfg.Catalog.BaseURL, "https://rickandmortyapi.com")
	}
	if cfg.Search.Debounce.Std() != 250*time.Millisecond {
		t.Errorf("Search.Debounce = %v, want %v", cfg.Search.Debounce, 250*time.Millisecond)
	}
	if cfg.Search.MaxVisible != 8 {
		t.Errorf("Search.MaxVisible = %d, want 8", cfg.Search.MaxVisible)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("UI.Theme = %q, want %q", cfg.UI.Theme, "auto")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}

func TestConfig_LogPath(t *testing.T) {
	home := isolateHome(t)

	cfg := Default()
	path, err := cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".charpick", "charpick.log"), path)

	cfg.Log.File = "/var/log/charpick.log"
	path, err = cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, "/var/log/charpick.log", path)
}

// =============================================================================
// DURATION
// =============================================================================

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"250ms", 250 * time.Millisecond, false},
		{"1.5s", 1500 * time.Millisecond, false},
		{"0", 0, false},
		{"300", 300 * time.Millisecond, false},
		{" 2s ", 2 * time.Second, false},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.in))
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalText(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && d.Std() != tt.want {
				t.Errorf("UnmarshalText(%q) = %v, want %v", tt.in, d.Std(), tt.want)
			}
		})
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantField string
	}{
		{"valid default config", func(c *Config) {}, ""},
		{"debounce disabled", func(c *Config) { c.Search.Debounce = 0 }, ""},
		{"upper-case theme", func(c *Config) { c.UI.Theme = "Dark" }, ""},
		{"relative base url", func(c *Config) { c.Catalog.BaseURL = "rickandmortyapi.com" }, "catalog.base_url"},
		{"ftp base url", func(c *Config) { c.Catalog.BaseURL = "ftp://example.test" }, "catalog.base_url"},
		{"negative timeout", func(c *Config) { c.Catalog.Timeout = Duration(-time.Second) }, "catalog.timeout"},
		{"negative debounce", func(c *Config) { c.Search.Debounce = Duration(-time.Millisecond) }, "search.debounce"},
		{"huge debounce", func(c *Config) { c.Search.Debounce = Duration(time.Minute) }, "search.debounce"},
		{"zero max visible", func(c *Config) { c.Search.MaxVisible = 0 }, "search.max_visible"},
		{"too many visible", func(c *Config) { c.Search.MaxVisible = 51 }, "search.max_visible"},
		{"invalid theme", func(c *Config) { c.UI.Theme = "solarized" }, "ui.theme"},
		{"negative width", func(c *Config) { c.UI.Width = -1 }, "ui.width"},
		{"invalid log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}

			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs), "Validate() error = %v, want ValidateErrors", err)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.wantField, verrs[0].Field)
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.UI.Theme = "neon"
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ui.theme")
	assert.Contains(t, err.Error(), "log.level")
	assert.Contains(t, err.Error(), "; ")
}

// =============================================================================
// LOADING AND SAVING
// =============================================================================

func TestLoadTOML_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[search]
debounce = "400ms"

[ui]
theme = "light"
`)

	cfg, err := LoadTOML(path)
	require.NoError(t, err)

	assert.Equal(t, 400*time.Millisecond, cfg.Search.Debounce.Std())
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Equal(t, 8, cfg.Search.MaxVisible)
	assert.Equal(t, "https://rickandmortyapi.com", cfg.Catalog.BaseURL)
	assert.True(t, cfg.UI.ShowDetails)
}

func TestLoadTOML_IntegerDebounceIsMilliseconds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[search]\ndebounce = 120\n")

	cfg, err := LoadTOML(path)
	require.NoError(t, err)
	assert.Equal(t, 120*time.Millisecond, cfg.Search.Debounce.Std())
}

func TestLoadTOML_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[search\n")

	_, err := LoadTOML(path)
	assert.Error(t, err)
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{"catalog": {"base_url": "http://localhost:8080", "timeout": "3s"}, "log": {"level": "debug"}}`)

	cfg, err := LoadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.Catalog.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Catalog.Timeout.Std())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 250*time.Millisecond, cfg.Search.Debounce.Std())
}

func TestLoadFromPath(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		wantErr bool
	}{
		{"toml", "a.toml", "[ui]\nwidth = 70\n", false},
		{"json", "b.json", `{"ui": {"width": 70}}`, false},
		{"invalid value", "c.toml", "[ui]\ntheme = \"plaid\"\n", true},
		{"missing file", "nope.toml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if tt.content != "" {
				writeFile(t, path, tt.content)
			}

			cfg, err := LoadFromPath(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadFromPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg.UI.Width != 70 {
				t.Errorf("UI.Width = %d, want 70", cfg.UI.Width)
			}
		})
	}
}

func TestLoad_NoFilesUsesDefaults(t *testing.T) {
	isolateHome(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PrefersTOMLOverJSON(t *testing.T) {
	home := isolateHome(t)
	writeFile(t, filepath.Join(home, ".charpick", "config.toml"), "[search]\nmax_visible = 5\n")
	writeFile(t, filepath.Join(home, ".charpick", "config.json"), `{"search": {"max_visible": 12}}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Search.MaxVisible)
}

func TestLoad_BrokenFileStillReturnsConfig(t *testing.T) {
	home := isolateHome(t)
	writeFile(t, filepath.Join(home, ".charpick", "config.toml"), "not = [valid")

	cfg, err := Load()
	assert.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "auto", cfg.UI.Theme)
}

func TestLoad_InvalidFieldsFallBackIndividually(t *testing.T) {
	home := isolateHome(t)
	t.Setenv("CHARPICK_LOG_LEVEL", "debug")
	writeFile(t, filepath.Join(home, ".charpick", "config.toml"), `
[search]
max_visible = 99
placeholder = "Find a Rick..."

[ui]
theme = "neon"
width = 70
`)

	cfg, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search.max_visible")
	assert.Contains(t, err.Error(), "ui.theme")
	require.NotNil(t, cfg)

	if cfg.Search.MaxVisible != 8 {
		t.Errorf("Search.MaxVisible = %d, want default 8", cfg.Search.MaxVisible)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("UI.Theme = %q, want default %q", cfg.UI.Theme, "auto")
	}
	if cfg.Search.Placeholder != "Find a Rick..." {
		t.Errorf("Search.Placeholder = %q, want value from file", cfg.Search.Placeholder)
	}
	if cfg.UI.Width != 70 {
		t.Errorf("UI.Width = %d, want 70 from file", cfg.UI.Width)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q from environment", cfg.Log.Level, "debug")
	}
	assert.NoError(t, cfg.Validate())
}

func TestSaveTOML_ReadsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Search.Debounce = Duration(75 * time.Millisecond)
	cfg.UI.Theme = "dark"
	require.NoError(t, cfg.SaveTOML(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# charpick configuration"))
	assert.Contains(t, string(data), `debounce = "75ms"`)

	loaded, err := LoadTOML(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSave_WritesDefaultLocation(t *testing.T) {
	home := isolateHome(t)

	require.NoError(t, Default().Save())

	_, err := os.Stat(filepath.Join(home, ".charpick", "config.toml"))
	assert.NoError(t, err)
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

func TestConfig_ApplyEnvOverrides(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		check func(t *testing.T, c *Config)
	}{
		{"base url", "CHARPICK_BASE_URL", "http://localhost:9000", func(t *testing.T, c *Config) {
			assert.Equal(t, "http://localhost:9000", c.Catalog.BaseURL)
		}},
		{"debounce duration", "CHARPICK_DEBOUNCE", "0s", func(t *testing.T, c *Config) {
			assert.Equal(t, time.Duration(0), c.Search.Debounce.Std())
		}},
		{"debounce millis", "CHARPICK_DEBOUNCE", "90", func(t *testing.T, c *Config) {
			assert.Equal(t, 90*time.Millisecond, c.Search.Debounce.Std())
		}},
		{"malformed debounce ignored", "CHARPICK_DEBOUNCE", "later", func(t *testing.T, c *Config) {
			assert.Equal(t, 250*time.Millisecond, c.Search.Debounce.Std())
		}},
		{"log level lowered", "CHARPICK_LOG_LEVEL", "DEBUG", func(t *testing.T, c *Config) {
			assert.Equal(t, "debug", c.Log.Level)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateHome(t)
			t.Setenv(tt.key, tt.value)

			cfg := Default()
			cfg.ApplyEnvOverrides()
			tt.check(t, cfg)
		})
	}
}

func TestConfig_SetDefaultsKeepsZeroDebounce(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()

	assert.Equal(t, time.Duration(0), cfg.Search.Debounce.Std())
	assert.Equal(t, 8, cfg.Search.MaxVisible)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Clone(t *testing.T) {
	original := Default()
	clone := original.Clone()
	clone.UI.Theme = "light"

	if original.UI.Theme != "auto" {
		t.Errorf("original UI.Theme = %q after modifying clone, want %q", original.UI.Theme, "auto")
	}
}

// =============================================================================
// GLOBAL
// =============================================================================

// TestConfig_ConcurrentAccess checks Global and SetGlobal under -race.
func TestConfig_ConcurrentAccess(t *testing.T) {
	isolateHome(t)
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			c := Default()
			c.UI.Theme = "dark"
			SetGlobal(c)
		}()

		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}

func TestConfig_SetGlobalOverwrites(t *testing.T) {
	isolateHome(t)
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	_ = Global()

	custom := Default()
	custom.UI.Width = 42
	SetGlobal(custom)

	if got := Global().UI.Width; got != 42 {
		t.Errorf("Global().UI.Width = %d, want 42", got)
	}
}

// =============================================================================
// WATCH
// =============================================================================

func TestWatch_ReloadsOnWrite(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[ui]\nwidth = 10\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 4)
	w, err := NewWatcher(path, func(c *Config) { reloaded <- c })
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)
	go w.Run(ctx)

	cfg := Default()
	cfg.UI.Width = 55
	require.NoError(t, cfg.SaveTOML(path))

	select {
	case got := <-reloaded:
		assert.Equal(t, 55, got.UI.Width)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload after the file changed")
	}
}

func TestWatch_InvalidFileReportsError(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[ui]\nwidth = 10\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errs := make(chan error, 4)
	w, err := NewWatcher(path, func(*Config) {})
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)
	w.OnError(func(err error) { errs <- err })
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(path, []byte("[ui]\ntheme = \"plaid\"\n"), 0600))

	select {
	case err := <-errs:
		assert.Contains(t, err.Error(), "ui.theme")
	case <-time.After(3 * time.Second):
		t.Fatal("no error reported for an invalid file")
	}
}

func TestWatch_IgnoresSiblingFiles(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 1)
	w, err := NewWatcher(path, func(c *Config) { reloaded <- c })
	require.NoError(t, err)
	w.SetDebounce(10 * time.Millisecond)
	go w.Run(ctx)

	writeFile(t, filepath.Join(dir, "other.toml"), "[ui]\nwidth = 1\n")

	select {
	case <-reloaded:
		t.Fatal("reload triggered by an unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatch_EmptyPath(t *testing.T) {
	err := Watch(context.Background(), "", func(*Config) {})
	assert.Error(t, err)
}
