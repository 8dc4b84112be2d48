// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for charpick.
//
// Supports both TOML and JSON configuration formats, with defaults,
// environment variable overrides, validation and live reload.
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CHARPICK_*)
//   - ~/.charpick/config.toml
//   - ~/.charpick/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Printf("config: %v", err)
//	}
//	debounce := cfg.Search.Debounce.Std()
//
// Watch re-reads a file after it changes and hands the validated result to
// a callback.
package config
