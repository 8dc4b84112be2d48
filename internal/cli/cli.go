// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/jeranaias/charpick/internal/config"
	"github.com/jeranaias/charpick/internal/export"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// ErrHelp is returned by Parse when -h or --help was given.
var ErrHelp = pflag.ErrHelp

// Args holds the parsed command line.
type Args struct {
	ConfigPath string
	Query      string
	Select     []int
	Format     string
	Output     string
	// FrontMatter adds count and export time to markdown output.
	FrontMatter bool
	NoTUI       bool
	BaseURL     string
	Debounce    time.Duration
	LogFile     string
	LogLevel    string
	Theme       string
	Version     bool

	// debounceSet records an explicit --debounce, since zero is meaningful.
	debounceSet bool
}

const usageHeader = `charpick - pick Rick and Morty characters from the terminal

Usage:
  charpick [flags]

Type to search the character directory, Enter toggles the highlighted
character, Esc closes the list and Enter again confirms. The selection is
written to stdout on exit.

Flags:
`

// Parse parses argv (without the program name). Usage and parse errors are
// written to stderr.
func Parse(argv []string, stderr io.Writer) (Args, error) {
	var (
		args   Args
		selRaw string
	)

	fs := pflag.NewFlagSet("charpick", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false
	fs.Usage = func() {
		fmt.Fprint(stderr, usageHeader)
		fmt.Fprint(stderr, fs.FlagUsages())
	}

	fs.StringVar(&args.ConfigPath, "config", "", "config file (default ~/.charpick/config.toml)")
	fs.StringVarP(&args.Query, "query", "q", "", "initial search text")
	fs.StringVarP(&selRaw, "select", "s", "", "comma-separated character ids to preselect")
	fs.StringVarP(&args.Format, "format", "f", export.FormatJSON, "output format: "+strings.Join(export.Formats(), ", "))
	fs.StringVarP(&args.Output, "output", "o", "", "write the selection to a file instead of stdout")
	fs.BoolVar(&args.FrontMatter, "front-matter", false, "prefix markdown output with count and export time")
	fs.BoolVar(&args.NoTUI, "no-tui", false, "search once with --query and print the results")
	fs.StringVar(&args.BaseURL, "base-url", "", "character directory base URL")
	fs.DurationVar(&args.Debounce, "debounce", 0, "delay before searching while typing (e.g. 250ms, 0 disables)")
	fs.StringVar(&args.LogFile, "log-file", "", "log file (default ~/.charpick/charpick.log)")
	fs.StringVar(&args.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&args.Theme, "theme", "", "color theme: auto, dark, light")
	fs.BoolVarP(&args.Version, "version", "v", false, "print version and exit")

	if err := fs.Parse(argv); err != nil {
		return Args{}, err
	}
	if fs.NArg() > 0 {
		return Args{}, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	args.debounceSet = fs.Changed("debounce")
	if args.debounceSet && args.Debounce < 0 {
		return Args{}, errors.New("--debounce must not be negative")
	}

	if _, err := export.ForFormat(args.Format, nil); err != nil {
		return Args{}, err
	}

	ids, err := ParseIDs(selRaw)
	if err != nil {
		return Args{}, fmt.Errorf("--select: %w", err)
	}
	args.Select = ids

	return args, nil
}

// ParseIDs parses a comma-separated list of positive character ids.
// Duplicates are dropped, keeping the first occurrence.
func ParseIDs(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var ids []int
	seen := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := ParseIntWithValidation(part, "character id")
		if err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// ParseIntWithValidation parses a positive integer, naming the field in
// errors.
func ParseIntWithValidation(s string, fieldName string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("%s is required", fieldName)
	}

	val, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", fieldName, err)
	}

	if val <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", fieldName, val)
	}

	return val, nil
}

// Apply overrides cfg with the flags that were given and validates the
// result. Flags win over the config file, which wins over defaults.
func (a Args) Apply(cfg *config.Config) error {
	if a.BaseURL != "" {
		cfg.Catalog.BaseURL = a.BaseURL
	}
	if a.debounceSet {
		cfg.Search.Debounce = config.Duration(a.Debounce)
	}
	if a.LogFile != "" {
		cfg.Log.File = a.LogFile
	}
	if a.LogLevel != "" {
		cfg.Log.Level = strings.ToLower(a.LogLevel)
	}
	if a.Theme != "" {
		cfg.UI.Theme = strings.ToLower(a.Theme)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// VersionString describes the build.
func VersionString() string {
	return fmt.Sprintf("charpick %s (commit %s, built %s)", Version, GitCommit, BuildDate)
}
