// charpick - pick Rick and Morty characters from the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/charpick/internal/catalog"
	"github.com/jeranaias/charpick/internal/cli"
	"github.com/jeranaias/charpick/internal/config"
	"github.com/jeranaias/charpick/internal/export"
	"github.com/jeranaias/charpick/internal/model"
	"github.com/jeranaias/charpick/internal/ui/finder"
	"github.com/jeranaias/charpick/internal/ui/styles"
)

func main() {
	args, err := cli.Parse(os.Args[1:], os.Stderr)
	if errors.Is(err, cli.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if args.Version {
		fmt.Println(cli.VersionString())
		return
	}

	if err := run(args, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run loads settings, picks characters interactively or with a single
// lookup, and writes the selection.
func run(args cli.Args, stdout, stderr io.Writer) error {
	cfg, cfgPath, err := loadConfig(args, stderr)
	if err != nil {
		return err
	}

	logger, closeLog, err := openFileLogger(cfg)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	client := catalog.NewClient(&catalog.ClientConfig{
		BaseURL:   cfg.Catalog.BaseURL,
		Timeout:   cfg.Catalog.Timeout.Std(),
		RateLimit: cfg.Catalog.RateLimit,
		RateBurst: cfg.Catalog.RateBurst,
		UserAgent: "charpick/" + cli.Version,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("starting", "version", cli.Version, "base_url", client.BaseURL(), "config", cfgPath)

	seed, err := resolveSeed(ctx, client, args.Select)
	if err != nil {
		return err
	}

	var selected model.OptionList
	if cli.Interactive(args.NoTUI) {
		selected, err = runTUI(ctx, args, cfg, cfgPath, client, seed, logger)
	} else {
		selected, err = runHeadless(ctx, args, client, seed, logger, stderr)
	}
	if err != nil {
		return err
	}

	return writeSelection(args, selected, stdout, stderr)
}

// resolveSeed turns --select ids into options. Unknown ids are dropped.
func resolveSeed(ctx context.Context, client *catalog.Client, ids []int) (model.OptionList, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	characters, err := client.CharactersByID(ctx, ids)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve --select: %w", err)
	}
	return catalog.ToOptions(characters), nil
}

// loadConfig reads the config file named by --config, or the default
// locations, and applies flag overrides. It also returns the path to
// watch for changes, which is empty when no file exists.
func loadConfig(args cli.Args, stderr io.Writer) (*config.Config, string, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)

	if args.ConfigPath != "" {
		cfg, err = config.LoadFromPath(args.ConfigPath)
		if err != nil {
			return nil, "", fmt.Errorf("load config: %w", err)
		}
		path = args.ConfigPath
	} else {
		cfg, err = config.Load()
		if err != nil {
			fmt.Fprintf(stderr, "Warning: %v (using defaults)\n", err)
		}
		if p, perr := config.ConfigPathTOML(); perr == nil {
			if _, serr := os.Stat(p); serr == nil {
				path = p
			}
		}
	}

	if err := args.Apply(cfg); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// openFileLogger logs to a file, since the terminal belongs to the picker.
func openFileLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	path, err := cfg.LogPath()
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	handler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(handler), func() { file.Close() }, nil
}

// =============================================================================
// INTERACTIVE MODE
// =============================================================================

func runTUI(ctx context.Context, args cli.Args, cfg *config.Config, cfgPath string, client *catalog.Client, seed model.OptionList, logger *slog.Logger) (model.OptionList, error) {
	theme, err := styles.NewThemeWithMode(cfg.UI.Theme)
	if err != nil {
		return nil, err
	}

	m := finder.New(finder.Options{
		Search:      finder.NewSearchFunc(client, logger),
		Value:       seed,
		Query:       args.Query,
		Host:        client.BaseURL(),
		Placeholder: cfg.Search.Placeholder,
		Debounce:    cfg.Search.Debounce.Std(),
		MaxVisible:  cfg.Search.MaxVisible,
		MaxWidth:    cfg.UI.Width,
		ShowDetails: cfg.UI.ShowDetails,
		Theme:       theme,
		Logger:      logger,
	})

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
	)

	if cfgPath != "" {
		if err := watchConfig(ctx, cfgPath, args, p, logger); err != nil {
			logger.Warn("config watch disabled", "path", cfgPath, "error", err)
		}
	}

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("run picker: %w", err)
	}

	fm, ok := final.(finder.Model)
	if !ok {
		return nil, fmt.Errorf("unexpected final model %T", final)
	}
	logger.Info("picker closed", "selected", len(fm.Result()), "confirmed", fm.Confirmed())
	return fm.Result(), nil
}

// watchConfig feeds reloaded settings into the running program. Flag
// overrides are re-applied so they keep winning over the file.
func watchConfig(ctx context.Context, path string, args cli.Args, p *tea.Program, logger *slog.Logger) error {
	w, err := config.NewWatcher(path, func(cfg *config.Config) {
		if err := args.Apply(cfg); err != nil {
			logger.Warn("reloaded config rejected", "error", err)
			return
		}
		p.Send(finder.ConfigReloadedMsg{Config: cfg})
	})
	if err != nil {
		return err
	}
	w.OnError(func(err error) {
		logger.Warn("config reload failed", "error", err)
	})
	go w.Run(ctx)
	return nil
}

// =============================================================================
// NON-INTERACTIVE MODE
// =============================================================================

// runHeadless runs one lookup for --query and appends the matches to the
// seed without duplicates. Lookup failures are returned; an empty match is
// not a failure. Without a query only the seed is written, unless no ids
// were given, in which case the whole first page is.
func runHeadless(ctx context.Context, args cli.Args, client *catalog.Client, seed model.OptionList, logger *slog.Logger, stderr io.Writer) (model.OptionList, error) {
	result := model.NewSelection(seed)
	if strings.TrimSpace(args.Query) != "" || len(args.Select) == 0 {
		options, err := client.Search(ctx, args.Query)
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			fmt.Fprintf(stderr, "No characters match %q\n", args.Query)
		case err != nil:
			return nil, fmt.Errorf("search %q: %w", args.Query, err)
		}
		for _, o := range options {
			result.Add(o)
		}
		logger.Info("headless search", "query", args.Query, "results", len(options))
	}
	return result.Items(), nil
}

// =============================================================================
// OUTPUT
// =============================================================================

func writeSelection(args cli.Args, selected model.OptionList, stdout, stderr io.Writer) error {
	opts := export.DefaultOptions()
	opts.IncludeMetadata = args.FrontMatter

	if args.Output == "" {
		return export.Write(stdout, args.Format, selected, opts)
	}

	exporter, err := export.ForFormat(args.Format, opts)
	if err != nil {
		return err
	}
	path, err := export.ExportToFile(args.Output, selected, exporter)
	if err != nil {
		return err
	}
	fmt.Fprintf(stderr, "Wrote %d characters to %s\n", len(selected), path)
	return nil
}
