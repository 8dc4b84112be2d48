// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce collapses the burst of events an editor save produces.
const DefaultWatchDebounce = 100 * time.Millisecond

// Watcher reloads a config file whenever it changes on disk.
//
// The parent directory is watched rather than the file itself, so atomic
// saves that rename a temp file over the target are still seen.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(*Config)
	onError  func(error)
	fs       *fsnotify.Watcher
}

// NewWatcher creates a Watcher for path. onChange receives every reload that
// parses and validates.
func NewWatcher(path string, onChange func(*Config)) (*Watcher, error) {
	if path == "" {
		return nil, errors.New("config: no path to watch")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: create watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("config: watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		debounce: DefaultWatchDebounce,
		onChange: onChange,
		fs:       fs,
	}, nil
}

// SetDebounce overrides DefaultWatchDebounce.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// OnError registers a callback for reloads that fail to parse or validate
// and for errors reported by the watcher itself. The previous config stays
// in effect.
func (w *Watcher) OnError(fn func(error)) {
	w.onError = fn
}

// Run processes events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fs.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.report(err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadFromPath(w.path)
	if err != nil {
		w.report(err)
		return
	}
	if w.onChange != nil {
		w.onChange(cfg)
	}
}

func (w *Watcher) report(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}

// Watch starts a Watcher for path in the background. It returns once the
// watch is established; reloading stops when ctx is done.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	w, err := NewWatcher(path, onChange)
	if err != nil {
		return err
	}
	go w.Run(ctx)
	return nil
}
