// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jeranaias/charpick/internal/model"
	"github.com/jeranaias/charpick/internal/util"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter renders a selection in one output format.
type Exporter interface {
	// Export converts the selection to the target format.
	Export(options model.OptionList) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".md").
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// Format names accepted by ForFormat.
const (
	FormatJSON     = "json"
	FormatText     = "text"
	FormatMarkdown = "markdown"
)

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// IncludeMetadata adds a front matter block to markdown output.
	IncludeMetadata bool

	// Now stamps metadata. Default: time.Now
	Now func() time.Time
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		IncludeMetadata: false,
		Now:             time.Now,
	}
}

func (o *Options) now() time.Time {
	if o == nil || o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

var formats = map[string]func(*Options) Exporter{
	FormatJSON:     func(o *Options) Exporter { return NewJSONExporter(o) },
	FormatText:     func(o *Options) Exporter { return NewTextExporter(o) },
	FormatMarkdown: func(o *Options) Exporter { return NewMarkdownExporter(o) },
	"md":           func(o *Options) Exporter { return NewMarkdownExporter(o) },
	"txt":          func(o *Options) Exporter { return NewTextExporter(o) },
}

// Formats lists the canonical format names.
func Formats() []string {
	return []string{FormatJSON, FormatText, FormatMarkdown}
}

// ForFormat returns the exporter for a format name, ignoring case.
func ForFormat(name string, opts *Options) (Exporter, error) {
	ctor, ok := formats[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		known := Formats()
		sort.Strings(known)
		return nil, fmt.Errorf("unknown export format %q (want %s)", name, strings.Join(known, ", "))
	}
	return ctor(opts), nil
}

// Write renders options in the named format to w.
func Write(w io.Writer, format string, options model.OptionList, opts *Options) error {
	exporter, err := ForFormat(format, opts)
	if err != nil {
		return err
	}
	content, err := exporter.Export(options)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// ExportToFile renders options with exporter and writes them atomically to
// path. An empty extension on path is filled from the exporter.
// Returns the output file path or an error.
func ExportToFile(path string, options model.OptionList, exporter Exporter) (string, error) {
	content, err := exporter.Export(options)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	if !strings.Contains(lastSegment(path), ".") {
		path += exporter.FileExtension()
	}
	if err := util.AtomicWriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

func lastSegment(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// singleLine collapses tabs and newlines so a value fits on one line.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
