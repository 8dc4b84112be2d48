// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/charpick/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports the selection as a bulleted list.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts the selection to Markdown. Each option becomes
// "- [Label](image) (#id): description", with the link and description
// dropped when absent.
func (e *MarkdownExporter) Export(options model.OptionList) ([]byte, error) {
	var sb strings.Builder

	if e.options.IncludeMetadata {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("count: %d\n", len(options)))
		sb.WriteString(fmt.Sprintf("exported: %s\n", e.options.now().Format(time.RFC3339)))
		sb.WriteString("generator: charpick\n")
		sb.WriteString("---\n\n")
	}

	sb.WriteString("# Selected characters\n\n")

	if len(options) == 0 {
		sb.WriteString("_None selected._\n")
		return []byte(sb.String()), nil
	}

	for _, o := range options {
		label := escapeMarkdown(singleLine(o.Label))
		if o.Image != "" {
			label = fmt.Sprintf("[%s](%s)", label, o.Image)
		}
		sb.WriteString(fmt.Sprintf("- %s (#%s)", label, escapeMarkdown(o.Value)))
		if o.Description != "" {
			sb.WriteString(": " + escapeMarkdown(singleLine(o.Description)))
		}
		sb.WriteString("\n")
	}
	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// escapeMarkdown escapes characters that would otherwise start markup.
func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
		"[", "\\[",
		"]", "\\]",
		"#", "\\#",
	)
	return replacer.Replace(s)
}
