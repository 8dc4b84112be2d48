// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"

	"github.com/jeranaias/charpick/internal/model"
)

// TextExporter writes one "id<TAB>label" line per option, suitable for cut
// and awk.
type TextExporter struct {
	options *Options
}

// NewTextExporter creates a new plain text exporter.
func NewTextExporter(opts *Options) *TextExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &TextExporter{options: opts}
}

// Export converts the selection to tab-separated lines.
func (e *TextExporter) Export(options model.OptionList) ([]byte, error) {
	var buf bytes.Buffer
	for _, o := range options {
		buf.WriteString(singleLine(o.Value))
		buf.WriteByte('\t')
		buf.WriteString(singleLine(o.Label))
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// FileExtension returns the file extension for plain text.
func (e *TextExporter) FileExtension() string {
	return ".txt"
}

// MimeType returns the MIME type for plain text.
func (e *TextExporter) MimeType() string {
	return "text/plain"
}
