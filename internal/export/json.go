// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/jeranaias/charpick/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports the selection as an indented JSON array.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// Export converts the selection to JSON. An empty selection is "[]".
func (e *JSONExporter) Export(options model.OptionList) ([]byte, error) {
	if options == nil {
		options = model.OptionList{}
	}
	data, err := json.MarshalIndent(options, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
