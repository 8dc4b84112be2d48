// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/charpick/internal/model"
)

var selection = model.OptionList{
	{Value: "1", Label: "Rick Sanchez", Image: "https://example.test/1.jpeg", Description: "51 Episodes"},
	{Value: "3", Label: "Summer Smith"},
}

func TestJSONExporter(t *testing.T) {
	out, err := NewJSONExporter(nil).Export(selection)
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text, "[\n  {"), "indented array, got %q", text)
	assert.True(t, strings.HasSuffix(text, "]\n"))
	assert.Contains(t, text, `"label": "Rick Sanchez"`)
	assert.Contains(t, text, `"description": "51 Episodes"`)

	var decoded model.OptionList
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, selection, decoded)
	assert.Equal(t, 1, strings.Count(text, `"image"`), "absent image is omitted")
}

func TestJSONExporter_Empty(t *testing.T) {
	out, err := NewJSONExporter(nil).Export(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(out))
}

func TestTextExporter(t *testing.T) {
	tests := []struct {
		name    string
		options model.OptionList
		want    string
	}{
		{"selection", selection, "1\tRick Sanchez\n3\tSummer Smith\n"},
		{"empty", nil, ""},
		{"tabs in label collapse", model.OptionList{{Value: "9", Label: "Mr.\tPoopy\nButthole"}}, "9\tMr. Poopy Butthole\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewTextExporter(nil).Export(tt.options)
			if err != nil {
				t.Fatalf("Export() error = %v", err)
			}
			if string(out) != tt.want {
				t.Errorf("Export() = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestMarkdownExporter(t *testing.T) {
	out, err := NewMarkdownExporter(nil).Export(selection)
	require.NoError(t, err)

	want := "# Selected characters\n\n" +
		"- [Rick Sanchez](https://example.test/1.jpeg) (#1): 51 Episodes\n" +
		"- Summer Smith (#3)\n"
	assert.Equal(t, want, string(out))
}

func TestMarkdownExporter_EscapesLabels(t *testing.T) {
	out, err := NewMarkdownExporter(nil).Export(model.OptionList{{Value: "7", Label: "*Evil* Morty_[C-137]"}})
	require.NoError(t, err)
	assert.Contains(t, string(out), `- \*Evil\* Morty\_\[C-137\] (#7)`)
}

func TestMarkdownExporter_Metadata(t *testing.T) {
	opts := &Options{
		IncludeMetadata: true,
		Now:             func() time.Time { return time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC) },
	}

	out, err := NewMarkdownExporter(opts).Export(selection)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(out), "---\ncount: 2\nexported: 2026-10-15T09:30:00Z\ngenerator: charpick\n---\n\n"))
}

func TestMarkdownExporter_Empty(t *testing.T) {
	out, err := NewMarkdownExporter(nil).Export(nil)
	require.NoError(t, err)
	assert.Contains(t, string(out), "_None selected._")
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		name    string
		wantExt string
		wantErr bool
	}{
		{"json", ".json", false},
		{"JSON", ".json", false},
		{"text", ".txt", false},
		{"txt", ".txt", false},
		{"markdown", ".md", false},
		{" md ", ".md", false},
		{"html", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp, err := ForFormat(tt.name, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ForFormat(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if !tt.wantErr && exp.FileExtension() != tt.wantExt {
				t.Errorf("FileExtension() = %q, want %q", exp.FileExtension(), tt.wantExt)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "text", selection, nil))
	assert.Equal(t, "1\tRick Sanchez\n3\tSummer Smith\n", buf.String())

	err := Write(&buf, "yaml", selection, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown export format")
}

func TestExportToFile(t *testing.T) {
	dir := t.TempDir()

	path, err := ExportToFile(filepath.Join(dir, "picks"), selection, NewMarkdownExporter(nil))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "picks.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Rick Sanchez")

	path, err = ExportToFile(filepath.Join(dir, "picks.out"), selection, NewJSONExporter(nil))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "picks.out"), path, "an explicit extension is kept")
}

func TestMimeTypes(t *testing.T) {
	assert.Equal(t, "application/json", NewJSONExporter(nil).MimeType())
	assert.Equal(t, "text/plain", NewTextExporter(nil).MimeType())
	assert.Equal(t, "text/markdown", NewMarkdownExporter(nil).MimeType())
}
