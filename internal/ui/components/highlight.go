// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// SUBSTRING HIGHLIGHTING
// =============================================================================

// MatchRange finds the first case-insensitive occurrence of query in text.
// Both strings are NFC-normalized first, so a decomposed "é" in the query
// matches a precomposed one in the text. Start and end are rune offsets into
// the normalized text.
func MatchRange(text, query string) (start, end int, ok bool) {
	q := []rune(norm.NFC.String(strings.TrimSpace(query)))
	if len(q) == 0 {
		return 0, 0, false
	}
	t := []rune(norm.NFC.String(text))
	needle := string(q)

	for i := 0; i+len(q) <= len(t); i++ {
		if strings.EqualFold(string(t[i:i+len(q)]), needle) {
			return i, i + len(q), true
		}
	}
	return 0, 0, false
}

// Highlight renders text with the first match of query in the match style and
// everything else in the base style. Without a match the text is rendered
// plain in the base style.
func Highlight(text, query string, base, match lipgloss.Style) string {
	start, end, ok := MatchRange(text, query)
	if !ok {
		return base.Render(text)
	}

	runes := []rune(norm.NFC.String(text))
	var b strings.Builder
	if start > 0 {
		b.WriteString(base.Render(string(runes[:start])))
	}
	b.WriteString(match.Render(string(runes[start:end])))
	if end < len(runes) {
		b.WriteString(base.Render(string(runes[end:])))
	}
	return b.String()
}
