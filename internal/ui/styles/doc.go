// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for charpick.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection.

# Color System (colors.go)

  - Purple - Focused rows and the title
  - Cyan - Prompt and query match highlights
  - Emerald - Checked candidates
  - Rose - Chip remove glyph and errors

Chips use ChipBg/ChipFg. Text follows the usual hierarchy:

	TextPrimary   - Main content text
	TextSecondary - Supporting text
	TextMuted     - Descriptions, hints
	TextInverse   - Text on colored backgrounds

# Theme System (theme.go)

	theme, err := styles.NewThemeWithMode("auto")
	if err != nil {
		// unknown mode
	}
	row := theme.RowFocused.Render("Rick Sanchez")
*/
package styles
