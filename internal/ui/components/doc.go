// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI pieces for charpick.

# Progress and Feedback

Spinner (spinner.go) - Animated spinner with a trailing message, used for the
dropdown loading row ("| Loading...").

# Text

MatchRange and Highlight (highlight.go) - Case-insensitive, NFC-normalized
substring matching and rendering for candidate labels.

# Usage Example

	s := components.NewSpinner()
	cmd := s.Start()
	// forward spinner.TickMsg through s.Update
	row := components.Highlight("Rick Sanchez", "sanch", theme.Row, theme.Match)
*/
package components
