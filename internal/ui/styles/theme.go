// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for charpick.
package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme modes accepted by NewThemeWithMode.
const (
	ModeAuto  = "auto"
	ModeDark  = "dark"
	ModeLight = "light"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// CONTROL STYLES
	// ==========================================================================

	Chip             lipgloss.Style
	ChipRemove       lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// DROPDOWN STYLES
	// ==========================================================================

	Dropdown        lipgloss.Style
	Row             lipgloss.Style
	RowFocused      lipgloss.Style
	RowChecked      lipgloss.Style
	RowDescription  lipgloss.Style
	RowImage        lipgloss.Style
	Match           lipgloss.Style
	Empty           lipgloss.Style
	Spinner         lipgloss.Style
	LoadingText     lipgloss.Style
	ScrollIndicator lipgloss.Style

	// ==========================================================================
	// DETAILS AND STATUS STYLES
	// ==========================================================================

	Details      lipgloss.Style
	StatusBar    lipgloss.Style
	StatusValue  lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	t, _ := NewThemeWithMode(ModeAuto)
	return t
}

// NewThemeWithMode creates a theme for the given mode. "auto" asks the
// terminal; "dark" and "light" force the background for adaptive colors.
func NewThemeWithMode(mode string) (*Theme, error) {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeAuto:
		isDark = termenv.HasDarkBackground()
	case ModeDark:
		isDark = true
		lipgloss.SetHasDarkBackground(true)
	case ModeLight:
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	default:
		return nil, fmt.Errorf("unknown theme mode %q (want auto, dark or light)", mode)
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t, nil
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Chips and input
	t.Chip = lipgloss.NewStyle().
		Foreground(ChipFg).
		Background(ChipBg).
		Padding(0, 1)

	t.ChipRemove = lipgloss.NewStyle().
		Foreground(Rose).
		Background(ChipBg).
		Bold(true)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Dropdown
	t.Dropdown = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.Row = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.RowFocused = lipgloss.NewStyle().
		Background(SelectionBg).
		Foreground(TextPrimary).
		Bold(true)

	t.RowChecked = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.RowDescription = lipgloss.NewStyle().
		Foreground(TextMuted).
		PaddingLeft(4)

	t.RowImage = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.Match = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true).
		Underline(true)

	t.Empty = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	t.LoadingText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.ScrollIndicator = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Details pane and status
	t.Details = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(Overlay).
		PaddingLeft(1)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusValue = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns, details pane hidden
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns, details beside the control
)
