// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package finder

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jeranaias/charpick/internal/ui/multiselect"
)

// KeyMap defines the screen-level bindings. Bindings other than Quit are
// only active while the control is blurred, since they would otherwise
// swallow query text.
type KeyMap struct {
	Focus   key.Binding
	Confirm key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default screen bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Focus: key.NewBinding(
			key.WithKeys("/", "i"),
			key.WithHelp("/", "search"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "confirm"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// helpKeys feeds the help bar with the bindings that apply right now.
type helpKeys struct {
	screen  KeyMap
	control multiselect.KeyMap
	focused bool
}

func (h helpKeys) ShortHelp() []key.Binding {
	if h.focused {
		return append(h.control.ShortHelp(), h.screen.Quit)
	}
	return []key.Binding{h.screen.Focus, h.screen.Confirm, h.screen.Help, h.screen.Quit}
}

func (h helpKeys) FullHelp() [][]key.Binding {
	full := h.control.FullHelp()
	return append(full, []key.Binding{h.screen.Focus, h.screen.Confirm, h.screen.Help, h.screen.Quit})
}
