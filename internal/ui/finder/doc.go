// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package finder provides the character picker screen.
//
// The screen hosts a multiselect control wired to the catalog, a details
// pane for the highlighted character, a status line and a help bar. When
// the program exits, Result holds the chosen characters.
//
// # Key Types
//
//   - Model: the Bubble Tea model for the whole screen
//   - KeyMap: screen-level bindings (confirm, help, quit)
//   - ConfigReloadedMsg: applies a reloaded configuration live
//
// # Usage
//
//	search := finder.NewSearchFunc(client, logger)
//	m := finder.New(finder.Options{Search: search, Host: client.BaseURL()})
//	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
//	selected := final.(finder.Model).Result()
package finder
