// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package multiselect

import (
	"github.com/jeranaias/charpick/internal/model"
)

// =============================================================================
// INTERNAL MESSAGES
// =============================================================================

// Every internal message carries the id of the control that produced it, so
// several controls can share one program.

// debounceMsg fires when the debounce for a scheduled lookup elapses.
type debounceMsg struct {
	id  int
	seq uint64
}

// searchResultMsg delivers the outcome of one lookup.
type searchResultMsg struct {
	id      int
	seq     uint64
	options model.OptionList
	err     error
}

// =============================================================================
// HOST MESSAGES
// =============================================================================

// ChangedMsg is emitted after every select or unselect with the new selection.
// It is the message form of Config.OnChange.
type ChangedMsg struct {
	ID       int
	Selected model.OptionList
}

// BlurredMsg is emitted when the control gives up focus on Escape.
type BlurredMsg struct {
	ID int
}
