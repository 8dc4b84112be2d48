// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared by the picker and the catalog.
package model

// =============================================================================
// SELECTION SET
// =============================================================================

// Selection is the ordered set of chosen options, deduplicated by Value.
// The zero value is an empty selection ready to use.
//
// Selection is a value type: copying it and then mutating the copy through
// Add/Remove never affects the original, because every mutation allocates.
type Selection struct {
	items OptionList
}

// NewSelection builds a selection from seed, keeping the first occurrence of
// every id and dropping later duplicates.
func NewSelection(seed OptionList) Selection {
	var s Selection
	s.Reset(seed)
	return s
}

// Reset replaces the selection with the contents of list (deduplicated).
func (s *Selection) Reset(list OptionList) {
	items := make(OptionList, 0, len(list))
	for _, o := range list {
		if items.Contains(o.Value) {
			continue
		}
		items = append(items, o)
	}
	s.items = items
}

// Add appends o unless an option with the same id is already selected.
// It returns true if the selection changed.
func (s *Selection) Add(o Option) bool {
	if s.items.Contains(o.Value) {
		return false
	}
	next := make(OptionList, len(s.items), len(s.items)+1)
	copy(next, s.items)
	s.items = append(next, o)
	return true
}

// Remove removes the first option whose id matches o.Value.
// It returns true if the selection changed.
func (s *Selection) Remove(o Option) bool {
	idx := s.items.Index(o.Value)
	if idx == -1 {
		return false
	}
	next := make(OptionList, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)
	s.items = next
	return true
}

// RemoveLast removes the most recently selected option.
func (s *Selection) RemoveLast() (Option, bool) {
	if len(s.items) == 0 {
		return Option{}, false
	}
	last := s.items[len(s.items)-1]
	s.Remove(last)
	return last, true
}

// Contains reports whether an option with the given id is selected.
func (s Selection) Contains(value string) bool {
	return s.items.Contains(value)
}

// Index returns the position of the option with the given id, or -1.
func (s Selection) Index(value string) int {
	return s.items.Index(value)
}

// Len returns the number of selected options.
func (s Selection) Len() int {
	return len(s.items)
}

// Items returns a copy of the selected options in selection order.
func (s Selection) Items() OptionList {
	out := make(OptionList, len(s.items))
	copy(out, s.items)
	return out
}

// Last returns the most recently selected option.
func (s Selection) Last() (Option, bool) {
	if len(s.items) == 0 {
		return Option{}, false
	}
	return s.items[len(s.items)-1], true
}
