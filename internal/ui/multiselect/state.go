// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package multiselect

import (
	"github.com/jeranaias/charpick/internal/model"
)

// =============================================================================
// STATE
// =============================================================================

// State is everything the control knows. It is only changed by Reduce.
type State struct {
	// Open is true while the control has focus and shows its dropdown.
	Open bool

	// Loading is true from the moment a lookup is scheduled until the result
	// of the most recently scheduled lookup arrives.
	Loading bool

	// Query is the current search text.
	Query string

	// Candidates holds the last applied lookup result, unfiltered.
	Candidates model.OptionList

	// Selection is the chosen set.
	Selection model.Selection

	// Cursor indexes into Visible().
	Cursor int

	// Seq is the sequence number of the most recently scheduled lookup.
	// Only results carrying this number are applied.
	Seq uint64
}

// NewState returns a closed state seeded with value.
func NewState(value model.OptionList) State {
	return State{Selection: model.NewSelection(value)}
}

// Visible returns the candidates that may be rendered: everything fetched
// minus what is already selected, in fetch order.
func (s State) Visible() model.OptionList {
	return model.FilterWithoutPicked(s.Candidates, s.Selection.Items())
}

// Focused returns the candidate under the cursor.
func (s State) Focused() (model.Option, bool) {
	visible := s.Visible()
	if s.Cursor < 0 || s.Cursor >= len(visible) {
		return model.Option{}, false
	}
	return visible[s.Cursor], true
}

// =============================================================================
// EVENTS
// =============================================================================

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

type (
	// EventFocus opens the control and schedules a lookup.
	EventFocus struct{}

	// EventBlur closes the control.
	EventBlur struct{}

	// EventQueryChanged records new search text.
	EventQueryChanged struct{ Text string }

	// EventSearchStarted fires when the debounce for Seq elapses.
	EventSearchStarted struct{ Seq uint64 }

	// EventSearchResolved carries a lookup result.
	EventSearchResolved struct {
		Seq     uint64
		Options model.OptionList
		Err     error
	}

	// EventSelect adds an option to the selection.
	EventSelect struct{ Option model.Option }

	// EventUnselect removes an option from the selection.
	EventUnselect struct{ Option model.Option }

	// EventRemoveLast drops the most recent chip when the query is empty.
	EventRemoveLast struct{}

	EventCursorUp   struct{}
	EventCursorDown struct{}

	// EventCursorTo moves the cursor to an index in Visible().
	EventCursorTo struct{ Index int }

	// EventToggleFocused selects or unselects the candidate under the cursor.
	EventToggleFocused struct{}

	// EventValueSynced re-synchronizes the selection from outside.
	// A nil Value is ignored.
	EventValueSynced struct{ Value model.OptionList }
)

func (EventFocus) isEvent()          {}
func (EventBlur) isEvent()           {}
func (EventQueryChanged) isEvent()   {}
func (EventSearchStarted) isEvent()  {}
func (EventSearchResolved) isEvent() {}
func (EventSelect) isEvent()         {}
func (EventUnselect) isEvent()       {}
func (EventRemoveLast) isEvent()     {}
func (EventCursorUp) isEvent()       {}
func (EventCursorDown) isEvent()     {}
func (EventCursorTo) isEvent()       {}
func (EventToggleFocused) isEvent()  {}
func (EventValueSynced) isEvent()    {}

// =============================================================================
// EFFECTS
// =============================================================================

// Effect is a side effect requested by Reduce. The Bubble Tea model turns
// effects into commands.
type Effect interface {
	isEffect()
}

type (
	// EffectSchedule asks for a debounced EventSearchStarted{Seq}.
	EffectSchedule struct{ Seq uint64 }

	// EffectSearch asks for a lookup of Query. Its result must come back as
	// EventSearchResolved with the same Seq.
	EffectSearch struct {
		Seq   uint64
		Query string
	}

	// EffectChanged reports a new selection to the host.
	EffectChanged struct{ Selected model.OptionList }
)

func (EffectSchedule) isEffect() {}
func (EffectSearch) isEffect()   {}
func (EffectChanged) isEffect()  {}

// =============================================================================
// REDUCER
// =============================================================================

// Reduce applies ev to s and returns the next state with the effects to run.
// It never mutates s.
func Reduce(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case EventFocus:
		if s.Open {
			return s, nil
		}
		s.Open = true
		return schedule(s)

	case EventBlur:
		s.Open = false
		return s, nil

	case EventQueryChanged:
		if ev.Text == s.Query {
			return s, nil
		}
		s.Query = ev.Text
		if !s.Open {
			return s, nil
		}
		return schedule(s)

	case EventSearchStarted:
		if ev.Seq != s.Seq {
			return s, nil
		}
		if !s.Open {
			// Closed before the debounce elapsed; nothing is in flight.
			s.Loading = false
			return s, nil
		}
		return s, []Effect{EffectSearch{Seq: ev.Seq, Query: s.Query}}

	case EventSearchResolved:
		if ev.Seq != s.Seq {
			return s, nil
		}
		s.Loading = false
		if ev.Err != nil {
			s.Candidates = nil
		} else {
			s.Candidates = ev.Options.Clone()
		}
		s.Cursor = 0
		return clampCursor(s), nil

	case EventSelect:
		return selectOption(s, ev.Option)

	case EventUnselect:
		return unselectOption(s, ev.Option)

	case EventRemoveLast:
		if s.Query != "" {
			return s, nil
		}
		if _, ok := s.Selection.RemoveLast(); !ok {
			return s, nil
		}
		return clampCursor(s), []Effect{EffectChanged{Selected: s.Selection.Items()}}

	case EventCursorUp:
		s.Cursor--
		return clampCursor(s), nil

	case EventCursorDown:
		s.Cursor++
		return clampCursor(s), nil

	case EventCursorTo:
		s.Cursor = ev.Index
		return clampCursor(s), nil

	case EventToggleFocused:
		focused, ok := s.Focused()
		if !ok {
			return s, nil
		}
		if s.Selection.Contains(focused.Value) {
			return unselectOption(s, focused)
		}
		return selectOption(s, focused)

	case EventValueSynced:
		if ev.Value == nil {
			return s, nil
		}
		s.Selection.Reset(ev.Value)
		return clampCursor(s), nil
	}

	return s, nil
}

// schedule assigns the next sequence number and marks the control loading.
func schedule(s State) (State, []Effect) {
	s.Seq++
	s.Loading = true
	return s, []Effect{EffectSchedule{Seq: s.Seq}}
}

// selectOption appends o and clears the query. Clearing the query while open
// schedules a fresh lookup, just like typing would.
func selectOption(s State, o model.Option) (State, []Effect) {
	if !s.Selection.Add(o) {
		return s, nil
	}
	effects := []Effect{EffectChanged{Selected: s.Selection.Items()}}

	if s.Query != "" {
		s.Query = ""
		if s.Open {
			var more []Effect
			s, more = schedule(s)
			effects = append(effects, more...)
		}
	}
	return clampCursor(s), effects
}

func unselectOption(s State, o model.Option) (State, []Effect) {
	if !s.Selection.Remove(o) {
		return s, nil
	}
	return clampCursor(s), []Effect{EffectChanged{Selected: s.Selection.Items()}}
}

func clampCursor(s State) State {
	n := len(s.Visible())
	if s.Cursor >= n {
		s.Cursor = n - 1
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	return s
}
