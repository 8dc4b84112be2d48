// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package multiselect provides a searchable multi-select control: a text
// input with the chosen options shown as chips above it and a dropdown of
// lookup results below it.
//
// All state changes go through Reduce. The Bubble Tea Model wraps the reducer,
// owns the text input and spinner, and turns effects into commands.
package multiselect

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/charpick/internal/model"
	"github.com/jeranaias/charpick/internal/ui/components"
	"github.com/jeranaias/charpick/internal/ui/styles"
)

// Defaults applied by New for zero Config fields.
const (
	DefaultDebounce    = 250 * time.Millisecond
	DefaultMaxVisible  = 8
	DefaultWidth       = 60
	DefaultPlaceholder = "Search..."
)

// SearchFunc looks up candidates for text. It is called from a command
// goroutine; ctx is cancelled when a newer lookup supersedes this one.
type SearchFunc func(ctx context.Context, text string) (model.OptionList, error)

// Config configures a control.
type Config struct {
	// Value seeds the selection.
	Value model.OptionList

	// OnSearch performs the lookup. A nil OnSearch yields no candidates.
	OnSearch SearchFunc

	// OnChange is called with the new selection after every select/unselect.
	OnChange func(model.OptionList)

	Placeholder string

	// Debounce delays lookups while typing. Zero disables debouncing.
	Debounce time.Duration

	// MaxVisible caps the number of dropdown rows (default 8).
	MaxVisible int

	// Width of the control in cells (default 60).
	Width int

	// CursorMode sets the input cursor behaviour. The zero value blinks.
	CursorMode cursor.Mode

	Theme  *styles.Theme
	KeyMap *KeyMap
}

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Model is the Bubble Tea model of the control.
type Model struct {
	id      int
	state   State
	input   textinput.Model
	spinner components.Spinner
	keys    KeyMap
	theme   *styles.Theme

	onSearch SearchFunc
	onChange func(model.OptionList)

	debounce   time.Duration
	maxVisible int
	width      int

	// cancel aborts the lookup that is currently in flight.
	cancel context.CancelFunc

	// Screen position of the control's top-left cell, for mouse hit-testing.
	originX, originY int
}

// New creates a blurred control.
func New(cfg Config) Model {
	theme := cfg.Theme
	if theme == nil {
		theme = styles.NewTheme()
	}
	keys := DefaultKeyMap()
	if cfg.KeyMap != nil {
		keys = *cfg.KeyMap
	}
	if cfg.Placeholder == "" {
		cfg.Placeholder = DefaultPlaceholder
	}
	if cfg.MaxVisible <= 0 {
		cfg.MaxVisible = DefaultMaxVisible
	}
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = cfg.Placeholder
	ti.PromptStyle = theme.InputPrompt
	ti.TextStyle = theme.InputText
	ti.PlaceholderStyle = theme.InputPlaceholder
	ti.Cursor.SetMode(cfg.CursorMode)

	sp := components.NewSpinner()
	sp.SetMessage("Loading")

	m := Model{
		id:         nextID(),
		state:      NewState(cfg.Value),
		input:      ti,
		spinner:    sp,
		keys:       keys,
		theme:      theme,
		onSearch:   cfg.OnSearch,
		onChange:   cfg.OnChange,
		debounce:   cfg.Debounce,
		maxVisible: cfg.MaxVisible,
	}
	m.SetWidth(cfg.Width)
	return m
}

// =============================================================================
// IMPERATIVE HANDLE
// =============================================================================

// ID identifies this control in ChangedMsg and BlurredMsg.
func (m Model) ID() int { return m.id }

// State returns a copy of the reducer state.
func (m Model) State() State { return m.state }

// Selected returns a copy of the current selection.
func (m Model) Selected() model.OptionList {
	return m.state.Selection.Items()
}

// Visible returns the candidates shown in the dropdown.
func (m Model) Visible() model.OptionList {
	return m.state.Visible()
}

// Highlighted returns the candidate under the cursor.
func (m Model) Highlighted() (model.Option, bool) {
	return m.state.Focused()
}

// Loading reports whether a lookup is pending.
func (m Model) Loading() bool { return m.state.Loading }

// Focused reports whether the control has focus.
func (m Model) Focused() bool { return m.state.Open }

// Input exposes the underlying text input.
func (m *Model) Input() *textinput.Model { return &m.input }

// KeyMap returns the control's bindings, e.g. for a help view.
func (m Model) KeyMap() KeyMap { return m.keys }

// SetValue re-synchronizes the selection from outside. A nil value is
// ignored. OnChange is not called.
func (m *Model) SetValue(value model.OptionList) {
	m.dispatch(EventValueSynced{Value: value})
}

// SetQuery replaces the search text as if the user had typed it.
func (m *Model) SetQuery(text string) tea.Cmd {
	m.input.SetValue(text)
	return m.dispatch(EventQueryChanged{Text: text})
}

// Focus focuses the input, opens the dropdown and schedules a lookup.
func (m *Model) Focus() tea.Cmd {
	inputCmd := m.input.Focus()
	return tea.Batch(inputCmd, m.dispatch(EventFocus{}))
}

// Blur removes focus and closes the dropdown.
func (m *Model) Blur() {
	m.input.Blur()
	m.dispatch(EventBlur{})
}

// SetOrigin records where the host draws the control, for mouse handling.
func (m *Model) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
}

// SetDebounce changes the lookup debounce. Zero disables it.
func (m *Model) SetDebounce(d time.Duration) {
	if d < 0 {
		d = 0
	}
	m.debounce = d
}

// SetMaxVisible changes the dropdown height.
func (m *Model) SetMaxVisible(n int) {
	if n <= 0 {
		n = DefaultMaxVisible
	}
	m.maxVisible = n
}

// SetWidth changes the control width.
func (m *Model) SetWidth(w int) {
	if w < 20 {
		w = 20
	}
	m.width = w
	m.input.Width = w - len(m.input.Prompt) - 1
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init returns no command; lookups start on Focus.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles a message and returns the updated control.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case debounceMsg:
		if msg.id != m.id {
			return m, nil
		}
		return m, m.dispatch(EventSearchStarted{Seq: msg.seq})

	case searchResultMsg:
		if msg.id != m.id {
			return m, nil
		}
		if msg.seq == m.state.Seq && m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		return m, m.dispatch(EventSearchResolved{Seq: msg.seq, Options: msg.options, Err: msg.err})

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if !m.state.Open {
			return m, nil
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Blur):
		m.Blur()
		id := m.id
		return m, func() tea.Msg { return BlurredMsg{ID: id} }

	case key.Matches(msg, m.keys.Up):
		return m, m.dispatch(EventCursorUp{})

	case key.Matches(msg, m.keys.Down):
		return m, m.dispatch(EventCursorDown{})

	case key.Matches(msg, m.keys.Tab):
		if len(m.state.Visible()) == 0 {
			return m, nil
		}
		return m, m.dispatch(EventToggleFocused{})

	case key.Matches(msg, m.keys.Toggle):
		return m, m.dispatch(EventToggleFocused{})

	case key.Matches(msg, m.keys.RemoveLast) && m.input.Value() == "":
		return m, m.dispatch(EventRemoveLast{})
	}

	prev := m.input.Value()
	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	if m.input.Value() == prev {
		return m, inputCmd
	}
	return m, tea.Batch(inputCmd, m.dispatch(EventQueryChanged{Text: m.input.Value()}))
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	x, y := msg.X-m.originX, msg.Y-m.originY
	_, lay := m.render()

	switch msg.Type {
	case tea.MouseWheelUp:
		if m.state.Open && lay.contains(x, y) {
			return m, m.dispatch(EventCursorUp{})
		}
	case tea.MouseWheelDown:
		if m.state.Open && lay.contains(x, y) {
			return m, m.dispatch(EventCursorDown{})
		}
	case tea.MouseLeft:
		if !lay.contains(x, y) {
			if m.state.Open {
				m.Blur()
			}
			return m, nil
		}
		if chip, ok := lay.chipAt(x, y); ok {
			return m, m.dispatch(EventUnselect{Option: chip})
		}
		if idx, ok := lay.rowAt(y); ok {
			cmd := m.dispatch(EventCursorTo{Index: idx})
			return m, tea.Batch(cmd, m.dispatch(EventToggleFocused{}))
		}
		if !m.state.Open {
			return m, m.Focus()
		}
	}
	return m, nil
}

// View renders chips, input and, while open, the dropdown.
func (m Model) View() string {
	view, _ := m.render()
	return view
}

// =============================================================================
// EFFECTS
// =============================================================================

// dispatch runs ev through the reducer, keeps the input and spinner in step
// with the new state, and converts effects into commands.
func (m *Model) dispatch(ev Event) tea.Cmd {
	next, effects := Reduce(m.state, ev)
	m.state = next

	if m.input.Value() != m.state.Query {
		m.input.SetValue(m.state.Query)
	}

	var cmds []tea.Cmd
	for _, eff := range effects {
		cmds = append(cmds, m.run(eff))
	}
	cmds = append(cmds, m.syncSpinner())
	return tea.Batch(cmds...)
}

func (m *Model) run(eff Effect) tea.Cmd {
	id := m.id

	switch eff := eff.(type) {
	case EffectSchedule:
		if m.debounce <= 0 {
			return m.dispatch(EventSearchStarted{Seq: eff.Seq})
		}
		seq := eff.Seq
		return tea.Tick(m.debounce, func(time.Time) tea.Msg {
			return debounceMsg{id: id, seq: seq}
		})

	case EffectSearch:
		if m.cancel != nil {
			m.cancel()
		}
		ctx, cancel := context.WithCancel(context.Background())
		m.cancel = cancel

		search := m.onSearch
		seq, query := eff.Seq, eff.Query
		return func() tea.Msg {
			if search == nil {
				return searchResultMsg{id: id, seq: seq}
			}
			options, err := search(ctx, query)
			return searchResultMsg{id: id, seq: seq, options: options, err: err}
		}

	case EffectChanged:
		if m.onChange != nil {
			m.onChange(eff.Selected.Clone())
		}
		selected := eff.Selected
		return func() tea.Msg { return ChangedMsg{ID: id, Selected: selected} }
	}
	return nil
}

func (m *Model) syncSpinner() tea.Cmd {
	if m.state.Loading {
		return m.spinner.Start()
	}
	m.spinner.Stop()
	return nil
}
