// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package finder

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/charpick/internal/model"
	"github.com/jeranaias/charpick/internal/ui/multiselect"
	"github.com/jeranaias/charpick/internal/ui/styles"
)

// DefaultTitle is shown in the header.
const DefaultTitle = "charpick"

// Options configures the screen.
type Options struct {
	// Search performs lookups; see NewSearchFunc.
	Search multiselect.SearchFunc

	// Value seeds the selection.
	Value model.OptionList

	// Query seeds the search text.
	Query string

	// Host is shown in the header next to the title.
	Host string

	Placeholder string
	Debounce    time.Duration
	MaxVisible  int

	// MaxWidth caps the control width. Zero follows the terminal.
	MaxWidth int

	ShowDetails bool

	// CursorMode is passed to the control's input.
	CursorMode cursor.Mode

	Theme  *styles.Theme
	Keys   *KeyMap
	Logger *slog.Logger
}

// Model is the Bubble Tea model of the picker screen.
type Model struct {
	control multiselect.Model
	keys    KeyMap
	help    help.Model
	theme   *styles.Theme
	logger  *slog.Logger

	details *detailsRenderer

	title    string
	host     string
	maxWidth int

	width  int
	height int

	showDetails bool
	initCmd     tea.Cmd

	result    model.OptionList
	confirmed bool
	quitting  bool
}

// New creates the screen with the control focused.
func New(opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme()
	}
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	logger := orDiscard(opts.Logger)

	m := Model{
		keys:        keys,
		help:        newHelp(theme),
		theme:       theme,
		logger:      logger,
		details:     newDetailsRenderer(theme),
		title:       DefaultTitle,
		host:        opts.Host,
		maxWidth:    opts.MaxWidth,
		showDetails: opts.ShowDetails,
		result:      opts.Value.Clone(),
	}

	m.control = multiselect.New(multiselect.Config{
		Value:       opts.Value,
		OnSearch:    opts.Search,
		Placeholder: opts.Placeholder,
		Debounce:    opts.Debounce,
		MaxVisible:  opts.MaxVisible,
		Width:       m.controlWidth(multiselect.DefaultWidth + 2),
		CursorMode:  opts.CursorMode,
		Theme:       theme,
	})
	m.control.SetOrigin(0, m.headerHeight())

	var cmds []tea.Cmd
	if opts.Query != "" {
		cmds = append(cmds, m.control.SetQuery(opts.Query))
	}
	cmds = append(cmds, m.control.Focus())
	m.initCmd = tea.Batch(cmds...)
	return m
}

func newHelp(theme *styles.Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = theme.ShortcutKey
	h.Styles.ShortDesc = theme.ShortcutDesc
	h.Styles.FullKey = theme.ShortcutKey
	h.Styles.FullDesc = theme.ShortcutDesc
	return h
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Result returns the selection at exit. It is kept on both confirm and quit.
func (m Model) Result() model.OptionList {
	return m.result.Clone()
}

// Confirmed reports whether the user confirmed with Enter rather than quitting.
func (m Model) Confirmed() bool { return m.confirmed }

// Control exposes the embedded search control.
func (m Model) Control() multiselect.Model { return m.control }

// ShowingFullHelp reports whether the expanded help is visible.
func (m Model) ShowingFullHelp() bool { return m.help.ShowAll }

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init focuses the control and runs the first lookup.
func (m Model) Init() tea.Cmd {
	return m.initCmd
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ConfigReloadedMsg:
		return m.handleConfigReloaded(msg)

	case multiselect.ChangedMsg:
		if msg.ID == m.control.ID() {
			m.result = msg.Selected.Clone()
			m.logger.Debug("selection changed", "selected", len(msg.Selected))
		}
		return m, nil

	case multiselect.BlurredMsg:
		return m, nil
	}

	var cmd tea.Cmd
	m.control, cmd = m.control.Update(msg)
	return m, cmd
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	m.help.Width = msg.Width

	m.control.SetWidth(m.controlWidth(msg.Width))
	m.control.SetOrigin(0, m.headerHeight())
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m.quit(false)
	}

	if m.control.Focused() {
		var cmd tea.Cmd
		m.control, cmd = m.control.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		return m.quit(true)

	case key.Matches(msg, m.keys.Focus):
		return m, m.control.Focus()
	}
	return m, nil
}

func (m Model) handleConfigReloaded(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	cfg := msg.Config
	if cfg == nil {
		return m, nil
	}
	m.control.SetDebounce(cfg.Search.Debounce.Std())
	m.control.SetMaxVisible(cfg.Search.MaxVisible)
	m.showDetails = cfg.UI.ShowDetails
	m.maxWidth = cfg.UI.Width
	if m.width > 0 {
		m.control.SetWidth(m.controlWidth(m.width))
	}
	m.logger.Info("configuration reloaded",
		"debounce", cfg.Search.Debounce.String(),
		"max_visible", cfg.Search.MaxVisible,
	)
	return m, nil
}

func (m Model) quit(confirmed bool) (tea.Model, tea.Cmd) {
	m.result = m.control.Selected()
	m.confirmed = confirmed
	m.quitting = true
	m.control.Blur()
	return m, tea.Quit
}

// controlWidth fits the control into a terminal of the given width.
func (m Model) controlWidth(termWidth int) int {
	w := termWidth - 2
	if m.maxWidth > 0 && w > m.maxWidth {
		w = m.maxWidth
	}
	return w
}

func (m Model) headerHeight() int {
	return lipgloss.Height(m.renderHeader())
}
