// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package finder

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/charpick/internal/model"
	"github.com/jeranaias/charpick/internal/ui/styles"
	"github.com/jeranaias/charpick/internal/util"
)

// View renders the screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.control.View(),
	}
	if details := m.renderDetails(); details != "" {
		sections = append(sections, details)
	}
	sections = append(sections, m.renderStatus(), m.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render(m.title)
	if m.host == "" {
		return m.theme.Header.Render(title)
	}
	host := strings.TrimPrefix(strings.TrimPrefix(m.host, "https://"), "http://")
	return m.theme.Header.Render(title + " " + m.theme.HeaderSubtitle.Render(host))
}

func (m Model) renderDetails() string {
	if !m.showDetails || !m.control.Focused() {
		return ""
	}
	o, ok := m.control.Highlighted()
	if !ok {
		return ""
	}
	return m.theme.Details.Render(m.details.render(o, m.control.State().Query, m.detailsWidth()))
}

func (m Model) detailsWidth() int {
	w := m.controlWidth(m.width)
	if m.width == 0 {
		w = m.controlWidth(80)
	}
	return w
}

// renderStatus renders "N selected · M matches".
func (m Model) renderStatus() string {
	selected := len(m.control.Selected())
	matches := len(m.control.Visible())
	text := fmt.Sprintf("%s selected · %s %s",
		m.theme.StatusValue.Render(fmt.Sprint(selected)),
		m.theme.StatusValue.Render(fmt.Sprint(matches)),
		plural(matches, "match", "matches"),
	)
	return m.theme.StatusBar.Render(text)
}

func (m Model) renderHelp() string {
	return m.help.View(helpKeys{
		screen:  m.keys,
		control: m.control.KeyMap(),
		focused: m.control.Focused(),
	})
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// =============================================================================
// DETAILS PANE
// =============================================================================

// detailsRenderer turns the highlighted option into markdown and renders it
// with glamour. Terminals without colour get plain text instead. The last
// result is cached, since View runs on every frame.
type detailsRenderer struct {
	style string
	plain bool

	renderer *glamour.TermRenderer
	wrap     int

	lastKey string
	lastOut string
}

func newDetailsRenderer(theme *styles.Theme) *detailsRenderer {
	if theme.ColorProfile == termenv.Ascii {
		return &detailsRenderer{plain: true}
	}
	style := "light"
	if theme.IsDark {
		style = "dark"
	}
	return &detailsRenderer{style: style}
}

func (d *detailsRenderer) render(o model.Option, query string, width int) string {
	cacheKey := fmt.Sprintf("%s\x00%s\x00%d", o.Value, query, width)
	if cacheKey == d.lastKey {
		return d.lastOut
	}

	var out string
	if d.plain {
		out = detailsPlain(o, width)
	} else {
		md := detailsMarkdown(o)
		out = md
		if r := d.rendererFor(width); r != nil {
			if rendered, err := r.Render(md); err == nil {
				out = strings.Trim(rendered, "\n")
			}
		}
	}

	d.lastKey, d.lastOut = cacheKey, out
	return out
}

func (d *detailsRenderer) rendererFor(width int) *glamour.TermRenderer {
	if d.renderer != nil && d.wrap == width {
		return d.renderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(d.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	d.renderer, d.wrap = r, width
	return r
}

// detailsMarkdown describes an option as a small markdown document.
func detailsMarkdown(o model.Option) string {
	var b strings.Builder
	b.WriteString("### ")
	b.WriteString(escapeMarkdown(util.TruncateRunes(o.Label, 60)))
	b.WriteString("\n\n")
	if o.Description != "" {
		b.WriteString(escapeMarkdown(o.Description))
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "- **ID:** %s\n", escapeMarkdown(o.Value))
	if o.Image != "" {
		fmt.Fprintf(&b, "- **Image:** <%s>\n", o.Image)
	}
	return b.String()
}

// detailsPlain is the markup-free form of detailsMarkdown.
func detailsPlain(o model.Option, width int) string {
	lines := []string{util.TruncateRunes(o.Label, 60)}
	if o.Description != "" {
		lines = append(lines, o.Description)
	}
	lines = append(lines, "ID: "+o.Value)
	if o.Image != "" {
		lines = append(lines, "Image: "+o.Image)
	}
	if width > 0 {
		for i, l := range lines {
			lines[i] = util.TruncateWidth(l, width)
		}
	}
	return strings.Join(lines, "\n")
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "#", `\#`, "[", `\[`, "]", `\]`, "<", `\<`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
