// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package multiselect

import (
	"strconv"
	"strings"

	"github.com/jeranaias/charpick/internal/model"
	"github.com/jeranaias/charpick/internal/ui/components"
	"github.com/jeranaias/charpick/internal/ui/styles"
	"github.com/jeranaias/charpick/internal/util"
)

const (
	maxChipLabel = 24
	emptyText    = "No options available"
)

// =============================================================================
// LAYOUT
// =============================================================================

// layout records where things were drawn, in cells relative to the origin.
type layout struct {
	width  int
	height int

	chips     []chipBox
	inputLine int
	rows      []rowBox
}

// chipBox is the clickable remove glyph of one chip.
type chipBox struct {
	line   int
	x0, x1 int
	option model.Option
}

// rowBox spans the lines of one dropdown row. index points into Visible().
type rowBox struct {
	first, last int
	index       int
}

func (l layout) contains(x, y int) bool {
	return x >= 0 && x < l.width && y >= 0 && y < l.height
}

func (l layout) chipAt(x, y int) (model.Option, bool) {
	for _, c := range l.chips {
		if y == c.line && x >= c.x0 && x < c.x1 {
			return c.option, true
		}
	}
	return model.Option{}, false
}

func (l layout) rowAt(y int) (int, bool) {
	for _, r := range l.rows {
		if y >= r.first && y <= r.last {
			return r.index, true
		}
	}
	return 0, false
}

// =============================================================================
// RENDERING
// =============================================================================

// render draws the control and returns the layout used for hit-testing.
func (m Model) render() (string, layout) {
	lay := layout{width: m.width}
	var lines []string

	chipLines, chips := m.renderChips()
	lines = append(lines, chipLines...)
	lay.chips = chips

	lay.inputLine = len(lines)
	lines = append(lines, m.input.View())

	if m.state.Open {
		box, rows := m.renderDropdown()
		// Rows start below the top border.
		top := len(lines) + 1
		for _, r := range rows {
			lay.rows = append(lay.rows, rowBox{first: top + r.first, last: top + r.last, index: r.index})
		}
		lines = append(lines, strings.Split(box, "\n")...)
	}

	lay.height = len(lines)
	return strings.Join(lines, "\n"), lay
}

// renderChips lays the selection out as "label ×" chips, wrapping at width.
func (m Model) renderChips() ([]string, []chipBox) {
	items := m.state.Selection.Items()
	if len(items) == 0 {
		return nil, nil
	}

	labelMax := maxChipLabel
	if limit := m.width - 6; limit < labelMax {
		labelMax = limit
	}

	var (
		lines []string
		boxes []chipBox
		cur   strings.Builder
		x     int
	)
	for _, o := range items {
		label := util.TruncateWidth(o.Label, labelMax)
		// " label " plus "× "
		w := util.StringWidth(label) + 4

		if x > 0 && x+1+w > m.width {
			lines = append(lines, cur.String())
			cur.Reset()
			x = 0
		}
		if x > 0 {
			cur.WriteString(" ")
			x++
		}

		cur.WriteString(m.theme.Chip.Render(label))
		cur.WriteString(m.theme.ChipRemove.Render(styles.StatusIndicators.Remove + " "))

		removeAt := x + w - 2
		boxes = append(boxes, chipBox{line: len(lines), x0: removeAt, x1: removeAt + 2, option: o})
		x += w
	}
	lines = append(lines, cur.String())
	return lines, boxes
}

// renderDropdown draws the bordered candidate list. Row positions are
// relative to the first content line of the box.
func (m Model) renderDropdown() (string, []rowBox) {
	inner := m.width - 4 // border and padding
	box := m.theme.Dropdown.Width(m.width - 2)

	if m.state.Loading {
		return box.Render(m.spinner.View()), nil
	}

	visible := m.state.Visible()
	if len(visible) == 0 {
		return box.Render(m.theme.Empty.Render(emptyText)), nil
	}

	start, end := window(len(visible), m.state.Cursor, m.maxVisible)

	var (
		content []string
		rows    []rowBox
	)
	for i := start; i < end; i++ {
		first := len(content)
		content = append(content, m.renderRow(visible[i], i == m.state.Cursor, inner)...)
		rows = append(rows, rowBox{first: first, last: len(content) - 1, index: i})
	}

	if start > 0 || end < len(visible) {
		content = append(content, m.theme.ScrollIndicator.Render(
			strconv.Itoa(start+1)+"-"+strconv.Itoa(end)+" of "+strconv.Itoa(len(visible))))
	}

	return box.Render(strings.Join(content, "\n")), rows
}

// renderRow draws one candidate: cursor, checkbox, highlighted label, image
// marker, and the description on a second line.
func (m Model) renderRow(o model.Option, focused bool, inner int) []string {
	base := m.theme.Row
	cursor := "  "
	if focused {
		base = m.theme.RowFocused
		cursor = "> "
	}

	check := styles.StatusIndicators.Unchecked
	checkStyle := base
	if m.state.Selection.Contains(o.Value) {
		check = styles.StatusIndicators.Checked
		checkStyle = m.theme.RowChecked
	}

	image := ""
	if o.HasImage() {
		image = " " + styles.StatusIndicators.Image
	}

	prefix := cursor + check + " "
	labelMax := inner - util.StringWidth(prefix) - util.StringWidth(image)
	label := util.TruncateWidth(o.Label, labelMax)

	line := base.Render(cursor) +
		checkStyle.Render(check) +
		base.Render(" ") +
		components.Highlight(label, m.state.Query, base, m.theme.Match) +
		m.theme.RowImage.Render(image)

	out := []string{line}
	if o.Description != "" {
		out = append(out, m.theme.RowDescription.Render(util.TruncateWidth(o.Description, inner-4)))
	}
	return out
}

// window returns the [start, end) slice of n items to show, centred on the
// cursor and at most limit long.
func window(n, cursor, limit int) (int, int) {
	if n <= limit {
		return 0, n
	}
	start := cursor - limit/2
	if start < 0 {
		start = 0
	}
	end := start + limit
	if end > n {
		end = n
		start = end - limit
	}
	return start, end
}
