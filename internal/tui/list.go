package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// linesPerItem is the number of terminal lines each entry occupies.
const linesPerItem = 2

// entry is one row of the left panel: a contact, or a matched message.
type entry struct {
	contact  string
	messages int
	hit      int // chronological index of the matched message, -1 for none
	date     string
	detail   string // last message date, or the match snippet
	fromMe   bool
}

func (e entry) key() string {
	return fmt.Sprintf("%s:%d", e.contact, e.hit)
}

// renderList renders the left panel with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.entries) == 0 {
		label := "No contacts"
		if m.mode == modeSearch {
			label = "No matches"
		}
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(label)
	}

	var lines []string
	for i, e := range m.entries {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		lines = append(lines, formatEntry(e, width, i == m.cursor)...)
	}

	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

// formatEntry formats one entry as two lines:
//
//	line 1: [>] count  contact
//	line 2:    date or snippet (dimmed)
func formatEntry(e entry, width int, selected bool) []string {
	count := styleCount.Render(fmt.Sprintf("%d", e.messages))
	if e.hit >= 0 {
		count = styleCount.Render(shortDate(e.date))
	}

	name := e.contact
	nameMax := width - 2 - 7 - 2
	if nameMax < 0 {
		nameMax = 0
	}
	if runewidth.StringWidth(name) > nameMax {
		name = runewidth.Truncate(name, nameMax, "")
	}

	line1 := count + " " + name
	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	detail := strings.NewReplacer("\n", " ", "\t", " ", ">>>", "", "<<<", "").Replace(e.detail)
	if e.fromMe {
		detail = "me: " + detail
	}
	detailMax := width - 4
	if detailMax < 0 {
		detailMax = 0
	}
	if runewidth.StringWidth(detail) > detailMax {
		detail = runewidth.Truncate(detail, detailMax, "")
	}
	style := lipgloss.NewStyle().Foreground(colorDim)
	if e.fromMe {
		style = styleOwner
	}
	line2 := "    " + style.Render(detail)

	return []string{line1, line2}
}

// shortDate turns "2024-01-27 10:00:00" into "01-27".
func shortDate(date string) string {
	if len(date) >= 10 {
		return date[5:10]
	}
	return date
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
