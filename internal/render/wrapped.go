package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/JoshuaShunk/tik-tok-wrapped/internal/insights"
)

const defaultCardWidth = 48

var cardColors = map[string]lipgloss.Color{
	insights.CardShopping:  lipgloss.Color("205"), // pink
	insights.CardExpensive: lipgloss.Color("208"), // orange
	insights.CardMessages:  lipgloss.Color("33"),  // blue
	insights.CardFriends:   lipgloss.Color("99"),  // violet
	insights.CardLogins:    lipgloss.Color("34"),  // green
	insights.CardProfile:   lipgloss.Color("214"), // amber
	insights.CardThanks:    lipgloss.Color("127"), // purple
}

var (
	styleCardTitle   = lipgloss.NewStyle().Bold(true)
	styleCardCaption = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
)

// RenderWrapped draws each card as a bordered box, one below the other.
func RenderWrapped(cards []insights.Card, width int) string {
	if width <= 0 {
		width = defaultCardWidth
	}
	inner := width - 4 // border + padding

	boxes := make([]string, 0, len(cards))
	for _, c := range cards {
		color, ok := cardColors[c.Key]
		if !ok {
			color = lipgloss.Color("252")
		}

		var lines []string
		lines = append(lines, styleCardTitle.Foreground(color).Render(c.Title), "")
		for _, l := range c.Lines {
			lines = append(lines, runewidth.Truncate(l, inner, "..."))
		}
		if c.Caption != "" {
			if len(c.Lines) > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, styleCardCaption.Width(inner).Render(c.Caption))
		}

		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color).
			Padding(0, 1).
			Width(width - 2).
			Render(strings.Join(lines, "\n"))
		boxes = append(boxes, box)
	}
	return lipgloss.JoinVertical(lipgloss.Left, boxes...)
}
