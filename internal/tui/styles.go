package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary   = lipgloss.Color("205") // tiktok pink
	colorSecondary = lipgloss.Color("51")  // tiktok cyan
	colorDim       = lipgloss.Color("244")
	colorHighlight = lipgloss.Color("228")
	colorBorder    = lipgloss.Color("237")

	styleInput = lipgloss.NewStyle().Foreground(colorHighlight)

	styleInputPrompt = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)

	styleListSelected = lipgloss.NewStyle().
				Foreground(colorHighlight).
				Bold(true)

	styleCount = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Width(7).
			Align(lipgloss.Right)

	styleOwner = lipgloss.NewStyle().
			Foreground(colorPrimary)

	stylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder)

	styleActiveBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary)

	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)
)
