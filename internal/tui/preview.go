package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JoshuaShunk/tik-tok-wrapped/internal/parse"
	"github.com/JoshuaShunk/tik-tok-wrapped/internal/render"
)

// previewRenderedMsg is sent when an async preview render completes.
type previewRenderedMsg struct {
	key     string
	content string
	hitLine int
	err     error
}

// loadPreviewCmd renders the selected conversation off the update loop.
func loadPreviewCmd(data *parse.Model, owner string, e entry, query string, width int) tea.Cmd {
	return func() tea.Msg {
		content, hitLine, err := render.RenderConversation(data, e.contact, render.Options{
			Owner:    owner,
			HitIndex: e.hit,
			Context:  -1,
			Width:    width,
			Query:    query,
		})
		return previewRenderedMsg{
			key:     e.key(),
			content: content,
			hitLine: hitLine,
			err:     err,
		}
	}
}

func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = stylePanelBorder
	return vp
}
