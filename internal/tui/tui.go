package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/JoshuaShunk/tik-tok-wrapped/internal/parse"
	"github.com/JoshuaShunk/tik-tok-wrapped/internal/render"
	"github.com/JoshuaShunk/tik-tok-wrapped/internal/search"
)

const debounceDelay = 200 * time.Millisecond

type tuiMode int

const (
	modeContacts tuiMode = iota
	modeSearch
)

// message types

type entriesMsg struct {
	mode    tuiMode
	query   string
	entries []entry
	err     error
}

type debounceTickMsg struct {
	query string
}

// model

type model struct {
	data        *parse.Model
	owner       string
	searchOpts  search.Options
	mode        tuiMode
	query       string
	entries     []entry
	cursor      int
	listOffset  int
	filterInput textinput.Model
	preview     viewport.Model
	previewKey  string // entry key of the rendered preview
	width       int
	height      int
	ready       bool
	quitting    bool
	selected    *entry
}

func initialModel(data *parse.Model, owner, query string, mode tuiMode, opts search.Options) model {
	ti := textinput.New()
	ti.Focus()
	ti.SetValue(query)
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256

	m := model{
		data:        data,
		owner:       owner,
		searchOpts:  opts,
		mode:        mode,
		query:       query,
		filterInput: ti,
		preview:     viewport.New(0, 0),
	}
	m.setPlaceholder()
	return m
}

// RunContacts starts the browser on the contact list.
func RunContacts(data *parse.Model, owner string) error {
	return run(initialModel(data, owner, "", modeContacts, search.Options{}))
}

// RunSearch starts the browser on message search results for query.
func RunSearch(data *parse.Model, owner, query string, opts search.Options) error {
	return run(initialModel(data, owner, query, modeSearch, opts))
}

// run blocks until the program exits. Choosing a conversation copies its
// transcript to the clipboard.
func run(m model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	fm := finalModel.(model)
	if fm.selected != nil {
		return copyTranscript(fm.data, fm.selected.contact)
	}
	return nil
}

func copyTranscript(data *parse.Model, contact string) error {
	text := render.Transcript(data, contact)
	if text == "" {
		return fmt.Errorf("no messages with %s", contact)
	}
	if err := clipboard.WriteAll(text); err != nil {
		fmt.Print(text)
		return nil
	}
	n := strings.Count(text, "\n")
	fmt.Printf("Copied %d messages with %s to clipboard\n", n, contact)
	return nil
}

// Init triggers the initial load.
func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.load(m.query))
}

// Update handles messages.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.preview = newViewport(m.previewWidth(), m.panelHeight())
		m.previewKey = ""
		cmds = append(cmds, m.loadCurrentPreview())
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Enter):
			if e, ok := m.current(); ok {
				m.selected = &e
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, keys.Toggle):
			if m.mode == modeContacts {
				m.mode = modeSearch
			} else {
				m.mode = modeContacts
			}
			m.setPlaceholder()
			return m, m.load(m.query)

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.entries)-1 {
				m.cursor++
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.PreviewUp):
			m.preview.LineUp(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PreviewDn):
			m.preview.LineDown(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PageUp):
			m.preview.LineUp(m.panelHeight())
			return m, nil

		case key.Matches(msg, keys.PageDown):
			m.preview.LineDown(m.panelHeight())
			return m, nil
		}

		var tiCmd tea.Cmd
		m.filterInput, tiCmd = m.filterInput.Update(msg)
		cmds = append(cmds, tiCmd)

		if q := m.filterInput.Value(); q != m.query {
			m.query = q
			cmds = append(cmds, scheduleDebounce(q))
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if !m.ready || len(m.entries) == 0 {
			return m, nil
		}

		region, itemIdx := m.hitTest(msg.X, msg.Y)

		switch {
		case region == regionList && msg.Button == tea.MouseButtonWheelUp:
			if m.listOffset > 0 {
				m.listOffset--
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonWheelDown:
			maxOffset := len(m.entries) - m.panelHeight()/linesPerItem
			if maxOffset < 0 {
				maxOffset = 0
			}
			if m.listOffset < maxOffset {
				m.listOffset++
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			if itemIdx >= 0 && itemIdx < len(m.entries) && m.cursor != itemIdx {
				m.cursor = itemIdx
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case region == regionPreview && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown):
			var vpCmd tea.Cmd
			m.preview, vpCmd = m.preview.Update(msg)
			return m, vpCmd
		}
		return m, nil

	case debounceTickMsg:
		if msg.query == m.query {
			cmds = append(cmds, m.load(msg.query))
		}
		return m, tea.Batch(cmds...)

	case entriesMsg:
		if msg.query != m.query || msg.mode != m.mode {
			return m, nil // stale
		}
		m.cursor = 0
		m.listOffset = 0
		m.previewKey = ""
		if msg.err != nil {
			m.entries = nil
			m.preview.SetContent("Error: " + msg.err.Error())
			return m, nil
		}
		m.entries = msg.entries
		if len(m.entries) == 0 {
			m.preview.SetContent("")
			return m, nil
		}
		return m, m.loadCurrentPreview()

	case previewRenderedMsg:
		e, ok := m.current()
		if !ok || e.key() != msg.key || msg.key == m.previewKey {
			return m, nil
		}
		if msg.err != nil {
			m.preview.SetContent("Preview error: " + msg.err.Error())
		} else {
			m.preview.SetContent(msg.content)
			if msg.hitLine > 0 {
				m.preview.SetYOffset(msg.hitLine)
			} else {
				m.preview.GotoTop()
			}
		}
		m.previewKey = msg.key
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

// View renders the full TUI.
func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	listW := m.listWidth()
	previewW := m.previewWidth()
	panelH := m.panelHeight()

	listPanel := stylePanelBorder.
		Width(listW).
		Height(panelH).
		Render(m.renderList(listW, panelH))

	m.preview.Width = previewW
	m.preview.Height = panelH
	previewPanel := styleActiveBorder.
		Width(previewW).
		Height(panelH).
		Render(m.preview.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, previewPanel)
	return lipgloss.JoinVertical(lipgloss.Left, m.filterInput.View(), panels, m.statusBar())
}

func (m *model) setPlaceholder() {
	if m.mode == modeSearch {
		m.filterInput.Placeholder = "Search messages..."
	} else {
		m.filterInput.Placeholder = "Filter contacts..."
	}
}

func (m model) current() (entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return entry{}, false
	}
	return m.entries[m.cursor], true
}

func (m model) listWidth() int {
	if m.width <= 0 {
		return 40
	}
	// 40% for list, minus border padding
	w := m.width*40/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) previewWidth() int {
	if m.width <= 0 {
		return 60
	}
	w := m.width*60/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// input row (1) + status bar (1) + borders (4)
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

type mouseRegion int

const (
	regionNone mouseRegion = iota
	regionList
	regionPreview
)

// hitTest maps terminal coordinates to a panel region and list item index.
func (m model) hitTest(x, y int) (mouseRegion, int) {
	contentYStart := 2 // input row (1) + top border (1)
	contentYEnd := contentYStart + m.panelHeight() - 1
	if y < contentYStart || y > contentYEnd {
		return regionNone, -1
	}
	relY := y - contentYStart

	lw := m.listWidth()
	if x >= 1 && x <= lw {
		return regionList, m.listOffset + relY/linesPerItem
	}
	if x > lw+2 {
		return regionPreview, -1
	}
	return regionNone, -1
}

func (m model) statusBar() string {
	var parts []string
	if m.mode == modeSearch {
		parts = append(parts, fmt.Sprintf("%d matches", len(m.entries)))
	} else {
		parts = append(parts, fmt.Sprintf("%d contacts", len(m.entries)))
	}
	parts = append(parts, "Tab contacts/messages")
	parts = append(parts, "up/dn navigate")
	parts = append(parts, "C-u/C-d preview")
	parts = append(parts, "Enter copy transcript")
	parts = append(parts, "Esc quit")
	return styleStatusBar.Render(strings.Join(parts, " | "))
}

// load fetches entries for the current mode.
func (m model) load(query string) tea.Cmd {
	data, owner, mode, opts := m.data, m.owner, m.mode, m.searchOpts
	return func() tea.Msg {
		entries, err := buildEntries(data, owner, mode, query, opts)
		return entriesMsg{mode: mode, query: query, entries: entries, err: err}
	}
}

func buildEntries(data *parse.Model, owner string, mode tuiMode, query string, opts search.Options) ([]entry, error) {
	if mode == modeContacts {
		var entries []entry
		for _, c := range search.Contacts(data, query) {
			entries = append(entries, entry{
				contact:  c.Name,
				messages: c.Messages,
				hit:      -1,
				detail:   c.Last,
			})
		}
		return entries, nil
	}

	opts.Query = query
	results, err := search.Search(data, owner, opts)
	if errors.Is(err, search.ErrEmptyQuery) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	entries := make([]entry, 0, len(results))
	for _, r := range results {
		entries = append(entries, entry{
			contact:  r.Contact,
			messages: data.Conversations.MessageCounts[r.Contact],
			hit:      r.Index,
			date:     r.Date,
			detail:   r.Snippet,
			fromMe:   r.FromOwner,
		})
	}
	return entries, nil
}

func scheduleDebounce(query string) tea.Cmd {
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceTickMsg{query: query}
	})
}

func (m model) loadCurrentPreview() tea.Cmd {
	e, ok := m.current()
	if !ok || e.key() == m.previewKey {
		return nil
	}
	query := ""
	if m.mode == modeSearch {
		query = m.query
	}
	return loadPreviewCmd(m.data, m.owner, e, query, m.previewWidth())
}
