package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/JoshuaShunk/tik-tok-wrapped/internal/parse"
)

const (
	colorReset   = "\033[0m"
	colorOwner   = "\033[1;34m" // bold blue
	colorContact = "\033[1;32m" // bold green
	colorDim     = "\033[2m"
	colorHit     = "\033[43m"   // yellow background
	colorBoldRed = "\033[1;31m" // bold red for keyword highlights
)

type Options struct {
	Owner    string // messages from this sender are marked as sent
	HitIndex int    // chronological index to highlight, -1 for none
	Context  int    // messages before/after hit to show, <0 for all
	Width    int    // wrap width (0 = no wrap)
	Query    string // search query for keyword highlighting
}

// highlightKeywords wraps case-insensitive matches of query terms in bold red ANSI codes.
func highlightKeywords(text, query string) string {
	for _, term := range strings.Fields(query) {
		lower := strings.ToLower(term)
		i := 0
		for i < len(text) {
			idx := strings.Index(strings.ToLower(text[i:]), lower)
			if idx < 0 {
				break
			}
			pos := i + idx
			if pos+len(term) > len(text) {
				break
			}
			orig := text[pos : pos+len(term)]
			replacement := colorBoldRed + orig + colorReset
			text = text[:pos] + replacement + text[pos+len(term):]
			i = pos + len(replacement)
		}
	}
	return text
}

// indentLines prepends each line of text with the given prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

func isOwner(sender, owner string) bool {
	return owner != "" && strings.EqualFold(strings.TrimSpace(sender), owner)
}

// RenderConversation renders a contact's thread in date order and returns the
// content and the 0-based line of the hit message header (-1 if no hit).
func RenderConversation(m *parse.Model, contact string, opts Options) (string, int, error) {
	if opts.Context == 0 {
		opts.Context = 10
	}
	if _, ok := m.Conversations.MessageCounts[contact]; !ok {
		return "", -1, fmt.Errorf("contact not found: %s", contact)
	}

	msgs := m.Conversations.Chronological(contact)
	if len(msgs) == 0 {
		return "(empty conversation)", -1, nil
	}

	start, end := 0, len(msgs)
	if opts.HitIndex >= 0 && opts.HitIndex < len(msgs) && opts.Context > 0 {
		start = max(0, opts.HitIndex-opts.Context)
		end = min(len(msgs), opts.HitIndex+opts.Context+1)
	}

	var b strings.Builder
	hitLine := -1
	lineCount := 0
	separator := colorDim + strings.Repeat("-", 50) + colorReset

	writeLine := func(s string) {
		for _, wl := range wrapLine(s, opts.Width) {
			b.WriteString(wl)
			b.WriteString("\n")
			lineCount++
		}
	}

	writeLine(fmt.Sprintf("%s--- %s (%d messages) ---%s", colorDim, contact, len(msgs), colorReset))
	if start > 0 {
		writeLine(fmt.Sprintf("%s... (%d messages before) ...%s", colorDim, start, colorReset))
	}

	for i := start; i < end; i++ {
		msg := msgs[i]
		if i > start {
			writeLine(separator)
		}

		label, color := msg.Sender, colorContact
		if isOwner(msg.Sender, opts.Owner) {
			label, color = "ME", colorOwner
		}
		if label == "" {
			label = parse.Unknown
		}

		if i == opts.HitIndex {
			hitLine = lineCount
			writeLine(fmt.Sprintf("%s>> %s > %s <<%s", colorHit, label, msg.Date, colorReset))
		} else {
			writeLine(fmt.Sprintf("%s%s >%s %s%s%s", color, label, colorReset, colorDim, msg.Date, colorReset))
		}

		text := highlightKeywords(msg.Content, opts.Query)
		for _, tl := range strings.Split(indentLines(text, "  "), "\n") {
			writeLine(tl)
		}
		writeLine("")
	}

	if after := len(msgs) - end; after > 0 {
		writeLine(fmt.Sprintf("%s... (%d messages after) ...%s", colorDim, after, colorReset))
	}

	return b.String(), hitLine, nil
}

// Transcript renders a contact's thread as plain text, one message per line.
func Transcript(m *parse.Model, contact string) string {
	var b strings.Builder
	for _, msg := range m.Conversations.Chronological(contact) {
		content := strings.ReplaceAll(msg.Content, "\n", " ")
		fmt.Fprintf(&b, "%s %s: %s\n", msg.Date, msg.Sender, content)
	}
	return b.String()
}
