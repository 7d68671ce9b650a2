package search

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/JoshuaShunk/tik-tok-wrapped/internal/parse"
)

var ErrEmptyQuery = errors.New("empty search query")

type Result struct {
	Contact   string
	Index     int // position in the contact's chronological thread
	Date      string
	Sender    string
	Snippet   string
	FromOwner bool
}

type Options struct {
	Query   string
	Contact string    // "" = all contacts
	Sender  string    // "" = any sender
	Since   time.Time // zero = no filter
	Limit   int
}

// Contact summarizes one conversation for listings.
type Contact struct {
	Name     string
	Messages int
	Sent     int
	Last     string // date of the newest message, "" if none parse
}

// makeSnippet extracts a snippet around the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	lower := strings.ToLower(text)
	qLower := strings.ToLower(query)
	idx := strings.Index(lower, qLower)
	if idx < 0 || len(lower) != len(text) {
		// no match, return head
		if len([]rune(text)) > contextChars*2 {
			return string([]rune(text)[:contextChars*2]) + "..."
		}
		return text
	}
	runes := []rune(text)
	qRunes := []rune(query)
	// find rune position of idx
	runePos := len([]rune(text[:idx]))
	start := runePos - contextChars
	if start < 0 {
		start = 0
	}
	end := runePos + len(qRunes) + contextChars
	if end > len(runes) {
		end = len(runes)
	}
	prefix := ""
	suffix := ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	// wrap the matched part with markers
	snippet := string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+len(qRunes)]) + "<<<" +
		string(runes[runePos+len(qRunes):end])
	return prefix + snippet + suffix
}

// Search finds messages whose content contains the query, case-insensitively,
// newest first.
func Search(m *parse.Model, owner string, opts Options) ([]Result, error) {
	query := strings.TrimSpace(opts.Query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if opts.Limit <= 0 {
		opts.Limit = 100
	}
	qLower := strings.ToLower(query)
	contactFilter := strings.ToLower(strings.TrimSpace(opts.Contact))

	var results []Result
	var times []time.Time
	for _, contact := range m.Conversations.Contacts() {
		if contactFilter != "" && contact != contactFilter {
			continue
		}
		for i, msg := range m.Conversations.Chronological(contact) {
			if !strings.Contains(strings.ToLower(msg.Content), qLower) {
				continue
			}
			if opts.Sender != "" && !strings.EqualFold(strings.TrimSpace(msg.Sender), opts.Sender) {
				continue
			}
			ts := parse.ParseTimestamp(msg.Date)
			if !opts.Since.IsZero() && (ts.IsZero() || ts.Before(opts.Since)) {
				continue
			}
			results = append(results, Result{
				Contact:   contact,
				Index:     i,
				Date:      msg.Date,
				Sender:    msg.Sender,
				Snippet:   makeSnippet(msg.Content, query, 30),
				FromOwner: owner != "" && strings.EqualFold(strings.TrimSpace(msg.Sender), owner),
			})
			times = append(times, ts)
		}
	}

	order := make([]int, len(results))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return times[order[a]].After(times[order[b]])
	})

	sorted := make([]Result, 0, len(results))
	for _, i := range order {
		sorted = append(sorted, results[i])
		if len(sorted) >= opts.Limit {
			break
		}
	}
	return sorted, nil
}

// Contacts lists conversations busiest first. A non-empty filter keeps
// contacts whose name contains it.
func Contacts(m *parse.Model, filter string) []Contact {
	filter = strings.ToLower(strings.TrimSpace(filter))

	sent := map[string]int{}
	for _, s := range m.Conversations.SentMessages {
		sent[s.Contact]++
	}

	var out []Contact
	for _, name := range m.Conversations.Contacts() {
		if filter != "" && !strings.Contains(name, filter) {
			continue
		}
		c := Contact{Name: name, Messages: m.Conversations.MessageCounts[name], Sent: sent[name]}
		var last time.Time
		for _, msg := range m.Conversations.MessagesByContact[name] {
			if ts := parse.ParseTimestamp(msg.Date); ts.After(last) {
				last = ts
				c.Last = msg.Date
			}
		}
		out = append(out, c)
	}
	return out
}
