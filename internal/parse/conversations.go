package parse

import (
	"regexp"
	"sort"
	"strings"
)

const (
	threadDelimiter   = ">>>"
	threadLabelPrefix = "chat history with"
)

var (
	threadHeaderRe = regexp.MustCompile(`(?i)^chat history with\s+(.+?):+\s*$`)
	messageLineRe  = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})\s+([^:]+?):\s?(.*)$`)
)

// ContactFromLabel normalizes a thread label such as "Chat History with Alice:"
// to the contact key "alice". Labels differing only in case or spacing map to
// the same key.
func ContactFromLabel(label string) string {
	s := strings.ToLower(strings.Join(strings.Fields(label), " "))
	s = strings.TrimPrefix(s, threadLabelPrefix)
	s = strings.TrimRight(strings.TrimSpace(s), ":")
	s = strings.TrimSpace(s)
	if s == "" {
		return UnknownContact
	}
	return s
}

// ParseConversationsJSON reads a map of thread label to message array.
// Threads whose labels normalize to the same contact are merged.
func ParseConversationsJSON(threads map[string]any, owner string) (Conversations, []Diagnostic) {
	conv := emptyConversations()
	var diags []Diagnostic

	// sorted labels keep merged threads in a stable order
	labels := make([]string, 0, len(threads))
	for label := range threads {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		msgs, ok := threads[label].([]any)
		if !ok {
			diags = append(diags, Diagnostic{Section: "messages", Reason: "thread " + label + " is not a list"})
			continue
		}
		contact := ContactFromLabel(label)
		for _, m := range msgs {
			obj, _ := m.(map[string]any)
			msg := Message{}
			if obj != nil {
				msg.Date, _ = firstString(obj, "Date", "date")
				msg.Sender, _ = firstString(obj, "From", "from")
				msg.Content, _ = firstString(obj, "Content", "content")
			}
			conv.add(contact, msg, owner)
		}
		// threads with no messages still show up as a contact
		if len(msgs) == 0 {
			if _, seen := conv.MessageCounts[contact]; !seen {
				conv.MessageCounts[contact] = 0
				conv.MessagesByContact[contact] = []Message{}
			}
		}
	}
	return conv, diags
}

// ParseConversationsText reads a block of ">>>"-delimited threads, each
// opening with a "Chat History with <name>::" header followed by
// "YYYY-MM-DD HH:MM:SS sender: content" lines.
func ParseConversationsText(block, owner string) (Conversations, []Diagnostic) {
	conv := emptyConversations()
	var diags []Diagnostic

	contact := ""
	for i, raw := range splitLines(block) {
		lineNo := i + 1
		line := strings.TrimSpace(raw)

		if rest, ok := strings.CutPrefix(line, threadDelimiter); ok {
			contact = ""
			line = strings.TrimSpace(rest)
		}
		if line == "" {
			continue
		}

		// first non-blank line of a thread is its header
		if contact == "" {
			if m := threadHeaderRe.FindStringSubmatch(line); m != nil {
				contact = ContactFromLabel(m[1])
			} else {
				contact = UnknownContact
				diags = append(diags, Diagnostic{Section: "messages", Line: lineNo, Reason: "thread header not recognized"})
			}
			continue
		}

		m := messageLineRe.FindStringSubmatch(line)
		if m == nil {
			diags = append(diags, Diagnostic{Section: "messages", Line: lineNo, Reason: "line is not a message"})
			continue
		}
		conv.add(contact, Message{Date: m[1], Sender: strings.TrimSpace(m[2]), Content: m[3]}, owner)
	}
	return conv, diags
}

func extractConversations(raw RawExport, owner string) (Conversations, []Diagnostic) {
	switch node := lookup(map[string]any(raw), "Direct Messages", "Chat History", "ChatHistory").(type) {
	case string:
		return ParseConversationsText(node, owner)
	case map[string]any:
		return ParseConversationsJSON(node, owner)
	}
	return emptyConversations(), nil
}
