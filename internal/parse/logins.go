package parse

import "strings"

// ParseLoginsText turns every non-blank line into a login event.
func ParseLoginsText(text string) []LoginEvent {
	events := []LoginEvent{}
	for _, line := range splitLines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		events = append(events, LoginEvent{Date: line})
	}
	return events
}

// ParseLoginsList maps each entry's "Date" field; entries without one keep
// Unknown.
func ParseLoginsList(list []any) []LoginEvent {
	events := make([]LoginEvent, 0, len(list))
	for _, entry := range list {
		date := Unknown
		if obj, ok := entry.(map[string]any); ok {
			if s, ok := firstString(obj, "Date", "date"); ok {
				date = s
			}
		}
		events = append(events, LoginEvent{Date: date})
	}
	return events
}

func extractLogins(raw RawExport) []LoginEvent {
	switch node := lookup(map[string]any(raw), "Activity", "Login History", "LoginHistoryList").(type) {
	case string:
		return ParseLoginsText(node)
	case []any:
		return ParseLoginsList(node)
	}
	return []LoginEvent{}
}
