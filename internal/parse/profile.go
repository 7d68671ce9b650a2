package parse

import "strings"

const (
	usernameLabel  = "Username:"
	birthdateLabel = "Birthdate:"
)

// ParseProfileText reads "Username:" and "Birthdate:" lines. A label that
// appears more than once keeps its last non-empty value.
func ParseProfileText(info string) Profile {
	p := emptyProfile()
	for _, line := range splitLines(info) {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, usernameLabel):
			if v := strings.TrimSpace(strings.TrimPrefix(line, usernameLabel)); v != "" {
				p.Name = v
			}
		case strings.HasPrefix(line, birthdateLabel):
			if v := strings.TrimSpace(strings.TrimPrefix(line, birthdateLabel)); v != "" {
				p.BirthDate = v
			}
		}
	}
	return p
}

// fieldProbe resolves one profile field from one export shape.
type fieldProbe func(raw RawExport) (string, bool)

var nameProbes = []fieldProbe{
	func(raw RawExport) (string, bool) { return lookupString(map[string]any(raw), "name") },
	func(raw RawExport) (string, bool) {
		return lookupString(map[string]any(raw), "Profile", "Profile Information", "ProfileMap", "userName")
	},
	func(raw RawExport) (string, bool) { return lookupString(map[string]any(raw), "Profile", "userName") },
}

var birthDateProbes = []fieldProbe{
	func(raw RawExport) (string, bool) { return lookupString(map[string]any(raw), "birthDate") },
	func(raw RawExport) (string, bool) {
		return lookupString(map[string]any(raw), "Profile", "Profile Information", "ProfileMap", "birthDate")
	},
	func(raw RawExport) (string, bool) { return lookupString(map[string]any(raw), "Profile", "birthDate") },
}

// resolve returns the first value any probe produces, or Unknown.
func resolve(raw RawExport, probes []fieldProbe) string {
	for _, probe := range probes {
		if v, ok := probe(raw); ok {
			return v
		}
	}
	return Unknown
}

// extractProfile routes a text "Profile Info" node to ParseProfileText and
// otherwise resolves name and birth date independently.
func extractProfile(raw RawExport) Profile {
	if info, ok := lookup(map[string]any(raw), "Profile", "Profile Info").(string); ok {
		return ParseProfileText(info)
	}
	return Profile{
		Name:      resolve(raw, nameProbes),
		BirthDate: resolve(raw, birthDateProbes),
	}
}
