package parse

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// lookup walks nested objects by key and returns nil when any step is missing
// or is not an object.
func lookup(v any, path ...string) any {
	for _, key := range path {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		v = obj[key]
	}
	return v
}

// lookupString returns the value at path if it is a non-empty string.
func lookupString(v any, path ...string) (string, bool) {
	s, ok := lookup(v, path...).(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// firstString returns the first key of obj holding a non-empty string.
func firstString(obj map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := obj[k].(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// asInt reads JSON numbers and numeric strings.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// asDecimal reads JSON numbers and numeric strings.
func asDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	}
	return decimal.Zero, false
}

func isOwner(sender, owner string) bool {
	return owner != "" && strings.EqualFold(strings.TrimSpace(sender), strings.TrimSpace(owner))
}

// splitLines strips a BOM and CR characters and returns the raw lines.
func splitLines(text string) []string {
	text = strings.TrimPrefix(text, "\ufeff")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return lines
}
