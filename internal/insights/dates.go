package insights

import (
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/JoshuaShunk/tik-tok-wrapped/internal/parse"
)

var naturalDates = newDateParser()

// fieldLabelRe matches a leading "Date:" style label on an export line.
var fieldLabelRe = regexp.MustCompile(`^[A-Za-z][A-Za-z ]*:\s*`)

func newDateParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// ParseDate reads a user-typed date such as a --since value. Exact
// timestamps win; otherwise the whole input must read as a natural-language
// date relative to base ("yesterday", "2 weeks ago").
func ParseDate(s string, base time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == parse.Unknown {
		return time.Time{}, false
	}
	if t := parse.ParseTimestamp(s); !t.IsZero() {
		return t, true
	}
	r, err := naturalDates.Parse(s, base)
	if err != nil || r == nil {
		return time.Time{}, false
	}
	if r.Index != 0 || len(r.Text) != len(s) {
		return time.Time{}, false
	}
	return r.Time, true
}

// recordDate reads a date stored in the export. Only exact timestamps
// count, optionally behind a field label like "Date:".
func recordDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t := parse.ParseTimestamp(s); !t.IsZero() {
		return t, true
	}
	if loc := fieldLabelRe.FindStringIndex(s); loc != nil {
		if t := parse.ParseTimestamp(s[loc[1]:]); !t.IsZero() {
			return t, true
		}
	}
	return time.Time{}, false
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
