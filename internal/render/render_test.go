package render

import (
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoshuaShunk/tik-tok-wrapped/internal/insights"
	"github.com/JoshuaShunk/tik-tok-wrapped/internal/parse"
)

func testModel() *parse.Model {
	block := `>>> Chat History with Alice::
2024-01-01 10:05:00 alice: second
2024-01-01 10:00:00 josh: first
2024-01-01 10:10:00 alice: third
`
	raw := parse.RawExport{
		"name": "josh",
		"Direct Messages": map[string]any{
			"Chat History": map[string]any{"ChatHistory": block},
		},
		"Activity": map[string]any{"Login History": map[string]any{
			"LoginHistoryList": "2024-01-02 08:00:00\n2024-01-09 08:00:00\n",
		}},
	}
	return parse.Normalize(raw, "josh")
}

func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func TestWrapLine(t *testing.T) {
	assert.Equal(t, []string{"abc"}, wrapLine("abc", 0))
	assert.Equal(t, []string{"abcd", "ef"}, wrapLine("abcdef", 4))
	assert.Equal(t, []string{""}, wrapLine("", 4))

	// escape sequences take no columns
	colored := colorBoldRed + "abcd" + colorReset + "ef"
	assert.Equal(t, []string{colorBoldRed + "abcd" + colorReset, "ef"}, wrapLine(colored, 4))

	// wide runes count double
	for _, l := range wrapLine("日本語テキスト", 4) {
		assert.LessOrEqual(t, runewidth.StringWidth(l), 4)
	}
}

func TestHighlightKeywords(t *testing.T) {
	assert.Equal(t, "say "+colorBoldRed+"Hi"+colorReset+" there", highlightKeywords("say Hi there", "hi"))
	assert.Equal(t, "untouched", highlightKeywords("untouched", ""))
}

func TestRenderConversation(t *testing.T) {
	m := testModel()

	out, hitLine, err := RenderConversation(m, "alice", Options{Owner: "josh", HitIndex: 1, Context: -1})
	require.NoError(t, err)

	plain := stripANSI(out)
	lines := strings.Split(plain, "\n")
	assert.Equal(t, "--- alice (3 messages) ---", lines[0])
	assert.Contains(t, lines[1], "ME > 2024-01-01 10:00:00")
	require.Greater(t, hitLine, 0)
	assert.Equal(t, ">> alice > 2024-01-01 10:05:00 <<", lines[hitLine])

	// chronological regardless of file order
	assert.Less(t, strings.Index(plain, "first"), strings.Index(plain, "second"))
	assert.Less(t, strings.Index(plain, "second"), strings.Index(plain, "third"))
}

func TestRenderConversation_Window(t *testing.T) {
	m := testModel()

	out, _, err := RenderConversation(m, "alice", Options{HitIndex: 0, Context: 1})
	require.NoError(t, err)
	plain := stripANSI(out)
	assert.Contains(t, plain, "... (1 messages after) ...")
	assert.NotContains(t, plain, "third")
}

func TestRenderConversation_UnknownContact(t *testing.T) {
	_, _, err := RenderConversation(testModel(), "nobody", Options{HitIndex: -1})
	require.Error(t, err)
}

func TestTranscript(t *testing.T) {
	got := Transcript(testModel(), "alice")
	assert.Equal(t, "2024-01-01 10:00:00 josh: first\n"+
		"2024-01-01 10:05:00 alice: second\n"+
		"2024-01-01 10:10:00 alice: third\n", got)
}

func TestRenderDashboard(t *testing.T) {
	out := stripANSI(RenderDashboard(testModel(), time.Now().Add(-3*time.Hour), 0))

	assert.Contains(t, out, "Name:       josh")
	assert.Contains(t, out, "3 hours ago")
	assert.Contains(t, out, "Total: 3 across 1 contacts, 1 sent")
	assert.Contains(t, out, "Jan 2024")
	assert.Contains(t, out, "Spent:  $0.00")
}

func TestRenderWrapped(t *testing.T) {
	cards := insights.Cards(testModel(), nil)
	out := RenderWrapped(cards, 40)

	for _, c := range cards {
		assert.Contains(t, out, c.Title)
	}
	for _, l := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipglossWidth(l), 40)
	}
}

func lipglossWidth(s string) int {
	return runewidth.StringWidth(stripANSI(s))
}
