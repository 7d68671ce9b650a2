package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoshuaShunk/tik-tok-wrapped/internal/parse"
)

func testModel() *parse.Model {
	block := `>>> Chat History with Alice::
2024-01-01 10:00:00 josh: Pizza tonight?
2024-01-01 10:05:00 alice: yes PIZZA please
2024-03-01 09:00:00 alice: no more pizza
>>> Chat History with Bob::
2024-02-01 12:00:00 bob: pizza place opened
2024-02-02 12:00:00 josh: cool
`
	raw := parse.RawExport{"Direct Messages": map[string]any{
		"Chat History": map[string]any{"ChatHistory": block},
	}}
	return parse.Normalize(raw, "josh")
}

func TestMakeSnippet(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		query   string
		context int
		want    string
	}{
		{"match in middle", "the quick brown fox jumps", "brown", 4, "...ick >>>brown<<< fox..."},
		{"match at start", "hello world", "hello", 3, ">>>hello<<< wo..."},
		{"case insensitive", "Say HELLO", "hello", 10, "Say >>>HELLO<<<"},
		{"no match", "abcdefghij", "zzz", 2, "abcd..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, makeSnippet(tt.text, tt.query, tt.context))
		})
	}
}

func TestSearch(t *testing.T) {
	m := testModel()

	results, err := Search(m, "josh", Options{Query: "pizza"})
	require.NoError(t, err)
	require.Len(t, results, 4)

	// newest first
	assert.Equal(t, "2024-03-01 09:00:00", results[0].Date)
	assert.Equal(t, "bob", results[1].Contact)
	assert.Equal(t, "2024-01-01 10:00:00", results[3].Date)
	assert.True(t, results[3].FromOwner)
	assert.Equal(t, 0, results[3].Index)
	assert.Contains(t, results[2].Snippet, ">>>PIZZA<<<")
}

func TestSearch_Filters(t *testing.T) {
	m := testModel()

	results, err := Search(m, "josh", Options{Query: "pizza", Contact: "Alice"})
	require.NoError(t, err)
	assert.Len(t, results, 3)

	results, err = Search(m, "josh", Options{Query: "pizza", Sender: "ALICE"})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	since := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	results, err = Search(m, "josh", Options{Query: "pizza", Since: since})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = Search(m, "josh", Options{Query: "pizza", Limit: 1})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearch_EmptyQuery(t *testing.T) {
	_, err := Search(testModel(), "", Options{Query: "  "})
	require.ErrorIs(t, err, ErrEmptyQuery)
}

func TestContacts(t *testing.T) {
	m := testModel()

	got := Contacts(m, "")
	assert.Equal(t, []Contact{
		{Name: "alice", Messages: 3, Sent: 1, Last: "2024-03-01 09:00:00"},
		{Name: "bob", Messages: 2, Sent: 1, Last: "2024-02-02 12:00:00"},
	}, got)

	assert.Len(t, Contacts(m, "BO"), 1)
	assert.Empty(t, Contacts(m, "zed"))
}
