package insights

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoshuaShunk/tik-tok-wrapped/internal/parse"
)

func item(name string, qty int, total string) parse.ShoppingItem {
	return parse.ShoppingItem{ProductName: name, Quantity: qty, TotalPrice: decimal.RequireFromString(total)}
}

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestTopPurchased_GroupsCaseInsensitively(t *testing.T) {
	s := parse.Shopping{PurchasedItems: []parse.ShoppingItem{
		item("Widget", 2, "10"),
		item("widget", 3, "5"),
		item("Gadget", 4, "1"),
		item("Thing", 1, "1"),
	}}

	got := TopPurchased(s, TopN)
	assert.Equal(t, []ProductCount{
		{Name: "widget", Quantity: 5},
		{Name: "gadget", Quantity: 4},
		{Name: "thing", Quantity: 1},
	}, got)

	assert.Len(t, TopPurchased(s, 2), 2)
}

func TestTopExpensive_SumsRepeatedOrderTotals(t *testing.T) {
	// two items from one 30.00 order, each row carries the full total
	s := parse.Shopping{PurchasedItems: []parse.ShoppingItem{
		item("Shirt", 1, "30"),
		item("Socks", 1, "30"),
		item("shirt", 1, "12.5"),
	}}

	got := TopExpensive(s, TopN)
	require.Len(t, got, 2)
	assert.Equal(t, "shirt", got[0].Name)
	assert.True(t, got[0].Cost.Equal(decimal.RequireFromString("42.5")))
	assert.Equal(t, "Socks", got[1].Name)
}

func TestTopFriends(t *testing.T) {
	c := parse.Conversations{MessageCounts: map[string]int{"a": 1, "b": 7, "c": 3}}

	assert.Equal(t, []Friend{{"b", 7}, {"c", 3}}, TopFriends(c, 2))
}

func TestLoginsPerMonthAndBusiest(t *testing.T) {
	logins := []parse.LoginEvent{
		{Date: "2024-01-05 10:00:00"},
		{Date: "2024-02-01T08:00:00Z"},
		{Date: "2024-02-17 21:30:00"},
		{Date: "2024-03-02"},
		{Date: "Unknown"},
	}

	got := LoginsPerMonth(logins)
	assert.Equal(t, []MonthCount{
		{Month: month(2024, time.January), Count: 1},
		{Month: month(2024, time.February), Count: 2},
		{Month: month(2024, time.March), Count: 1},
	}, got)

	busiest, ok := BusiestMonth(logins)
	require.True(t, ok)
	assert.Equal(t, month(2024, time.February), busiest.Month)
	assert.Equal(t, 2, busiest.Count)

	_, ok = BusiestMonth([]parse.LoginEvent{{Date: parse.Unknown}})
	assert.False(t, ok)
}

func TestBusiestMonth_TieGoesToEarlier(t *testing.T) {
	logins := []parse.LoginEvent{{Date: "2024-05-01"}, {Date: "2024-04-01"}}

	busiest, ok := BusiestMonth(logins)
	require.True(t, ok)
	assert.Equal(t, month(2024, time.April), busiest.Month)
}

func TestSentPerMonth(t *testing.T) {
	sent := []parse.SentMessage{
		{Contact: "alice", Date: "2024-01-01 10:00:00"},
		{Contact: "alice", Date: "2024-03-01 10:00:00"},
		{Contact: "bob", Date: "2024-03-05 10:00:00"},
		{Contact: "alice", Date: "2024-03-09 10:00:00"},
		{Contact: "bob", Date: ""},
	}

	s := SentPerMonth(sent)
	assert.Equal(t, []time.Time{month(2024, time.January), month(2024, time.March)}, s.Months)
	assert.Equal(t, []string{"alice", "bob"}, s.Contacts)
	assert.Equal(t, []int{1, 2}, s.Counts["alice"])
	assert.Equal(t, []int{0, 1}, s.Counts["bob"])
}

func TestParseDate(t *testing.T) {
	base := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	got, ok := ParseDate("2024-01-02 03:04:05", base)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), got)

	got, ok = ParseDate("yesterday", base)
	require.True(t, ok)
	assert.Equal(t, 14, got.Day())

	_, ok = ParseDate(parse.Unknown, base)
	assert.False(t, ok)
	_, ok = ParseDate("", base)
	assert.False(t, ok)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$12.50", FormatMoney(decimal.RequireFromString("12.5")))
	assert.Equal(t, "$1,234.57", FormatMoney(decimal.RequireFromString("1234.567")))
	assert.Equal(t, "$0.00", FormatMoney(decimal.Zero))
}

func TestLoginsPerMonth_LabeledTextLines(t *testing.T) {
	logins := parse.ParseLoginsText("Date: 2023-01-05 10:00:00 UTC\nIP: 1.2.3.4\nDate: 2023-01-06 11:00:00 UTC\n")

	assert.Equal(t, []MonthCount{{Month: month(2023, time.January), Count: 2}}, LoginsPerMonth(logins))
}

func TestSentPerMonth_IgnoresFragments(t *testing.T) {
	sent := []parse.SentMessage{
		{Contact: "alice", Date: "sometime around 10:00"},
		{Contact: "alice", Date: "2023-07-04 09:00:00"},
	}

	s := SentPerMonth(sent)
	assert.Equal(t, []time.Time{month(2023, time.July)}, s.Months)
}

func TestParseDate_RejectsPartialMatches(t *testing.T) {
	base := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	_, ok := ParseDate("Date: 2023-01-05 10:00:00 UTC", base)
	assert.False(t, ok)

	got, ok := ParseDate("  2023-01-05 10:00:00 UTC ", base)
	require.True(t, ok)
	assert.Equal(t, 2023, got.Year())
}
