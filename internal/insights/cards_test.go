package insights

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoshuaShunk/tik-tok-wrapped/internal/parse"
)

func sampleModel() *parse.Model {
	return &parse.Model{
		Profile: parse.Profile{Name: "josh", BirthDate: "2000-01-01"},
		Conversations: parse.Conversations{
			MessageCounts: map[string]int{"alice": 3, "bob": 1},
			SentMessages:  []parse.SentMessage{{Contact: "alice", Date: "2024-01-01 10:00:00"}},
		},
		Logins: []parse.LoginEvent{{Date: "2024-02-01"}, {Date: "2024-02-03"}},
		Shopping: parse.Shopping{
			TotalSpending: decimal.RequireFromString("12.5"),
			TotalOrders:   1,
			PurchasedItems: []parse.ShoppingItem{
				{ProductName: "Widget & Co", Quantity: 2, TotalPrice: decimal.RequireFromString("12.5")},
			},
		},
	}
}

func cardByKey(t *testing.T, cards []Card, key string) Card {
	t.Helper()
	for _, c := range cards {
		if c.Key == key {
			return c
		}
	}
	require.Failf(t, "card not found", "key %s", key)
	return Card{}
}

func TestCards_DefaultCaptions(t *testing.T) {
	cards := Cards(sampleModel(), nil)
	require.Len(t, cards, 7)
	assert.Equal(t, CardShopping, cards[0].Key)
	assert.Equal(t, CardThanks, cards[6].Key)

	shopping := cardByKey(t, cards, CardShopping)
	assert.Equal(t, "You spent $12.50 across 1 orders. Your go-to buy: widget & co (2).", shopping.Caption)
	assert.Equal(t, []string{"My total spend: $12.50", "Top Item: widget & co (2)"}, shopping.Lines)

	friends := cardByKey(t, cards, CardFriends)
	assert.Equal(t, "alice is your number one (3 msgs).", friends.Caption)
	assert.Equal(t, []string{"1. alice (3 msgs)", "2. bob (1 msgs)"}, friends.Lines)

	logins := cardByKey(t, cards, CardLogins)
	assert.Equal(t, "2 logins. Busiest month: February 2024 (2 logins).", logins.Caption)

	profile := cardByKey(t, cards, CardProfile)
	assert.Equal(t, "josh, you sent 1 messages!", profile.Caption)
}

func TestCards_EmptyModel(t *testing.T) {
	m := parse.Normalize(parse.RawExport{}, "")
	cards := Cards(m, nil)

	assert.Equal(t, "No purchases yet.", cardByKey(t, cards, CardExpensive).Caption)
	assert.Equal(t, "No DMs.", cardByKey(t, cards, CardFriends).Caption)
	assert.Equal(t, []string{"Total Logins: 0", "Busiest Month: N/A"}, cardByKey(t, cards, CardLogins).Lines)
}

func TestCards_CaptionOverrides(t *testing.T) {
	cards := Cards(sampleModel(), map[string]string{
		CardProfile: "Hi {{{name}}}, born {{birth}}",
		CardFriends: "{{#section}}never closed",
	})

	assert.Equal(t, "Hi josh, born 2000-01-01", cardByKey(t, cards, CardProfile).Caption)
	// a broken override falls back to the default template
	assert.Equal(t, "alice is your number one (3 msgs).", cardByKey(t, cards, CardFriends).Caption)
}
