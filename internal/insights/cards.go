package insights

import (
	"fmt"

	"github.com/cbroglie/mustache"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/JoshuaShunk/tik-tok-wrapped/internal/parse"
)

// Card keys, in the order the cards are shown.
const (
	CardShopping  = "shopping"
	CardExpensive = "expensive"
	CardMessages  = "messages"
	CardFriends   = "friends"
	CardLogins    = "logins"
	CardProfile   = "profile"
	CardThanks    = "thanks"
)

// DefaultCaptions are the mustache templates used when the config does not
// override a card's caption.
var DefaultCaptions = map[string]string{
	CardShopping:  "You spent {{spending}} across {{orders}} orders.{{#top_item}} Your go-to buy: {{{top_item}}} ({{top_qty}}).{{/top_item}}",
	CardExpensive: "{{#top_item}}{{{top_item}}} cost you the most.{{/top_item}}{{^top_item}}No purchases yet.{{/top_item}}",
	CardMessages:  "{{messages}} messages with {{contacts}} people.{{#top_friend}} Most of them with {{{top_friend}}}.{{/top_friend}}",
	CardFriends:   "{{#top_friend}}{{{top_friend}}} is your number one ({{top_messages}} msgs).{{/top_friend}}{{^top_friend}}No DMs.{{/top_friend}}",
	CardLogins:    "{{logins}} logins.{{#busiest}} Busiest month: {{{busiest}}} ({{busiest_logins}} logins).{{/busiest}}",
	CardProfile:   "{{{name}}}, you sent {{sent}} messages!",
	CardThanks:    "Share these cards to show off your Wrapped stats.",
}

type Card struct {
	Key     string
	Title   string
	Lines   []string
	Caption string
}

// FormatMoney renders an amount with two decimals and thousands separators.
func FormatMoney(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return "$" + humanize.FormatFloat("#,###.##", f)
}

// Cards builds the wrapped summary cards. captions overrides DefaultCaptions
// per card key; a template that fails to render falls back to the default.
func Cards(m *parse.Model, captions map[string]string) []Card {
	purchased := TopPurchased(m.Shopping, TopN)
	expensive := TopExpensive(m.Shopping, TopN)
	friends := TopFriends(m.Conversations, TopN)
	busiest, hasBusiest := BusiestMonth(m.Logins)

	data := map[string]interface{}{
		"name":     m.Profile.Name,
		"birth":    m.Profile.BirthDate,
		"spending": FormatMoney(m.Shopping.TotalSpending),
		"orders":   humanize.Comma(int64(m.Shopping.TotalOrders)),
		"messages": humanize.Comma(int64(m.Conversations.TotalMessages())),
		"contacts": humanize.Comma(int64(len(m.Conversations.MessageCounts))),
		"sent":     humanize.Comma(int64(len(m.Conversations.SentMessages))),
		"logins":   humanize.Comma(int64(len(m.Logins))),
	}
	if len(purchased) > 0 {
		data["top_item"] = purchased[0].Name
		data["top_qty"] = purchased[0].Quantity
	}
	if len(friends) > 0 {
		data["top_friend"] = friends[0].Contact
		data["top_messages"] = friends[0].Messages
	}
	if hasBusiest {
		data["busiest"] = busiest.Month.Format("January 2006")
		data["busiest_logins"] = busiest.Count
	}

	shoppingLines := []string{"My total spend: " + FormatMoney(m.Shopping.TotalSpending)}
	if len(purchased) > 0 {
		shoppingLines = append(shoppingLines, fmt.Sprintf("Top Item: %s (%d)", purchased[0].Name, purchased[0].Quantity))
	} else {
		shoppingLines = append(shoppingLines, "No Purchases")
	}

	var expensiveLines []string
	for i, p := range expensive {
		expensiveLines = append(expensiveLines, fmt.Sprintf("%d. %s (%s)", i+1, p.Name, FormatMoney(p.Cost)))
	}

	messageLines := []string{"My total messages: " + humanize.Comma(int64(m.Conversations.TotalMessages()))}
	if len(friends) > 0 {
		messageLines = append(messageLines, fmt.Sprintf("Top Friend: %s (%d msgs)", friends[0].Contact, friends[0].Messages))
	} else {
		messageLines = append(messageLines, "No DMs")
	}

	var friendLines []string
	for i, f := range friends {
		friendLines = append(friendLines, fmt.Sprintf("%d. %s (%d msgs)", i+1, f.Contact, f.Messages))
	}

	busiestLabel := "N/A"
	if hasBusiest {
		busiestLabel = fmt.Sprintf("%s (%d logins)", busiest.Month.Format("January 2006"), busiest.Count)
	}

	cards := []Card{
		{Key: CardShopping, Title: "Shopping Stats", Lines: shoppingLines},
		{Key: CardExpensive, Title: "Top 5 Expensive Items", Lines: expensiveLines},
		{Key: CardMessages, Title: "DM Stats", Lines: messageLines},
		{Key: CardFriends, Title: "Top 5 DM Friends", Lines: friendLines},
		{Key: CardLogins, Title: "Login Stats", Lines: []string{
			"Total Logins: " + humanize.Comma(int64(len(m.Logins))),
			"Busiest Month: " + busiestLabel,
		}},
		{Key: CardProfile, Title: "About You", Lines: []string{
			m.Profile.Name,
			"Birth Date: " + m.Profile.BirthDate,
		}},
		{Key: CardThanks, Title: "Thank You!"},
	}
	for i := range cards {
		cards[i].Caption = caption(cards[i].Key, captions, data)
	}
	return cards
}

func caption(key string, overrides map[string]string, data map[string]interface{}) string {
	if tmpl, ok := overrides[key]; ok {
		if out, err := mustache.Render(tmpl, data); err == nil {
			return out
		}
	}
	out, err := mustache.Render(DefaultCaptions[key], data)
	if err != nil {
		return ""
	}
	return out
}
