package parse

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Unknown is the placeholder for any field the export does not resolve.
const Unknown = "Unknown"

// UnknownContact collects messages from text threads whose header did not match.
const UnknownContact = "unknown"

// RawExport is the untyped tree decoded from a JSON export or built from a ZIP archive.
type RawExport map[string]any

type Profile struct {
	Name      string `json:"name"`
	BirthDate string `json:"birthDate"`
}

type Message struct {
	Date    string `json:"date"`
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

type SentMessage struct {
	Contact string `json:"contact"`
	Date    string `json:"date"`
}

// Conversations holds per-contact message lists. MessageCounts[c] always equals
// len(MessagesByContact[c]).
type Conversations struct {
	MessageCounts     map[string]int       `json:"perContactMessageCount"`
	SentMessages      []SentMessage        `json:"sentMessages"`
	MessagesByContact map[string][]Message `json:"messagesByContact"`
}

type LoginEvent struct {
	Date string `json:"date"`
}

// LineItem is one product row inside an order.
type LineItem struct {
	ProductName   string `json:"productName"`
	VariationName string `json:"variationName"`
	Quantity      int    `json:"quantity"`
}

// Order is the intermediate record built by both ledger parsers.
type Order struct {
	OrderID     string          `json:"orderId"`
	OrderDate   string          `json:"orderDate"`
	OrderStatus string          `json:"orderStatus"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	LineItems   []LineItem      `json:"lineItems"`
}

// ShoppingItem is one (order, line item) row. TotalPrice is the order total,
// repeated for every item of the order.
type ShoppingItem struct {
	OrderID       string          `json:"orderId"`
	OrderDate     string          `json:"orderDate"`
	ProductName   string          `json:"productName"`
	VariationName string          `json:"variationName"`
	Quantity      int             `json:"quantity"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	OrderStatus   string          `json:"orderStatus"`
}

type Shopping struct {
	TotalSpending  decimal.Decimal `json:"totalSpending"`
	TotalOrders    int             `json:"totalOrders"`
	PurchasedItems []ShoppingItem  `json:"purchasedItems"`
}

// Diagnostic records a record that was dropped or defaulted during parsing.
type Diagnostic struct {
	Section string `json:"section"`
	Line    int    `json:"line,omitempty"` // 1-based, 0 when not line oriented
	Reason  string `json:"reason"`
}

// Model is the canonical, shape-independent view of one export.
type Model struct {
	Profile       Profile       `json:"profile"`
	Conversations Conversations `json:"conversations"`
	Logins        []LoginEvent  `json:"logins"`
	Shopping      Shopping      `json:"shopping"`
	Diagnostics   []Diagnostic  `json:"diagnostics,omitempty"`
}

func emptyProfile() Profile {
	return Profile{Name: Unknown, BirthDate: Unknown}
}

func emptyConversations() Conversations {
	return Conversations{
		MessageCounts:     map[string]int{},
		SentMessages:      []SentMessage{},
		MessagesByContact: map[string][]Message{},
	}
}

func emptyShopping() Shopping {
	return Shopping{
		TotalSpending:  decimal.Zero,
		PurchasedItems: []ShoppingItem{},
	}
}

// add appends msg to contact's thread and keeps the count in step.
func (c *Conversations) add(contact string, msg Message, owner string) {
	c.MessagesByContact[contact] = append(c.MessagesByContact[contact], msg)
	c.MessageCounts[contact]++
	if isOwner(msg.Sender, owner) {
		c.SentMessages = append(c.SentMessages, SentMessage{Contact: contact, Date: msg.Date})
	}
}

// Contacts returns every contact sorted by message count, busiest first.
func (c Conversations) Contacts() []string {
	contacts := make([]string, 0, len(c.MessageCounts))
	for k := range c.MessageCounts {
		contacts = append(contacts, k)
	}
	sort.Slice(contacts, func(i, j int) bool {
		ci, cj := c.MessageCounts[contacts[i]], c.MessageCounts[contacts[j]]
		if ci != cj {
			return ci > cj
		}
		return contacts[i] < contacts[j]
	})
	return contacts
}

// Chronological returns a copy of contact's messages ordered by date.
// Dates that do not parse sort as the zero time.
func (c Conversations) Chronological(contact string) []Message {
	msgs := append([]Message(nil), c.MessagesByContact[contact]...)
	sort.SliceStable(msgs, func(i, j int) bool {
		return ParseTimestamp(msgs[i].Date).Before(ParseTimestamp(msgs[j].Date))
	})
	return msgs
}

// TotalMessages sums all per-contact counts.
func (c Conversations) TotalMessages() int {
	n := 0
	for _, v := range c.MessageCounts {
		n += v
	}
	return n
}

// ParseTimestamp accepts the timestamp shapes seen in exports and returns
// the zero time when none match.
func ParseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	// try RFC3339
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	// export text files use a space separator
	if t, err := time.Parse(time.DateTime, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05 MST", s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t
	}
	return time.Time{}
}
