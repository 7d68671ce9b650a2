package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	orderDateLabel   = "Order date:"
	orderNumberLabel = "Order number:"
	orderStatusLabel = "Order status:"
	totalPriceLabel  = "Total price"
	itemNameMarker   = ">>Name:"
	quantityMarker   = ">>Quantity:"
	markerPrefix     = ">>"
)

var (
	// leading decimal followed by a currency code, e.g. "12.50 USD" or "1,234.50 USD"
	priceRe    = regexp.MustCompile(`^(\d{1,3}(?:,\d{3})+|\d+)(\.\d+)?\s*([A-Za-z]{3})\b`)
	trailingRe = regexp.MustCompile(`(\d+)\s*$`)
)

type lineKind int

const (
	lineOther lineKind = iota
	lineOrderDate
	lineOrderNumber
	lineOrderStatus
	lineTotalPrice
	lineItemName
	lineQuantity
	lineMarker // any other ">>" marker
)

type ledgerLine struct {
	no    int
	kind  lineKind
	text  string // trimmed line
	value string // text after the label, trimmed
}

func classifyLedgerLine(no int, text string) ledgerLine {
	l := ledgerLine{no: no, text: text}
	switch {
	case hasLabel(text, orderDateLabel):
		l.kind, l.value = lineOrderDate, afterLabel(text, orderDateLabel)
	case hasLabel(text, orderNumberLabel):
		l.kind, l.value = lineOrderNumber, afterLabel(text, orderNumberLabel)
	case hasLabel(text, orderStatusLabel):
		l.kind, l.value = lineOrderStatus, afterLabel(text, orderStatusLabel)
	case hasLabel(text, totalPriceLabel):
		l.kind = lineTotalPrice
		if _, v, ok := strings.Cut(text, ":"); ok {
			l.value = strings.TrimSpace(v)
		}
	case text == itemNameMarker:
		l.kind = lineItemName
	case hasLabel(text, quantityMarker):
		l.kind, l.value = lineQuantity, afterLabel(text, quantityMarker)
	case strings.HasPrefix(text, markerPrefix):
		l.kind = lineMarker
	}
	return l
}

func hasLabel(text, label string) bool {
	return len(text) >= len(label) && strings.EqualFold(text[:len(label)], label)
}

func afterLabel(text, label string) string {
	return strings.TrimSpace(text[len(label):])
}

type ledgerState int

const (
	stateIdle ledgerState = iota
	stateInOrder
	stateAwaitingProductName
	stateAwaitingVariation
)

func (s ledgerState) String() string {
	switch s {
	case stateIdle:
		return "Idle"
	case stateInOrder:
		return "InOrder"
	case stateAwaitingProductName:
		return "AwaitingProductName"
	case stateAwaitingVariation:
		return "AwaitingVariation"
	}
	return "ledgerState(" + strconv.Itoa(int(s)) + ")"
}

// ledgerScanner is a single-pass state machine over order history lines.
type ledgerScanner struct {
	state  ledgerState
	order  *Order    // open order, nil in Idle
	item   *LineItem // line item being assembled
	orders []Order
	diags  []Diagnostic
}

// step dispatches a line to the handler of the current state:
//
//	Idle, InOrder        -> onRecordLine
//	AwaitingProductName  -> onProductName
//	AwaitingVariation    -> onVariation
func (s *ledgerScanner) step(l ledgerLine) {
	switch s.state {
	case stateIdle, stateInOrder:
		s.onRecordLine(l)
	case stateAwaitingProductName:
		s.onProductName(l)
	case stateAwaitingVariation:
		s.onVariation(l)
	}
}

// settle returns to InOrder or Idle depending on whether an order is open.
func (s *ledgerScanner) settle() {
	if s.order != nil {
		s.state = stateInOrder
	} else {
		s.state = stateIdle
	}
}

func (s *ledgerScanner) onRecordLine(l ledgerLine) {
	switch l.kind {
	case lineOrderDate:
		s.closeOrder()
		s.order = newOrder()
		s.order.OrderDate = l.value
	case lineOrderNumber:
		if s.order != nil && s.order.OrderID != "" {
			s.closeOrder()
		}
		if s.order == nil {
			s.order = newOrder()
		}
		s.order.OrderID = l.value
	case lineOrderStatus:
		if s.order != nil {
			s.order.OrderStatus = l.value
		}
	case lineTotalPrice:
		if s.order == nil {
			break
		}
		if price, ok := parsePrice(l.value); ok {
			s.order.TotalPrice = price
		} else {
			s.diag(l.no, "total price not recognized: "+l.value)
		}
	case lineItemName:
		s.item = &LineItem{}
		s.state = stateAwaitingProductName
		return
	case lineQuantity:
		s.finishItem(l)
	}
	s.settle()
}

func (s *ledgerScanner) onProductName(l ledgerLine) {
	if l.kind != lineOther {
		// no product name before the next label; leave it unset
		s.state = stateAwaitingVariation
		s.onVariation(l)
		return
	}
	s.item.ProductName = l.text
	s.state = stateAwaitingVariation
}

func (s *ledgerScanner) onVariation(l ledgerLine) {
	if l.kind != lineOther {
		s.item.VariationName = Unknown
		s.settle()
		s.step(l)
		return
	}
	s.item.VariationName = l.text
	s.settle()
}

func (s *ledgerScanner) finishItem(l ledgerLine) {
	item := LineItem{VariationName: Unknown}
	if s.item != nil {
		item = *s.item
		if item.VariationName == "" {
			item.VariationName = Unknown
		}
	}
	s.item = nil
	if item.ProductName == "" {
		item.ProductName = Unknown
	}

	item.Quantity = 1
	if m := trailingRe.FindStringSubmatch(l.value); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			item.Quantity = n
		}
	} else {
		s.diag(l.no, "quantity not recognized, using 1")
	}

	if s.order == nil {
		s.diag(l.no, "line item outside of an order dropped")
		return
	}
	s.order.LineItems = append(s.order.LineItems, item)
}

func newOrder() *Order {
	return &Order{TotalPrice: decimal.Zero}
}

// closeOrder emits the open order if it carries an order number.
func (s *ledgerScanner) closeOrder() {
	if s.order == nil {
		return
	}
	if s.order.OrderID != "" {
		s.orders = append(s.orders, *s.order)
	} else {
		s.diag(0, "order without an order number dropped")
	}
	s.order = nil
	s.item = nil
}

func (s *ledgerScanner) diag(line int, reason string) {
	s.diags = append(s.diags, Diagnostic{Section: "shopping", Line: line, Reason: reason})
}

// parsePrice extracts the leading decimal of "<number> <currency>". The
// number must open the value; thousands separators are dropped.
func parsePrice(s string) (decimal.Decimal, bool) {
	m := priceRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", "") + m[2])
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseOrders runs the ledger state machine over order history text and
// returns the emitted orders.
func ParseOrders(ledger string) ([]Order, []Diagnostic) {
	s := &ledgerScanner{}
	for i, raw := range splitLines(ledger) {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		s.step(classifyLedgerLine(i+1, text))
	}
	if s.state == stateAwaitingProductName || s.state == stateAwaitingVariation {
		s.diag(0, "line item without quantity dropped")
	}
	s.closeOrder()
	return s.orders, s.diags
}

// ParseShoppingLedger parses order history text into a shopping summary.
func ParseShoppingLedger(ledger string) (Shopping, []Diagnostic) {
	orders, diags := ParseOrders(ledger)
	return Summarize(orders), diags
}

// Summarize expands orders into per-item rows. Every order counts once toward
// TotalOrders and TotalSpending; an order without items gets one Unknown row.
func Summarize(orders []Order) Shopping {
	summary := emptyShopping()
	for _, o := range orders {
		summary.TotalOrders++
		summary.TotalSpending = summary.TotalSpending.Add(o.TotalPrice)

		items := o.LineItems
		if len(items) == 0 {
			items = []LineItem{{ProductName: Unknown, VariationName: Unknown, Quantity: 1}}
		}
		for _, it := range items {
			summary.PurchasedItems = append(summary.PurchasedItems, ShoppingItem{
				OrderID:       o.OrderID,
				OrderDate:     o.OrderDate,
				ProductName:   it.ProductName,
				VariationName: it.VariationName,
				Quantity:      it.Quantity,
				TotalPrice:    o.TotalPrice,
				OrderStatus:   o.OrderStatus,
			})
		}
	}
	return summary
}
