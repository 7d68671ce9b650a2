package insights

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JoshuaShunk/tik-tok-wrapped/internal/parse"
)

// TopN is how many entries the ranked cards show.
const TopN = 5

type ProductCount struct {
	Name     string
	Quantity int
}

type ProductCost struct {
	Name string
	Cost decimal.Decimal
}

type Friend struct {
	Contact  string
	Messages int
}

type MonthCount struct {
	Month time.Time // first day of the month, UTC
	Count int
}

// Series is a per-contact monthly count. Counts[c][i] belongs to Months[i].
type Series struct {
	Months   []time.Time
	Contacts []string // busiest first
	Counts   map[string][]int
}

// TopPurchased groups items by lowercased product name and ranks them by
// summed quantity.
func TopPurchased(s parse.Shopping, n int) []ProductCount {
	qty := map[string]int{}
	for _, it := range s.PurchasedItems {
		qty[strings.ToLower(it.ProductName)] += it.Quantity
	}

	out := make([]ProductCount, 0, len(qty))
	for name, q := range qty {
		out = append(out, ProductCount{Name: name, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})
	return limit(out, n)
}

// TopExpensive ranks products by the sum of the order totals they appear
// in. Items sharing an order each carry the full order total, so a
// multi-item order counts toward every product in it.
func TopExpensive(s parse.Shopping, n int) []ProductCost {
	cost := map[string]decimal.Decimal{}
	display := map[string]string{}
	for _, it := range s.PurchasedItems {
		key := strings.ToLower(it.ProductName)
		if _, ok := cost[key]; !ok {
			cost[key] = decimal.Zero
		}
		cost[key] = cost[key].Add(it.TotalPrice)
		display[key] = it.ProductName
	}

	out := make([]ProductCost, 0, len(cost))
	for key, c := range cost {
		out = append(out, ProductCost{Name: display[key], Cost: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if cmp := out[i].Cost.Cmp(out[j].Cost); cmp != 0 {
			return cmp > 0
		}
		return out[i].Name < out[j].Name
	})
	return limit(out, n)
}

func TopFriends(c parse.Conversations, n int) []Friend {
	contacts := c.Contacts()
	out := make([]Friend, 0, len(contacts))
	for _, contact := range contacts {
		out = append(out, Friend{Contact: contact, Messages: c.MessageCounts[contact]})
	}
	return limit(out, n)
}

// LoginsPerMonth counts logins by calendar month, oldest first. Logins
// whose date does not parse are left out.
func LoginsPerMonth(logins []parse.LoginEvent) []MonthCount {
	counts := map[time.Time]int{}
	for _, l := range logins {
		t, ok := recordDate(l.Date)
		if !ok {
			continue
		}
		counts[monthOf(t)]++
	}

	out := make([]MonthCount, 0, len(counts))
	for m, c := range counts {
		out = append(out, MonthCount{Month: m, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}

// BusiestMonth returns the month with the most logins. Ties go to the
// earlier month; ok is false when no login date parses.
func BusiestMonth(logins []parse.LoginEvent) (MonthCount, bool) {
	var best MonthCount
	for _, mc := range LoginsPerMonth(logins) {
		if mc.Count > best.Count {
			best = mc
		}
	}
	return best, best.Count > 0
}

// SentPerMonth buckets sent messages by month and contact.
func SentPerMonth(sent []parse.SentMessage) Series {
	perMonth := map[time.Time]map[string]int{}
	totals := map[string]int{}
	for _, s := range sent {
		t, ok := recordDate(s.Date)
		if !ok {
			continue
		}
		m := monthOf(t)
		if perMonth[m] == nil {
			perMonth[m] = map[string]int{}
		}
		perMonth[m][s.Contact]++
		totals[s.Contact]++
	}

	series := Series{Counts: map[string][]int{}}
	for m := range perMonth {
		series.Months = append(series.Months, m)
	}
	sort.Slice(series.Months, func(i, j int) bool { return series.Months[i].Before(series.Months[j]) })

	for c := range totals {
		series.Contacts = append(series.Contacts, c)
	}
	sort.Slice(series.Contacts, func(i, j int) bool {
		ci, cj := series.Contacts[i], series.Contacts[j]
		if totals[ci] != totals[cj] {
			return totals[ci] > totals[cj]
		}
		return ci < cj
	})

	for _, c := range series.Contacts {
		row := make([]int, len(series.Months))
		for i, m := range series.Months {
			row[i] = perMonth[m][c]
		}
		series.Counts[c] = row
	}
	return series
}

func limit[T any](s []T, n int) []T {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}
