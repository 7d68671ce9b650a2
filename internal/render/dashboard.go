package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/JoshuaShunk/tik-tok-wrapped/internal/insights"
	"github.com/JoshuaShunk/tik-tok-wrapped/internal/parse"
)

// RenderDashboard renders the overview of one export. limit caps the
// per-contact table; 0 shows every contact.
func RenderDashboard(m *parse.Model, storedAt time.Time, limit int) string {
	var b strings.Builder

	fmt.Fprintln(&b, "=== Profile ===")
	fmt.Fprintf(&b, "  Name:       %s\n", m.Profile.Name)
	fmt.Fprintf(&b, "  Birth date: %s\n", m.Profile.BirthDate)
	if !storedAt.IsZero() {
		fmt.Fprintf(&b, "  Imported:   %s (%s)\n", storedAt.Format("2006-01-02 15:04"), humanize.Time(storedAt))
	}

	conv := m.Conversations
	fmt.Fprintln(&b, "\n=== Messages ===")
	fmt.Fprintf(&b, "  Total: %s across %s contacts, %s sent\n",
		humanize.Comma(int64(conv.TotalMessages())),
		humanize.Comma(int64(len(conv.MessageCounts))),
		humanize.Comma(int64(len(conv.SentMessages))))
	contacts := conv.Contacts()
	shown := contacts
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for _, c := range shown {
		fmt.Fprintf(&b, "  %8s  %s\n", humanize.Comma(int64(conv.MessageCounts[c])), c)
	}
	if rest := len(contacts) - len(shown); rest > 0 {
		fmt.Fprintf(&b, "  %s(%d more)%s\n", colorDim, rest, colorReset)
	}

	series := insights.SentPerMonth(conv.SentMessages)
	if len(series.Months) > 0 {
		fmt.Fprintln(&b, "\n=== Sent per month ===")
		for i, month := range series.Months {
			total, top, topN := 0, "", 0
			for _, c := range series.Contacts {
				n := series.Counts[c][i]
				total += n
				if n > topN {
					top, topN = c, n
				}
			}
			fmt.Fprintf(&b, "  %s  %6s  %s%s (%d)%s\n", month.Format("Jan 2006"),
				humanize.Comma(int64(total)), colorDim, top, topN, colorReset)
		}
	}

	logins := insights.LoginsPerMonth(m.Logins)
	fmt.Fprintln(&b, "\n=== Logins ===")
	fmt.Fprintf(&b, "  Total: %s\n", humanize.Comma(int64(len(m.Logins))))
	for _, mc := range logins {
		fmt.Fprintf(&b, "  %s  %6s\n", mc.Month.Format("Jan 2006"), humanize.Comma(int64(mc.Count)))
	}

	fmt.Fprintln(&b, "\n=== Shopping ===")
	fmt.Fprintf(&b, "  Spent:  %s\n", insights.FormatMoney(m.Shopping.TotalSpending))
	fmt.Fprintf(&b, "  Orders: %s\n", humanize.Comma(int64(m.Shopping.TotalOrders)))
	fmt.Fprintf(&b, "  Items:  %s\n", humanize.Comma(int64(len(m.Shopping.PurchasedItems))))

	if n := len(m.Diagnostics); n > 0 {
		fmt.Fprintf(&b, "\n%s%s skipped or defaulted records (run with --log-level debug for details)%s\n",
			colorDim, humanize.Comma(int64(n)), colorReset)
	}
	return b.String()
}
