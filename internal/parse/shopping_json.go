package parse

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ParseShoppingLedgerJSON reads an "OrderHistories" map keyed by order id.
// A price that does not parse adds nothing to the total but the order still
// counts.
func ParseShoppingLedgerJSON(histories map[string]any) (Shopping, []Diagnostic) {
	var diags []Diagnostic

	ids := make([]string, 0, len(histories))
	for id := range histories {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	orders := make([]Order, 0, len(ids))
	for _, id := range ids {
		obj, ok := histories[id].(map[string]any)
		if !ok {
			diags = append(diags, Diagnostic{Section: "shopping", Reason: "order " + id + " is not an object"})
			obj = map[string]any{}
		}
		o := Order{OrderID: id, TotalPrice: decimal.Zero}
		o.OrderDate, _ = firstString(obj, "order_date", "orderDate", "date")
		o.OrderStatus, _ = firstString(obj, "order_status", "orderStatus", "status")

		if price, ok := jsonPrice(obj); ok {
			o.TotalPrice = price
		} else {
			diags = append(diags, Diagnostic{Section: "shopping", Reason: "order " + id + ": total price not recognized"})
		}

		products, _ := obj["products"].([]any)
		if products == nil {
			products, _ = obj["product_list"].([]any)
		}
		for _, p := range products {
			o.LineItems = append(o.LineItems, lineItemFromJSON(p))
		}
		orders = append(orders, o)
	}
	return Summarize(orders), diags
}

// jsonPrice reads total_price as "<number> <currency>" text, the same way
// the ledger does, or as a bare JSON number.
func jsonPrice(obj map[string]any) (decimal.Decimal, bool) {
	for _, k := range []string{"total_price", "totalPrice"} {
		switch v := obj[k].(type) {
		case string:
			return parsePrice(v)
		case float64:
			return asDecimal(v)
		}
	}
	return decimal.Zero, false
}

func lineItemFromJSON(v any) LineItem {
	item := LineItem{ProductName: Unknown, VariationName: Unknown, Quantity: 1}
	obj, ok := v.(map[string]any)
	if !ok {
		return item
	}
	if s, ok := firstString(obj, "product_name", "productName", "name"); ok {
		item.ProductName = s
	}
	if s, ok := firstString(obj, "sku_name", "variationName", "variation"); ok {
		item.VariationName = s
	}
	if n, ok := asInt(obj["quantity"]); ok {
		item.Quantity = n
	}
	return item
}

// summaryFromJSON accepts an already-summarized shopping object.
func summaryFromJSON(obj map[string]any) (Shopping, bool) {
	spending, ok := asDecimal(obj["totalSpending"])
	if !ok {
		return Shopping{}, false
	}
	orders, ok := asInt(obj["totalOrders"])
	if !ok {
		return Shopping{}, false
	}
	summary := emptyShopping()
	summary.TotalSpending = spending
	summary.TotalOrders = orders

	items, _ := obj["purchasedItems"].([]any)
	for _, v := range items {
		row, _ := v.(map[string]any)
		if row == nil {
			row = map[string]any{}
		}
		it := ShoppingItem{ProductName: Unknown, VariationName: Unknown, Quantity: 1, TotalPrice: decimal.Zero}
		it.OrderID, _ = firstString(row, "orderId")
		it.OrderDate, _ = firstString(row, "orderDate")
		it.OrderStatus, _ = firstString(row, "orderStatus")
		if s, ok := firstString(row, "productName"); ok {
			it.ProductName = s
		}
		if s, ok := firstString(row, "variationName"); ok {
			it.VariationName = s
		}
		if n, ok := asInt(row["quantity"]); ok {
			it.Quantity = n
		}
		if d, ok := asDecimal(row["totalPrice"]); ok {
			it.TotalPrice = d
		}
		summary.PurchasedItems = append(summary.PurchasedItems, it)
	}
	return summary, true
}
