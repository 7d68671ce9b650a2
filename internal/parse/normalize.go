package parse

// shoppingKeys are the casings the shopping section has appeared under.
var shoppingKeys = []string{"Tiktok Shopping", "TikTok Shopping"}

// Normalize builds the canonical model from a raw export. Missing or
// unrecognized sections produce their empty value; it never fails.
func Normalize(raw RawExport, owner string) *Model {
	m := &Model{
		Profile: extractProfile(raw),
		Logins:  extractLogins(raw),
	}

	conv, diags := extractConversations(raw, owner)
	m.Conversations = conv
	m.Diagnostics = append(m.Diagnostics, diags...)

	shopping, diags := extractShopping(raw)
	m.Shopping = shopping
	m.Diagnostics = append(m.Diagnostics, diags...)

	return m
}

func extractShopping(raw RawExport) (Shopping, []Diagnostic) {
	var node any
	for _, k := range shoppingKeys {
		if v, ok := raw[k]; ok && v != nil {
			node = v
			break
		}
	}

	switch n := node.(type) {
	case string:
		return ParseShoppingLedger(n)
	case map[string]any:
		switch history := n["Order History"].(type) {
		case string:
			return ParseShoppingLedger(history)
		case map[string]any:
			if orders, ok := history["OrderHistories"].(map[string]any); ok {
				return ParseShoppingLedgerJSON(orders)
			}
		}
		if summary, ok := summaryFromJSON(n); ok {
			return summary, nil
		}
	case nil:
		return emptyShopping(), nil
	}
	return emptyShopping(), []Diagnostic{{Section: "shopping", Reason: "shopping section has an unrecognized shape"}}
}
