// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"sort"

	"github.com/pdiddy/meliscan/pkg/types"
)

// Sort modes. Relevance preserves the marketplace/aggregation order.
const (
	SortRelevance = "relevance"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// sortItems reorders items in place. A zero price means the record carried
// no price data; such items sort last in both price orders.
func sortItems(items []types.Item, mode string) {
	switch mode {
	case SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool {
			pi, pj := items[i].Price, items[j].Price
			if pi == 0 {
				return false
			}
			if pj == 0 {
				return true
			}
			return pi < pj
		})
	case SortPriceDesc:
		// Unpriced items are zero and sink to the tail on their own.
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price > items[j].Price
		})
	}
}
