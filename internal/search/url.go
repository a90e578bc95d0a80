// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"net/url"
	"strings"
)

// listingBase is the listing search endpoint. Declared as a var so tests
// can substitute an httptest server.
var listingBase = "https://lista.mercadolivre.com.br/"

// conditionSegments maps item conditions to their URL suffix segments.
var conditionSegments = map[string]string{
	"new":  "_ITEM*CONDITION_2230284",
	"used": "_ITEM*CONDITION_2230581",
}

// sortSegments maps sort modes to their URL suffix segments. Relevance is
// the server default and appends nothing.
var sortSegments = map[string]string{
	SortPriceAsc:  "_OrderId_PRICE*ASC",
	SortPriceDesc: "_OrderId_PRICE*DESC",
}

// slugify renders the query text the way listing URLs expect: whitespace
// runs become single hyphens and the rest is percent-encoded.
func slugify(query string) string {
	return url.PathEscape(strings.Join(strings.Fields(query), "-"))
}

// buildListingURL constructs the first-page URL for one region. Suffix
// segments append in a fixed order after the slug: condition, state, sort,
// offset. A category replaces the condition (the two are mutually
// exclusive) and prefixes its path segment instead.
func buildListingURL(query string, opts Options, state, categorySegment string) string {
	var b strings.Builder
	b.WriteString(listingBase)

	if categorySegment != "" {
		b.WriteString(categorySegment)
		b.WriteString("/")
	}

	b.WriteString(slugify(query))

	if categorySegment == "" && opts.Condition != "" {
		b.WriteString(conditionSegments[opts.Condition])
	}
	if state != "" {
		b.WriteString("_Estado_")
		b.WriteString(state)
	}
	if seg, ok := sortSegments[opts.Sort]; ok {
		b.WriteString(seg)
	}
	if opts.Offset > 0 {
		fmt.Fprintf(&b, "_Desde_%d", opts.Offset+1)
	}

	return b.String()
}
