// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/meliscan/pkg/types"
)

// formatTable writes results as a human-readable table to w.
func formatTable(result *types.SearchResult, w io.Writer) {
	if len(result.Items) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %12s  %-6s  %s\n",
		"Rank", "Title", "Price", "Ship", "ID")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, item := range result.Items {
		title := item.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		price := ""
		if item.Price > 0 {
			price = fmt.Sprintf("%s %.2f", item.Currency, item.Price)
		}
		ship := ""
		if item.FreeShipping != nil && *item.FreeShipping {
			ship = "free"
		}
		fmt.Fprintf(w, "%-4d  %-60s  %12s  %-6s  %s\n",
			i+1, title, price, ship, item.ID)
	}

	fmt.Fprintf(w, "\n%d of %d results", len(result.Items), result.Pagination.Total)
	if result.Pagination.Capped {
		fmt.Fprint(w, " (capped)")
	}
	fmt.Fprintln(w)
}

// formatJSON writes the full result as indented JSON to w.
func formatJSON(result *types.SearchResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
