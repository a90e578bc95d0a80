// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SearchResult is the outcome of one top-level search call. It holds no
// references back into pipeline state and is safe to retain indefinitely.
type SearchResult struct {
	Items      []Item               `json:"items"`
	Query      QueryDescriptor      `json:"query"`
	Pagination PaginationDescriptor `json:"pagination"`
}

// QueryDescriptor records the resolved inputs of a search call.
type QueryDescriptor struct {
	// Text is the free-text query as given by the caller.
	Text string `json:"text"`

	// Condition is the resolved item condition filter ("new", "used" or "").
	Condition string `json:"condition"`

	// Sort is the resolved sort mode ("relevance", "price_asc", "price_desc").
	Sort string `json:"sort"`

	// States lists the resolved two-letter region codes, in request order.
	States []string `json:"states"`

	// CategoryID is the resolved category filter, empty when none.
	CategoryID string `json:"categoryId"`

	// Strict reports whether strict token matching was applied.
	Strict bool `json:"strict"`

	// URL is the canonical URL of the primary (first) request.
	URL string `json:"url"`
}

// PaginationDescriptor records result-count and paging metadata.
type PaginationDescriptor struct {
	// Total is the server-reported result count when known, otherwise the
	// count actually returned. For multi-region searches it sums the
	// per-region totals.
	Total int `json:"total"`

	// Offset is the listing offset of the first request.
	Offset int `json:"offset"`

	// Limit is the caller's cap on returned items.
	Limit int `json:"limit"`

	// ResultsLimit is the marketplace-imposed browse cap, when the page
	// reports one. Nil for multi-region aggregates.
	ResultsLimit *int `json:"resultsLimit"`

	// Capped is true when the limit was reached, or when the page ceiling
	// was hit while more pages existed.
	Capped bool `json:"capped"`
}

// CategoryDescriptor is one entry of the static category reference table.
type CategoryDescriptor struct {
	// ID is the marketplace category id (e.g. "MLB1648").
	ID string `json:"id" yaml:"id"`

	// Name is the human-readable category name.
	Name string `json:"name" yaml:"name"`

	// Segment is the URL suffix segment that selects the category. It
	// replaces the condition segment when both would apply.
	Segment string `json:"segment" yaml:"segment"`
}
