// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the meliscan pipeline.
package types

// Item is the normalized listing unit produced from one marketplace record.
// It is immutable after normalization except for the enrichment fields
// (Rating, Pictures, Description, Attributes), which are set at most once,
// on detail-page enrichment success.
type Item struct {
	// ID is the marketplace item identifier (e.g. "MLB3604025502") and the
	// dedup key. Empty when the record carried no id; such items are never
	// merged with another.
	ID string `json:"id"`

	// Title is the listing title. Records without a title are dropped
	// during normalization and never become Items.
	Title string `json:"title"`

	// Price is the current price, fixed to 2 decimal places. 0 when the
	// record carried no price data.
	Price float64 `json:"price"`

	// Currency is the price currency symbol or code as shown on the page.
	Currency string `json:"currency"`

	// OriginalPrice is the pre-discount price, when the listing shows one.
	OriginalPrice *float64 `json:"originalPrice"`

	// DiscountPercent is the advertised (or derived) discount percentage.
	DiscountPercent *int `json:"discountPercent"`

	// Installments is the installment offer text (e.g. "em 12x R$ 99,90").
	Installments *string `json:"installments"`

	// FreeShipping reports whether the shipping text advertises free
	// shipping. Nil when the listing carried no shipping component.
	FreeShipping *bool `json:"freeShipping"`

	// Shipping is the raw shipping text.
	Shipping *string `json:"shipping"`

	// Seller is the seller text (e.g. "Por Samsung").
	Seller *string `json:"seller"`

	// BestSeller reports whether the listing is flagged as a top seller,
	// either by its own highlight text or by the page-level best-seller set.
	BestSeller *bool `json:"bestSeller"`

	// Highlight is the highlight badge text (e.g. "MAIS VENDIDO").
	Highlight *string `json:"highlight"`

	// Promotions is the promotion badge text, when present.
	Promotions *string `json:"promotions"`

	// Thumbnail is a CDN image URL synthesized from the first picture id.
	Thumbnail *string `json:"thumbnail"`

	// Permalink is the product page URL, either taken from the record or
	// synthesized from the numeric portion of the id.
	Permalink *string `json:"permalink"`

	// CategoryID is the marketplace category of the listing.
	CategoryID string `json:"categoryId"`

	// IsAd records the advertisement flag. Ad records are filtered out
	// during normalization, so emitted Items always carry false.
	IsAd bool `json:"isAd"`

	// Rating holds detail-page review data. Nil until enrichment succeeds.
	Rating *Rating `json:"rating"`

	// Pictures holds detail-page gallery pictures. Nil until enrichment.
	Pictures []Picture `json:"pictures"`

	// Description is the detail-page description. Nil until enrichment.
	Description *string `json:"description"`

	// Attributes holds detail-page technical specifications. Nil until
	// enrichment.
	Attributes []SpecGroup `json:"attributes"`
}

// Rating is the review summary from a product detail page.
type Rating struct {
	Average float64       `json:"average"`
	Amount  int           `json:"amount"`
	Levels  []RatingLevel `json:"levels"`
}

// RatingLevel is one star level of the review histogram.
type RatingLevel struct {
	Index      int     `json:"index"`
	Value      int     `json:"value"`
	Percentage float64 `json:"percentage"`
}

// Picture is one gallery picture from a product detail page.
type Picture struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// SpecGroup is one titled group of technical specification values.
type SpecGroup struct {
	Title  string   `json:"title"`
	Values []string `json:"values"`
}
