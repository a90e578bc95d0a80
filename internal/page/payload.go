// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package page

// The embedded payload is undocumented and changes between page variants,
// so every field below is optional: absent fields decode to zero values and
// pointers, and each consumer supplies its own fallback.

// State is the subset of the listing-page payload the pipeline consumes.
type State struct {
	Results    []Result   `json:"results"`
	Pagination Pagination `json:"pagination"`
	Melidata   Melidata   `json:"melidata_track"`
}

// Result is one listing slot. The polycard carries the listing itself;
// pictures live alongside it at the slot level.
type Result struct {
	Polycard *Polycard   `json:"polycard"`
	Pictures PictureList `json:"pictures"`
}

// Polycard is the marketplace's per-listing component bundle.
type Polycard struct {
	Metadata   Metadata    `json:"metadata"`
	Components []Component `json:"components"`
}

// Metadata identifies a listing and flags advertisements.
type Metadata struct {
	ID         string `json:"id"`
	IsPad      bool   `json:"is_pad"`
	URL        string `json:"url"`
	CategoryID string `json:"category_id"`
}

// Component is one tagged polycard component. Only the payload matching
// Type is populated.
type Component struct {
	Type       string     `json:"type"`
	Title      *Text      `json:"title"`
	Price      *Price     `json:"price"`
	Shipping   *Text      `json:"shipping"`
	Seller     *Text      `json:"seller"`
	Highlight  *Text      `json:"highlight"`
	Promotions *Text      `json:"promotions"`
	Review     *RawReview `json:"review_compacted"`
}

// Text is the common {text: "..."} shape used by several components.
type Text struct {
	Text string `json:"text"`
}

// Price carries current/original price values and discount metadata.
// Fractional cents arrive as a string in some page variants and are absent
// in others.
type Price struct {
	CurrentPrice   *Money `json:"current_price"`
	OriginalPrice  *Money `json:"original_price"`
	DiscountLabel  *Text  `json:"discount_label"`
	Installments   *Text  `json:"installments"`
	CurrencySymbol string `json:"currency_symbol"`
}

// Money is one price figure: a whole-unit value plus an optional cents
// string.
type Money struct {
	Value float64 `json:"value"`
	Cents string  `json:"cents"`
}

// RawReview is the compacted listing review component. It is decoded for
// completeness but never populates an Item: rating is an enrichment-only
// field sourced from the detail page.
type RawReview struct {
	Rating float64 `json:"rating"`
	Amount int     `json:"amount"`
}

// PictureList wraps the slot-level picture array.
type PictureList struct {
	Pictures []PictureRef `json:"pictures"`
}

// PictureRef references one picture by CDN id.
type PictureRef struct {
	ID string `json:"id"`
}

// Pagination is the listing-page paging block.
type Pagination struct {
	Total        int       `json:"total"`
	ResultsLimit *int      `json:"results_limit"`
	Offset       int       `json:"offset"`
	NextPage     *NextPage `json:"next_page"`
}

// NextPage points at the following listing page when the server offers one.
type NextPage struct {
	Show bool   `json:"show"`
	URL  string `json:"url"`
}

// Melidata is the page-level analytics block. The best-seller id set lives
// here rather than on any single listing.
type Melidata struct {
	EventData EventData `json:"event_data"`
}

type EventData struct {
	HighlightsInfo HighlightsInfo `json:"highlights_info"`
}

type HighlightsInfo struct {
	BestSellerInfo BestSellerInfo `json:"best_seller_info"`
}

type BestSellerInfo struct {
	Selected []string `json:"selected"`
}

// BestSellerIDs returns the page-level best-seller id set.
func (s *State) BestSellerIDs() map[string]bool {
	ids := s.Melidata.EventData.HighlightsInfo.BestSellerInfo.Selected
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// Detail is the subset of the product-page payload used for enrichment.
type Detail struct {
	Components DetailComponents `json:"components"`
}

// DetailComponents groups the detail-page components consumed here.
type DetailComponents struct {
	Gallery     *Gallery     `json:"gallery"`
	Description *Description `json:"description"`
	Reviews     *Reviews     `json:"reviews_capability_v3"`
	Specs       *SpecsBlock  `json:"highlighted_specs_attrs"`
}

func (c DetailComponents) hasAny() bool {
	return c.Gallery != nil || c.Description != nil || c.Reviews != nil || c.Specs != nil
}

// Gallery is the detail-page picture gallery.
type Gallery struct {
	Pictures []GalleryPicture `json:"pictures"`
}

// GalleryPicture is one gallery picture.
type GalleryPicture struct {
	ID     string `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Description is the detail-page description component.
type Description struct {
	Content string `json:"content"`
}

// Reviews is the detail-page review capability component.
type Reviews struct {
	Rating DetailRating `json:"rating"`
}

// DetailRating is the review summary histogram.
type DetailRating struct {
	Average float64       `json:"average"`
	Amount  int           `json:"amount"`
	Levels  []RatingLevel `json:"levels"`
}

// RatingLevel is one star level of the histogram.
type RatingLevel struct {
	Index      int     `json:"index"`
	Value      int     `json:"value"`
	Percentage float64 `json:"percentage"`
}

// SpecsBlock holds the highlighted technical specification components.
type SpecsBlock struct {
	Components []SpecComponent `json:"components"`
}

// SpecComponent is one specs sub-component; only those tagged
// "technical_specifications" are consumed.
type SpecComponent struct {
	Type  string      `json:"type"`
	Specs []SpecGroup `json:"specs"`
}

// SpecGroup is one titled group of specification strings.
type SpecGroup struct {
	Title      string   `json:"title"`
	Attributes []string `json:"attributes"`
}
