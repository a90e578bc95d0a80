// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package listing converts raw marketplace records into normalized Items.
package listing

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/meliscan/internal/page"
	"github.com/pdiddy/meliscan/pkg/types"
)

const (
	productURLBase = "https://produto.mercadolivre.com.br/MLB-"
	thumbnailTmpl  = "https://http2.mlstatic.com/D_NQ_NP_%s-O.webp"
)

var (
	percentRe = regexp.MustCompile(`(\d+)\s*%`)
	digitsRe  = regexp.MustCompile(`\d+`)
)

// freeMarkers are the localized substrings that mark free shipping.
var freeMarkers = []string{"grátis", "gratis", "free"}

// bestSellerMarkers are the localized highlight texts that flag a top
// seller.
var bestSellerMarkers = []string{"mais vendido", "best seller"}

// Normalize converts one raw listing slot into an Item. It returns nil for
// records that should not surface: advertisements, records without a
// polycard, and records without a title. bestSellerIDs is the page-level
// best-seller id set (may be nil).
func Normalize(rec page.Result, bestSellerIDs map[string]bool) *types.Item {
	card := rec.Polycard
	if card == nil {
		return nil
	}
	if card.Metadata.IsPad {
		return nil
	}

	item := &types.Item{
		ID:         card.Metadata.ID,
		CategoryID: card.Metadata.CategoryID,
	}

	for _, comp := range card.Components {
		switch comp.Type {
		case "title":
			if comp.Title != nil {
				item.Title = strings.TrimSpace(comp.Title.Text)
			}
		case "price":
			applyPrice(item, comp.Price)
		case "shipping":
			if comp.Shipping != nil && comp.Shipping.Text != "" {
				text := comp.Shipping.Text
				item.Shipping = &text
				free := containsAnyFold(text, freeMarkers)
				item.FreeShipping = &free
			}
		case "seller":
			if comp.Seller != nil && comp.Seller.Text != "" {
				text := comp.Seller.Text
				item.Seller = &text
			}
		case "highlight":
			if comp.Highlight != nil && comp.Highlight.Text != "" {
				text := comp.Highlight.Text
				item.Highlight = &text
			}
		case "promotions":
			if comp.Promotions != nil && comp.Promotions.Text != "" {
				text := comp.Promotions.Text
				item.Promotions = &text
			}
		}
	}

	if item.Title == "" {
		return nil
	}

	best := bestSeller(item, bestSellerIDs)
	if best || item.Highlight != nil {
		item.BestSeller = &best
	}

	item.Permalink = permalink(card.Metadata)
	item.Thumbnail = thumbnail(rec.Pictures)

	return item
}

// applyPrice reconstructs the fixed-point price state from a price
// component.
func applyPrice(item *types.Item, p *page.Price) {
	if p == nil {
		return
	}
	item.Currency = p.CurrencySymbol

	if p.CurrentPrice != nil {
		item.Price = moneyValue(*p.CurrentPrice)
	}
	if p.OriginalPrice != nil && p.OriginalPrice.Value > 0 {
		orig := moneyValue(*p.OriginalPrice)
		item.OriginalPrice = &orig
	}
	if p.Installments != nil && p.Installments.Text != "" {
		text := p.Installments.Text
		item.Installments = &text
	}

	item.DiscountPercent = discountPercent(p, item.Price, item.OriginalPrice)
}

// moneyValue combines the whole-unit value with the cents string. Cents
// only apply when the value itself is a whole number; some page variants
// put the full decimal in value and repeat the fraction in cents.
func moneyValue(m page.Money) float64 {
	v := m.Value
	if m.Cents != "" && v == math.Trunc(v) {
		if cents, err := strconv.Atoi(m.Cents); err == nil {
			v += float64(cents) / 100
		}
	}
	return math.Round(v*100) / 100
}

// discountPercent prefers the textual percentage from the discount label
// and falls back to deriving one from the original price.
func discountPercent(p *page.Price, price float64, original *float64) *int {
	if p.DiscountLabel != nil {
		if m := percentRe.FindStringSubmatch(p.DiscountLabel.Text); m != nil {
			if pct, err := strconv.Atoi(m[1]); err == nil {
				return &pct
			}
		}
	}
	if original != nil && *original > price {
		pct := int(math.Round((*original - price) / *original * 100))
		return &pct
	}
	return nil
}

// bestSeller reports whether the item is flagged as a top seller either by
// its own highlight text or by the page-level id set.
func bestSeller(item *types.Item, ids map[string]bool) bool {
	if item.Highlight != nil && containsAnyFold(*item.Highlight, bestSellerMarkers) {
		return true
	}
	return item.ID != "" && ids[item.ID]
}

// permalink prefers the record's absolute URL and falls back to a canonical
// product URL synthesized from the numeric portion of the id.
func permalink(meta page.Metadata) *string {
	if meta.URL != "" {
		url := meta.URL
		return &url
	}
	if digits := digitsRe.FindString(meta.ID); digits != "" {
		url := productURLBase + digits
		return &url
	}
	return nil
}

// thumbnail synthesizes a CDN URL from the first picture id.
func thumbnail(pics page.PictureList) *string {
	if len(pics.Pictures) == 0 || pics.Pictures[0].ID == "" {
		return nil
	}
	url := fmt.Sprintf(thumbnailTmpl, pics.Pictures[0].ID)
	return &url
}

func containsAnyFold(s string, markers []string) bool {
	lower := strings.ToLower(s)
	for _, m := range markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
