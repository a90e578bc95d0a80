// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/meliscan/internal/page"
)

func card(id string, components ...page.Component) page.Result {
	return page.Result{
		Polycard: &page.Polycard{
			Metadata:   page.Metadata{ID: id, CategoryID: "MLB1051"},
			Components: components,
		},
	}
}

func titleComp(text string) page.Component {
	return page.Component{Type: "title", Title: &page.Text{Text: text}}
}

func priceComp(p page.Price) page.Component {
	return page.Component{Type: "price", Price: &p}
}

func TestNormalizeRejectsInvalidRecords(t *testing.T) {
	tests := []struct {
		name string
		rec  page.Result
	}{
		{"no polycard", page.Result{}},
		{"no title", card("MLB1")},
		{"empty title", card("MLB1", titleComp("  "))},
		{"advertisement", page.Result{Polycard: &page.Polycard{
			Metadata:   page.Metadata{ID: "MLB1", IsPad: true},
			Components: []page.Component{titleComp("Promoted thing")},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, Normalize(tt.rec, nil))
		})
	}
}

func TestNormalizePriceReconstruction(t *testing.T) {
	tests := []struct {
		name  string
		money page.Money
		want  float64
	}{
		{"value plus cents", page.Money{Value: 1999, Cents: "90"}, 1999.90},
		{"no cents", page.Money{Value: 1999}, 1999},
		{"decimal value ignores cents", page.Money{Value: 1999.5, Cents: "90"}, 1999.5},
		{"unparseable cents", page.Money{Value: 10, Cents: "xx"}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := Normalize(card("MLB1", titleComp("Thing"),
				priceComp(page.Price{CurrentPrice: &tt.money, CurrencySymbol: "R$"})), nil)
			require.NotNil(t, item)
			assert.Equal(t, tt.want, item.Price)
			assert.Equal(t, "R$", item.Currency)
		})
	}
}

func TestNormalizeNoPriceDataYieldsZero(t *testing.T) {
	item := Normalize(card("MLB1", titleComp("Thing")), nil)
	require.NotNil(t, item)
	assert.Equal(t, 0.0, item.Price)
	assert.Nil(t, item.OriginalPrice)
	assert.Nil(t, item.DiscountPercent)
}

func TestNormalizeDiscountFromLabel(t *testing.T) {
	item := Normalize(card("MLB1", titleComp("Thing"), priceComp(page.Price{
		CurrentPrice:  &page.Money{Value: 630},
		OriginalPrice: &page.Money{Value: 1000},
		DiscountLabel: &page.Text{Text: "37% OFF"},
	})), nil)
	require.NotNil(t, item)
	require.NotNil(t, item.DiscountPercent)
	// The label wins over the derived 37 percent.
	assert.Equal(t, 37, *item.DiscountPercent)
}

func TestNormalizeDiscountDerived(t *testing.T) {
	item := Normalize(card("MLB1", titleComp("Thing"), priceComp(page.Price{
		CurrentPrice:  &page.Money{Value: 750},
		OriginalPrice: &page.Money{Value: 1000},
	})), nil)
	require.NotNil(t, item)
	require.NotNil(t, item.OriginalPrice)
	assert.Equal(t, 1000.0, *item.OriginalPrice)
	require.NotNil(t, item.DiscountPercent)
	assert.Equal(t, 25, *item.DiscountPercent)
}

func TestNormalizeNoDiscountWhenOriginalNotHigher(t *testing.T) {
	item := Normalize(card("MLB1", titleComp("Thing"), priceComp(page.Price{
		CurrentPrice:  &page.Money{Value: 1000},
		OriginalPrice: &page.Money{Value: 1000},
	})), nil)
	require.NotNil(t, item)
	assert.Nil(t, item.DiscountPercent)
}

func TestNormalizeFreeShipping(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Frete grátis", true},
		{"FRETE GRÁTIS", true},
		{"Chegará entre quinta e sexta", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			item := Normalize(card("MLB1", titleComp("Thing"),
				page.Component{Type: "shipping", Shipping: &page.Text{Text: tt.text}}), nil)
			require.NotNil(t, item)
			require.NotNil(t, item.FreeShipping)
			assert.Equal(t, tt.want, *item.FreeShipping)
			require.NotNil(t, item.Shipping)
			assert.Equal(t, tt.text, *item.Shipping)
		})
	}
}

func TestNormalizeBestSeller(t *testing.T) {
	highlight := page.Component{Type: "highlight", Highlight: &page.Text{Text: "MAIS VENDIDO"}}

	byHighlight := Normalize(card("MLB1", titleComp("Thing"), highlight), nil)
	require.NotNil(t, byHighlight)
	require.NotNil(t, byHighlight.BestSeller)
	assert.True(t, *byHighlight.BestSeller)

	bySet := Normalize(card("MLB2", titleComp("Thing")), map[string]bool{"MLB2": true})
	require.NotNil(t, bySet)
	require.NotNil(t, bySet.BestSeller)
	assert.True(t, *bySet.BestSeller)

	neither := Normalize(card("MLB3", titleComp("Thing")), map[string]bool{"MLB2": true})
	require.NotNil(t, neither)
	assert.Nil(t, neither.BestSeller)
}

func TestNormalizePermalink(t *testing.T) {
	withURL := page.Result{Polycard: &page.Polycard{
		Metadata:   page.Metadata{ID: "MLB123", URL: "https://example.com/p/MLB123"},
		Components: []page.Component{titleComp("Thing")},
	}}
	item := Normalize(withURL, nil)
	require.NotNil(t, item)
	require.NotNil(t, item.Permalink)
	assert.Equal(t, "https://example.com/p/MLB123", *item.Permalink)

	synthesized := Normalize(card("MLB3604025502", titleComp("Thing")), nil)
	require.NotNil(t, synthesized)
	require.NotNil(t, synthesized.Permalink)
	assert.Equal(t, "https://produto.mercadolivre.com.br/MLB-3604025502", *synthesized.Permalink)

	noID := page.Result{Polycard: &page.Polycard{
		Components: []page.Component{titleComp("Thing")},
	}}
	anon := Normalize(noID, nil)
	require.NotNil(t, anon)
	assert.Nil(t, anon.Permalink)
}

func TestNormalizeThumbnail(t *testing.T) {
	rec := card("MLB1", titleComp("Thing"))
	rec.Pictures = page.PictureList{Pictures: []page.PictureRef{{ID: "987654-MLA"}}}

	item := Normalize(rec, nil)
	require.NotNil(t, item)
	require.NotNil(t, item.Thumbnail)
	assert.Equal(t, "https://http2.mlstatic.com/D_NQ_NP_987654-MLA-O.webp", *item.Thumbnail)

	bare := Normalize(card("MLB1", titleComp("Thing")), nil)
	require.NotNil(t, bare)
	assert.Nil(t, bare.Thumbnail)
}
