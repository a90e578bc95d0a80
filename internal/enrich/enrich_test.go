// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/meliscan/internal/page"
	"github.com/pdiddy/meliscan/pkg/types"
)

const detailBody = `<html>` + page.StateMarker + ` = {"components": {
	"gallery": {"pictures": [{"id": "pic1", "width": 500, "height": 500}]},
	"description": {"content": "A fine description."},
	"reviews_capability_v3": {"rating": {"average": 4.5, "amount": 10,
		"levels": [{"index": 5, "value": 8, "percentage": 80}]}},
	"highlighted_specs_attrs": {"components": [
		{"type": "technical_specifications", "specs": [
			{"title": "Geral", "attributes": ["Marca: Acme"]}]}]}
}}</html>`

type detailFetcher struct {
	mu       sync.Mutex
	inFlight int32
	peak     int32
	failFor  map[string]bool
	calls    []string
}

func (f *detailFetcher) Fetch(_ context.Context, url string, _ time.Duration) ([]byte, error) {
	cur := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		peak := atomic.LoadInt32(&f.peak)
		if cur <= peak || atomic.CompareAndSwapInt32(&f.peak, peak, cur) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)

	f.mu.Lock()
	f.calls = append(f.calls, url)
	fail := f.failFor[url]
	f.mu.Unlock()

	if fail {
		return nil, fmt.Errorf("blocked")
	}
	return []byte(detailBody), nil
}

func linked(id string) types.Item {
	url := "https://produto.example/" + id
	return types.Item{ID: id, Title: "Item " + id, Permalink: &url}
}

func testEnricher(f Fetcher) *Enricher {
	return &Enricher{
		Fetcher: f,
		Config: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{Timeout: time.Second},
			Rate:       types.RateConfig{MaxConcurrency: 2, Disabled: true},
		},
	}
}

func TestRunMergesDetailFields(t *testing.T) {
	f := &detailFetcher{}
	items := []types.Item{linked("MLB1")}

	testEnricher(f).Run(context.Background(), items, 1)

	item := items[0]
	require.NotNil(t, item.Description)
	assert.Equal(t, "A fine description.", *item.Description)
	require.Len(t, item.Pictures, 1)
	assert.Equal(t, "pic1", item.Pictures[0].ID)
	assert.Equal(t, "https://http2.mlstatic.com/D_NQ_NP_pic1-O.webp", item.Pictures[0].URL)
	require.NotNil(t, item.Rating)
	assert.Equal(t, 4.5, item.Rating.Average)
	assert.Equal(t, 10, item.Rating.Amount)
	require.Len(t, item.Attributes, 1)
	assert.Equal(t, []string{"Marca: Acme"}, item.Attributes[0].Values)
}

func TestRunSkipsItemsWithoutPermalink(t *testing.T) {
	f := &detailFetcher{}
	items := []types.Item{{ID: "MLB1", Title: "No link"}}

	testEnricher(f).Run(context.Background(), items, 1)

	assert.Empty(t, f.calls)
	assert.Nil(t, items[0].Description)
}

func TestRunFailureDegradesSingleItem(t *testing.T) {
	bad := linked("MLB2")
	f := &detailFetcher{failFor: map[string]bool{*bad.Permalink: true}}
	items := []types.Item{linked("MLB1"), bad, linked("MLB3")}

	testEnricher(f).Run(context.Background(), items, 3)

	assert.NotNil(t, items[0].Description)
	assert.Nil(t, items[1].Description)
	assert.Nil(t, items[1].Rating)
	assert.NotNil(t, items[2].Description)
}

func TestRunConcurrencyClampedToCeiling(t *testing.T) {
	f := &detailFetcher{}
	items := make([]types.Item, 0, 8)
	for i := 0; i < 8; i++ {
		items = append(items, linked(fmt.Sprintf("MLB%d", i)))
	}

	e := testEnricher(f)
	e.Config.Rate.Disabled = false
	e.Config.Rate.BatchDelay = 0
	// Request far more concurrency than the ceiling of 2 allows.
	e.Run(context.Background(), items, 100)

	assert.LessOrEqual(t, atomic.LoadInt32(&f.peak), int32(2))
	assert.Len(t, f.calls, 8)
}

func TestRunDoesNotOverwriteExistingEnrichment(t *testing.T) {
	f := &detailFetcher{}
	existing := "already set"
	item := linked("MLB1")
	item.Description = &existing
	items := []types.Item{item}

	testEnricher(f).Run(context.Background(), items, 1)

	assert.Equal(t, "already set", *items[0].Description)
}
