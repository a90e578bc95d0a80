// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/meliscan/internal/category"
	"github.com/pdiddy/meliscan/internal/page"
	"github.com/pdiddy/meliscan/pkg/types"
)

// fetcherFunc adapts a function to the Fetcher interface.
type fetcherFunc func(ctx context.Context, url string, timeout time.Duration) ([]byte, error)

func (f fetcherFunc) Fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	return f(ctx, url, timeout)
}

// fakeFetcher serves canned page bodies by URL and records calls.
type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string, _ time.Duration) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()
	body, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("no page for %s", url)
	}
	return []byte(body), nil
}

// listingBody builds a synthetic listing page: markup noise around a state
// payload with one titled record per id.
func listingBody(t *testing.T, ids []string, next string, total int) string {
	t.Helper()
	results := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		results = append(results, map[string]any{
			"polycard": map[string]any{
				"metadata": map[string]any{"id": id},
				"components": []map[string]any{
					{"type": "title", "title": map[string]any{"text": "Item " + id}},
					{"type": "price", "price": map[string]any{
						"current_price":   map[string]any{"value": 100},
						"currency_symbol": "R$",
					}},
				},
			},
		})
	}
	payload := map[string]any{
		"results": results,
		"pagination": map[string]any{
			"total": total,
			"next_page": map[string]any{
				"show": next != "",
				"url":  next,
			},
		},
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return "<html><body><script>window." + page.StateMarker + " = " + string(data) + ";</script></body></html>"
}

func testPipeline(f Fetcher) *Pipeline {
	return &Pipeline{
		Fetcher:    f,
		Categories: category.Default(),
		Config: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{Timeout: time.Second},
			Rate:       types.RateConfig{Disabled: true},
		},
	}
}

func seq(prefix string, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return ids
}

// --- validation ---

func TestRunValidationBeforeNetwork(t *testing.T) {
	noNetwork := fetcherFunc(func(context.Context, string, time.Duration) ([]byte, error) {
		t.Fatal("network call attempted before validation")
		return nil, nil
	})

	tests := []struct {
		name string
		opts Options
	}{
		{"condition and category", Options{Condition: "new", CategoryID: "MLB1648"}},
		{"unknown condition", Options{Condition: "refurbished"}},
		{"unknown category", Options{CategoryID: "MLB000000"}},
		{"unknown state", Options{States: []string{"SP", "XX"}}},
		{"unknown sort", Options{Sort: "alphabetical"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testPipeline(noNetwork)
			_, err := p.Run(context.Background(), "galaxy s22", tt.opts)
			require.Error(t, err)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)

			_, err = p.RunRaw(context.Background(), "galaxy s22", tt.opts)
			assert.ErrorAs(t, err, &verr)
		})
	}
}

// --- end-to-end pagination ---

func TestRunTwoPagesWithOverlap(t *testing.T) {
	first := listingBase + "galaxy-s22"
	second := listingBase + "galaxy-s22_Desde_51"

	page1 := seq("MLB", 15)
	// Page 2 repeats 5 ids from page 1 and adds 5 fresh ones.
	page2 := append(seq("MLB", 5), seq("MLBX", 5)...)

	f := &fakeFetcher{pages: map[string]string{
		first:  listingBody(t, page1, second, 100),
		second: listingBody(t, page2, "", 100),
	}}

	result, err := testPipeline(f).Run(context.Background(), "galaxy s22", Options{Limit: 20})
	require.NoError(t, err)

	assert.Len(t, result.Items, 20)
	assert.True(t, result.Pagination.Capped)
	assert.Equal(t, 100, result.Pagination.Total)
	assert.Equal(t, first, result.Query.URL)

	seen := make(map[string]bool)
	for _, item := range result.Items {
		assert.False(t, seen[item.ID], "duplicate id %s", item.ID)
		seen[item.ID] = true
	}
}

func TestRunFirstPageFailureIsFatal(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{}}
	_, err := testPipeline(f).Run(context.Background(), "galaxy s22", Options{Limit: 20})
	require.Error(t, err)
}

func TestRunFirstPageUnparseableIsExtractionError(t *testing.T) {
	first := listingBase + "galaxy-s22"
	f := &fakeFetcher{pages: map[string]string{first: "<html>blocked</html>"}}

	_, err := testPipeline(f).Run(context.Background(), "galaxy s22", Options{Limit: 20})
	require.Error(t, err)
	var xerr *page.ExtractionError
	assert.ErrorAs(t, err, &xerr)
}

func TestRunLaterPageFailureReturnsPartial(t *testing.T) {
	first := listingBase + "galaxy-s22"
	missing := listingBase + "galaxy-s22_Desde_51"

	f := &fakeFetcher{pages: map[string]string{
		first: listingBody(t, seq("MLB", 10), missing, 50),
	}}

	result, err := testPipeline(f).Run(context.Background(), "galaxy s22", Options{Limit: 20})
	require.NoError(t, err)
	assert.Len(t, result.Items, 10)
	assert.False(t, result.Pagination.Capped)
}

func TestPaginateStopsAtPageCeiling(t *testing.T) {
	var calls int
	f := fetcherFunc(func(_ context.Context, url string, _ time.Duration) ([]byte, error) {
		calls++
		ids := []string{fmt.Sprintf("MLBA%d", calls), fmt.Sprintf("MLBB%d", calls)}
		// Every page advertises another page; only the ceiling stops us.
		return []byte(listingBody(t, ids, listingBase+fmt.Sprintf("p%d", calls+1), 0)), nil
	})

	res, err := testPipeline(f).paginate(context.Background(), listingBase+"p1", 1000)
	require.NoError(t, err)
	assert.Equal(t, pageCeiling, calls)
	assert.True(t, res.capped)
	assert.Len(t, res.items, 2*pageCeiling)
}

func TestPaginateStopsOnStagnantPage(t *testing.T) {
	var calls int
	f := fetcherFunc(func(_ context.Context, url string, _ time.Duration) ([]byte, error) {
		calls++
		// Same ids every time: the second page adds nothing new.
		return []byte(listingBody(t, seq("MLB", 3), listingBase+"again", 0)), nil
	})

	res, err := testPipeline(f).paginate(context.Background(), listingBase+"p1", 1000)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Len(t, res.items, 3)
	assert.False(t, res.capped)
}

// --- strict mode and sorting through Run ---

func TestRunStrictFiltersMergedResults(t *testing.T) {
	first := listingBase + "galaxy-s22"
	body := `<html>` + page.StateMarker + ` = {"results": [
		{"polycard": {"metadata": {"id": "MLB1"}, "components": [
			{"type": "title", "title": {"text": "Smartphone Samsung Galaxy S22 128GB"}}]}},
		{"polycard": {"metadata": {"id": "MLB2"}, "components": [
			{"type": "title", "title": {"text": "Capa Samsung Galaxy A22"}}]}}
	], "pagination": {"total": 2}}</html>`

	f := &fakeFetcher{pages: map[string]string{first: body}}
	result, err := testPipeline(f).Run(context.Background(), "galaxy s22", Options{Limit: 20, Strict: true})
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, "MLB1", result.Items[0].ID)
	assert.True(t, result.Query.Strict)
}

func TestRunRawReturnsPayloadUnmodified(t *testing.T) {
	first := listingBase + "galaxy-s22"
	f := &fakeFetcher{pages: map[string]string{
		first: listingBody(t, seq("MLB", 2), "", 2),
	}}

	raw, err := testPipeline(f).RunRaw(context.Background(), "galaxy s22", Options{})
	require.NoError(t, err)
	require.True(t, json.Valid(raw))

	var decoded struct {
		Results []json.RawMessage `json:"results"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Len(t, decoded.Results, 2)
}
