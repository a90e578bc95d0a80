// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/meliscan/internal/listing"
	"github.com/pdiddy/meliscan/internal/page"
	"github.com/pdiddy/meliscan/pkg/types"
)

// pageCeiling bounds how many listing pages one region fetch may follow,
// regardless of what the server's next-page links claim.
const pageCeiling = 20

// regionResult is the outcome of one single-region pagination run.
type regionResult struct {
	items        []types.Item
	total        int
	offset       int
	resultsLimit *int
	capped       bool
	firstURL     string
}

// paginate drives single-region retrieval: fetch, extract, normalize,
// dedupe, follow next-page links. It stops when limit items have
// accumulated, no next page exists, the page ceiling is hit, or a page
// yields zero new unique items (stagnant data guards against loops on
// repeating pages). The first page is mandatory: a transport or extraction
// failure there fails the whole region. Later-page failures end pagination
// with partial results.
func (p *Pipeline) paginate(ctx context.Context, firstURL string, limit int) (*regionResult, error) {
	res := &regionResult{firstURL: firstURL}
	seen := make(map[string]bool)
	url := firstURL

	for pages := 0; ; pages++ {
		if pages > 0 {
			if err := p.pageDelay(ctx); err != nil {
				return nil, err
			}
		}

		body, err := p.Fetcher.Fetch(ctx, url, p.Config.Timeout)
		if err != nil {
			if pages == 0 {
				return nil, err
			}
			fmt.Fprintf(p.log(), "warning: page %d fetch failed, returning partial results: %v\n", pages+1, err)
			break
		}

		state, _, err := page.ExtractState(string(body))
		if err != nil {
			if pages == 0 {
				return nil, err
			}
			// Later pages failing extraction count as exhausted.
			break
		}

		if pages == 0 {
			res.total = state.Pagination.Total
			res.offset = state.Pagination.Offset
			res.resultsLimit = state.Pagination.ResultsLimit
		}

		bestIDs := state.BestSellerIDs()
		added := 0
		for _, rec := range state.Results {
			item := listing.Normalize(rec, bestIDs)
			if item == nil {
				continue
			}
			if item.ID != "" {
				if seen[item.ID] {
					continue
				}
				seen[item.ID] = true
			}
			res.items = append(res.items, *item)
			added++
		}
		if added == 0 {
			break
		}

		if len(res.items) >= limit {
			res.capped = true
			break
		}
		next := state.Pagination.NextPage
		if next == nil || !next.Show || next.URL == "" {
			break
		}
		if pages+1 >= pageCeiling {
			res.capped = true
			break
		}
		url = next.URL
	}

	if res.total == 0 {
		res.total = len(res.items)
	}
	return res, nil
}

// pageDelay applies the inter-page pause, honoring cancellation.
func (p *Pipeline) pageDelay(ctx context.Context) error {
	rate := p.Config.Rate
	if rate.Disabled || rate.PageDelay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(rate.PageDelay):
		return nil
	}
}
