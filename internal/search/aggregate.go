// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"sync"
)

// aggregate fans the query out across region filters, one independent
// pagination pipeline per state, all running concurrently. Regions that
// fail are excluded from the merge with a warning; the aggregate succeeds
// as long as the merge itself can proceed. Fan-out is unbounded unless
// opts.RegionConcurrency caps it.
func (p *Pipeline) aggregate(ctx context.Context, query string, opts Options, states []string, categorySegment string, limit int) *regionResult {
	results := make([]*regionResult, len(states))

	var sem chan struct{}
	if opts.RegionConcurrency > 0 {
		sem = make(chan struct{}, opts.RegionConcurrency)
	}

	var wg sync.WaitGroup
	for i, state := range states {
		wg.Add(1)
		go func(i int, state string) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			url := buildListingURL(query, opts, state, categorySegment)
			res, err := p.paginate(ctx, url, limit)
			if err != nil {
				fmt.Fprintf(p.log(), "warning: state %s failed: %v\n", state, err)
				return
			}
			results[i] = res
		}(i, state)
	}
	wg.Wait()

	return mergeRegions(results)
}

// mergeRegions interleaves region results round-robin by rank position: all
// rank-0 items first in region-submission order, then all rank-1 items, and
// so on. This approximates relevance-preserving interleaving rather than
// naive concatenation. Ids are deduplicated across regions, first
// occurrence wins; items without an id are always retained. Totals sum
// across regions; the browse cap is meaningless in aggregate and stays nil.
func mergeRegions(results []*regionResult) *regionResult {
	merged := &regionResult{}
	seen := make(map[string]bool)

	longest := 0
	for _, res := range results {
		if res == nil {
			continue
		}
		merged.total += res.total
		merged.capped = merged.capped || res.capped
		if merged.firstURL == "" {
			merged.firstURL = res.firstURL
		}
		if len(res.items) > longest {
			longest = len(res.items)
		}
	}

	for rank := 0; rank < longest; rank++ {
		for _, res := range results {
			if res == nil || rank >= len(res.items) {
				continue
			}
			item := res.items[rank]
			if item.ID != "" {
				if seen[item.ID] {
					continue
				}
				seen[item.ID] = true
			}
			merged.items = append(merged.items, item)
		}
	}

	return merged
}
