// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich fills Items with detail-page data: gallery pictures,
// description, rating and technical specifications. Enrichment is
// best-effort: any per-item failure leaves that item exactly as it was.
package enrich

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pdiddy/meliscan/internal/page"
	"github.com/pdiddy/meliscan/pkg/types"
)

// thumbnailTmpl builds CDN URLs for gallery picture ids.
const thumbnailTmpl = "https://http2.mlstatic.com/D_NQ_NP_%s-O.webp"

// Fetcher retrieves one page body within a deadline.
type Fetcher interface {
	Fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error)
}

// Enricher fetches product detail pages in rate-limited batches. Within a
// batch fetches run in parallel; batches run strictly sequentially with a
// delay between them — this is the pipeline's only true backpressure.
type Enricher struct {
	Fetcher Fetcher
	Config  types.SearchConfig
	Log     io.Writer
}

func (e *Enricher) log() io.Writer {
	if e.Log == nil {
		return io.Discard
	}
	return e.Log
}

// Run enriches every item carrying a permalink, in place. concurrency is
// the caller's request, clamped to the rate policy's ceiling.
func (e *Enricher) Run(ctx context.Context, items []types.Item, concurrency int) {
	var targets []int
	for i := range items {
		if items[i].Permalink != nil && *items[i].Permalink != "" {
			targets = append(targets, i)
		}
	}
	if len(targets) == 0 {
		return
	}

	batchSize := e.Config.Rate.EffectiveConcurrency(concurrency)

	for start := 0; start < len(targets); start += batchSize {
		if start > 0 {
			if err := e.batchDelay(ctx); err != nil {
				return
			}
		}

		end := start + batchSize
		if end > len(targets) {
			end = len(targets)
		}

		var wg sync.WaitGroup
		for _, idx := range targets[start:end] {
			wg.Add(1)
			go func(item *types.Item) {
				defer wg.Done()
				e.enrichOne(ctx, item)
			}(&items[idx])
		}
		wg.Wait()
	}
}

// enrichOne fetches and merges one detail page. Failures degrade silently
// beyond a warning: the item keeps its pre-enrichment state.
func (e *Enricher) enrichOne(ctx context.Context, item *types.Item) {
	body, err := e.Fetcher.Fetch(ctx, *item.Permalink, e.Config.Timeout)
	if err != nil {
		fmt.Fprintf(e.log(), "warning: detail fetch for %s failed: %v\n", item.ID, err)
		return
	}
	detail, err := page.ExtractDetail(string(body))
	if err != nil {
		fmt.Fprintf(e.log(), "warning: detail extract for %s failed: %v\n", item.ID, err)
		return
	}
	merge(item, detail)
}

// merge copies detail-page data into the item. The merge is additive: it
// only fills enrichment fields that are still unset and never touches the
// primary listing fields.
func merge(item *types.Item, detail *page.Detail) {
	comp := detail.Components

	if item.Pictures == nil && comp.Gallery != nil && len(comp.Gallery.Pictures) > 0 {
		pics := make([]types.Picture, 0, len(comp.Gallery.Pictures))
		for _, p := range comp.Gallery.Pictures {
			if p.ID == "" {
				continue
			}
			pics = append(pics, types.Picture{
				ID:     p.ID,
				URL:    fmt.Sprintf(thumbnailTmpl, p.ID),
				Width:  p.Width,
				Height: p.Height,
			})
		}
		if len(pics) > 0 {
			item.Pictures = pics
		}
	}

	if item.Description == nil && comp.Description != nil && comp.Description.Content != "" {
		content := comp.Description.Content
		item.Description = &content
	}

	if item.Rating == nil && comp.Reviews != nil && comp.Reviews.Rating.Amount > 0 {
		rating := &types.Rating{
			Average: comp.Reviews.Rating.Average,
			Amount:  comp.Reviews.Rating.Amount,
		}
		for _, lvl := range comp.Reviews.Rating.Levels {
			rating.Levels = append(rating.Levels, types.RatingLevel{
				Index:      lvl.Index,
				Value:      lvl.Value,
				Percentage: lvl.Percentage,
			})
		}
		item.Rating = rating
	}

	if item.Attributes == nil && comp.Specs != nil {
		var groups []types.SpecGroup
		for _, sc := range comp.Specs.Components {
			if sc.Type != "technical_specifications" {
				continue
			}
			for _, spec := range sc.Specs {
				if len(spec.Attributes) == 0 {
					continue
				}
				groups = append(groups, types.SpecGroup{
					Title:  spec.Title,
					Values: spec.Attributes,
				})
			}
		}
		if len(groups) > 0 {
			item.Attributes = groups
		}
	}
}

// batchDelay applies the inter-batch pause, honoring cancellation.
func (e *Enricher) batchDelay(ctx context.Context) error {
	rate := e.Config.Rate
	if rate.Disabled || rate.BatchDelay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(rate.BatchDelay):
		return nil
	}
}
