// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search implements the listing search pipeline: URL construction,
// pagination, multi-region aggregation, strict filtering, sorting and
// truncation.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/meliscan/internal/category"
	"github.com/pdiddy/meliscan/internal/enrich"
	"github.com/pdiddy/meliscan/internal/match"
	"github.com/pdiddy/meliscan/internal/page"
	"github.com/pdiddy/meliscan/pkg/types"
)

// Fetcher retrieves one page body within a deadline. transport.Client
// implements it.
type Fetcher interface {
	Fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error)
}

// stateCodes is the set of valid two-letter Brazilian state codes.
var stateCodes = map[string]bool{
	"AC": true, "AL": true, "AP": true, "AM": true, "BA": true, "CE": true,
	"DF": true, "ES": true, "GO": true, "MA": true, "MT": true, "MS": true,
	"MG": true, "PA": true, "PB": true, "PR": true, "PE": true, "PI": true,
	"RJ": true, "RN": true, "RS": true, "RO": true, "RR": true, "SC": true,
	"SP": true, "SE": true, "TO": true,
}

// Options holds the search filters and knobs.
type Options struct {
	// Condition filters by item condition: "new", "used", or empty for
	// both. Mutually exclusive with CategoryID.
	Condition string

	// CategoryID filters by marketplace category (e.g. "MLB1648").
	CategoryID string

	// States lists two-letter region codes to fan the query out across.
	States []string

	// Sort is one of SortRelevance, SortPriceAsc, SortPriceDesc. Empty
	// means relevance.
	Sort string

	// Limit caps the number of returned items (default 20).
	Limit int

	// Offset skips ahead in the listing for the first request.
	Offset int

	// Strict requires every significant query token to appear in an
	// item's combined text.
	Strict bool

	// Details enriches surviving items from their product detail pages.
	Details bool

	// Concurrency is the requested detail-fetch concurrency; it is
	// clamped to the rate policy's ceiling.
	Concurrency int

	// RegionConcurrency caps concurrent region pipelines. Zero keeps the
	// fan-out unbounded, which multiplies in-flight requests by the
	// number of states.
	RegionConcurrency int
}

func (o Options) withDefaults() Options {
	if o.Limit <= 0 {
		o.Limit = 20
	}
	if o.Sort == "" {
		o.Sort = SortRelevance
	}
	states := make([]string, 0, len(o.States))
	for _, s := range o.States {
		states = append(states, strings.ToUpper(strings.TrimSpace(s)))
	}
	o.States = states
	return o
}

// Pipeline wires the search stages together. Construct one per
// configuration; it holds no per-call state and is safe for concurrent use.
type Pipeline struct {
	Fetcher    Fetcher
	Categories category.Table
	Config     types.SearchConfig
	Log        io.Writer
}

func (p *Pipeline) log() io.Writer {
	if p.Log == nil {
		return io.Discard
	}
	return p.Log
}

// validate checks the options before any network activity and resolves the
// category URL segment.
func (p *Pipeline) validate(opts Options) (categorySegment string, err error) {
	if opts.Condition != "" {
		if _, ok := conditionSegments[opts.Condition]; !ok {
			return "", &ValidationError{Msg: fmt.Sprintf("unknown condition %q (want new or used)", opts.Condition)}
		}
	}
	if opts.Condition != "" && opts.CategoryID != "" {
		return "", &ValidationError{Msg: "condition and category are mutually exclusive"}
	}
	if opts.CategoryID != "" {
		desc, rerr := p.Categories.Resolve(opts.CategoryID)
		if rerr != nil {
			return "", &ValidationError{Msg: rerr.Error()}
		}
		categorySegment = desc.Segment
	}
	for _, s := range opts.States {
		if !stateCodes[s] {
			return "", &ValidationError{Msg: fmt.Sprintf("unknown state code %q", s)}
		}
	}
	switch opts.Sort {
	case SortRelevance, SortPriceAsc, SortPriceDesc:
	default:
		return "", &ValidationError{Msg: fmt.Sprintf("unknown sort %q", opts.Sort)}
	}
	return categorySegment, nil
}

// Run executes a full search: gather (single region or aggregated), enrich,
// strict-filter, sort, truncate.
func (p *Pipeline) Run(ctx context.Context, query string, opts Options) (*types.SearchResult, error) {
	opts = opts.withDefaults()
	categorySegment, err := p.validate(opts)
	if err != nil {
		return nil, err
	}

	// Strict filtering loses items after the fact; gather extra to
	// compensate for the attrition.
	gatherLimit := opts.Limit
	if opts.Strict {
		gatherLimit *= 3
	}

	var gathered *regionResult
	if len(opts.States) > 1 {
		gathered = p.aggregate(ctx, query, opts, opts.States, categorySegment, gatherLimit)
	} else {
		state := ""
		if len(opts.States) == 1 {
			state = opts.States[0]
		}
		url := buildListingURL(query, opts, state, categorySegment)
		gathered, err = p.paginate(ctx, url, gatherLimit)
		if err != nil {
			return nil, err
		}
	}

	items := gathered.items
	if opts.Details {
		enricher := &enrich.Enricher{Fetcher: p.Fetcher, Config: p.Config, Log: p.Log}
		enricher.Run(ctx, items, opts.Concurrency)
	}
	if opts.Strict {
		items = match.Filter(items, query)
	}
	sortItems(items, opts.Sort)

	capped := gathered.capped
	if len(items) > opts.Limit {
		items = items[:opts.Limit]
		capped = true
	}
	if items == nil {
		items = []types.Item{}
	}

	resultsLimit := gathered.resultsLimit
	if len(opts.States) > 1 {
		resultsLimit = nil
	}

	return &types.SearchResult{
		Items: items,
		Query: types.QueryDescriptor{
			Text:       query,
			Condition:  opts.Condition,
			Sort:       opts.Sort,
			States:     opts.States,
			CategoryID: opts.CategoryID,
			Strict:     opts.Strict,
			URL:        gathered.firstURL,
		},
		Pagination: types.PaginationDescriptor{
			Total:        gathered.total,
			Offset:       gathered.offset,
			Limit:        opts.Limit,
			ResultsLimit: resultsLimit,
			Capped:       capped,
		},
	}, nil
}

// RunRaw validates the options, fetches the primary page, and returns the
// extracted payload unmodified. With multiple states the first state's page
// is the primary one.
func (p *Pipeline) RunRaw(ctx context.Context, query string, opts Options) (json.RawMessage, error) {
	opts = opts.withDefaults()
	categorySegment, err := p.validate(opts)
	if err != nil {
		return nil, err
	}

	state := ""
	if len(opts.States) > 0 {
		state = opts.States[0]
	}
	url := buildListingURL(query, opts, state, categorySegment)

	body, err := p.Fetcher.Fetch(ctx, url, p.Config.Timeout)
	if err != nil {
		return nil, err
	}
	_, raw, err := page.ExtractState(string(body))
	if err != nil {
		return nil, err
	}
	return raw, nil
}
