// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/meliscan/internal/category"
	"github.com/pdiddy/meliscan/internal/history"
	"github.com/pdiddy/meliscan/internal/search"
	"github.com/pdiddy/meliscan/internal/transport"
	"github.com/pdiddy/meliscan/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search listings for a free-text query",
	Long: `Search fetches Mercado Livre listing pages for a query, normalizes the
embedded records into a stable item schema, and paginates until enough
non-advertisement items are collected. Results can be filtered by condition
or category (mutually exclusive), fanned out across state filters, strictly
token-matched, enriched with detail-page data, sorted and truncated.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("condition", "", "item condition filter: new or used")
	searchCmd.Flags().String("category", "", "category id filter (e.g. MLB1648); excludes --condition")
	searchCmd.Flags().StringSlice("state", nil, "two-letter state code filter, repeatable (e.g. SP,RJ)")
	searchCmd.Flags().String("sort", "", "sort mode: relevance, price_asc or price_desc")
	searchCmd.Flags().Int("limit", 20, "maximum number of items to return")
	searchCmd.Flags().Int("offset", 0, "listing offset for the first page")
	searchCmd.Flags().Bool("strict", false, "require every query token to appear in each item's text")
	searchCmd.Flags().Bool("details", false, "enrich items from their product detail pages")
	searchCmd.Flags().Int("concurrency", 0, "detail-page fetch concurrency (clamped by the rate policy)")
	searchCmd.Flags().Int("region-concurrency", 0, "cap on concurrent state pipelines (0 = unbounded)")
	searchCmd.Flags().Bool("no-rate-limit", false, "disable inter-request delays and the concurrency clamp")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("raw", false, "print the extracted first-page payload unmodified")
	searchCmd.Flags().String("save", "", "save the results to a YAML query file")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	for _, extra := range args[1:] {
		query += " " + extra
	}

	opts := search.Options{}
	opts.Condition, _ = cmd.Flags().GetString("condition")
	opts.CategoryID, _ = cmd.Flags().GetString("category")
	opts.States, _ = cmd.Flags().GetStringSlice("state")
	opts.Sort, _ = cmd.Flags().GetString("sort")
	opts.Limit, _ = cmd.Flags().GetInt("limit")
	opts.Offset, _ = cmd.Flags().GetInt("offset")
	opts.Strict, _ = cmd.Flags().GetBool("strict")
	opts.Details, _ = cmd.Flags().GetBool("details")
	opts.Concurrency, _ = cmd.Flags().GetInt("concurrency")
	opts.RegionConcurrency, _ = cmd.Flags().GetInt("region-concurrency")

	cfg := searchConfig()
	if noLimit, _ := cmd.Flags().GetBool("no-rate-limit"); noLimit {
		cfg.Rate.Disabled = true
	}

	pipeline := &search.Pipeline{
		Fetcher:    transport.New(cfg.UserAgent),
		Categories: category.Default(),
		Config:     cfg,
		Log:        os.Stderr,
	}

	ctx := context.Background()

	if raw, _ := cmd.Flags().GetBool("raw"); raw {
		payload, err := pipeline.RunRaw(ctx, query, opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(payload))
		return nil
	}

	result, err := pipeline.Run(ctx, query, opts)
	if err != nil {
		return err
	}

	recordHistory(result)

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		if err := search.WriteQueryFile(savePath, result); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved results to %s\n", savePath)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return formatJSON(result, os.Stdout)
	}
	formatTable(result, os.Stdout)
	return nil
}

// recordHistory logs the run to the local history database. History is
// best-effort: failures warn and never fail the search.
func recordHistory(result *types.SearchResult) {
	store, err := history.Open(historyConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	if err := store.Record(result); err != nil {
		fmt.Fprintf(os.Stderr, "warning: recording history failed: %v\n", err)
	}
}
