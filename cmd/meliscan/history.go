// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/meliscan/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent search runs",
	Long: `History lists recent search runs recorded in the local SQLite log:
query text, states, totals, and when each search ran. The log is a record,
not a cache; re-running a query always hits the marketplace again.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum number of entries to list")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.Open(historyConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.List(limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stdout, "No searches recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-30s  %-8s  %8s  %8s\n",
		"When", "Query", "States", "Total", "Shown")
	for _, e := range entries {
		query := e.Query
		if len(query) > 30 {
			query = query[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-20s  %-30s  %-8s  %8d  %8d\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04"), query, e.States, e.Total, e.Returned)
	}
	return nil
}
