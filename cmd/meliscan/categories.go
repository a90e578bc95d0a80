// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/meliscan/internal/category"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the known category ids and names",
	Long: `Categories prints the static category reference table: the marketplace
category ids accepted by --category, their names, and their URL segments.`,
	RunE: runCategories,
}

func init() {
	categoriesCmd.Flags().Bool("json", false, "output categories as JSON")

	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	list := category.Default().List()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	fmt.Fprintf(os.Stdout, "%-12s  %-30s  %s\n", "ID", "Name", "Segment")
	for _, desc := range list {
		fmt.Fprintf(os.Stdout, "%-12s  %-30s  %s\n", desc.ID, desc.Name, desc.Segment)
	}
	return nil
}
