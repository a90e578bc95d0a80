// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the meliscan CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/meliscan/internal/transport"
	"github.com/pdiddy/meliscan/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the meliscan CLI.
var rootCmd = &cobra.Command{
	Use:   "meliscan",
	Short: "Search Mercado Livre listings from the terminal",
	Long: `meliscan searches Mercado Livre Brasil listings and prints normalized,
deduplicated results. It extracts the JSON state payload embedded in listing
pages, paginates until enough non-advertisement items are collected, can fan
a query out across state filters, and can enrich items with detail-page data
(pictures, description, rating, technical specs).`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./meliscan.yaml or ~/.config/meliscan/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("meliscan")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "meliscan"))
		}
	}

	viper.SetEnvPrefix("MELISCAN")
	viper.AutomaticEnv()

	viper.SetDefault("timeout", 10*time.Second)
	viper.SetDefault("user_agent", transport.DefaultUserAgent)
	viper.SetDefault("rate.page_delay", 500*time.Millisecond)
	viper.SetDefault("rate.batch_delay", time.Second)
	viper.SetDefault("rate.max_concurrency", 5)
	viper.SetDefault("history.max_results", 20)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// searchConfig assembles the pipeline configuration from viper.
func searchConfig() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: viper.GetString("user_agent"),
		},
		Rate: types.RateConfig{
			PageDelay:      viper.GetDuration("rate.page_delay"),
			BatchDelay:     viper.GetDuration("rate.batch_delay"),
			MaxConcurrency: viper.GetInt("rate.max_concurrency"),
			Disabled:       viper.GetBool("rate.disabled"),
		},
	}
}

// historyConfig assembles the history configuration from viper. The default
// directory lives under the user's data dir.
func historyConfig() types.HistoryConfig {
	dir := viper.GetString("history.dir")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".local", "share", "meliscan")
		}
	}
	return types.HistoryConfig{
		Dir:        dir,
		MaxResults: viper.GetInt("history.max_results"),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
