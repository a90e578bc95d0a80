// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that touch the network.
type HTTPConfig struct {
	// Timeout is the per-request deadline.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with every request. It
	// defaults to a desktop browser string; the marketplace serves
	// anti-bot pages to obvious robots.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// RateConfig is the rate-limiting policy consumed by the paginator and the
// detail enricher. It is pure configuration: fixed delays and a concurrency
// ceiling, all skipped when Disabled is true.
type RateConfig struct {
	// PageDelay is the pause applied before each pagination fetch after
	// the first (default 500ms).
	PageDelay time.Duration `json:"page_delay" yaml:"page_delay"`

	// BatchDelay is the pause between detail-enrichment batches
	// (default 1s).
	BatchDelay time.Duration `json:"batch_delay" yaml:"batch_delay"`

	// MaxConcurrency caps the number of concurrent detail-page fetches in
	// one batch (default 5). The caller's requested concurrency is clamped
	// down to this ceiling unless Disabled is true.
	MaxConcurrency int `json:"max_concurrency" yaml:"max_concurrency"`

	// Disabled turns off every delay and the concurrency clamp.
	Disabled bool `json:"disabled" yaml:"disabled"`
}

// SearchConfig holds settings for the search pipeline.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Rate is the rate-limiting policy.
	Rate RateConfig `json:"rate" yaml:"rate"`
}

// HistoryConfig holds settings for the local search-history log.
type HistoryConfig struct {
	// Dir is the directory holding the history database (default
	// "~/.local/share/meliscan"). Empty disables history recording.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of history rows listed
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// EffectiveConcurrency resolves a requested detail-fetch concurrency against
// the policy: non-positive requests fall back to the ceiling, and requests
// above the ceiling are clamped unless rate limiting is disabled.
func (r RateConfig) EffectiveConcurrency(requested int) int {
	ceiling := r.MaxConcurrency
	if ceiling <= 0 {
		ceiling = 5
	}
	if requested <= 0 {
		return ceiling
	}
	if r.Disabled {
		return requested
	}
	if requested > ceiling {
		return ceiling
	}
	return requested
}
