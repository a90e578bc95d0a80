// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/meliscan/pkg/types"
)

// QueryFile is the on-disk representation of a search and its results. A
// search can be saved to a file and inspected later without re-querying
// the marketplace.
type QueryFile struct {
	Query   QueryParams  `yaml:"query"`
	Items   []types.Item `yaml:"items"`
	Summary QuerySummary `yaml:"summary"`
}

// QueryParams stores the resolved query inputs in a serializable form.
type QueryParams struct {
	Text       string   `yaml:"text"`
	Condition  string   `yaml:"condition,omitempty"`
	CategoryID string   `yaml:"category_id,omitempty"`
	States     []string `yaml:"states,omitempty"`
	Sort       string   `yaml:"sort,omitempty"`
	Strict     bool     `yaml:"strict,omitempty"`
	URL        string   `yaml:"url"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total     int       `yaml:"total"`
	Returned  int       `yaml:"returned"`
	Capped    bool      `yaml:"capped"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves a search result to a YAML file.
func WriteQueryFile(path string, result *types.SearchResult) error {
	qf := QueryFile{
		Query: QueryParams{
			Text:       result.Query.Text,
			Condition:  result.Query.Condition,
			CategoryID: result.Query.CategoryID,
			States:     result.Query.States,
			Sort:       result.Query.Sort,
			Strict:     result.Query.Strict,
			URL:        result.Query.URL,
		},
		Items: result.Items,
		Summary: QuerySummary{
			Total:     result.Pagination.Total,
			Returned:  len(result.Items),
			Capped:    result.Pagination.Capped,
			Timestamp: time.Now().UTC(),
		},
	}

	data, err := yaml.Marshal(qf)
	if err != nil {
		return fmt.Errorf("encoding query file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing query file %s: %w", path, err)
	}
	return nil
}

// ReadQueryFile loads a previously saved search from a YAML file.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file %s: %w", path, err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("decoding query file %s: %w", path, err)
	}
	return &qf, nil
}
