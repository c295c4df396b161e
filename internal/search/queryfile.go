// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/astropenguin/aixiv/pkg/types"
)

// QueryFile is the on-disk representation of a search query and its
// articles. A search can be saved to a file and fed to the translate,
// summarize, and digest commands without re-querying the API.
type QueryFile struct {
	Query    QueryParams     `yaml:"query"`
	Config   QueryFileConfig `yaml:"config"`
	Articles []types.Article `yaml:"articles"`
	Summary  QuerySummary    `yaml:"summary"`
}

// QueryParams stores the query parameters in a serializable form.
type QueryParams struct {
	Categories []string `yaml:"categories,omitempty"`
	Keywords   []string `yaml:"keywords,omitempty"`
	FreeText   string   `yaml:"free_text,omitempty"`
	Author     string   `yaml:"author,omitempty"`
	StartDate  string   `yaml:"start_date,omitempty"`
	EndDate    string   `yaml:"end_date,omitempty"`
}

// QueryFileConfig stores the search configuration that produced the articles.
type QueryFileConfig struct {
	MaxResults int  `yaml:"max_results"`
	Detex      bool `yaml:"detex"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total     int       `yaml:"total"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves query parameters and articles to a YAML file.
func WriteQueryFile(path string, query Query, cfg types.SearchConfig, articles []types.Article) error {
	qf := QueryFile{
		Query: QueryParams{
			Categories: query.Categories,
			Keywords:   query.Keywords,
			FreeText:   query.FreeText,
			Author:     query.Author,
		},
		Config: QueryFileConfig{
			MaxResults: cfg.MaxResults,
			Detex:      cfg.Detex,
		},
		Articles: articles,
		Summary: QuerySummary{
			Total:     len(articles),
			Timestamp: time.Now(),
		},
	}

	if !query.StartDate.IsZero() {
		qf.Query.StartDate = query.StartDate.Format(time.RFC3339)
	}
	if !query.EndDate.IsZero() {
		qf.Query.EndDate = query.EndDate.Format(time.RFC3339)
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// ToQuery converts stored QueryParams back into a Query struct.
func (p QueryParams) ToQuery() (Query, error) {
	q := Query{
		Categories: p.Categories,
		Keywords:   p.Keywords,
		FreeText:   p.FreeText,
		Author:     p.Author,
	}
	if p.StartDate != "" {
		t, err := time.Parse(time.RFC3339, p.StartDate)
		if err != nil {
			return q, fmt.Errorf("invalid start_date %q: %w", p.StartDate, err)
		}
		q.StartDate = t
	}
	if p.EndDate != "" {
		t, err := time.Parse(time.RFC3339, p.EndDate)
		if err != nil {
			return q, fmt.Errorf("invalid end_date %q: %w", p.EndDate, err)
		}
		q.EndDate = t
	}
	return q, nil
}
