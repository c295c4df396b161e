// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/astropenguin/aixiv/pkg/types"
)

const exportLimit = 100000

// exportFile is the YAML snapshot of the article cache.
type exportFile struct {
	Articles []types.Article `yaml:"articles"`
	Summary  exportSummary   `yaml:"summary"`
}

type exportSummary struct {
	Total     int       `yaml:"total"`
	Timestamp time.Time `yaml:"timestamp"`
}

// ExportYAML writes the article cache to dataDir/export.yaml. It supports
// the same filters as Query.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) error {
	opts.MaxResults = exportLimit
	articles, err := s.Query(ctx, opts)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	out := exportFile{
		Articles: articles,
		Summary: exportSummary{
			Total:     len(articles),
			Timestamp: time.Now().UTC(),
		},
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}

	tmp, err := os.CreateTemp(s.dataDir, ".export-*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing export: %w", err)
	}

	return os.Rename(tmp.Name(), filepath.Join(s.dataDir, "export.yaml"))
}
