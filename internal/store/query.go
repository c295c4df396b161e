// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/astropenguin/aixiv/pkg/types"
)

// QueryOptions holds parameters for article cache queries.
type QueryOptions struct {
	// Text is the FTS5 full-text search string matched against titles
	// and summaries.
	Text string

	// Category filters by arXiv category.
	Category string

	// Author filters by author name substring.
	Author string

	// Since and Until bound the published date. Zero values leave the
	// corresponding side open.
	Since time.Time
	Until time.Time

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Text == "" && q.Category == "" && q.Author == "" &&
		q.Since.IsZero() && q.Until.IsZero()
}

// Query searches the article cache with optional full-text search and
// structured filters. Full-text queries are ranked by relevance;
// structured-only queries are sorted by published date, newest first.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]types.Article, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Text != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT a.url, a.title, a.authors, a.summary, a.categories, a.published
			FROM articles_fts
			JOIN articles a ON a.rowid = articles_fts.rowid
			WHERE articles_fts MATCH ?`)
		args = append(args, opts.Text)
	} else {
		qb.WriteString(
			`SELECT a.url, a.title, a.authors, a.summary, a.categories, a.published
			FROM articles a
			WHERE 1=1`)
	}

	if opts.Category != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM json_each(a.categories) WHERE value = ?)`)
		args = append(args, opts.Category)
	}

	if opts.Author != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM json_each(a.authors) WHERE value LIKE ?)`)
		args = append(args, "%"+opts.Author+"%")
	}

	if !opts.Since.IsZero() {
		qb.WriteString(` AND a.published >= ?`)
		args = append(args, opts.Since.UTC().Format(time.RFC3339))
	}

	if !opts.Until.IsZero() {
		qb.WriteString(` AND a.published <= ?`)
		args = append(args, opts.Until.UTC().Format(time.RFC3339))
	}

	if useFTS {
		qb.WriteString(` ORDER BY articles_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY a.published DESC`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying article cache: %w", err)
	}
	defer rows.Close()

	var results []types.Article
	for rows.Next() {
		var (
			a              types.Article
			authorsJSON    sql.NullString
			summary        sql.NullString
			categoriesJSON sql.NullString
			published      sql.NullString
		)

		if err := rows.Scan(&a.URL, &a.Title, &authorsJSON, &summary, &categoriesJSON, &published); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		if authorsJSON.Valid {
			json.Unmarshal([]byte(authorsJSON.String), &a.Authors)
		}
		a.Summary = summary.String
		if categoriesJSON.Valid {
			json.Unmarshal([]byte(categoriesJSON.String), &a.Categories)
		}
		if published.Valid && published.String != "" {
			if t, err := time.Parse(time.RFC3339, published.String); err == nil {
				a.Published = t
			}
		}

		results = append(results, a)
	}

	return results, rows.Err()
}

// Count returns the number of articles in the cache.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM articles`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting articles: %w", err)
	}
	return n, nil
}
