// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries the arXiv API and returns normalized articles.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/astropenguin/aixiv/internal/dates"
	"github.com/astropenguin/aixiv/internal/detex"
	"github.com/astropenguin/aixiv/pkg/types"
)

// Query holds the search parameters.
type Query struct {
	// Categories restricts matches to these arXiv categories (OR-combined).
	Categories []string

	// Keywords restricts matches to abstracts containing these phrases
	// (OR-combined).
	Keywords []string

	// FreeText matches against all fields.
	FreeText string

	// Author filters by author name.
	Author string

	// StartDate and EndDate bound the submitted date of matches.
	StartDate time.Time
	EndDate   time.Time
}

// IsEmpty reports whether the query contains no searchable terms.
// A date range alone is searchable: the daily-digest use case is
// "everything submitted yesterday in these categories".
func (q Query) IsEmpty() bool {
	return len(q.Categories) == 0 && len(q.Keywords) == 0 &&
		q.FreeText == "" && q.Author == "" &&
		q.StartDate.IsZero() && q.EndDate.IsZero()
}

// BuildQuery constructs the arXiv search_query expression:
//
//	submittedDate:[20210101000000 TO 20210102000000]
//	AND (cat:astro-ph.GA OR cat:astro-ph.CO)
//	AND (abs:"galaxy" OR abs:"dark matter")
func BuildQuery(q Query) string {
	var parts []string

	if !q.StartDate.IsZero() || !q.EndDate.IsZero() {
		start, end := q.StartDate, q.EndDate
		if start.IsZero() {
			start = time.Date(1991, 1, 1, 0, 0, 0, 0, time.UTC)
		}
		if end.IsZero() {
			end = time.Now().UTC()
		}
		parts = append(parts, fmt.Sprintf("submittedDate:[%s TO %s]",
			dates.ArxivStamp(start), dates.ArxivStamp(end)))
	}

	if len(q.Categories) > 0 {
		sub := make([]string, len(q.Categories))
		for i, cat := range q.Categories {
			sub[i] = "cat:" + cat
		}
		parts = append(parts, group(sub))
	}

	if len(q.Keywords) > 0 {
		sub := make([]string, len(q.Keywords))
		for i, kw := range q.Keywords {
			sub[i] = fmt.Sprintf("abs:%q", kw)
		}
		parts = append(parts, group(sub))
	}

	if q.FreeText != "" {
		parts = append(parts, fmt.Sprintf("all:%q", q.FreeText))
	}

	if q.Author != "" {
		parts = append(parts, fmt.Sprintf("au:%q", q.Author))
	}

	return strings.Join(parts, " AND ")
}

// group wraps OR-combined terms in parentheses when there is more than one.
func group(terms []string) string {
	if len(terms) == 1 {
		return terms[0]
	}
	return "(" + strings.Join(terms, " OR ") + ")"
}

// Search queries the arXiv API and returns normalized articles. When
// cfg.Detex is set, LaTeX markup in titles and summaries is converted to
// plain text; a conversion that degenerates falls back to the original
// string. Progress and warnings go to w.
func Search(ctx context.Context, client *http.Client, query Query, cfg types.SearchConfig, w io.Writer) ([]types.Article, error) {
	if query.IsEmpty() {
		return nil, fmt.Errorf("query is empty: provide categories, keywords, a date range, or free text")
	}

	q := BuildQuery(query)
	fmt.Fprintf(w, "query: %s\n", q)

	articles, err := fetchArxiv(ctx, client, q, cfg)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "found %d articles\n", len(articles))

	for i := range articles {
		articles[i].Normalize()
		if cfg.Detex {
			articles[i].Title = detex.Format(articles[i].Title)
			articles[i].Summary = detex.Format(articles[i].Summary)
		}
	}

	return articles, nil
}

// FormatTable writes articles as a human-readable table to w.
func FormatTable(articles []types.Article, w io.Writer) {
	if len(articles) == 0 {
		fmt.Fprintln(w, "No articles found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-10s  %s\n",
		"Rank", "Title", "Authors", "Date", "URL")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for i, a := range articles {
		title := truncate(a.Title, 60)
		date := ""
		if !a.Published.IsZero() {
			date = a.Published.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-10s  %s\n",
			i+1, title, formatAuthors(a.Authors), date, a.URL)
	}

	fmt.Fprintf(w, "\n%d articles\n", len(articles))
}

// FormatJSON writes articles as indented JSON to w.
func FormatJSON(articles []types.Article, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(articles)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

// truncate shortens s to max runes. Slicing runes keeps detexed titles
// (α, ≲, ...) valid UTF-8.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
