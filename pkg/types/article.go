// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the aixiv pipeline.
package types

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// sepPattern matches newline and whitespace runs that arXiv inserts into
// titles and abstracts. Normalization collapses them to single spaces.
var sepPattern = regexp.MustCompile(`\n+\s*|\n*\s+`)

// Article holds the metadata of a single arXiv article as it moves through
// the pipeline. A translated or summarized article keeps the article it was
// derived from in Origin.
type Article struct {
	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the article authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Summary is the article abstract.
	Summary string `json:"summary" yaml:"summary"`

	// URL is the canonical abstract URL (e.g. "http://arxiv.org/abs/2101.00158v1").
	URL string `json:"url" yaml:"url"`

	// Categories lists the arXiv categories (e.g. "astro-ph.GA").
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// Published is the submission date of this version.
	Published time.Time `json:"published,omitempty" yaml:"published,omitempty"`

	// Origin is the article this one was derived from, if any. It is not
	// serialized; a digest or store round-trip keeps only the final form.
	Origin *Article `json:"-" yaml:"-"`
}

// Normalize collapses whitespace and newline runs in the title and summary
// to single spaces.
func (a *Article) Normalize() {
	a.Title = strings.TrimSpace(sepPattern.ReplaceAllString(a.Title, " "))
	a.Summary = strings.TrimSpace(sepPattern.ReplaceAllString(a.Summary, " "))
}

// Derive returns a copy of a with the given title and summary and Origin
// pointing back at a.
func (a Article) Derive(title, summary string) Article {
	derived := a
	derived.Title = title
	derived.Summary = summary
	derived.Origin = &a
	return derived
}

// Short returns a single-line representation truncated to max runes, for
// progress output.
func (a Article) Short(max int) string {
	s := fmt.Sprintf("%s (%s)", a.Title, a.URL)
	r := []rune(s)
	if max > 3 && len(r) > max {
		return string(r[:max-3]) + "..."
	}
	return s
}

// ID returns the arXiv identifier extracted from the URL, including the
// version suffix ("2101.00158v1"), or "" if the URL is not an abstract URL.
func (a Article) ID() string {
	const prefix = "/abs/"
	idx := strings.Index(a.URL, prefix)
	if idx < 0 {
		return ""
	}
	return a.URL[idx+len(prefix):]
}
