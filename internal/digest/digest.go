// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package digest renders a set of articles into a Markdown digest.
package digest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/astropenguin/aixiv/pkg/types"
)

// Digest holds everything needed to render one Markdown document.
type Digest struct {
	// Title heads the document. Empty uses a default.
	Title string

	// Date is the digest date shown in the header. Zero uses today.
	Date time.Time

	// Articles are rendered in order, one section each.
	Articles []types.Article
}

// Render produces the Markdown document.
func (d Digest) Render() string {
	title := d.Title
	if title == "" {
		title = "arXiv digest"
	}
	date := d.Date
	if date.IsZero() {
		date = time.Now()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s (%s)\n\n", title, date.Format("2006-01-02"))

	if len(d.Articles) == 0 {
		b.WriteString("No articles found.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%d articles.\n\n", len(d.Articles))

	for _, a := range d.Articles {
		fmt.Fprintf(&b, "## %s\n\n", a.Title)

		if len(a.Authors) > 0 {
			fmt.Fprintf(&b, "*%s*\n\n", strings.Join(a.Authors, ", "))
		}
		if a.URL != "" {
			fmt.Fprintf(&b, "<%s>\n\n", a.URL)
		}
		if a.Summary != "" {
			fmt.Fprintf(&b, "%s\n\n", a.Summary)
		}

		// Show the source title when the article was translated.
		if a.Origin != nil && a.Origin.Title != a.Title {
			fmt.Fprintf(&b, "Original title: %s\n\n", a.Origin.Title)
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// Write renders the digest and writes it atomically under outputDir as
// [date]-digest.md. It returns the written path.
func (d Digest) Write(outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	date := d.Date
	if date.IsZero() {
		date = time.Now()
	}
	path := filepath.Join(outputDir, date.Format("2006-01-02")+"-digest.md")

	tmp, err := os.CreateTemp(outputDir, ".digest-*")
	if err != nil {
		return "", fmt.Errorf("creating temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(d.Render()); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing digest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing digest: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("renaming digest: %w", err)
	}
	return path, nil
}
