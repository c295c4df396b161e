package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/astropenguin/aixiv/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()

	cfg := types.StoreConfig{
		DataDir:    tmpDir,
		MaxResults: 20,
	}
	s, err := NewStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })

	return s, tmpDir
}

func sampleArticles() []types.Article {
	return []types.Article{
		{
			Title:      "Molecular gas in nearby galaxies",
			Authors:    []string{"Smith, J.", "Doe, A."},
			Summary:    "We survey carbon monoxide emission across a sample of nearby spiral galaxies.",
			URL:        "http://arxiv.org/abs/2101.00001v1",
			Categories: []string{"astro-ph.GA"},
			Published:  time.Date(2021, 1, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			Title:      "Dark matter halos at high redshift",
			Authors:    []string{"Tanaka, K."},
			Summary:    "Simulations of halo formation constrain the small-scale power spectrum.",
			URL:        "http://arxiv.org/abs/2101.00002v1",
			Categories: []string{"astro-ph.CO", "astro-ph.GA"},
			Published:  time.Date(2021, 1, 2, 12, 0, 0, 0, time.UTC),
		},
		{
			Title:      "Fast radio bursts from magnetars",
			Authors:    []string{"Doe, A."},
			Summary:    "A magnetar flare model reproduces the observed burst energetics.",
			URL:        "http://arxiv.org/abs/2101.00003v1",
			Categories: []string{"astro-ph.HE"},
			Published:  time.Date(2021, 1, 3, 12, 0, 0, 0, time.UTC),
		},
	}
}

// --- Put / Count ---

func TestPutAndCount(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	n, err := s.Put(ctx, sampleArticles())
	if err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if n != 3 {
		t.Errorf("Put() = %d, want 3", n)
	}

	count, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if count != 3 {
		t.Errorf("Count() = %d, want 3", count)
	}
}

func TestPutUpsertsByURL(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	articles := sampleArticles()
	if _, err := s.Put(ctx, articles); err != nil {
		t.Fatal(err)
	}

	articles[0].Title = "Molecular gas in nearby galaxies (v2)"
	if _, err := s.Put(ctx, articles[:1]); err != nil {
		t.Fatal(err)
	}

	count, _ := s.Count(ctx)
	if count != 3 {
		t.Errorf("Count() = %d after upsert, want 3", count)
	}

	got, err := s.Query(ctx, QueryOptions{Text: `"v2"`})
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Molecular gas in nearby galaxies (v2)" {
		t.Errorf("Query() = %+v, want the updated article", got)
	}
}

func TestPutSkipsURLless(t *testing.T) {
	s, _ := testStore(t)
	n, err := s.Put(context.Background(), []types.Article{{Title: "no url"}})
	if err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if n != 0 {
		t.Errorf("Put() = %d, want 0", n)
	}
}

// --- Query ---

func TestQueryFullText(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()
	if _, err := s.Put(ctx, sampleArticles()); err != nil {
		t.Fatal(err)
	}

	got, err := s.Query(ctx, QueryOptions{Text: "magnetar"})
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}
	if got[0].Title != "Fast radio bursts from magnetars" {
		t.Errorf("Title = %q", got[0].Title)
	}
	if len(got[0].Authors) != 1 || got[0].Authors[0] != "Doe, A." {
		t.Errorf("Authors = %v", got[0].Authors)
	}
	if len(got[0].Categories) != 1 || got[0].Categories[0] != "astro-ph.HE" {
		t.Errorf("Categories = %v", got[0].Categories)
	}
	if !got[0].Published.Equal(time.Date(2021, 1, 3, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("Published = %v", got[0].Published)
	}
}

func TestQueryByCategory(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()
	if _, err := s.Put(ctx, sampleArticles()); err != nil {
		t.Fatal(err)
	}

	got, err := s.Query(ctx, QueryOptions{Category: "astro-ph.GA"})
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	// Structured queries sort newest first.
	if got[0].Title != "Dark matter halos at high redshift" {
		t.Errorf("got[0].Title = %q, want newest first", got[0].Title)
	}
}

func TestQueryByAuthor(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()
	if _, err := s.Put(ctx, sampleArticles()); err != nil {
		t.Fatal(err)
	}

	got, err := s.Query(ctx, QueryOptions{Author: "Tanaka"})
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Dark matter halos at high redshift" {
		t.Errorf("got = %+v", got)
	}
}

func TestQueryByDateRange(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()
	if _, err := s.Put(ctx, sampleArticles()); err != nil {
		t.Fatal(err)
	}

	got, err := s.Query(ctx, QueryOptions{
		Since: time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2021, 1, 2, 23, 59, 59, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Dark matter halos at high redshift" {
		t.Errorf("got = %+v", got)
	}
}

func TestQueryCombinesTextAndFilters(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()
	if _, err := s.Put(ctx, sampleArticles()); err != nil {
		t.Fatal(err)
	}

	got, err := s.Query(ctx, QueryOptions{Text: "galaxies", Category: "astro-ph.CO"})
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len(got) = %d, want 0 (text matches GA article, filter requires CO)", len(got))
	}
}

func TestQueryMaxResults(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()
	if _, err := s.Put(ctx, sampleArticles()); err != nil {
		t.Fatal(err)
	}

	got, err := s.Query(ctx, QueryOptions{MaxResults: 2})
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len(got) = %d, want 2", len(got))
	}
}

func TestQueryOptionsIsEmpty(t *testing.T) {
	if !(QueryOptions{}).IsEmpty() {
		t.Error("zero QueryOptions should be empty")
	}
	if (QueryOptions{Text: "x"}).IsEmpty() {
		t.Error("QueryOptions with text should not be empty")
	}
	if (QueryOptions{Since: time.Now()}).IsEmpty() {
		t.Error("QueryOptions with date bound should not be empty")
	}
}

// --- translations ---

func TestTranslationRoundTrip(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	original := sampleArticles()[0]
	translated := original
	translated.Title = "近傍銀河の分子ガス"
	translated.Summary = "近傍の渦巻銀河の一酸化炭素放射を調査した。"
	translated.Origin = &original

	if err := s.PutTranslation(ctx, translated, "ja", "deepl"); err != nil {
		t.Fatalf("PutTranslation() error: %v", err)
	}

	got, ok, err := s.GetTranslation(ctx, original.URL, "ja", "deepl")
	if err != nil {
		t.Fatalf("GetTranslation() error: %v", err)
	}
	if !ok {
		t.Fatal("GetTranslation() found nothing")
	}
	if got.Title != "近傍銀河の分子ガス" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Summary != "近傍の渦巻銀河の一酸化炭素放射を調査した。" {
		t.Errorf("Summary = %q", got.Summary)
	}

	// The origin article is cached alongside the translation.
	count, _ := s.Count(ctx)
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}

func TestTranslationMissesOnOtherKeys(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	original := sampleArticles()[0]
	translated := original
	translated.Title = "translated"
	translated.Origin = &original

	if err := s.PutTranslation(ctx, translated, "ja", "deepl"); err != nil {
		t.Fatal(err)
	}

	for _, key := range []struct{ lang, backend string }{
		{"de", "deepl"},
		{"ja", "openai"},
	} {
		_, ok, err := s.GetTranslation(ctx, original.URL, key.lang, key.backend)
		if err != nil {
			t.Fatalf("GetTranslation(%s, %s) error: %v", key.lang, key.backend, err)
		}
		if ok {
			t.Errorf("GetTranslation(%s, %s) hit, want miss", key.lang, key.backend)
		}
	}
}

// --- export ---

func TestExportYAML(t *testing.T) {
	s, tmpDir := testStore(t)
	ctx := context.Background()
	if _, err := s.Put(ctx, sampleArticles()); err != nil {
		t.Fatal(err)
	}

	if err := s.ExportYAML(ctx, QueryOptions{}); err != nil {
		t.Fatalf("ExportYAML() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "export.yaml"))
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}

	var out exportFile
	if err := yaml.Unmarshal(data, &out); err != nil {
		t.Fatalf("parsing export: %v", err)
	}
	if out.Summary.Total != 3 || len(out.Articles) != 3 {
		t.Errorf("export = %d articles (total %d), want 3", len(out.Articles), out.Summary.Total)
	}
	if !strings.Contains(string(data), "magnetars") {
		t.Errorf("export missing article content:\n%s", data)
	}

	// The atomic write leaves no temporary files behind.
	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".export-") {
			t.Errorf("temporary file left behind: %s", e.Name())
		}
	}
}

func TestExportYAMLFiltered(t *testing.T) {
	s, tmpDir := testStore(t)
	ctx := context.Background()
	if _, err := s.Put(ctx, sampleArticles()); err != nil {
		t.Fatal(err)
	}

	if err := s.ExportYAML(ctx, QueryOptions{Category: "astro-ph.HE"}); err != nil {
		t.Fatalf("ExportYAML() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "export.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	var out exportFile
	if err := yaml.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Summary.Total != 1 {
		t.Errorf("total = %d, want 1", out.Summary.Total)
	}
}
