// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists fetched articles and their translations in a
// local SQLite database with a full-text index.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/astropenguin/aixiv/pkg/types"
)

const dbFile = "aixiv.db"

// Store manages the article cache SQLite database.
type Store struct {
	db         *sql.DB
	dataDir    string
	maxResults int
}

// NewStore opens or creates the article database at dataDir/aixiv.db,
// creating the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		dataDir:    cfg.DataDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS articles (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			url TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			authors TEXT,
			summary TEXT,
			categories TEXT,
			published TEXT,
			fetched_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(published)`,
		`CREATE TABLE IF NOT EXISTS translations (
			url TEXT NOT NULL REFERENCES articles(url),
			language TEXT NOT NULL,
			backend TEXT NOT NULL,
			title TEXT NOT NULL,
			summary TEXT,
			created_at TEXT,
			PRIMARY KEY (url, language, backend)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='articles_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE articles_fts USING fts5(title, summary, content=articles, content_rowid=rowid)`,
			`CREATE TRIGGER articles_ai AFTER INSERT ON articles BEGIN
				INSERT INTO articles_fts(rowid, title, summary) VALUES (new.rowid, new.title, new.summary);
			END`,
			`CREATE TRIGGER articles_ad AFTER DELETE ON articles BEGIN
				INSERT INTO articles_fts(articles_fts, rowid, title, summary) VALUES('delete', old.rowid, old.title, old.summary);
			END`,
			`CREATE TRIGGER articles_au AFTER UPDATE ON articles BEGIN
				INSERT INTO articles_fts(articles_fts, rowid, title, summary) VALUES('delete', old.rowid, old.title, old.summary);
				INSERT INTO articles_fts(rowid, title, summary) VALUES (new.rowid, new.title, new.summary);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Put upserts articles into the cache. It returns the number of articles
// written.
func (s *Store) Put(ctx context.Context, articles []types.Article) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO articles (url, title, authors, summary, categories, published, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET
			title=excluded.title, authors=excluded.authors, summary=excluded.summary,
			categories=excluded.categories, published=excluded.published,
			fetched_at=excluded.fetched_at`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	var written int
	for _, a := range articles {
		if a.URL == "" {
			continue
		}

		authorsJSON, _ := json.Marshal(a.Authors)
		categoriesJSON, _ := json.Marshal(a.Categories)
		publishedStr := ""
		if !a.Published.IsZero() {
			publishedStr = a.Published.UTC().Format(time.RFC3339)
		}

		_, err := stmt.ExecContext(ctx,
			a.URL, a.Title, string(authorsJSON), a.Summary,
			string(categoriesJSON), publishedStr, now,
		)
		if err != nil {
			return written, fmt.Errorf("inserting article %s: %w", a.ID(), err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return written, fmt.Errorf("committing transaction: %w", err)
	}
	return written, nil
}

// PutTranslation caches a translated (or summarized) article keyed by its
// origin URL, target language, and backend. The article must carry
// Origin; its URL identifies the cached entry.
func (s *Store) PutTranslation(ctx context.Context, article types.Article, language, backend string) error {
	if article.URL == "" {
		return fmt.Errorf("article has no URL")
	}

	if article.Origin != nil {
		if _, err := s.Put(ctx, []types.Article{*article.Origin}); err != nil {
			return fmt.Errorf("caching origin article: %w", err)
		}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO translations (url, language, backend, title, summary, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(url, language, backend) DO UPDATE SET
			title=excluded.title, summary=excluded.summary, created_at=excluded.created_at`,
		article.URL, language, backend, article.Title, article.Summary,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("caching translation of %s: %w", article.ID(), err)
	}
	return nil
}

// GetTranslation looks up a cached translation for the given article URL,
// language, and backend. The second return value reports whether a cached
// entry was found.
func (s *Store) GetTranslation(ctx context.Context, url, language, backend string) (types.Article, bool, error) {
	var title string
	var summary sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT title, summary FROM translations
		 WHERE url = ? AND language = ? AND backend = ?`,
		url, language, backend,
	).Scan(&title, &summary)

	if err == sql.ErrNoRows {
		return types.Article{}, false, nil
	}
	if err != nil {
		return types.Article{}, false, fmt.Errorf("looking up translation: %w", err)
	}

	article := types.Article{URL: url, Title: title, Summary: summary.String}
	return article, true, nil
}
