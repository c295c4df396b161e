// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/astropenguin/aixiv/internal/digest"
	"github.com/astropenguin/aixiv/internal/lang"
	"github.com/astropenguin/aixiv/internal/ratelimit"
	"github.com/astropenguin/aixiv/internal/search"
	"github.com/astropenguin/aixiv/internal/store"
	"github.com/astropenguin/aixiv/internal/translate"
	"github.com/astropenguin/aixiv/pkg/types"
)

// defaultRateLimit caps backend calls when no rate limit is configured.
const defaultRateLimit = "60/minute"

// loadArticles returns the articles to process: from a saved query file
// when --input is set, otherwise from a fresh arXiv search.
func loadArticles(cmd *cobra.Command) ([]types.Article, error) {
	if input, _ := cmd.Flags().GetString("input"); input != "" {
		qf, err := search.ReadQueryFile(input)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "loaded %d articles from %s\n", len(qf.Articles), input)
		return qf.Articles, nil
	}

	cfg := buildSearchConfig(cmd)
	query, err := buildSearchQuery(cmd, cfg)
	if err != nil {
		return nil, err
	}
	return search.Search(cmd.Context(), httpClient(cfg.HTTPConfig), query, cfg, os.Stderr)
}

// runPipeline maps articles through a translation or summary backend,
// consulting the article cache before calling the API and writing fresh
// results back to it.
func runPipeline(cmd *cobra.Command, summarize bool) error {
	ctx := cmd.Context()

	articles, err := loadArticles(cmd)
	if err != nil {
		return err
	}
	if len(articles) == 0 {
		fmt.Fprintln(os.Stderr, "no articles to process")
		return outputArticles(cmd, nil)
	}

	tcfg, err := buildTranslationConfig(cmd)
	if err != nil {
		return err
	}
	target, err := lang.ParseTarget(tcfg.Target)
	if err != nil {
		return err
	}

	rateLimit := tcfg.RateLimit
	if rateLimit == "" {
		rateLimit = defaultRateLimit
	}
	limiter, err := ratelimit.Parse(rateLimit)
	if err != nil {
		return err
	}

	client := httpClient(tcfg.HTTPConfig)

	var fn translate.MapFunc
	cacheBackend := string(tcfg.Backend)
	if summarize {
		s, err := translate.NewSummarizer(ctx, tcfg, target, client)
		if err != nil {
			return err
		}
		cacheBackend += ":summary"
		fn = func(ctx0 context.Context, a types.Article) (types.Article, error) {
			return translate.SummarizeArticle(ctx0, s, a, tcfg.MaxRetries)
		}
	} else {
		tr, err := translate.NewTranslator(ctx, tcfg, target, client)
		if err != nil {
			return err
		}
		fn = func(ctx0 context.Context, a types.Article) (types.Article, error) {
			return translate.TranslateArticle(ctx0, tr, a, tcfg.MaxRetries)
		}
	}

	var st *store.Store
	if noCache, _ := cmd.Flags().GetBool("no-cache"); !noCache {
		st, err = store.NewStore(buildStoreConfig(cmd))
		if err != nil {
			return err
		}
		defer st.Close()
	}

	// A nil *store.Store is not a nil translate.Cache.
	var cache translate.Cache
	if st != nil {
		cache = st
	}

	results, hits, err := translate.MapCached(ctx, fn, articles, cache,
		target.Tag(), cacheBackend, limiter, tcfg.ArticleTimeout, os.Stderr)
	if err != nil {
		return err
	}
	if hits > 0 {
		fmt.Fprintf(os.Stderr, "%d articles served from cache\n", hits)
	}

	return outputArticles(cmd, results)
}

// outputArticles prints results as a table or JSON, and optionally
// renders them into a Markdown digest.
func outputArticles(cmd *cobra.Command, articles []types.Article) error {
	if writeDigest, _ := cmd.Flags().GetBool("digest"); writeDigest {
		dcfg := buildDigestConfig(cmd)
		d := digest.Digest{Title: dcfg.Title, Articles: articles}
		path, err := d.Write(dcfg.OutputDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote digest to %s\n", path)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return search.FormatJSON(articles, os.Stdout)
	}
	search.FormatTable(articles, os.Stdout)
	return nil
}
