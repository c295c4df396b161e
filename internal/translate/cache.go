// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/astropenguin/aixiv/internal/ratelimit"
	"github.com/astropenguin/aixiv/pkg/types"
)

// Cache looks up and stores mapped articles keyed by origin URL, target
// language, and backend. The article store implements it.
type Cache interface {
	GetTranslation(ctx context.Context, url, language, backend string) (types.Article, bool, error)
	PutTranslation(ctx context.Context, article types.Article, language, backend string) error
}

// MapCached is Map with a cache consulted per article before the backend
// is called. Cached articles skip the rate limiter and the backend
// entirely; freshly mapped articles are written back. Pass-through
// articles (nil Origin) are never cached, so a failed mapping is retried
// on the next run. A nil cache behaves like Map. The second return value
// is the number of cache hits.
func MapCached(ctx context.Context, fn MapFunc, articles []types.Article, cache Cache, language, backend string, limiter *ratelimit.Limiter, timeout time.Duration, w io.Writer) ([]types.Article, int, error) {
	results := make([]types.Article, len(articles))
	var pending []types.Article
	var pendingIdx []int
	var hits int

	for i, a := range articles {
		if cache != nil && a.URL != "" {
			cached, ok, err := cache.GetTranslation(ctx, a.URL, language, backend)
			if err != nil {
				return nil, 0, err
			}
			if ok {
				merged := a
				merged.Title = cached.Title
				merged.Summary = cached.Summary
				merged.Origin = &articles[i]
				results[i] = merged
				hits++
				continue
			}
		}
		pending = append(pending, a)
		pendingIdx = append(pendingIdx, i)
	}

	mapped := Map(ctx, fn, pending, limiter, timeout, w)
	for j, m := range mapped {
		results[pendingIdx[j]] = m
		if cache != nil && m.Origin != nil {
			if err := cache.PutTranslation(ctx, m, language, backend); err != nil {
				fmt.Fprintf(w, "warning: %v\n", err)
			}
		}
	}

	return results, hits, nil
}
