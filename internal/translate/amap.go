// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/astropenguin/aixiv/internal/ratelimit"
	"github.com/astropenguin/aixiv/pkg/types"
)

// shortLen bounds article representations in progress output.
const shortLen = 100

// MapFunc transforms one article into another.
type MapFunc func(ctx context.Context, article types.Article) (types.Article, error)

// Map applies fn to every article concurrently, gated by the rate limiter
// and bounded by a per-article timeout. An article whose mapping times out
// or fails is passed through unchanged, with a warning on w. Mapped
// articles carry Origin pointing at their input, and the output order
// matches the input order.
func Map(ctx context.Context, fn MapFunc, articles []types.Article, limiter *ratelimit.Limiter, timeout time.Duration, w io.Writer) []types.Article {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	results := make([]types.Article, len(articles))
	var mu sync.Mutex // guards w
	var wg sync.WaitGroup

	for i, article := range articles {
		wg.Add(1)
		go func(i int, article types.Article) {
			defer wg.Done()

			if err := limiter.Wait(ctx); err != nil {
				mu.Lock()
				fmt.Fprintf(w, "warning: %s: %v; passed through unchanged\n", article.Short(shortLen), err)
				mu.Unlock()
				results[i] = article
				return
			}

			actx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			mapped, err := fn(actx, article)
			if err != nil {
				mu.Lock()
				fmt.Fprintf(w, "warning: %s: %v; passed through unchanged\n", article.Short(shortLen), err)
				mu.Unlock()
				results[i] = article
				return
			}

			mapped.Origin = &article
			results[i] = mapped
		}(i, article)
	}

	wg.Wait()
	return results
}
