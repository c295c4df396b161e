// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package translate sends article text to hosted translation and LLM
// services. Each service implements the Translator interface per the
// Strategy pattern; LLM services additionally summarize.
package translate

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/astropenguin/aixiv/internal/lang"
	"github.com/astropenguin/aixiv/pkg/types"
)

// Translator translates plain text into the target language the backend
// was constructed with.
type Translator interface {
	Name() string
	Translate(ctx context.Context, text string) (string, error)
}

// Summarizer produces a short target-language summary of an article.
// Only the LLM backends implement it.
type Summarizer interface {
	Name() string
	Summarize(ctx context.Context, article types.Article) (string, error)
}

// NewTranslator builds the backend selected by cfg.Backend.
func NewTranslator(ctx context.Context, cfg types.TranslationConfig, target lang.Target, client *http.Client) (Translator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key configured for backend %q", cfg.Backend)
	}

	switch cfg.Backend {
	case types.BackendDeepL:
		return &DeepL{APIKey: cfg.APIKey, Target: target, Client: client, UserAgent: cfg.UserAgent}, nil
	case types.BackendOpenAI:
		return &OpenAI{APIKey: cfg.APIKey, Model: cfg.Model, Target: target, Client: client, UserAgent: cfg.UserAgent}, nil
	case types.BackendGemini:
		return NewGemini(ctx, cfg.APIKey, cfg.Model, target)
	default:
		return nil, fmt.Errorf("unknown translation backend %q", cfg.Backend)
	}
}

// NewSummarizer builds the backend selected by cfg.Backend, rejecting
// backends that cannot summarize.
func NewSummarizer(ctx context.Context, cfg types.TranslationConfig, target lang.Target, client *http.Client) (Summarizer, error) {
	tr, err := NewTranslator(ctx, cfg, target, client)
	if err != nil {
		return nil, err
	}
	s, ok := tr.(Summarizer)
	if !ok {
		return nil, fmt.Errorf("backend %q does not support summarization", tr.Name())
	}
	return s, nil
}

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// withRetry calls fn with exponential backoff between attempts.
func withRetry(ctx context.Context, maxRetries int, fn func() (string, error)) (string, error) {
	if maxRetries <= 0 {
		maxRetries = 3
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		out, err := fn()
		if err == nil {
			return out, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}

// TranslateArticle translates the title and summary of an article and
// returns the translated article with Origin pointing at the input.
func TranslateArticle(ctx context.Context, tr Translator, article types.Article, maxRetries int) (types.Article, error) {
	title, err := withRetry(ctx, maxRetries, func() (string, error) {
		return tr.Translate(ctx, article.Title)
	})
	if err != nil {
		return types.Article{}, fmt.Errorf("translating title of %s: %w", article.ID(), err)
	}

	summary, err := withRetry(ctx, maxRetries, func() (string, error) {
		return tr.Translate(ctx, article.Summary)
	})
	if err != nil {
		return types.Article{}, fmt.Errorf("translating summary of %s: %w", article.ID(), err)
	}

	return article.Derive(title, summary), nil
}

// SummarizeArticle replaces the article summary with a short
// target-language summary, keeping the original in Origin.
func SummarizeArticle(ctx context.Context, s Summarizer, article types.Article, maxRetries int) (types.Article, error) {
	summary, err := withRetry(ctx, maxRetries, func() (string, error) {
		return s.Summarize(ctx, article)
	})
	if err != nil {
		return types.Article{}, fmt.Errorf("summarizing %s: %w", article.ID(), err)
	}
	return article.Derive(article.Title, summary), nil
}
