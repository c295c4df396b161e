package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "aixiv/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the arXiv search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of articles to return (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Categories restricts the search to these arXiv categories.
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// Keywords restricts the search to abstracts containing these phrases.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// Detex converts LaTeX markup in titles and summaries to plain text.
	Detex bool `json:"detex" yaml:"detex"`
}

// TranslationBackend identifies a hosted translation or LLM service.
type TranslationBackend string

const (
	BackendDeepL  TranslationBackend = "deepl"
	BackendOpenAI TranslationBackend = "openai"
	BackendGemini TranslationBackend = "gemini"
)

// TranslationConfig holds settings for the translation and summary stages.
type TranslationConfig struct {
	HTTPConfig `yaml:",inline"`

	// Backend selects the hosted service: deepl, openai, or gemini.
	Backend TranslationBackend `json:"backend" yaml:"backend"`

	// Model is the model identifier for LLM backends
	// (e.g. "gpt-4o-mini", "gemini-2.0-flash"). Ignored by DeepL.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`

	// APIKey authenticates against the selected backend.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Target is the translation target language as a BCP 47 tag (e.g. "ja").
	Target string `json:"target" yaml:"target"`

	// RateLimit caps backend calls, as "N/second", "N/minute", or "N/hour".
	// Empty means effectively unlimited.
	RateLimit string `json:"rate_limit,omitempty" yaml:"rate_limit,omitempty"`

	// ArticleTimeout bounds the processing of a single article. On timeout
	// the original article is passed through untranslated (default 60s).
	ArticleTimeout time.Duration `json:"article_timeout" yaml:"article_timeout"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// StoreConfig holds settings for the article cache.
type StoreConfig struct {
	// DataDir is the directory holding the SQLite database and exports.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// DigestConfig holds settings for digest rendering.
type DigestConfig struct {
	// OutputDir is the directory for rendered digests.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Title is the digest heading; the render date is appended.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Search      SearchConfig      `json:"search" yaml:"search"`
	Translation TranslationConfig `json:"translation" yaml:"translation"`
	Store       StoreConfig       `json:"store" yaml:"store"`
	Digest      DigestConfig      `json:"digest" yaml:"digest"`
}
