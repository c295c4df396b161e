// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/astropenguin/aixiv/internal/dates"
	"github.com/astropenguin/aixiv/internal/search"
	"github.com/astropenguin/aixiv/pkg/types"
)

// Settings resolve as flag > config file > flag default. Viper handles
// the config file and AIXIV_* environment variables; an explicitly set
// flag wins over both.

func stringSetting(cmd *cobra.Command, flag, key string) string {
	if cmd.Flags().Changed(flag) || !viper.IsSet(key) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	return viper.GetString(key)
}

func stringSliceSetting(cmd *cobra.Command, flag, key string) []string {
	if cmd.Flags().Changed(flag) || !viper.IsSet(key) {
		v, _ := cmd.Flags().GetStringSlice(flag)
		return v
	}
	return viper.GetStringSlice(key)
}

func intSetting(cmd *cobra.Command, flag, key string) int {
	if cmd.Flags().Changed(flag) || !viper.IsSet(key) {
		v, _ := cmd.Flags().GetInt(flag)
		return v
	}
	return viper.GetInt(key)
}

func boolSetting(cmd *cobra.Command, flag, key string) bool {
	if cmd.Flags().Changed(flag) || !viper.IsSet(key) {
		v, _ := cmd.Flags().GetBool(flag)
		return v
	}
	return viper.GetBool(key)
}

func durationSetting(cmd *cobra.Command, flag, key string) time.Duration {
	if cmd.Flags().Changed(flag) || !viper.IsSet(key) {
		v, _ := cmd.Flags().GetDuration(flag)
		return v
	}
	return viper.GetDuration(key)
}

// httpConfig builds the shared HTTP settings.
func httpConfig(cmd *cobra.Command) types.HTTPConfig {
	timeout := durationSetting(cmd, "timeout", "http.timeout")
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return types.HTTPConfig{
		Timeout:   timeout,
		UserAgent: "aixiv/" + version,
	}
}

// httpClient builds an HTTP client from the shared settings.
func httpClient(cfg types.HTTPConfig) *http.Client {
	return &http.Client{Timeout: cfg.Timeout}
}

// buildSearchConfig assembles the search stage configuration.
func buildSearchConfig(cmd *cobra.Command) types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: httpConfig(cmd),
		MaxResults: intSetting(cmd, "max-results", "search.max_results"),
		Categories: stringSliceSetting(cmd, "categories", "search.categories"),
		Keywords:   stringSliceSetting(cmd, "keywords", "search.keywords"),
		Detex:      boolSetting(cmd, "detex", "search.detex"),
	}
}

// buildSearchQuery assembles a search query from flags and config. Date
// flags accept anything the date parser understands, not just RFC 3339.
func buildSearchQuery(cmd *cobra.Command, cfg types.SearchConfig) (search.Query, error) {
	q := search.Query{
		Categories: cfg.Categories,
		Keywords:   cfg.Keywords,
	}
	q.FreeText, _ = cmd.Flags().GetString("query")
	q.Author, _ = cmd.Flags().GetString("author")

	if from, _ := cmd.Flags().GetString("from"); from != "" {
		t, err := dates.Parse(from)
		if err != nil {
			return q, fmt.Errorf("invalid --from date: %w", err)
		}
		q.StartDate = t
	}
	if to, _ := cmd.Flags().GetString("to"); to != "" {
		t, err := dates.Parse(to)
		if err != nil {
			return q, fmt.Errorf("invalid --to date: %w", err)
		}
		q.EndDate = t
	}

	return q, nil
}

// secretFiles maps backends to their .secrets/ file names.
var secretFiles = map[types.TranslationBackend]string{
	types.BackendDeepL:  "deepl-api-key",
	types.BackendOpenAI: "openai-api-key",
	types.BackendGemini: "gemini-api-key",
}

// buildTranslationConfig assembles the translation stage configuration.
// The API key resolves as --api-key flag, then .secrets/ file, then
// environment variable (the secrets loader covers the last two).
func buildTranslationConfig(cmd *cobra.Command) (types.TranslationConfig, error) {
	cfg := types.TranslationConfig{
		HTTPConfig:     httpConfig(cmd),
		Backend:        types.TranslationBackend(stringSetting(cmd, "backend", "translation.backend")),
		Model:          stringSetting(cmd, "model", "translation.model"),
		Target:         stringSetting(cmd, "target", "translation.target"),
		RateLimit:      stringSetting(cmd, "rate-limit", "translation.rate_limit"),
		ArticleTimeout: durationSetting(cmd, "article-timeout", "translation.article_timeout"),
		MaxRetries:     intSetting(cmd, "max-retries", "translation.max_retries"),
	}

	if cfg.Target == "" {
		return cfg, fmt.Errorf("no target language: use --target or set translation.target")
	}

	if key, _ := cmd.Flags().GetString("api-key"); key != "" {
		cfg.APIKey = key
	} else if file, ok := secretFiles[cfg.Backend]; ok {
		cfg.APIKey = loadedSecrets[file]
	}

	return cfg, nil
}

// buildStoreConfig assembles the article cache configuration.
func buildStoreConfig(cmd *cobra.Command) types.StoreConfig {
	dataDir := stringSetting(cmd, "data-dir", "store.data_dir")
	if dataDir == "" {
		dataDir = "data"
	}
	return types.StoreConfig{
		DataDir:    dataDir,
		MaxResults: intSetting(cmd, "max-results", "store.max_results"),
	}
}

// buildDigestConfig assembles the digest configuration.
func buildDigestConfig(cmd *cobra.Command) types.DigestConfig {
	outputDir := stringSetting(cmd, "output-dir", "digest.output_dir")
	if outputDir == "" {
		outputDir = "digests"
	}
	return types.DigestConfig{
		OutputDir: outputDir,
		Title:     stringSetting(cmd, "title", "digest.title"),
	}
}
