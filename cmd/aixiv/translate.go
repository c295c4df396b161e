package main

import (
	"github.com/spf13/cobra"
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate article titles and abstracts",
	Long: `Translate maps articles through a hosted translation backend (DeepL,
OpenAI, or Gemini) into a target language. Articles come from a saved
query file (--input) or from a fresh search using the search flags.

Translations are cached in the article store, so repeated runs skip the
API for articles already translated into the same language by the same
backend. An article whose translation fails or times out is passed
through unchanged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, false)
	},
}

// addPipelineFlags registers the flags shared by translate and summarize.
func addPipelineFlags(cmd *cobra.Command, defaultBackend string) {
	cmd.Flags().String("input", "", "query file to read articles from (skips the search)")
	cmd.Flags().StringSlice("categories", nil, "filter by arXiv categories (comma-separated)")
	cmd.Flags().StringSlice("keywords", nil, "filter by abstract keywords (comma-separated)")
	cmd.Flags().String("query", "", "free-text query matched against all fields")
	cmd.Flags().String("author", "", "filter by author name")
	cmd.Flags().String("from", "", "submitted date range start")
	cmd.Flags().String("to", "", "submitted date range end")
	cmd.Flags().Int("max-results", 20, "maximum number of search results")
	cmd.Flags().Bool("detex", false, "convert LaTeX markup to plain text before translation")

	cmd.Flags().String("backend", defaultBackend, "translation backend: deepl, openai, or gemini")
	cmd.Flags().String("model", "", "model identifier for LLM backends")
	cmd.Flags().String("api-key", "", "API key (default: .secrets/ file or environment variable)")
	cmd.Flags().String("target", "", "target language as a BCP 47 tag (e.g. ja, de, pt-BR)")
	cmd.Flags().String("rate-limit", "", `backend call rate, as "N/second", "N/minute", or "N/hour"`)
	cmd.Flags().Duration("article-timeout", 0, "per-article processing timeout (default 60s)")
	cmd.Flags().Int("max-retries", 3, "retry attempts for failed API calls")
	cmd.Flags().Duration("timeout", 0, "HTTP request timeout")

	cmd.Flags().String("data-dir", "", "article cache directory (default: data)")
	cmd.Flags().Bool("no-cache", false, "skip the article cache")

	cmd.Flags().Bool("json", false, "output results as JSON")
	cmd.Flags().Bool("digest", false, "render results into a Markdown digest")
	cmd.Flags().String("output-dir", "", "digest output directory (default: digests)")
	cmd.Flags().String("title", "", "digest title")
}

func init() {
	addPipelineFlags(translateCmd, "deepl")
	rootCmd.AddCommand(translateCmd)
}
