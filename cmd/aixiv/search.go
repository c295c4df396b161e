package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/astropenguin/aixiv/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search arXiv for articles",
	Long: `Search queries the arXiv API for articles matching categories, keywords,
an author, a free-text query, or a submitted-date range. LaTeX markup in
titles and abstracts can be converted to plain text with --detex.

Results print as a table or JSON, and can be saved to a query file for
the translate, summarize, and digest commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildSearchConfig(cmd)
		query, err := buildSearchQuery(cmd, cfg)
		if err != nil {
			return err
		}

		articles, err := search.Search(cmd.Context(), httpClient(cfg.HTTPConfig), query, cfg, os.Stderr)
		if err != nil {
			return err
		}

		if save, _ := cmd.Flags().GetString("save"); save != "" {
			if err := search.WriteQueryFile(save, query, cfg, articles); err != nil {
				return fmt.Errorf("saving query file: %w", err)
			}
			fmt.Fprintf(os.Stderr, "saved %d articles to %s\n", len(articles), save)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return search.FormatJSON(articles, os.Stdout)
		}
		search.FormatTable(articles, os.Stdout)
		return nil
	},
}

func init() {
	searchCmd.Flags().StringSlice("categories", nil, "filter by arXiv categories (comma-separated)")
	searchCmd.Flags().StringSlice("keywords", nil, "filter by abstract keywords (comma-separated)")
	searchCmd.Flags().String("query", "", "free-text query matched against all fields")
	searchCmd.Flags().String("author", "", "filter by author name")
	searchCmd.Flags().String("from", "", "submitted date range start")
	searchCmd.Flags().String("to", "", "submitted date range end")
	searchCmd.Flags().Int("max-results", 20, "maximum number of results to return")
	searchCmd.Flags().Bool("detex", false, "convert LaTeX markup to plain text")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("save", "", "save results to a query file (YAML)")
	searchCmd.Flags().Duration("timeout", 0, "HTTP request timeout")

	rootCmd.AddCommand(searchCmd)
}
