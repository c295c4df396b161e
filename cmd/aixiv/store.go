package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/astropenguin/aixiv/internal/dates"
	"github.com/astropenguin/aixiv/internal/search"
	"github.com/astropenguin/aixiv/internal/store"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Query and export the article cache",
	Long: `Store queries the local article cache with full-text search over titles
and abstracts, or with structured filters by category, author, and
published date. With --export it writes a YAML snapshot of the matching
articles to the data directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := store.NewStore(buildStoreConfig(cmd))
		if err != nil {
			return err
		}
		defer st.Close()

		opts := store.QueryOptions{
			MaxResults: intSetting(cmd, "max-results", "store.max_results"),
		}
		opts.Text, _ = cmd.Flags().GetString("query")
		opts.Category, _ = cmd.Flags().GetString("category")
		opts.Author, _ = cmd.Flags().GetString("author")

		if from, _ := cmd.Flags().GetString("from"); from != "" {
			t, err := dates.Parse(from)
			if err != nil {
				return fmt.Errorf("invalid --from date: %w", err)
			}
			opts.Since = t
		}
		if to, _ := cmd.Flags().GetString("to"); to != "" {
			t, err := dates.Parse(to)
			if err != nil {
				return fmt.Errorf("invalid --to date: %w", err)
			}
			opts.Until = t
		}

		if export, _ := cmd.Flags().GetBool("export"); export {
			if err := st.ExportYAML(ctx, opts); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "exported article cache to export.yaml")
			return nil
		}

		if opts.IsEmpty() {
			n, err := st.Count(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%d articles in cache\n", n)
			return nil
		}

		articles, err := st.Query(ctx, opts)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return search.FormatJSON(articles, os.Stdout)
		}
		search.FormatTable(articles, os.Stdout)
		return nil
	},
}

func init() {
	storeCmd.Flags().String("data-dir", "", "article cache directory (default: data)")
	storeCmd.Flags().String("query", "", "full-text search over titles and abstracts")
	storeCmd.Flags().String("category", "", "filter by arXiv category")
	storeCmd.Flags().String("author", "", "filter by author name")
	storeCmd.Flags().String("from", "", "published date range start")
	storeCmd.Flags().String("to", "", "published date range end")
	storeCmd.Flags().Int("max-results", 20, "maximum number of query results")
	storeCmd.Flags().Bool("json", false, "output results as JSON")
	storeCmd.Flags().Bool("export", false, "export matching articles to a YAML snapshot")

	rootCmd.AddCommand(storeCmd)
}
