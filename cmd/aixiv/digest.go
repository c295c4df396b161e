package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/astropenguin/aixiv/internal/digest"
	"github.com/astropenguin/aixiv/internal/search"
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Render a Markdown digest from a saved query file",
	Long: `Digest renders the articles of a saved query file into a Markdown
document: a dated header followed by one section per article with its
title, authors, link, and abstract. With --stdout the document prints
instead of being written to the output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		if input == "" {
			return fmt.Errorf("no input: use --input to name a query file")
		}

		qf, err := search.ReadQueryFile(input)
		if err != nil {
			return err
		}

		dcfg := buildDigestConfig(cmd)
		d := digest.Digest{
			Title:    dcfg.Title,
			Date:     qf.Summary.Timestamp,
			Articles: qf.Articles,
		}

		if toStdout, _ := cmd.Flags().GetBool("stdout"); toStdout {
			fmt.Print(d.Render())
			return nil
		}

		path, err := d.Write(dcfg.OutputDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote digest to %s\n", path)
		return nil
	},
}

func init() {
	digestCmd.Flags().String("input", "", "query file to render")
	digestCmd.Flags().String("output-dir", "", "digest output directory (default: digests)")
	digestCmd.Flags().String("title", "", "digest title")
	digestCmd.Flags().Bool("stdout", false, "print the digest instead of writing a file")

	rootCmd.AddCommand(digestCmd)
}
