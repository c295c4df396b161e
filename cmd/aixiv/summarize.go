package main

import (
	"github.com/spf13/cobra"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize article abstracts in a target language",
	Long: `Summarize replaces article abstracts with short target-language
summaries produced by an LLM backend (OpenAI or Gemini). Articles come
from a saved query file (--input) or from a fresh search using the
search flags.

Summaries are cached alongside translations in the article store. An
article whose summary fails or times out is passed through unchanged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, true)
	},
}

func init() {
	addPipelineFlags(summarizeCmd, "openai")
	rootCmd.AddCommand(summarizeCmd)
}
