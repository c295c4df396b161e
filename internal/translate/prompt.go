// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/astropenguin/aixiv/pkg/types"
)

// translatePromptTmpl is the instruction sent to LLM backends for plain
// translation. It pins the output to the translation alone so the reply
// can be used verbatim.
var translatePromptTmpl = template.Must(template.New("translate").Parse(`You are a professional translator of academic writing. Translate the text below into {{.Language}}.

Rules:
- Preserve the meaning and register of the original.
- Keep technical terms, proper nouns, units, and mathematical notation as-is when they have no established {{.Language}} equivalent.
- Do not add commentary, notes, or formatting.
- Respond with the translation only.

Text:
{{.Text}}
`))

// summaryPromptTmpl is the instruction sent to LLM backends for article
// summarization.
var summaryPromptTmpl = template.Must(template.New("summary").Parse(`You are a research assistant. Write a summary of the following article in {{.Language}}, at most three sentences, covering the problem, the approach, and the main finding. Respond with the summary only.

Title: {{.Title}}

Abstract:
{{.Summary}}
`))

// renderTranslatePrompt executes the translation prompt template.
func renderTranslatePrompt(language, text string) (string, error) {
	var buf bytes.Buffer
	err := translatePromptTmpl.Execute(&buf, struct{ Language, Text string }{language, text})
	if err != nil {
		return "", fmt.Errorf("rendering translation prompt: %w", err)
	}
	return buf.String(), nil
}

// renderSummaryPrompt executes the summary prompt template.
func renderSummaryPrompt(language string, article types.Article) (string, error) {
	var buf bytes.Buffer
	err := summaryPromptTmpl.Execute(&buf, struct{ Language, Title, Summary string }{
		language, article.Title, article.Summary,
	})
	if err != nil {
		return "", fmt.Errorf("rendering summary prompt: %w", err)
	}
	return buf.String(), nil
}
