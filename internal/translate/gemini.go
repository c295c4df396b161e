// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"context"
	"fmt"
	"strings"

	genai "google.golang.org/genai"

	"github.com/astropenguin/aixiv/internal/lang"
	"github.com/astropenguin/aixiv/pkg/types"
)

const geminiDefaultModel = "gemini-2.0-flash"

// Gemini translates and summarizes text through the official genai client.
type Gemini struct {
	cli    *genai.Client
	model  string
	target lang.Target
}

// NewGemini builds a Gemini backend with the given API key and model.
func NewGemini(ctx context.Context, apiKey, model string, target lang.Target) (*Gemini, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	if model == "" {
		model = geminiDefaultModel
	}
	return &Gemini{cli: cli, model: model, target: target}, nil
}

// Name returns the backend identifier.
func (g *Gemini) Name() string { return "gemini" }

// Translate renders the translation prompt and returns the model reply.
func (g *Gemini) Translate(ctx context.Context, text string) (string, error) {
	prompt, err := renderTranslatePrompt(g.target.Name(), text)
	if err != nil {
		return "", err
	}
	return g.generate(ctx, prompt)
}

// Summarize renders the summary prompt and returns the model reply.
func (g *Gemini) Summarize(ctx context.Context, article types.Article) (string, error) {
	prompt, err := renderSummaryPrompt(g.target.Name(), article)
	if err != nil {
		return "", err
	}
	return g.generate(ctx, prompt)
}

// generate sends a single-part prompt and returns the first candidate text.
func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("Gemini API request: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("Gemini API returned no candidates")
	}

	return strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text), nil
}
