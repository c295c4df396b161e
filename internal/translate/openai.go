// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/astropenguin/aixiv/internal/httputil"
	"github.com/astropenguin/aixiv/internal/lang"
	"github.com/astropenguin/aixiv/pkg/types"
)

// openaiAPIBase is the OpenAI chat completions endpoint. Package-level var
// for test substitution.
var openaiAPIBase = "https://api.openai.com/v1/chat/completions"

const openaiDefaultModel = "gpt-4o-mini"

// OpenAI translates and summarizes text through the chat completions API.
type OpenAI struct {
	APIKey    string
	Model     string
	Target    lang.Target
	Client    *http.Client
	UserAgent string
}

// Name returns the backend identifier.
func (o *OpenAI) Name() string { return "openai" }

// openaiRequest is the request body for the chat completions API.
type openaiRequest struct {
	Model    string          `json:"model"`
	Messages []openaiMessage `json:"messages"`
}

// openaiMessage is a single message in the conversation.
type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openaiResponse is the response body from the chat completions API.
type openaiResponse struct {
	Choices []struct {
		Message openaiMessage `json:"message"`
	} `json:"choices"`
}

// Translate renders the translation prompt and returns the model reply.
func (o *OpenAI) Translate(ctx context.Context, text string) (string, error) {
	prompt, err := renderTranslatePrompt(o.Target.Name(), text)
	if err != nil {
		return "", err
	}
	return o.complete(ctx, prompt)
}

// Summarize renders the summary prompt and returns the model reply.
func (o *OpenAI) Summarize(ctx context.Context, article types.Article) (string, error) {
	prompt, err := renderSummaryPrompt(o.Target.Name(), article)
	if err != nil {
		return "", err
	}
	return o.complete(ctx, prompt)
}

// complete posts a single-message conversation and returns the first choice.
func (o *OpenAI) complete(ctx context.Context, prompt string) (string, error) {
	model := o.Model
	if model == "" {
		model = openaiDefaultModel
	}

	reqBody := openaiRequest{
		Model: model,
		Messages: []openaiMessage{
			{Role: "user", Content: prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openaiAPIBase, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.APIKey)
	if o.UserAgent != "" {
		req.Header.Set("User-Agent", o.UserAgent)
	}

	client := o.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return "", fmt.Errorf("OpenAI API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("OpenAI API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var or openaiResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		return "", fmt.Errorf("decoding OpenAI response: %w", err)
	}
	if len(or.Choices) == 0 {
		return "", fmt.Errorf("OpenAI API returned no choices")
	}

	return strings.TrimSpace(or.Choices[0].Message.Content), nil
}
