// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/astropenguin/aixiv/internal/httputil"
	"github.com/astropenguin/aixiv/internal/lang"
)

// deeplAPIBase is the DeepL translation endpoint. Declared as a var so
// tests can substitute an httptest server. Keys issued for the free tier
// (suffix ":fx") are routed to the free host.
var deeplAPIBase = "https://api.deepl.com/v2/translate"

var deeplFreeAPIBase = "https://api-free.deepl.com/v2/translate"

// DeepL translates text through the DeepL REST API. It does not summarize.
type DeepL struct {
	APIKey    string
	Target    lang.Target
	Client    *http.Client
	UserAgent string
}

// Name returns the backend identifier.
func (d *DeepL) Name() string { return "deepl" }

// endpoint selects the free or paid host based on the key suffix.
func (d *DeepL) endpoint() string {
	if strings.HasSuffix(d.APIKey, ":fx") {
		return deeplFreeAPIBase
	}
	return deeplAPIBase
}

// deeplResponse is the JSON reply of the translate endpoint.
type deeplResponse struct {
	Translations []struct {
		DetectedSourceLanguage string `json:"detected_source_language"`
		Text                   string `json:"text"`
	} `json:"translations"`
}

// Translate sends text to DeepL and returns the translation. HTTP 429 is
// retried with backoff honoring Retry-After.
func (d *DeepL) Translate(ctx context.Context, text string) (string, error) {
	form := url.Values{
		"text":        {text},
		"target_lang": {d.Target.DeepLCode()},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint(), strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "DeepL-Auth-Key "+d.APIKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if d.UserAgent != "" {
		req.Header.Set("User-Agent", d.UserAgent)
	}

	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return "", fmt.Errorf("DeepL API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("DeepL API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var dr deeplResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return "", fmt.Errorf("decoding DeepL response: %w", err)
	}
	if len(dr.Translations) == 0 {
		return "", fmt.Errorf("DeepL API returned no translations")
	}

	return dr.Translations[0].Text, nil
}
