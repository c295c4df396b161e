// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lang normalizes target-language input into BCP 47 tags and the
// language codes the translation backends expect.
package lang

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Target is a validated translation target language.
type Target struct {
	tag language.Tag
}

// ParseTarget canonicalizes a language tag or name ("ja", "pt-BR", "de").
func ParseTarget(s string) (Target, error) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return Target{}, fmt.Errorf("invalid target language %q: %w", s, err)
	}
	return Target{tag: tag}, nil
}

// Tag returns the canonical BCP 47 tag string (e.g. "ja", "pt-BR").
func (t Target) Tag() string {
	return t.tag.String()
}

// Name returns the English display name of the language ("Japanese"),
// used in LLM prompts so models receive a name rather than a code.
func (t Target) Name() string {
	return display.English.Tags().Name(t.tag)
}

// DeepLCode returns the code DeepL expects: upper-case, with the region
// kept for the variants DeepL distinguishes (EN-GB, EN-US, PT-BR, PT-PT,
// ZH-HANS, ZH-HANT) and stripped otherwise.
func (t Target) DeepLCode() string {
	code := strings.ToUpper(t.tag.String())

	switch code {
	case "EN-GB", "EN-US", "PT-BR", "PT-PT", "ZH-HANS", "ZH-HANT":
		return code
	}

	base, _ := t.tag.Base()
	return strings.ToUpper(base.String())
}
