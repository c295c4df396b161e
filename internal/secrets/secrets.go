// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Supported key files: deepl-api-key, openai-api-key, gemini-api-key.
// Environment variables (DEEPL_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY) are
// consulted when the corresponding file is absent.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// envNames maps secret key names to their environment variable fallbacks.
var envNames = map[string]string{
	"deepl-api-key":  "DEEPL_API_KEY",
	"openai-api-key": "OPENAI_API_KEY",
	"gemini-api-key": "GEMINI_API_KEY",
}

// Load reads all files in dir and returns a map of filename to trimmed contents,
// filled out with environment variable fallbacks for known keys.
// A missing directory or missing files are not errors.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	secrets := make(map[string]string)

	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	for key, env := range envNames {
		if secrets[key] != "" {
			continue
		}
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			secrets[key] = v
		}
	}

	return secrets, nil
}
