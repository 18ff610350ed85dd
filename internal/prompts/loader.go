// Package prompts holds the externalized LLM prompt texts for letter
// generation and assembles them into a single prompt. Static texts are stored
// as JSON and embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed letter.json
var promptFiles embed.FS

var (
	loadOnce sync.Once
	loaded   map[string]string
	loadErr  error
)

// Get retrieves a prompt text by key from the embedded prompt file.
func Get(key string) (string, error) {
	loadOnce.Do(func() {
		data, err := promptFiles.ReadFile("letter.json")
		if err != nil {
			loadErr = fmt.Errorf("failed to read prompt file: %w", err)
			return
		}
		if err := json.Unmarshal(data, &loaded); err != nil {
			loadErr = fmt.Errorf("failed to parse prompt file: %w", err)
		}
	})
	if loadErr != nil {
		return "", loadErr
	}
	text, ok := loaded[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found", key)
	}
	return text, nil
}

// MustGet retrieves a prompt text by key, panicking if not found. Use for
// prompts that are required at initialization time.
func MustGet(key string) string {
	text, err := Get(key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return text
}

// Format replaces template placeholders in the form {{.Key}} with values from
// data. This is a simple template system for prompt customization.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		placeholder := fmt.Sprintf("{{.%s}}", key)
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}
