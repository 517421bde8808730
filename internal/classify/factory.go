package classify

import (
	"fmt"
	"strings"
)

// NewProvider creates a classifier provider based on configuration.
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "keyword":
		return NewKeywordProvider(), nil

	case "openai":
		return NewOpenAIProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		// No provider configured - classification disabled, every
		// claim routes to the central authority.
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown classifier provider: %s (supported: keyword, openai, ollama)", config.Provider)
	}
}
