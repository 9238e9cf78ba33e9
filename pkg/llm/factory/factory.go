package factory

import (
	"ai-assistant-be/pkg/llm"
	"ai-assistant-be/pkg/llm/ollama"
	"fmt"
)

func NewCompletionProvider(providerType, chatModel, baseURL string) (llm.CompletionProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, chatModel), nil
	default:
		return nil, fmt.Errorf("unsupported completion provider: %s", providerType)
	}
}
