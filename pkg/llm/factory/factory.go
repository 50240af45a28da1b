package factory

import (
	"fmt"

	"course-copilot-be/pkg/llm"
	"course-copilot-be/pkg/llm/groq"
	"course-copilot-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewProvider(baseURL, modelName), nil
	case "groq":
		return groq.NewGroqProvider(apiKey, baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
