package embedding

import "context"

// Task types passed to providers that distinguish document and query
// embeddings (Gemini does; Ollama ignores them).
const (
	TaskDocument = "RETRIEVAL_DOCUMENT"
	TaskQuery    = "RETRIEVAL_QUERY"
)

// Provider generates a vector for a piece of text. The context carries the
// caller's timeout; every implementation must honor it.
type Provider interface {
	Generate(ctx context.Context, text string, taskType string) ([]float32, error)
}
