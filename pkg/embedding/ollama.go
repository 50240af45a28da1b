package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
)

// OllamaProvider generates embeddings with a local Ollama model such as
// nomic-embed-text.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

func NewOllamaProvider(baseURL string, model string) Provider {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "nomic-embed-text"
	}
	return &OllamaProvider{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{},
	}
}

type ollamaEmbedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbedResponse struct {
	Embedding []float64 `json:"embedding"`
}

func (p *OllamaProvider) Generate(ctx context.Context, text string, taskType string) ([]float32, error) {
	// taskType is accepted for interface compatibility; Ollama models do
	// not distinguish document and query embeddings.
	body, err := json.Marshal(ollamaEmbedRequest{Model: p.model, Prompt: text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/embeddings", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama embedding error: %s", string(resBytes))
	}

	var parsed ollamaEmbedResponse
	if err := json.Unmarshal(resBytes, &parsed); err != nil {
		return nil, err
	}

	values := make([]float32, len(parsed.Embedding))
	for i, v := range parsed.Embedding {
		values[i] = float32(v)
	}

	// Cosine distance in pgvector expects unit-length vectors.
	return normalize(values), nil
}

func normalize(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)
	if magnitude == 0 {
		return vec
	}

	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(float64(v) / magnitude)
	}
	return out
}
