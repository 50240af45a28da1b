package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const geminiEmbeddingModel = "text-embedding-004"

// GeminiProvider calls the Gemini embedContent endpoint.
// text-embedding-004 yields 768-dimensional vectors.
type GeminiProvider struct {
	apiKey string
	client *http.Client
}

func NewGeminiProvider(apiKey string) Provider {
	return &GeminiProvider{
		apiKey: apiKey,
		client: &http.Client{},
	}
}

type geminiContentPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiContentPart `json:"parts"`
}

type geminiEmbedRequest struct {
	Model    string        `json:"model"`
	Content  geminiContent `json:"content"`
	TaskType string        `json:"task_type,omitempty"`
}

type geminiEmbedResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

func (p *GeminiProvider) Generate(ctx context.Context, text string, taskType string) ([]float32, error) {
	payload := geminiEmbedRequest{
		Model: geminiEmbeddingModel,
		Content: geminiContent{
			Parts: []geminiContentPart{{Text: text}},
		},
		TaskType: taskType,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1/models/%s:embedContent",
		geminiEmbeddingModel,
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", p.apiKey)
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
		return nil, fmt.Errorf("gemini embedding error: code %d, body %s", res.StatusCode, string(resBytes))
	}

	var parsed geminiEmbedResponse
	if err := json.Unmarshal(resBytes, &parsed); err != nil {
		return nil, err
	}
	return parsed.Embedding.Values, nil
}
