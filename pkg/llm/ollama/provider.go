package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"course-copilot-be/pkg/llm"
)

const defaultTimeout = 120 * time.Second

// Provider talks to a local or self-hosted Ollama daemon over its
// /api/chat endpoint. Responses are requested non-streaming.
type Provider struct {
	baseURL string
	model   string
	client  *http.Client
}

var _ llm.LLMProvider = &Provider{}

func NewProvider(baseURL, model string) *Provider {
	return &Provider{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  chatOptions   `json:"options"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{Temperature: 0.7}
	for _, opt := range opts {
		opt(options)
	}

	model := p.model
	if options.Model != "" {
		model = options.Model
	}

	payload := chatRequest{
		Model:   model,
		Stream:  false,
		Options: chatOptions{Temperature: options.Temperature, NumPredict: options.MaxTokens},
	}
	for _, msg := range history {
		role := msg.Role
		// Gemini-style transcripts use "model" for the assistant turn.
		if role == "model" {
			role = "assistant"
		}
		payload.Messages = append(payload.Messages, chatMessage{Role: role, Content: msg.Content})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("ollama chat: status %d: %s", resp.StatusCode, string(raw))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	return out.Message.Content, nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
