// Package retrieval turns documents into embedded chunks and answers scoped
// similarity queries over them.
package retrieval

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"course-copilot-be/pkg/embedding"
	"course-copilot-be/pkg/utils"
)

// ChunkStore persists embedded chunks and runs vector searches over them.
type ChunkStore interface {
	// ReplaceDocumentChunks atomically swaps all chunks of a document.
	// Old chunks must never coexist with new ones.
	ReplaceDocumentChunks(ctx context.Context, documentID uuid.UUID, chunks []Chunk) error

	// SearchSimilar returns up to limit chunks within the scope ordered by
	// similarity. Scores are cosine similarity in [0,1].
	SearchSimilar(ctx context.Context, scope Scope, vector []float32, limit int) ([]Result, error)
}

type Config struct {
	ChunkSize      int
	ChunkOverlap   int
	TopK           int
	ScoreThreshold float64
}

func DefaultConfig() Config {
	return Config{
		ChunkSize:      1500,
		ChunkOverlap:   200,
		TopK:           5,
		ScoreThreshold: 0.5,
	}
}

type Engine struct {
	store    ChunkStore
	embedder embedding.Provider
	cfg      Config
}

func NewEngine(store ChunkStore, embedder embedding.Provider, cfg Config) *Engine {
	if cfg.ChunkSize <= 0 {
		cfg = DefaultConfig()
	}
	return &Engine{
		store:    store,
		embedder: embedder,
		cfg:      cfg,
	}
}

// Index chunks and embeds a document's text, then atomically replaces any
// chunks previously stored for the document. Safe to call again for the
// same document; re-indexing converges to the same state.
func (e *Engine) Index(ctx context.Context, documentID uuid.UUID, text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, ErrEmptyDocument
	}

	parts := utils.SplitText(text, e.cfg.ChunkSize, e.cfg.ChunkOverlap)

	chunks := make([]Chunk, 0, len(parts))
	for i, part := range parts {
		vector, err := e.embedder.Generate(ctx, part, embedding.TaskDocument)
		if err != nil {
			return 0, fmt.Errorf("%w: chunk %d of document %s: %v", ErrEmbedding, i, documentID, err)
		}
		chunks = append(chunks, Chunk{
			DocumentID: documentID,
			Index:      i,
			Content:    part,
			Vector:     vector,
		})
	}

	if err := e.store.ReplaceDocumentChunks(ctx, documentID, chunks); err != nil {
		return 0, fmt.Errorf("replace chunks for document %s: %w", documentID, err)
	}
	return len(chunks), nil
}

// Query embeds the question and returns the best-scoring chunks within the
// scope. An incomplete scope yields no results rather than an error, since
// it means the conversation has not narrowed down a course offering yet.
func (e *Engine) Query(ctx context.Context, scope Scope, query string) ([]Result, error) {
	if !scope.Complete() {
		return nil, nil
	}
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	vector, err := e.embedder.Generate(ctx, query, embedding.TaskQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", ErrEmbedding, err)
	}

	// Overfetch so the threshold cut does not starve the final top-k.
	results, err := e.store.SearchSimilar(ctx, scope, vector, e.cfg.TopK*2)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	filtered := results[:0]
	for _, r := range results {
		if r.Score > e.cfg.ScoreThreshold {
			filtered = append(filtered, r)
		}
	}

	// Ties on score break toward the newest document, then document order.
	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Score != filtered[j].Score {
			return filtered[i].Score > filtered[j].Score
		}
		if !filtered[i].UploadedAt.Equal(filtered[j].UploadedAt) {
			return filtered[i].UploadedAt.After(filtered[j].UploadedAt)
		}
		return filtered[i].ChunkIndex < filtered[j].ChunkIndex
	})

	if len(filtered) > e.cfg.TopK {
		filtered = filtered[:e.cfg.TopK]
	}
	return filtered, nil
}
