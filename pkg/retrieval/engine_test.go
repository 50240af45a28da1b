package retrieval

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeEmbedder struct {
	calls int
	err   error
}

func (f *fakeEmbedder) Generate(ctx context.Context, text string, taskType string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

type fakeStore struct {
	replaced map[uuid.UUID][]Chunk
	results  []Result
	limit    int
	err      error
}

func (f *fakeStore) ReplaceDocumentChunks(ctx context.Context, documentID uuid.UUID, chunks []Chunk) error {
	if f.err != nil {
		return f.err
	}
	if f.replaced == nil {
		f.replaced = make(map[uuid.UUID][]Chunk)
	}
	f.replaced[documentID] = chunks
	return nil
}

func (f *fakeStore) SearchSimilar(ctx context.Context, scope Scope, vector []float32, limit int) ([]Result, error) {
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func testScope() Scope {
	return Scope{Course: "Algoritmos", Cycle: "20241", Section: "G1"}
}

func TestIndexEmptyDocument(t *testing.T) {
	engine := NewEngine(&fakeStore{}, &fakeEmbedder{}, DefaultConfig())

	_, err := engine.Index(context.Background(), uuid.New(), "   \n\t ")
	if !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("err = %v, want ErrEmptyDocument", err)
	}
}

func TestIndexStoresChunksInOrder(t *testing.T) {
	store := &fakeStore{}
	embedder := &fakeEmbedder{}
	engine := NewEngine(store, embedder, Config{ChunkSize: 10, ChunkOverlap: 2, TopK: 5, ScoreThreshold: 0.5})

	docID := uuid.New()
	count, err := engine.Index(context.Background(), docID, "abcdefghij klmnopqrst uvwxyz")
	if err != nil {
		t.Fatalf("Index error: %v", err)
	}

	chunks := store.replaced[docID]
	if count != len(chunks) {
		t.Errorf("count = %d, stored %d", count, len(chunks))
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Index != i {
			t.Errorf("chunk %d has index %d", i, c.Index)
		}
		if c.DocumentID != docID {
			t.Errorf("chunk %d has document %s", i, c.DocumentID)
		}
		if len(c.Vector) == 0 {
			t.Errorf("chunk %d has no vector", i)
		}
	}
	if embedder.calls != len(chunks) {
		t.Errorf("embedder calls = %d, want %d", embedder.calls, len(chunks))
	}
}

func TestIndexEmbeddingFailure(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("quota exceeded")}
	engine := NewEngine(&fakeStore{}, embedder, DefaultConfig())

	_, err := engine.Index(context.Background(), uuid.New(), "some content")
	if !errors.Is(err, ErrEmbedding) {
		t.Errorf("err = %v, want ErrEmbedding", err)
	}
}

func TestQueryIncompleteScope(t *testing.T) {
	embedder := &fakeEmbedder{}
	engine := NewEngine(&fakeStore{}, embedder, DefaultConfig())

	scopes := []Scope{
		{},
		{Course: "Algoritmos"},
		{Course: "Algoritmos", Cycle: "20241"},
	}
	for _, scope := range scopes {
		results, err := engine.Query(context.Background(), scope, "question")
		if err != nil || results != nil {
			t.Errorf("Query(%+v) = %v, %v; want nil, nil", scope, results, err)
		}
	}
	if embedder.calls != 0 {
		t.Errorf("incomplete scope reached the embedder")
	}
}

func TestQueryEmptyQuestion(t *testing.T) {
	engine := NewEngine(&fakeStore{}, &fakeEmbedder{}, DefaultConfig())

	results, err := engine.Query(context.Background(), testScope(), "   ")
	if err != nil || results != nil {
		t.Errorf("Query = %v, %v; want nil, nil", results, err)
	}
}

func TestQueryFiltersSortsAndCaps(t *testing.T) {
	older := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	store := &fakeStore{results: []Result{
		{Content: "low", Score: 0.3, UploadedAt: older},
		{Content: "tie-old", Score: 0.8, UploadedAt: older, ChunkIndex: 0},
		{Content: "tie-new-second", Score: 0.8, UploadedAt: newer, ChunkIndex: 2},
		{Content: "tie-new-first", Score: 0.8, UploadedAt: newer, ChunkIndex: 1},
		{Content: "best", Score: 0.95, UploadedAt: older},
		{Content: "ok", Score: 0.6, UploadedAt: older},
	}}
	engine := NewEngine(store, &fakeEmbedder{}, Config{ChunkSize: 1500, ChunkOverlap: 200, TopK: 3, ScoreThreshold: 0.5})

	results, err := engine.Query(context.Background(), testScope(), "question")
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}

	if store.limit != 6 {
		t.Errorf("overfetch limit = %d, want 6", store.limit)
	}
	want := []string{"best", "tie-new-first", "tie-new-second"}
	if len(results) != len(want) {
		t.Fatalf("got %d results, want %d", len(results), len(want))
	}
	for i, w := range want {
		if results[i].Content != w {
			t.Errorf("result[%d] = %q, want %q", i, results[i].Content, w)
		}
	}
}

func TestQuerySearchFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	engine := NewEngine(store, &fakeEmbedder{}, DefaultConfig())

	if _, err := engine.Query(context.Background(), testScope(), "question"); err == nil {
		t.Error("expected error from failing store")
	}
}
