// Package adapter bridges the persistence layer to the retrieval engine's
// storage contract.
package adapter

import (
	"context"
	"fmt"

	"course-copilot-be/internal/entity"
	"course-copilot-be/internal/repository/contract"
	"course-copilot-be/internal/repository/unitofwork"
	"course-copilot-be/pkg/retrieval"

	"github.com/google/uuid"
)

type ChunkStore struct {
	factory unitofwork.RepositoryFactory
}

var _ retrieval.ChunkStore = &ChunkStore{}

func NewChunkStore(factory unitofwork.RepositoryFactory) *ChunkStore {
	return &ChunkStore{factory: factory}
}

// ReplaceDocumentChunks deletes the document's old chunks and inserts the
// new set in one transaction, so a search never sees a half-indexed
// document.
func (s *ChunkStore) ReplaceDocumentChunks(ctx context.Context, documentID uuid.UUID, chunks []retrieval.Chunk) error {
	uow := s.factory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin chunk swap: %w", err)
	}

	repo := uow.DocumentChunkRepository()

	if err := repo.DeleteByDocumentId(ctx, documentID); err != nil {
		uow.Rollback()
		return fmt.Errorf("delete old chunks: %w", err)
	}

	entities := make([]*entity.DocumentChunk, len(chunks))
	for i, c := range chunks {
		entities[i] = &entity.DocumentChunk{
			Content:        c.Content,
			EmbeddingValue: c.Vector,
			DocumentId:     c.DocumentID,
			ChunkIndex:     c.Index,
		}
	}
	if err := repo.CreateBulk(ctx, entities); err != nil {
		uow.Rollback()
		return fmt.Errorf("insert new chunks: %w", err)
	}

	return uow.Commit()
}

func (s *ChunkStore) SearchSimilar(ctx context.Context, scope retrieval.Scope, vector []float32, limit int) ([]retrieval.Result, error) {
	uow := s.factory.NewUnitOfWork(ctx)
	repo := uow.DocumentChunkRepository()

	scored, err := repo.SearchSimilarWithScore(ctx, vector, limit, contract.SearchScope{
		Course:  scope.Course,
		Cycle:   scope.Cycle,
		Section: scope.Section,
	}, 0)
	if err != nil {
		return nil, err
	}

	results := make([]retrieval.Result, len(scored))
	for i, sc := range scored {
		results[i] = retrieval.Result{
			DocumentID:   sc.Chunk.DocumentId,
			DocumentName: sc.DocumentName,
			ChunkIndex:   sc.Chunk.ChunkIndex,
			Content:      sc.Chunk.Content,
			Score:        sc.Similarity,
			UploadedAt:   sc.UploadedAt,
		}
	}
	return results, nil
}
