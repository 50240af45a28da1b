package contract

import (
	"context"
	"time"

	"course-copilot-be/internal/entity"
	"course-copilot-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredDocumentChunk wraps a chunk with its similarity score and the
// joined document columns answers are attributed to.
type ScoredDocumentChunk struct {
	Chunk        *entity.DocumentChunk
	Similarity   float64 // 0.0 to 1.0 (1.0 = identical)
	DocumentName string
	UploadedAt   time.Time
}

// SearchScope narrows similarity search to one course offering.
type SearchScope struct {
	Course  string
	Cycle   string
	Section string
}

type DocumentChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore returns chunks with similarity scores within a
	// scope, filtered by threshold.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, scope SearchScope, threshold float64) ([]*ScoredDocumentChunk, error)
}
