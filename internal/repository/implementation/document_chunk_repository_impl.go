package implementation

import (
	"context"
	"time"

	"course-copilot-be/internal/entity"
	"course-copilot-be/internal/mapper"
	"course-copilot-be/internal/model"
	"course-copilot-be/internal/repository/contract"
	"course-copilot-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentChunkMapper
}

func NewDocumentChunkRepository(db *gorm.DB) contract.DocumentChunkRepository {
	return &DocumentChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentChunkMapper(),
	}
}

func (r *DocumentChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DocumentChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := make([]*model.DocumentChunk, len(chunks))
	for i, e := range chunks {
		models[i] = r.mapper.ToModel(e)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *DocumentChunkRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	// Hard delete: stale vectors must not linger behind a soft-delete flag
	// where a future migration could resurrect them into search results.
	return r.db.WithContext(ctx).Unscoped().
		Where("document_id = ?", documentId).
		Delete(&model.DocumentChunk{}).Error
}

func (r *DocumentChunkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error) {
	var models []*model.DocumentChunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentChunkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.DocumentChunk{}).Count(&count).Error
	return count, err
}

// SearchSimilarWithScore joins documents so results carry attribution and
// respect the scope boundary. Cosine distance in pgvector is
// 1 - cosine_similarity, so similarity = 1 - (embedding_value <=> query).
func (r *DocumentChunkRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, scope contract.SearchScope, threshold float64) ([]*contract.ScoredDocumentChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.DocumentChunk
		Similarity   float64
		DocumentName string
		UploadedAt   time.Time
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("document_chunks").
		Select("document_chunks.*, 1 - (embedding_value <=> ?) as similarity, documents.file_name as document_name, documents.created_at as uploaded_at", queryVector).
		Joins("JOIN documents ON documents.id = document_chunks.document_id").
		Where("documents.course = ? AND documents.cycle = ? AND documents.section = ?", scope.Course, scope.Cycle, scope.Section).
		Where("documents.status = ?", entity.DocumentStatusIndexed).
		Where("document_chunks.deleted_at IS NULL").
		Where("documents.deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		// The tie-break must live in the SQL: with only "similarity DESC" the
		// limit can cut an arbitrary subset of equal-score chunks.
		Order("similarity DESC, documents.created_at DESC, document_chunks.chunk_index ASC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredDocumentChunk, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredDocumentChunk{
			Chunk:        r.mapper.ToEntity(&res.DocumentChunk),
			Similarity:   res.Similarity,
			DocumentName: res.DocumentName,
			UploadedAt:   res.UploadedAt,
		}
	}
	return scored, nil
}
