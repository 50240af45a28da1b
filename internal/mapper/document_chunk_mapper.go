package mapper

import (
	"time"

	"course-copilot-be/internal/entity"
	"course-copilot-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentChunkMapper struct{}

func NewDocumentChunkMapper() *DocumentChunkMapper {
	return &DocumentChunkMapper{}
}

func (m *DocumentChunkMapper) ToEntity(e *model.DocumentChunk) *entity.DocumentChunk {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.DocumentChunk{
		Id:             e.Id,
		Content:        e.Content,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		DocumentId:     e.DocumentId,
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      e.DeletedAt.Valid,
	}
}

func (m *DocumentChunkMapper) ToModel(e *entity.DocumentChunk) *model.DocumentChunk {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.DocumentChunk{
		Id:             e.Id,
		Content:        e.Content,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		DocumentId:     e.DocumentId,
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *DocumentChunkMapper) ToEntities(chunks []*model.DocumentChunk) []*entity.DocumentChunk {
	entities := make([]*entity.DocumentChunk, len(chunks))
	for i, e := range chunks {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *DocumentChunkMapper) ToModels(chunks []*entity.DocumentChunk) []*model.DocumentChunk {
	models := make([]*model.DocumentChunk, len(chunks))
	for i, e := range chunks {
		models[i] = m.ToModel(e)
	}
	return models
}
