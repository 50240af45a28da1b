package mapper

import (
	"time"

	"course-copilot-be/internal/entity"
	"course-copilot-be/internal/model"

	"gorm.io/gorm"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(e *model.Document) *entity.Document {
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

	return &entity.Document{
		Id:         e.Id,
		FileName:   e.FileName,
		Course:     e.Course,
		Cycle:      e.Cycle,
		Module:     e.Module,
		Section:    e.Section,
		StorageKey: e.StorageKey,
		Status:     e.Status,
		Attempts:   e.Attempts,
		LastError:  e.LastError,
		ChunkCount: e.ChunkCount,
		UploadedAt: e.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
		IsDeleted:  e.DeletedAt.Valid,
	}
}

func (m *DocumentMapper) ToModel(e *entity.Document) *model.Document {
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

	return &model.Document{
		Id:         e.Id,
		FileName:   e.FileName,
		Course:     e.Course,
		Cycle:      e.Cycle,
		Module:     e.Module,
		Section:    e.Section,
		StorageKey: e.StorageKey,
		Status:     e.Status,
		Attempts:   e.Attempts,
		LastError:  e.LastError,
		ChunkCount: e.ChunkCount,
		CreatedAt:  e.UploadedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
	}
}

func (m *DocumentMapper) ToEntities(documents []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(documents))
	for i, e := range documents {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
