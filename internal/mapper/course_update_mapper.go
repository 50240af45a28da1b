package mapper

import (
	"time"

	"course-copilot-be/internal/entity"
	"course-copilot-be/internal/model"

	"gorm.io/gorm"
)

type CourseUpdateMapper struct{}

func NewCourseUpdateMapper() *CourseUpdateMapper {
	return &CourseUpdateMapper{}
}

func (m *CourseUpdateMapper) ToEntity(e *model.CourseUpdate) *entity.CourseUpdate {
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

	return &entity.CourseUpdate{
		Id:        e.Id,
		Course:    e.Course,
		Cycle:     e.Cycle,
		Module:    e.Module,
		Section:   e.Section,
		Category:  e.Category,
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: e.DeletedAt.Valid,
	}
}

func (m *CourseUpdateMapper) ToModel(e *entity.CourseUpdate) *model.CourseUpdate {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.CourseUpdate{
		Id:        e.Id,
		Course:    e.Course,
		Cycle:     e.Cycle,
		Module:    e.Module,
		Section:   e.Section,
		Category:  e.Category,
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *CourseUpdateMapper) ToEntities(updates []*model.CourseUpdate) []*entity.CourseUpdate {
	entities := make([]*entity.CourseUpdate, len(updates))
	for i, e := range updates {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
