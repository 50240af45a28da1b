package mapper

import (
	"time"

	"course-copilot-be/internal/entity"
	"course-copilot-be/internal/model"

	"gorm.io/gorm"
)

type CourseMapper struct{}

func NewCourseMapper() *CourseMapper {
	return &CourseMapper{}
}

func (m *CourseMapper) ToEntity(e *model.Course) *entity.Course {
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

	return &entity.Course{
		Id:        e.Id,
		Name:      e.Name,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: e.DeletedAt.Valid,
	}
}

func (m *CourseMapper) ToModel(e *entity.Course) *model.Course {
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

	return &model.Course{
		Id:        e.Id,
		Name:      e.Name,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *CourseMapper) ToEntities(courses []*model.Course) []*entity.Course {
	entities := make([]*entity.Course, len(courses))
	for i, e := range courses {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
