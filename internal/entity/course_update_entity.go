package entity

import (
	"time"

	"github.com/google/uuid"
)

// Update categories. GENERAL is the fallback when staff do not confirm a
// suggestion.
const (
	UpdateCategoryEvaluation = "EVALUACIÓN"
	UpdateCategoryClass      = "CLASE"
	UpdateCategoryHomework   = "TAREA"
	UpdateCategorySyllabus   = "SÍLABO"
	UpdateCategorySchedule   = "CRONOGRAMA"
	UpdateCategoryGeneral    = "GENERAL"
)

// ValidUpdateCategory reports whether a category is one of the known set.
func ValidUpdateCategory(category string) bool {
	switch category {
	case UpdateCategoryEvaluation, UpdateCategoryClass, UpdateCategoryHomework,
		UpdateCategorySyllabus, UpdateCategorySchedule, UpdateCategoryGeneral:
		return true
	}
	return false
}

type CourseUpdate struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Course    string
	Cycle     string
	Module    string
	Section   string
	Category  string
	Content   string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
