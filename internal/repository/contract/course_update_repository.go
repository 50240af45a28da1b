package contract

import (
	"context"

	"course-copilot-be/internal/entity"
	"course-copilot-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CourseUpdateRepository interface {
	Create(ctx context.Context, update *entity.CourseUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CourseUpdate, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CourseUpdate, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
