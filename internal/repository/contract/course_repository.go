package contract

import (
	"context"

	"course-copilot-be/internal/entity"
	"course-copilot-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CourseRepository interface {
	Create(ctx context.Context, course *entity.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Course, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Course, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
