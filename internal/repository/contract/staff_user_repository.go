package contract

import (
	"context"

	"course-copilot-be/internal/entity"
	"course-copilot-be/internal/repository/specification"
)

type StaffUserRepository interface {
	Create(ctx context.Context, user *entity.StaffUser) error
	FindByEmail(ctx context.Context, email string) (*entity.StaffUser, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.StaffUser, error)
}
