package contract

import (
	"context"

	"course-copilot-be/internal/entity"
	"course-copilot-be/internal/repository/specification"
)

type FlaggedMessageRepository interface {
	Create(ctx context.Context, message *entity.FlaggedMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FlaggedMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
