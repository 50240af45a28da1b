package unitofwork

import (
	"context"

	"course-copilot-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CourseRepository() contract.CourseRepository
	DocumentRepository() contract.DocumentRepository
	DocumentChunkRepository() contract.DocumentChunkRepository
	CourseUpdateRepository() contract.CourseUpdateRepository
	StaffUserRepository() contract.StaffUserRepository
	FlaggedMessageRepository() contract.FlaggedMessageRepository
}
