package implementation

import (
	"context"

	"course-copilot-be/internal/entity"
	"course-copilot-be/internal/mapper"
	"course-copilot-be/internal/model"
	"course-copilot-be/internal/repository/contract"
	"course-copilot-be/internal/repository/specification"

	"gorm.io/gorm"
)

type FlaggedMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FlaggedMessageMapper
}

func NewFlaggedMessageRepository(db *gorm.DB) contract.FlaggedMessageRepository {
	return &FlaggedMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewFlaggedMessageMapper(),
	}
}

func (r *FlaggedMessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FlaggedMessageRepositoryImpl) Create(ctx context.Context, message *entity.FlaggedMessage) error {
	m := r.mapper.ToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.ToEntity(m)
	return nil
}

func (r *FlaggedMessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FlaggedMessage, error) {
	var models []*model.FlaggedMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FlaggedMessageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.FlaggedMessage{}).Count(&count).Error
	return count, err
}
