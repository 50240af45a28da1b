package implementation

import (
	"context"
	"errors"

	"course-copilot-be/internal/entity"
	"course-copilot-be/internal/mapper"
	"course-copilot-be/internal/model"
	"course-copilot-be/internal/repository/contract"
	"course-copilot-be/internal/repository/specification"

	"gorm.io/gorm"
)

type StaffUserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.StaffUserMapper
}

func NewStaffUserRepository(db *gorm.DB) contract.StaffUserRepository {
	return &StaffUserRepositoryImpl{
		db:     db,
		mapper: mapper.NewStaffUserMapper(),
	}
}

func (r *StaffUserRepositoryImpl) Create(ctx context.Context, user *entity.StaffUser) error {
	m := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(m)
	return nil
}

func (r *StaffUserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*entity.StaffUser, error) {
	var m model.StaffUser
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *StaffUserRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.StaffUser, error) {
	var m model.StaffUser
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
