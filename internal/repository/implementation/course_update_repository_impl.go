package implementation

import (
	"context"
	"errors"

	"course-copilot-be/internal/entity"
	"course-copilot-be/internal/mapper"
	"course-copilot-be/internal/model"
	"course-copilot-be/internal/repository/contract"
	"course-copilot-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseUpdateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CourseUpdateMapper
}

func NewCourseUpdateRepository(db *gorm.DB) contract.CourseUpdateRepository {
	return &CourseUpdateRepositoryImpl{
		db:     db,
		mapper: mapper.NewCourseUpdateMapper(),
	}
}

func (r *CourseUpdateRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CourseUpdateRepositoryImpl) Create(ctx context.Context, update *entity.CourseUpdate) error {
	m := r.mapper.ToModel(update)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*update = *r.mapper.ToEntity(m)
	return nil
}

func (r *CourseUpdateRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CourseUpdate{}, id).Error
}

func (r *CourseUpdateRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CourseUpdate, error) {
	var m model.CourseUpdate
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CourseUpdateRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CourseUpdate, error) {
	var models []*model.CourseUpdate
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *CourseUpdateRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.CourseUpdate{}).Count(&count).Error
	return count, err
}
