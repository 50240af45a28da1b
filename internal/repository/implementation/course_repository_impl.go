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

type CourseRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CourseMapper
}

func NewCourseRepository(db *gorm.DB) contract.CourseRepository {
	return &CourseRepositoryImpl{
		db:     db,
		mapper: mapper.NewCourseMapper(),
	}
}

func (r *CourseRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CourseRepositoryImpl) Create(ctx context.Context, course *entity.Course) error {
	m := r.mapper.ToModel(course)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*course = *r.mapper.ToEntity(m)
	return nil
}

func (r *CourseRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Course{}, id).Error
}

func (r *CourseRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Course, error) {
	var m model.Course
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CourseRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Course, error) {
	var models []*model.Course
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *CourseRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Course{}).Count(&count).Error
	return count, err
}
