package service

import (
	"context"
	"fmt"
	"time"

	"course-copilot-be/internal/dto"
	"course-copilot-be/internal/entity"
	"course-copilot-be/internal/repository/specification"
	"course-copilot-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ICourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CreateCourseResponse, error)
	List(ctx context.Context) ([]*dto.CourseResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// ListCourses feeds the conversation's course resolver.
	ListCourses(ctx context.Context) ([]string, error)
}

type courseService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewCourseService(uowFactory unitofwork.RepositoryFactory) ICourseService {
	return &courseService{uowFactory: uowFactory}
}

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CreateCourseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.CourseRepository().FindOne(ctx, specification.Filter("name", req.Name))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("course %q already exists", req.Name)
	}

	course := entity.Course{
		Id:        uuid.New(),
		Name:      req.Name,
		CreatedAt: time.Now(),
	}
	if err := uow.CourseRepository().Create(ctx, &course); err != nil {
		return nil, err
	}
	return &dto.CreateCourseResponse{Id: course.Id}, nil
}

func (s *courseService) List(ctx context.Context) ([]*dto.CourseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	courses, err := uow.CourseRepository().FindAll(ctx, specification.OrderBy{Field: "name"})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.CourseResponse, len(courses))
	for i, c := range courses {
		res[i] = &dto.CourseResponse{Id: c.Id, Name: c.Name}
	}
	return res, nil
}

func (s *courseService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.CourseRepository().Delete(ctx, id)
}

func (s *courseService) ListCourses(ctx context.Context) ([]string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	courses, err := uow.CourseRepository().FindAll(ctx, specification.OrderBy{Field: "name"})
	if err != nil {
		return nil, err
	}
	names := make([]string, len(courses))
	for i, c := range courses {
		names[i] = c.Name
	}
	return names, nil
}
