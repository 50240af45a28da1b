package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"course-copilot-be/internal/dto"
	"course-copilot-be/internal/entity"
	"course-copilot-be/internal/pkg/logger"
	"course-copilot-be/internal/repository/specification"
	"course-copilot-be/internal/repository/unitofwork"
	"course-copilot-be/pkg/events"
	"course-copilot-be/pkg/llm"
	pkgNats "course-copilot-be/pkg/nats"

	"github.com/google/uuid"
)

type IUpdateService interface {
	Create(ctx context.Context, req *dto.CreateUpdateRequest) (*dto.CreateUpdateResponse, error)
	SuggestCategory(ctx context.Context, content string) (*dto.SuggestCategoryResponse, error)
	List(ctx context.Context, course, cycle, section, category string) ([]*dto.UpdateResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// RecentUpdates feeds announcements into answer generation.
	RecentUpdates(ctx context.Context, course, cycle, section string) ([]string, error)
}

type updateService struct {
	uowFactory     unitofwork.RepositoryFactory
	provider       llm.LLMProvider
	eventPublisher *pkgNats.Publisher
	log            logger.ILogger
}

func NewUpdateService(
	uowFactory unitofwork.RepositoryFactory,
	provider llm.LLMProvider,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) IUpdateService {
	return &updateService{
		uowFactory:     uowFactory,
		provider:       provider,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

const categoryPromptFormat = `Clasifica el siguiente anuncio de un curso universitario en UNA de estas categorías:
- EVALUACIÓN (exámenes, notas, calificaciones)
- CLASE (horarios de clase, aulas, sesiones)
- TAREA (trabajos, entregas, ejercicios)
- SÍLABO (contenido del curso, temario)
- CRONOGRAMA (calendario, fechas del ciclo)
- GENERAL (todo lo demás)

ANUNCIO: "%s"

RESPONDE SOLO CON EL NOMBRE DE LA CATEGORÍA:`

// Create stores an announcement. An explicit category is validated; with
// none given, the classifier picks one and falls back to GENERAL.
func (s *updateService) Create(ctx context.Context, req *dto.CreateUpdateRequest) (*dto.CreateUpdateResponse, error) {
	category := req.Category
	if category != "" && !entity.ValidUpdateCategory(category) {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	if category == "" {
		suggestion, err := s.SuggestCategory(ctx, req.Content)
		if err != nil {
			category = entity.UpdateCategoryGeneral
		} else {
			category = suggestion.Category
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	update := entity.CourseUpdate{
		Id:        uuid.New(),
		Course:    req.Course,
		Cycle:     req.Cycle,
		Module:    req.Module,
		Section:   req.Section,
		Category:  category,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	if err := uow.CourseUpdateRepository().Create(ctx, &update); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.NewUpdatePublished(update.Id.String(), update.Course, update.Category)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("Update", "Failed to publish event", map[string]interface{}{
				"update_id": update.Id,
				"error":     err.Error(),
			})
		}
	}

	return &dto.CreateUpdateResponse{Id: update.Id, Category: category}, nil
}

func (s *updateService) SuggestCategory(ctx context.Context, content string) (*dto.SuggestCategoryResponse, error) {
	raw, err := s.provider.Generate(ctx, fmt.Sprintf(categoryPromptFormat, content), llm.WithTemperature(0))
	if err != nil {
		return nil, fmt.Errorf("suggest category: %w", err)
	}

	category := strings.ToUpper(strings.TrimSpace(raw))
	if !entity.ValidUpdateCategory(category) {
		category = entity.UpdateCategoryGeneral
	}
	return &dto.SuggestCategoryResponse{Category: category}, nil
}

func (s *updateService) List(ctx context.Context, course, cycle, section, category string) ([]*dto.UpdateResponse, error) {
	specs := []specification.Specification{
		specification.ByScope{Course: course, Cycle: cycle, Section: section},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if category != "" {
		if !entity.ValidUpdateCategory(category) {
			return nil, fmt.Errorf("unknown category %q", category)
		}
		specs = append(specs, specification.ByCategory{Category: category})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	updates, err := uow.CourseUpdateRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.UpdateResponse, len(updates))
	for i, u := range updates {
		res[i] = &dto.UpdateResponse{
			Id:        u.Id,
			Course:    u.Course,
			Cycle:     u.Cycle,
			Module:    u.Module,
			Section:   u.Section,
			Category:  u.Category,
			Content:   u.Content,
			CreatedAt: u.CreatedAt,
		}
	}
	return res, nil
}

func (s *updateService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.CourseUpdateRepository().Delete(ctx, id)
}

const recentUpdatesLimit = 10

func (s *updateService) RecentUpdates(ctx context.Context, course, cycle, section string) ([]string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	updates, err := uow.CourseUpdateRepository().FindAll(ctx,
		specification.ByScope{Course: course, Cycle: cycle, Section: section},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: recentUpdatesLimit},
	)
	if err != nil {
		return nil, err
	}

	lines := make([]string, len(updates))
	for i, u := range updates {
		lines[i] = fmt.Sprintf("[%s] %s (%s)", u.Category, u.Content, u.CreatedAt.Format("2006-01-02"))
	}
	return lines, nil
}
