package dialog

import (
	"context"
	"fmt"
	"strings"

	"course-copilot-be/internal/pkg/logger"
	"course-copilot-be/pkg/llm"
)

// CourseCatalog lists the course names students can pick from.
type CourseCatalog interface {
	ListCourses(ctx context.Context) ([]string, error)
}

// LLMCourseResolver matches free-text input against the catalog. Exact
// matches never touch the model; only ambiguous input pays for an LLM call.
type LLMCourseResolver struct {
	catalog  CourseCatalog
	provider llm.LLMProvider
	log      logger.ILogger
}

func NewLLMCourseResolver(catalog CourseCatalog, provider llm.LLMProvider, log logger.ILogger) *LLMCourseResolver {
	return &LLMCourseResolver{
		catalog:  catalog,
		provider: provider,
		log:      log,
	}
}

const resolvePromptFormat = `Actúa como un asistente que ayuda a identificar el curso más similar.

CURSOS DISPONIBLES:
%s

INPUT DEL USUARIO: "%s"

INSTRUCCIONES:
1. Analiza el input del usuario y compáralo con la lista de cursos
2. Considera variaciones en el nombre, abreviaturas comunes y errores típicos
3. Si encuentras una coincidencia razonable, devuelve el nombre exacto del curso
4. Si no hay coincidencia clara, responde "NO_MATCH"

RESPONDE SOLO CON EL NOMBRE EXACTO DEL CURSO O "NO_MATCH":`

// Resolve returns the catalog name matching the input, or ok=false when no
// course fits. Model failures degrade to no-match so the student just sees
// the retry prompt instead of an error.
func (r *LLMCourseResolver) Resolve(ctx context.Context, input string) (string, bool, error) {
	courses, err := r.catalog.ListCourses(ctx)
	if err != nil {
		return "", false, fmt.Errorf("list courses: %w", err)
	}
	if len(courses) == 0 {
		return "", false, nil
	}

	trimmed := strings.TrimSpace(input)
	for _, course := range courses {
		if strings.EqualFold(course, trimmed) {
			return course, true, nil
		}
	}

	prompt := fmt.Sprintf(resolvePromptFormat, "- "+strings.Join(courses, "\n- "), trimmed)
	raw, err := r.provider.Generate(ctx, prompt, llm.WithTemperature(0))
	if err != nil {
		r.log.Warn("CourseResolver", "LLM matching unavailable, treating as no match", map[string]interface{}{
			"error": err.Error(),
		})
		return "", false, nil
	}

	candidate := strings.TrimSpace(strings.Trim(raw, `"`))
	if strings.EqualFold(candidate, "NO_MATCH") {
		return "", false, nil
	}

	// Only accept names that really exist; models invent course titles.
	for _, course := range courses {
		if strings.EqualFold(course, candidate) {
			return course, true, nil
		}
	}
	return "", false, nil
}

// List exposes the catalog for menu rendering.
func (r *LLMCourseResolver) List(ctx context.Context) ([]string, error) {
	return r.catalog.ListCourses(ctx)
}
