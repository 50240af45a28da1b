package dialog

import (
	"context"
	"fmt"
	"strings"

	"course-copilot-be/pkg/llm"
)

// LLMAnswerer composes the final answer from retrieved snippets and recent
// course updates, in the student's language.
type LLMAnswerer struct {
	provider llm.LLMProvider
}

func NewLLMAnswerer(provider llm.LLMProvider) *LLMAnswerer {
	return &LLMAnswerer{provider: provider}
}

const answerPromptFormat = `Actúa como un asistente de curso universitario. Tu tarea es responder la consulta del alumno usando la información proporcionada.

CONTEXTO:
%s

CONSULTA DEL ALUMNO: "%s"

INSTRUCCIONES PARA RESPONDER:
1. Prioriza la información de los resultados de búsqueda semántica
2. Si la consulta es sobre exámenes o evaluaciones:
   - Busca en la sección "EVALUACIÓN" y organiza la información cronológicamente
   - Incluye fechas, formato, materiales permitidos e instrucciones
3. Para otros temas:
   - Usa la información más relevante encontrada por la búsqueda semántica
   - Complementa con información adicional si es necesario
4. Formato:
   - Sé conciso y directo
   - Usa viñetas para cada punto
   - Cita las fuentes
   - Resalta fechas importantes

RESPONDE AHORA en %s. Traduce incluso la información que has encontrado:`

func (a *LLMAnswerer) Answer(ctx context.Context, language, query string, snippets, updates []string) (string, error) {
	var sb strings.Builder

	if len(updates) > 0 {
		sb.WriteString("ANUNCIOS RECIENTES DEL CURSO:\n")
		for _, u := range updates {
			sb.WriteString("- " + u + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("RESULTADOS DE BÚSQUEDA SEMÁNTICA:\n")
	for i, s := range snippets {
		sb.WriteString(fmt.Sprintf("[Fuente %d]\n%s\n\n", i+1, s))
	}

	langName := "español"
	if language == "qu" {
		langName = "quechua"
	}

	prompt := fmt.Sprintf(answerPromptFormat, sb.String(), query, langName)
	answer, err := a.provider.Generate(ctx, prompt, llm.WithMaxTokens(800))
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return strings.TrimSpace(answer), nil
}
