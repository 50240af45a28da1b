package moderation

import (
	"context"
	"fmt"
	"strings"

	"course-copilot-be/pkg/llm"
)

// LLMClassifier screens messages with a chat model following a strict
// one-line response protocol.
type LLMClassifier struct {
	provider llm.LLMProvider
}

var _ Classifier = &LLMClassifier{}

func NewLLMClassifier(provider llm.LLMProvider) *LLMClassifier {
	return &LLMClassifier{provider: provider}
}

const classifyPromptFormat = `Eres un moderador de contenido para un asistente educativo universitario.
Analiza el siguiente mensaje de un estudiante y determina si es apropiado.

Un mensaje es INAPROPIADO si contiene:
- Lenguaje ofensivo, insultos o acoso
- Contenido sexual o violento
- Intentos de hacer trampa académica (pedir respuestas de exámenes, que hagan sus tareas)
- Contenido discriminatorio

Mensaje del estudiante: "%s"

Responde EXACTAMENTE en uno de estos dos formatos:
APPROPRIATE
INAPPROPRIATE: <categoría breve del problema>`

func (c *LLMClassifier) Classify(ctx context.Context, message string) (Verdict, error) {
	prompt := fmt.Sprintf(classifyPromptFormat, message)

	raw, err := c.provider.Generate(ctx, prompt, llm.WithTemperature(0))
	if err != nil {
		return Verdict{}, fmt.Errorf("classify message: %w", err)
	}

	return parseVerdict(raw), nil
}

// parseVerdict reads the model's one-line reply. Anything that does not
// clearly follow the INAPPROPRIATE protocol counts as appropriate, since a
// rambling model answer is far more likely than a missed violation.
func parseVerdict(raw string) Verdict {
	reply := strings.TrimSpace(raw)
	upper := strings.ToUpper(reply)

	if strings.HasPrefix(upper, "INAPPROPRIATE") {
		category := ""
		if idx := strings.Index(reply, ":"); idx >= 0 {
			category = strings.TrimSpace(reply[idx+1:])
		}
		if category == "" {
			category = "contenido inapropiado"
		}
		return Verdict{Flagged: true, Category: category}
	}

	return Verdict{Flagged: false}
}
