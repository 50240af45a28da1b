// Package moderation screens user messages before they reach retrieval or
// answer generation. The gate fails open: a broken classifier must never
// take the assistant down with it.
package moderation

import (
	"context"
	"time"

	"course-copilot-be/internal/pkg/logger"
)

// Classifier decides whether a message is appropriate for a university
// course assistant.
type Classifier interface {
	Classify(ctx context.Context, message string) (Verdict, error)
}

type Gate struct {
	classifier Classifier
	timeout    time.Duration
	log        logger.ILogger
}

const defaultTimeout = 10 * time.Second

func NewGate(classifier Classifier, timeout time.Duration, log logger.ILogger) *Gate {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Gate{
		classifier: classifier,
		timeout:    timeout,
		log:        log,
	}
}

// Screen classifies a message within the gate's timeout. Classifier errors
// and timeouts are logged and the message is allowed through with
// FailedOpen set, so callers can still count unscreened traffic.
func (g *Gate) Screen(ctx context.Context, message string) Verdict {
	cctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	verdict, err := g.classifier.Classify(cctx, message)
	if err != nil {
		g.log.Warn("Moderation", "Classifier unavailable, allowing message through", map[string]interface{}{
			"error": err.Error(),
		})
		return Verdict{Flagged: false, FailedOpen: true}
	}
	return verdict
}
