// Package dialog drives one full turn of the assistant: moderation first,
// then the conversation state machine, then whatever retrieval or listing
// work the new state requires, and finally rendering in the student's
// language.
package dialog

import (
	"context"
	"errors"
	"strings"
	"time"

	"course-copilot-be/internal/pkg/logger"
	"course-copilot-be/pkg/conversation"
	"course-copilot-be/pkg/events"
	"course-copilot-be/pkg/i18n"
	"course-copilot-be/pkg/moderation"
	"course-copilot-be/pkg/retrieval"
	"course-copilot-be/pkg/store"
)

// Searcher answers a scoped question with scored chunks.
type Searcher interface {
	Query(ctx context.Context, scope retrieval.Scope, query string) ([]retrieval.Result, error)
}

// DocumentLister names the indexed documents within a scope.
type DocumentLister interface {
	ListDocuments(ctx context.Context, scope retrieval.Scope) ([]string, error)
}

// UpdatesLister returns recent course announcements to enrich answers.
type UpdatesLister interface {
	RecentUpdates(ctx context.Context, course, cycle, section string) ([]string, error)
}

// AnswerGenerator turns snippets and updates into a final reply.
type AnswerGenerator interface {
	Answer(ctx context.Context, language, query string, snippets, updates []string) (string, error)
}

// EventPublisher pushes domain events onto the bus. Optional; a nil
// publisher silently drops events.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// FlagReporter notifies staff about an inappropriate message. Optional.
type FlagReporter interface {
	ReportFlagged(ctx context.Context, userID, message, category string) error
}

type Orchestrator struct {
	sessions  store.SessionStore
	locks     *conversation.KeyedMutex
	machine   *conversation.Machine
	courses   conversation.CourseResolver
	gate      *moderation.Gate
	searcher  Searcher
	documents DocumentLister
	updates   UpdatesLister
	answerer  AnswerGenerator
	publisher EventPublisher
	reporter  FlagReporter
	log       logger.ILogger
	now       func() time.Time
}

type OrchestratorDeps struct {
	Sessions  store.SessionStore
	Machine   *conversation.Machine
	Courses   conversation.CourseResolver
	Gate      *moderation.Gate
	Searcher  Searcher
	Documents DocumentLister
	Updates   UpdatesLister
	Answerer  AnswerGenerator
	Publisher EventPublisher
	Reporter  FlagReporter
	Logger    logger.ILogger
	Now       func() time.Time
}

func NewOrchestrator(deps OrchestratorDeps) *Orchestrator {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Orchestrator{
		sessions:  deps.Sessions,
		locks:     conversation.NewKeyedMutex(),
		machine:   deps.Machine,
		courses:   deps.Courses,
		gate:      deps.Gate,
		searcher:  deps.Searcher,
		documents: deps.Documents,
		updates:   deps.Updates,
		answerer:  deps.Answerer,
		publisher: deps.Publisher,
		reporter:  deps.Reporter,
		log:       deps.Logger,
		now:       now,
	}
}

// HandleMessage processes one inbound message and returns the rendered
// reply. Turns for the same user are serialized; distinct users proceed in
// parallel. Internal failures degrade to a generic error reply in the
// session's language rather than surfacing to the transport.
func (o *Orchestrator) HandleMessage(ctx context.Context, userID, text string) (string, error) {
	o.locks.Lock(userID)
	defer o.locks.Unlock(userID)

	now := o.now()

	session, found, err := o.sessions.Get(ctx, userID)
	if err != nil {
		o.log.Error("Dialog", "Failed to load session", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return i18n.Render(i18n.KeyErrorProcessing, "", nil), nil
	}
	if !found {
		session = store.NewSession(userID, now)
	}
	if err := session.Validate(); err != nil {
		o.log.Warn("Dialog", "Corrupted session, restarting conversation", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		session.ResetToInitial(now)
		o.publish(ctx, events.NewSessionReset(userID, "corrupted"))
	} else if found && o.machine.IdleExpired(session, now) {
		// Advance performs the actual reset; the event is emitted here so
		// the machine stays free of bus concerns.
		o.publish(ctx, events.NewSessionReset(userID, "idle"))
	}

	// The menu escape bypasses moderation: a classifier false positive on
	// the keyword must never trap the user. Everything else is screened
	// before any state transition so a flagged message cannot advance the
	// conversation.
	if !o.machine.IsMenuKeyword(text) {
		verdict := o.gate.Screen(ctx, text)
		if verdict.Flagged {
			return o.handleFlagged(ctx, session, text, verdict), nil
		}
		if verdict.FailedOpen {
			o.publish(ctx, events.NewModerationBypass(userID))
		}
	}

	reply, err := o.machine.Advance(ctx, session, text, now)
	if err != nil {
		var invalid *conversation.InvalidTransitionError
		if errors.As(err, &invalid) {
			// Session untouched; just repeat the state's guidance.
			return i18n.Render(invalid.GuidanceKey, session.Language, nil), nil
		}
		o.log.Error("Dialog", "State machine failure", map[string]interface{}{
			"user_id": userID,
			"state":   session.State,
			"error":   err.Error(),
		})
		return i18n.Render(i18n.KeyErrorProcessing, session.Language, nil), nil
	}

	rendered := o.executeReply(ctx, session, reply)

	if err := o.sessions.Save(ctx, session); err != nil {
		o.log.Error("Dialog", "Failed to persist session", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
	return rendered, nil
}

func (o *Orchestrator) handleFlagged(ctx context.Context, session *store.Session, text string, verdict moderation.Verdict) string {
	o.log.Warn("Dialog", "Message flagged by moderation", map[string]interface{}{
		"user_id":  session.UserID,
		"category": verdict.Category,
	})
	o.publish(ctx, events.NewMessageFlagged(session.UserID, verdict.Category))
	if o.reporter != nil {
		if err := o.reporter.ReportFlagged(ctx, session.UserID, text, verdict.Category); err != nil {
			o.log.Error("Dialog", "Failed to report flagged message", map[string]interface{}{
				"user_id": session.UserID,
				"error":   err.Error(),
			})
		}
	}
	return i18n.Render(i18n.KeyFlaggedWarning, session.Language, map[string]string{
		"category": verdict.Category,
	})
}

// executeReply runs the effect a transition asked for and renders the final
// text. Effect failures fall back to the generic error message without
// undoing the transition.
func (o *Orchestrator) executeReply(ctx context.Context, session *store.Session, reply conversation.Reply) string {
	params := reply.Params
	if params == nil {
		params = map[string]string{}
	}

	switch reply.Effect {
	case conversation.EffectSearch:
		return o.answerQuery(ctx, session, reply.Query)
	case conversation.EffectListDocuments:
		return o.listDocuments(ctx, session)
	}

	// The course menu needs the catalog inlined.
	if reply.Key == i18n.KeyCourseSelection {
		courses, err := o.courses.List(ctx)
		if err != nil {
			o.log.Error("Dialog", "Failed to list courses", map[string]interface{}{
				"error": err.Error(),
			})
			return i18n.Render(i18n.KeyErrorProcessing, session.Language, nil)
		}
		params["courses"] = "• " + strings.Join(courses, "\n• ")
	}

	return i18n.Render(reply.Key, session.Language, params)
}

func (o *Orchestrator) answerQuery(ctx context.Context, session *store.Session, query string) string {
	scope := retrieval.Scope{
		Course:  session.Course,
		Cycle:   session.Cycle,
		Section: session.Section,
	}

	results, err := o.searcher.Query(ctx, scope, query)
	if err != nil {
		o.log.Error("Dialog", "Retrieval failed", map[string]interface{}{
			"user_id": session.UserID,
			"error":   err.Error(),
		})
		return i18n.Render(i18n.KeyErrorProcessing, session.Language, nil)
	}
	if len(results) == 0 {
		return i18n.Render(i18n.KeyNoContent, session.Language, map[string]string{
			"course":  session.Course,
			"cycle":   session.Cycle,
			"section": session.Section,
		})
	}

	snippets := make([]string, len(results))
	for i, r := range results {
		snippets[i] = r.Content
	}

	var updates []string
	if o.updates != nil {
		updates, err = o.updates.RecentUpdates(ctx, session.Course, session.Cycle, session.Section)
		if err != nil {
			// Announcements are garnish; answer from documents alone.
			o.log.Warn("Dialog", "Failed to fetch course updates", map[string]interface{}{
				"error": err.Error(),
			})
			updates = nil
		}
	}

	answer, err := o.answerer.Answer(ctx, session.Language, query, snippets, updates)
	if err != nil {
		o.log.Error("Dialog", "Answer generation failed", map[string]interface{}{
			"user_id": session.UserID,
			"error":   err.Error(),
		})
		return i18n.Render(i18n.KeyErrorProcessing, session.Language, nil)
	}
	return i18n.Render(i18n.KeySearchAnswer, session.Language, map[string]string{"answer": answer})
}

func (o *Orchestrator) listDocuments(ctx context.Context, session *store.Session) string {
	scope := retrieval.Scope{
		Course:  session.Course,
		Cycle:   session.Cycle,
		Section: session.Section,
	}

	names, err := o.documents.ListDocuments(ctx, scope)
	if err != nil {
		o.log.Error("Dialog", "Failed to list documents", map[string]interface{}{
			"user_id": session.UserID,
			"error":   err.Error(),
		})
		return i18n.Render(i18n.KeyErrorProcessing, session.Language, nil)
	}
	if len(names) == 0 {
		return i18n.Render(i18n.KeyNoDocuments, session.Language, nil)
	}
	return i18n.Render(i18n.KeyDocumentsList, session.Language, map[string]string{
		"documents": "• " + strings.Join(names, "\n• "),
	})
}

func (o *Orchestrator) publish(ctx context.Context, event events.Event) {
	if o.publisher == nil {
		return
	}
	if err := o.publisher.Publish(ctx, event); err != nil {
		o.log.Warn("Dialog", "Failed to publish event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}
