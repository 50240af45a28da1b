package dialog

import (
	"context"
	"errors"
	"testing"
	"time"

	"course-copilot-be/pkg/conversation"
	"course-copilot-be/pkg/events"
	"course-copilot-be/pkg/i18n"
	"course-copilot-be/pkg/moderation"
	"course-copilot-be/pkg/retrieval"
	"course-copilot-be/pkg/store"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeSessions struct {
	sessions map[string]*store.Session
	saves    int
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[string]*store.Session)}
}

func (f *fakeSessions) Get(ctx context.Context, userID string) (*store.Session, bool, error) {
	s, ok := f.sessions[userID]
	if !ok {
		return nil, false, nil
	}
	copied := *s
	return &copied, true, nil
}

func (f *fakeSessions) Save(ctx context.Context, session *store.Session) error {
	copied := *session
	f.sessions[session.UserID] = &copied
	f.saves++
	return nil
}

type fakeResolver struct {
	courses []string
}

func (r *fakeResolver) Resolve(ctx context.Context, input string) (string, bool, error) {
	for _, c := range r.courses {
		if c == input {
			return c, true, nil
		}
	}
	return "", false, nil
}

func (r *fakeResolver) List(ctx context.Context) ([]string, error) {
	return r.courses, nil
}

type fakeClassifier struct {
	verdict moderation.Verdict
	err     error
	calls   int
}

func (f *fakeClassifier) Classify(ctx context.Context, message string) (moderation.Verdict, error) {
	f.calls++
	if f.err != nil {
		return moderation.Verdict{}, f.err
	}
	return f.verdict, nil
}

type fakeSearcher struct {
	results []retrieval.Result
	err     error
	scope   retrieval.Scope
}

func (f *fakeSearcher) Query(ctx context.Context, scope retrieval.Scope, query string) ([]retrieval.Result, error) {
	f.scope = scope
	return f.results, f.err
}

type fakeDocuments struct {
	names []string
}

func (f *fakeDocuments) ListDocuments(ctx context.Context, scope retrieval.Scope) ([]string, error) {
	return f.names, nil
}

type fakeUpdates struct {
	lines []string
}

func (f *fakeUpdates) RecentUpdates(ctx context.Context, course, cycle, section string) ([]string, error) {
	return f.lines, nil
}

type fakeAnswerer struct {
	answer   string
	err      error
	snippets []string
	updates  []string
}

func (f *fakeAnswerer) Answer(ctx context.Context, language, query string, snippets, updates []string) (string, error) {
	f.snippets = snippets
	f.updates = updates
	return f.answer, f.err
}

type fakePublisher struct {
	types []string
}

func (f *fakePublisher) Publish(ctx context.Context, event events.Event) error {
	f.types = append(f.types, event.EventType())
	return nil
}

type fakeReporter struct {
	userID   string
	message  string
	category string
	calls    int
}

func (f *fakeReporter) ReportFlagged(ctx context.Context, userID, message, category string) error {
	f.calls++
	f.userID = userID
	f.message = message
	f.category = category
	return nil
}

type orchestratorFixture struct {
	orchestrator *Orchestrator
	sessions     *fakeSessions
	classifier   *fakeClassifier
	searcher     *fakeSearcher
	answerer     *fakeAnswerer
	publisher    *fakePublisher
	reporter     *fakeReporter
}

func newFixture() *orchestratorFixture {
	sessions := newFakeSessions()
	classifier := &fakeClassifier{}
	searcher := &fakeSearcher{}
	answerer := &fakeAnswerer{answer: "la respuesta"}
	publisher := &fakePublisher{}
	reporter := &fakeReporter{}
	resolver := &fakeResolver{courses: []string{"Algoritmos"}}

	orchestrator := NewOrchestrator(OrchestratorDeps{
		Sessions:  sessions,
		Machine:   conversation.NewMachine(conversation.DefaultConfig(), resolver),
		Courses:   resolver,
		Gate:      moderation.NewGate(classifier, time.Second, nopLogger{}),
		Searcher:  searcher,
		Documents: &fakeDocuments{names: []string{"silabo.pdf"}},
		Updates:   &fakeUpdates{lines: []string{"[GENERAL] aviso (2024-04-01)"}},
		Answerer:  answerer,
		Publisher: publisher,
		Reporter:  reporter,
		Logger:    nopLogger{},
	})

	return &orchestratorFixture{
		orchestrator: orchestrator,
		sessions:     sessions,
		classifier:   classifier,
		searcher:     searcher,
		answerer:     answerer,
		publisher:    publisher,
		reporter:     reporter,
	}
}

func seedSession(f *orchestratorFixture, userID string) {
	f.sessions.sessions[userID] = &store.Session{
		UserID:      userID,
		State:       store.StateContentMenu,
		Language:    store.LangSpanish,
		Course:      "Algoritmos",
		Cycle:       "20241",
		Section:     "G1",
		LastUpdated: time.Now(),
	}
}

func TestHandleMessageFirstContactInvalidInput(t *testing.T) {
	f := newFixture()

	reply, err := f.orchestrator.HandleMessage(context.Background(), "u1", "hola")
	if err != nil {
		t.Fatalf("HandleMessage error: %v", err)
	}
	want := i18n.Render(i18n.KeyInvalidLanguage, "", nil)
	if reply != want {
		t.Errorf("reply = %q, want %q", reply, want)
	}
	if f.sessions.saves != 0 {
		t.Error("invalid transition must not persist the session")
	}
}

func TestHandleMessageLanguageSelection(t *testing.T) {
	f := newFixture()

	reply, err := f.orchestrator.HandleMessage(context.Background(), "u1", "1")
	if err != nil {
		t.Fatalf("HandleMessage error: %v", err)
	}
	want := i18n.Render(i18n.KeyWelcome, store.LangSpanish, nil)
	if reply != want {
		t.Errorf("reply = %q, want %q", reply, want)
	}
	saved := f.sessions.sessions["u1"]
	if saved == nil || saved.Language != store.LangSpanish || saved.State != store.StateMainMenu {
		t.Errorf("saved session = %+v", saved)
	}
}

func TestHandleMessageFlaggedShortCircuits(t *testing.T) {
	f := newFixture()
	seedSession(f, "u1")
	f.classifier.verdict = moderation.Verdict{Flagged: true, Category: "acoso"}

	reply, err := f.orchestrator.HandleMessage(context.Background(), "u1", "mensaje ofensivo")
	if err != nil {
		t.Fatalf("HandleMessage error: %v", err)
	}

	want := i18n.Render(i18n.KeyFlaggedWarning, store.LangSpanish, map[string]string{"category": "acoso"})
	if reply != want {
		t.Errorf("reply = %q, want %q", reply, want)
	}
	if f.reporter.calls != 1 || f.reporter.category != "acoso" || f.reporter.message != "mensaje ofensivo" {
		t.Errorf("reporter = %+v", f.reporter)
	}
	if len(f.publisher.types) != 1 || f.publisher.types[0] != events.TypeMessageFlagged {
		t.Errorf("published = %v", f.publisher.types)
	}
	if f.sessions.saves != 0 {
		t.Error("flagged message must not advance or persist the session")
	}
	if f.sessions.sessions["u1"].State != store.StateContentMenu {
		t.Errorf("session state changed to %q", f.sessions.sessions["u1"].State)
	}
}

func TestHandleMessageSearchFlow(t *testing.T) {
	f := newFixture()
	seedSession(f, "u1")
	f.searcher.results = []retrieval.Result{{Content: "el examen es el viernes", Score: 0.9}}

	reply, err := f.orchestrator.HandleMessage(context.Background(), "u1", "¿cuándo es el examen?")
	if err != nil {
		t.Fatalf("HandleMessage error: %v", err)
	}

	if reply != "la respuesta" {
		t.Errorf("reply = %q", reply)
	}
	if f.searcher.scope != (retrieval.Scope{Course: "Algoritmos", Cycle: "20241", Section: "G1"}) {
		t.Errorf("scope = %+v", f.searcher.scope)
	}
	if len(f.answerer.snippets) != 1 || f.answerer.snippets[0] != "el examen es el viernes" {
		t.Errorf("snippets = %v", f.answerer.snippets)
	}
	if len(f.answerer.updates) != 1 {
		t.Errorf("updates = %v", f.answerer.updates)
	}
	if f.sessions.saves != 1 {
		t.Errorf("saves = %d, want 1", f.sessions.saves)
	}
}

func TestHandleMessageNoContent(t *testing.T) {
	f := newFixture()
	seedSession(f, "u1")
	f.searcher.results = nil

	reply, err := f.orchestrator.HandleMessage(context.Background(), "u1", "¿cuándo es el examen?")
	if err != nil {
		t.Fatalf("HandleMessage error: %v", err)
	}

	want := i18n.Render(i18n.KeyNoContent, store.LangSpanish, map[string]string{
		"course":  "Algoritmos",
		"cycle":   "20241",
		"section": "G1",
	})
	if reply != want {
		t.Errorf("reply = %q, want %q", reply, want)
	}
}

func TestHandleMessageSearchFailureDegrades(t *testing.T) {
	f := newFixture()
	seedSession(f, "u1")
	f.searcher.err = errors.New("pgvector down")

	reply, err := f.orchestrator.HandleMessage(context.Background(), "u1", "¿cuándo es el examen?")
	if err != nil {
		t.Fatalf("HandleMessage must not surface internal errors, got %v", err)
	}
	want := i18n.Render(i18n.KeyErrorProcessing, store.LangSpanish, nil)
	if reply != want {
		t.Errorf("reply = %q, want %q", reply, want)
	}
}

func TestHandleMessageFailedOpenPublishesBypass(t *testing.T) {
	f := newFixture()
	seedSession(f, "u1")
	f.classifier.err = errors.New("model down")
	f.searcher.results = []retrieval.Result{{Content: "algo", Score: 0.9}}

	if _, err := f.orchestrator.HandleMessage(context.Background(), "u1", "pregunta"); err != nil {
		t.Fatalf("HandleMessage error: %v", err)
	}

	found := false
	for _, typ := range f.publisher.types {
		if typ == events.TypeModerationBypass {
			found = true
		}
	}
	if !found {
		t.Errorf("no MODERATION_BYPASS event published, got %v", f.publisher.types)
	}
	// Conversation still proceeds.
	if f.sessions.saves != 1 {
		t.Errorf("saves = %d, want 1", f.sessions.saves)
	}
}

func TestHandleMessageMenuKeywordBypassesModeration(t *testing.T) {
	f := newFixture()
	seedSession(f, "u1")
	// A classifier that flags everything must not trap the user: the menu
	// escape is never screened.
	f.classifier.verdict = moderation.Verdict{Flagged: true, Category: "acoso"}

	reply, err := f.orchestrator.HandleMessage(context.Background(), "u1", "menu")
	if err != nil {
		t.Fatalf("HandleMessage error: %v", err)
	}

	want := i18n.Render(i18n.KeyMainMenu, store.LangSpanish, nil)
	if reply != want {
		t.Errorf("reply = %q, want %q", reply, want)
	}
	if f.classifier.calls != 0 {
		t.Errorf("classifier called %d times for the menu keyword", f.classifier.calls)
	}
	if f.reporter.calls != 0 {
		t.Error("menu keyword must not be reported")
	}
	saved := f.sessions.sessions["u1"]
	if saved.State != store.StateMainMenu || saved.Language != store.LangSpanish {
		t.Errorf("saved session = %+v", saved)
	}
}

func TestHandleMessageCorruptedSessionPublishesReset(t *testing.T) {
	f := newFixture()
	f.sessions.sessions["u1"] = &store.Session{
		UserID:      "u1",
		State:       "LIMBO",
		LastUpdated: time.Now(),
	}

	reply, err := f.orchestrator.HandleMessage(context.Background(), "u1", "1")
	if err != nil {
		t.Fatalf("HandleMessage error: %v", err)
	}

	want := i18n.Render(i18n.KeyWelcome, store.LangSpanish, nil)
	if reply != want {
		t.Errorf("reply = %q, want %q", reply, want)
	}
	if len(f.publisher.types) == 0 || f.publisher.types[0] != events.TypeSessionReset {
		t.Errorf("published = %v, want SESSION_RESET first", f.publisher.types)
	}
}

func TestHandleMessageIdleSessionPublishesReset(t *testing.T) {
	f := newFixture()
	seedSession(f, "u1")
	f.sessions.sessions["u1"].LastUpdated = time.Now().Add(-31 * time.Minute)

	if _, err := f.orchestrator.HandleMessage(context.Background(), "u1", "1"); err != nil {
		t.Fatalf("HandleMessage error: %v", err)
	}

	found := false
	for _, typ := range f.publisher.types {
		if typ == events.TypeSessionReset {
			found = true
		}
	}
	if !found {
		t.Errorf("no SESSION_RESET event published, got %v", f.publisher.types)
	}
	saved := f.sessions.sessions["u1"]
	if saved.State != store.StateMainMenu || saved.Language != store.LangSpanish || saved.Course != "" {
		t.Errorf("saved session = %+v", saved)
	}
}

func TestHandleMessageDocumentListing(t *testing.T) {
	f := newFixture()
	seedSession(f, "u1")

	reply, err := f.orchestrator.HandleMessage(context.Background(), "u1", "docs")
	if err != nil {
		t.Fatalf("HandleMessage error: %v", err)
	}

	want := i18n.Render(i18n.KeyDocumentsList, store.LangSpanish, map[string]string{
		"documents": "• silabo.pdf",
	})
	if reply != want {
		t.Errorf("reply = %q, want %q", reply, want)
	}
}
