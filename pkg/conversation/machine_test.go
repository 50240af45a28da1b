package conversation

import (
	"context"
	"testing"
	"time"

	"course-copilot-be/pkg/i18n"
	"course-copilot-be/pkg/store"
)

type stubResolver struct {
	courses []string
}

func (r *stubResolver) Resolve(ctx context.Context, input string) (string, bool, error) {
	for _, c := range r.courses {
		if c == input {
			return c, true, nil
		}
	}
	return "", false, nil
}

func (r *stubResolver) List(ctx context.Context) ([]string, error) {
	return r.courses, nil
}

func newTestMachine() *Machine {
	return NewMachine(DefaultConfig(), &stubResolver{courses: []string{"Algoritmos", "Base de Datos"}})
}

func TestAdvanceFullFlow(t *testing.T) {
	m := newTestMachine()
	now := time.Now()
	session := store.NewSession("u1", now)
	ctx := context.Background()

	steps := []struct {
		input     string
		wantKey   string
		wantState string
	}{
		{"1", i18n.KeyWelcome, store.StateMainMenu},
		{"1", i18n.KeyCourseSelection, store.StateCourseSelect},
		{"Algoritmos", i18n.KeyCycleSelection, store.StateCycleSelect},
		{"20241", i18n.KeySectionSelection, store.StateSectionSelect},
		{"G1", i18n.KeyReadyForQuery, store.StateContentMenu},
	}

	for _, step := range steps {
		reply, err := m.Advance(ctx, session, step.input, now)
		if err != nil {
			t.Fatalf("Advance(%q) error: %v", step.input, err)
		}
		if reply.Key != step.wantKey {
			t.Errorf("Advance(%q) key = %q, want %q", step.input, reply.Key, step.wantKey)
		}
		if session.State != step.wantState {
			t.Errorf("Advance(%q) state = %q, want %q", step.input, session.State, step.wantState)
		}
	}

	if session.Language != store.LangSpanish {
		t.Errorf("language = %q, want %q", session.Language, store.LangSpanish)
	}
	if session.Course != "Algoritmos" || session.Cycle != "20241" || session.Section != "G1" {
		t.Errorf("scope = %+v, want Algoritmos/20241/G1", session.Scope())
	}

	// A question in the content menu triggers a search.
	reply, err := m.Advance(ctx, session, "¿Cuándo es el examen?", now)
	if err != nil {
		t.Fatalf("question error: %v", err)
	}
	if reply.Effect != EffectSearch {
		t.Errorf("effect = %v, want EffectSearch", reply.Effect)
	}
	if reply.Query != "¿Cuándo es el examen?" {
		t.Errorf("query = %q", reply.Query)
	}
}

func TestAdvanceCourseShortcutFromMenu(t *testing.T) {
	m := newTestMachine()
	now := time.Now()
	session := store.NewSession("u1", now)
	session.Language = store.LangSpanish
	session.State = store.StateMainMenu

	reply, err := m.Advance(context.Background(), session, "Base de Datos", now)
	if err != nil {
		t.Fatalf("Advance error: %v", err)
	}
	if reply.Key != i18n.KeyCycleSelection {
		t.Errorf("key = %q, want %q", reply.Key, i18n.KeyCycleSelection)
	}
	if session.Course != "Base de Datos" || session.State != store.StateCycleSelect {
		t.Errorf("session = %+v", session)
	}
}

func TestAdvanceMenuKeywordResetsButKeepsLanguage(t *testing.T) {
	m := newTestMachine()
	now := time.Now()
	session := &store.Session{
		UserID:      "u1",
		State:       store.StateContentMenu,
		Language:    store.LangQuechua,
		Course:      "Algoritmos",
		Cycle:       "20241",
		Section:     "G1",
		LastUpdated: now,
	}

	for _, input := range []string{"menu", "MENU", "/menu"} {
		s := *session
		reply, err := m.Advance(context.Background(), &s, input, now)
		if err != nil {
			t.Fatalf("Advance(%q) error: %v", input, err)
		}
		if reply.Key != i18n.KeyMainMenu {
			t.Errorf("Advance(%q) key = %q, want %q", input, reply.Key, i18n.KeyMainMenu)
		}
		if s.State != store.StateMainMenu {
			t.Errorf("Advance(%q) state = %q", input, s.State)
		}
		if s.Language != store.LangQuechua {
			t.Errorf("Advance(%q) dropped language", input)
		}
		if s.Course != "" || s.Cycle != "" || s.Section != "" {
			t.Errorf("Advance(%q) kept selection %+v", input, s.Scope())
		}
	}
}

func TestAdvanceMenuKeywordWithoutLanguage(t *testing.T) {
	m := newTestMachine()
	now := time.Now()
	session := store.NewSession("u1", now)

	reply, err := m.Advance(context.Background(), session, "menu", now)
	if err != nil {
		t.Fatalf("Advance error: %v", err)
	}
	if reply.Key != i18n.KeyLanguagePrompt {
		t.Errorf("key = %q, want %q", reply.Key, i18n.KeyLanguagePrompt)
	}
	if session.State != store.StateLangSelect {
		t.Errorf("state = %q, want %q", session.State, store.StateLangSelect)
	}
}

func TestAdvanceInvalidInputLeavesSessionUntouched(t *testing.T) {
	m := newTestMachine()
	now := time.Now()
	session := &store.Session{
		UserID:      "u1",
		State:       store.StateCycleSelect,
		Language:    store.LangSpanish,
		Course:      "Algoritmos",
		LastUpdated: now,
	}
	before := *session

	_, err := m.Advance(context.Background(), session, "not-a-cycle", now)
	invalid, ok := err.(*InvalidTransitionError)
	if !ok {
		t.Fatalf("err = %v, want *InvalidTransitionError", err)
	}
	if invalid.GuidanceKey != i18n.KeyInvalidCycle {
		t.Errorf("guidance = %q, want %q", invalid.GuidanceKey, i18n.KeyInvalidCycle)
	}
	if *session != before {
		t.Errorf("session mutated on invalid input: %+v", session)
	}
}

func TestAdvanceIdleSessionRestarts(t *testing.T) {
	m := newTestMachine()
	start := time.Now()
	session := &store.Session{
		UserID:      "u1",
		State:       store.StateContentMenu,
		Language:    store.LangSpanish,
		Course:      "Algoritmos",
		Cycle:       "20241",
		Section:     "G1",
		LastUpdated: start,
	}

	later := start.Add(31 * time.Minute)
	reply, err := m.Advance(context.Background(), session, "1", later)
	if err != nil {
		t.Fatalf("Advance error: %v", err)
	}
	// Input evaluated under the initial state: "1" picks Spanish again.
	if reply.Key != i18n.KeyWelcome {
		t.Errorf("key = %q, want %q", reply.Key, i18n.KeyWelcome)
	}
	if session.Course != "" || session.Cycle != "" || session.Section != "" {
		t.Errorf("stale selection survived idle reset: %+v", session.Scope())
	}
}

func TestAdvanceLanguageTokens(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1", store.LangSpanish},
		{"es", store.LangSpanish},
		{"Español", store.LangSpanish},
		{"2", store.LangQuechua},
		{"qu", store.LangQuechua},
		{"Quechua", store.LangQuechua},
	}

	m := newTestMachine()
	now := time.Now()
	for _, tt := range tests {
		session := store.NewSession("u1", now)
		if _, err := m.Advance(context.Background(), session, tt.input, now); err != nil {
			t.Errorf("Advance(%q) error: %v", tt.input, err)
			continue
		}
		if session.Language != tt.want {
			t.Errorf("Advance(%q) language = %q, want %q", tt.input, session.Language, tt.want)
		}
	}
}

func TestAdvanceDocsListing(t *testing.T) {
	m := newTestMachine()
	now := time.Now()
	session := &store.Session{
		UserID:      "u1",
		State:       store.StateContentMenu,
		Language:    store.LangSpanish,
		Course:      "Algoritmos",
		Cycle:       "20241",
		Section:     "G1",
		LastUpdated: now,
	}

	reply, err := m.Advance(context.Background(), session, "docs", now)
	if err != nil {
		t.Fatalf("Advance error: %v", err)
	}
	if reply.Effect != EffectListDocuments {
		t.Errorf("effect = %v, want EffectListDocuments", reply.Effect)
	}
}

func TestValidCycle(t *testing.T) {
	tests := []struct {
		cycle string
		want  bool
	}{
		{"20241", true},
		{"20242", true},
		{"20001", true},
		{"21002", true},
		{"20243", false},
		{"2024", false},
		{"202411", false},
		{"19991", false},
		{"21011", false},
		{"abcd1", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidCycle(tt.cycle); got != tt.want {
			t.Errorf("ValidCycle(%q) = %v, want %v", tt.cycle, got, tt.want)
		}
	}
}
