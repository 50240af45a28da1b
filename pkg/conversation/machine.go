package conversation

import (
	"context"
	"strconv"
	"strings"
	"time"

	"course-copilot-be/pkg/i18n"
	"course-copilot-be/pkg/store"
)

// Effect tells the orchestrator what follow-up work the new state needs.
type Effect int

const (
	EffectNone Effect = iota
	// EffectSearch means Reply.Query must be answered from the retrieval
	// index scoped to the session's selection.
	EffectSearch
	// EffectListDocuments means the scope's document list must be rendered.
	EffectListDocuments
)

// Reply is the outbound response template produced by a transition. The
// orchestrator renders Key through the translation tables and executes the
// effect before sending.
type Reply struct {
	Key    string
	Params map[string]string
	Effect Effect
	Query  string
}

// CourseResolver maps free-text input to a known course name. Implementations
// may be fuzzy (LLM-assisted); tests use deterministic stand-ins.
type CourseResolver interface {
	Resolve(ctx context.Context, input string) (course string, ok bool, err error)
	List(ctx context.Context) ([]string, error)
}

// Config holds the operational parameters of the state machine.
type Config struct {
	IdleTimeout time.Duration
	MenuKeyword string
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		IdleTimeout: 30 * time.Minute,
		MenuKeyword: "menu",
	}
}

// Machine validates every inbound token against the legal transitions for
// the session's current state and mutates the session accordingly. It holds
// no per-user state itself; all state lives in the Session.
type Machine struct {
	cfg      Config
	resolver CourseResolver
}

func NewMachine(cfg Config, resolver CourseResolver) *Machine {
	if cfg.MenuKeyword == "" {
		cfg.MenuKeyword = DefaultConfig().MenuKeyword
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultConfig().IdleTimeout
	}
	return &Machine{cfg: cfg, resolver: resolver}
}

// Advance evaluates input against the session's current state. On a legal
// transition the session is mutated and LastUpdated refreshed. On an
// unrecognized input the session is left untouched and ErrInvalidTransition
// is returned wrapped with the state's guidance template.
func (m *Machine) Advance(ctx context.Context, session *store.Session, input string, now time.Time) (Reply, error) {
	token := strings.TrimSpace(input)

	// Idle sessions restart from scratch; the current input is then
	// evaluated under the initial state's rules.
	if m.IdleExpired(session, now) {
		session.ResetToInitial(now)
	}

	if m.IsMenuKeyword(token) {
		if session.Language == "" {
			// No language yet: the menu keyword has nowhere to go, keep
			// prompting for language.
			session.State = store.StateLangSelect
			session.LastUpdated = now
			return Reply{Key: i18n.KeyLanguagePrompt}, nil
		}
		session.ResetToMenu(now)
		return Reply{Key: i18n.KeyMainMenu}, nil
	}

	switch session.State {
	case store.StateLangSelect:
		return m.advanceLangSelect(session, token, now)
	case store.StateMainMenu:
		return m.advanceMainMenu(ctx, session, token, now)
	case store.StateCourseSelect:
		return m.advanceCourseSelect(ctx, session, token, now)
	case store.StateCycleSelect:
		return m.advanceCycleSelect(session, token, now)
	case store.StateSectionSelect:
		return m.advanceSectionSelect(session, token, now)
	case store.StateContentMenu:
		return m.advanceContentMenu(session, token, now)
	default:
		return Reply{}, &InvalidTransitionError{State: session.State, Input: token, GuidanceKey: i18n.KeyInvalidOption}
	}
}

// IsMenuKeyword reports whether the input is the global menu escape. The
// orchestrator checks it before moderation so the escape hatch survives a
// classifier false positive.
func (m *Machine) IsMenuKeyword(input string) bool {
	t := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(input), "/"))
	return t == m.cfg.MenuKeyword
}

// IdleExpired reports whether the session sat past the idle window.
func (m *Machine) IdleExpired(session *store.Session, now time.Time) bool {
	return !session.LastUpdated.IsZero() && now.Sub(session.LastUpdated) > m.cfg.IdleTimeout
}

func (m *Machine) advanceLangSelect(session *store.Session, token string, now time.Time) (Reply, error) {
	switch strings.ToLower(token) {
	case "1", "es", "español", "espanol", "spanish":
		session.Language = store.LangSpanish
	case "2", "qu", "quechua", "qichwa":
		session.Language = store.LangQuechua
	default:
		return Reply{}, &InvalidTransitionError{State: session.State, Input: token, GuidanceKey: i18n.KeyInvalidLanguage}
	}
	session.State = store.StateMainMenu
	session.LastUpdated = now
	return Reply{Key: i18n.KeyWelcome}, nil
}

func (m *Machine) advanceMainMenu(ctx context.Context, session *store.Session, token string, now time.Time) (Reply, error) {
	switch strings.ToLower(token) {
	case "1", "cursos", "courses", "yachaykuna":
		session.State = store.StateCourseSelect
		session.LastUpdated = now
		return Reply{Key: i18n.KeyCourseSelection}, nil
	}
	// A course name typed directly from the menu is accepted as a shortcut.
	if m.resolver != nil {
		if course, ok, err := m.resolver.Resolve(ctx, token); err == nil && ok {
			session.Course = course
			session.State = store.StateCycleSelect
			session.LastUpdated = now
			return Reply{Key: i18n.KeyCycleSelection, Params: map[string]string{"course": course}}, nil
		}
	}
	return Reply{}, &InvalidTransitionError{State: session.State, Input: token, GuidanceKey: i18n.KeyInvalidOption}
}

func (m *Machine) advanceCourseSelect(ctx context.Context, session *store.Session, token string, now time.Time) (Reply, error) {
	if token == "" || m.resolver == nil {
		return Reply{}, &InvalidTransitionError{State: session.State, Input: token, GuidanceKey: i18n.KeyInvalidCourse}
	}
	course, ok, err := m.resolver.Resolve(ctx, token)
	if err != nil || !ok {
		return Reply{}, &InvalidTransitionError{State: session.State, Input: token, GuidanceKey: i18n.KeyInvalidCourse}
	}
	session.Course = course
	session.State = store.StateCycleSelect
	session.LastUpdated = now
	return Reply{Key: i18n.KeyCycleSelection, Params: map[string]string{"course": course}}, nil
}

func (m *Machine) advanceCycleSelect(session *store.Session, token string, now time.Time) (Reply, error) {
	if !ValidCycle(token) {
		return Reply{}, &InvalidTransitionError{State: session.State, Input: token, GuidanceKey: i18n.KeyInvalidCycle}
	}
	session.Cycle = token
	session.State = store.StateSectionSelect
	session.LastUpdated = now
	return Reply{Key: i18n.KeySectionSelection}, nil
}

func (m *Machine) advanceSectionSelect(session *store.Session, token string, now time.Time) (Reply, error) {
	if token == "" {
		return Reply{}, &InvalidTransitionError{State: session.State, Input: token, GuidanceKey: i18n.KeyInvalidSection}
	}
	session.Section = token
	session.State = store.StateContentMenu
	session.PendingAction = store.PendingSearchQuery
	session.LastUpdated = now
	return Reply{Key: i18n.KeyReadyForQuery}, nil
}

func (m *Machine) advanceContentMenu(session *store.Session, token string, now time.Time) (Reply, error) {
	switch strings.ToLower(token) {
	case "docs", "documentos", "documents":
		session.LastUpdated = now
		return Reply{Key: i18n.KeyDocumentsList, Effect: EffectListDocuments}, nil
	}
	if token == "" {
		return Reply{}, &InvalidTransitionError{State: session.State, Input: token, GuidanceKey: i18n.KeyInvalidOption}
	}
	// Any other text is a question for the retrieval pipeline.
	session.PendingAction = store.PendingSearchQuery
	session.LastUpdated = now
	return Reply{Key: i18n.KeySearchAnswer, Effect: EffectSearch, Query: token}, nil
}

// ValidCycle reports whether a cycle token has the YYYY1 or YYYY2 shape
// within the supported year range.
func ValidCycle(cycle string) bool {
	if len(cycle) != 5 {
		return false
	}
	year, err := strconv.Atoi(cycle[:4])
	if err != nil {
		return false
	}
	sem := cycle[4]
	return year >= 2000 && year <= 2100 && (sem == '1' || sem == '2')
}
