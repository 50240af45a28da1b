package store

import (
	"context"
	"fmt"
	"time"
)

// Conversation states. A session always sits in exactly one of these.
const (
	StateLangSelect    = "LANG_SELECT"
	StateMainMenu      = "MAIN_MENU"
	StateCourseSelect  = "COURSE_SELECT"
	StateCycleSelect   = "CYCLE_SELECT"
	StateSectionSelect = "SECTION_SELECT"
	StateContentMenu   = "CONTENT_MENU"
)

// Pending actions describe what the next free-text message will be used for.
const (
	PendingNone        = ""
	PendingSearchQuery = "SEARCH_QUERY"
)

// Supported language codes.
const (
	LangSpanish = "es"
	LangQuechua = "qu"
)

// Session is the per-user conversational state. It is created on first
// contact and only ever reset, never deleted, so a user's last course
// selection survives in the store for quick re-entry.
type Session struct {
	UserID        string    `json:"user_id"`
	State         string    `json:"state"`
	Language      string    `json:"language"`
	Course        string    `json:"course"`
	Cycle         string    `json:"cycle"`
	Section       string    `json:"section"`
	PendingAction string    `json:"pending_action"`
	LastUpdated   time.Time `json:"last_updated"`
}

// NewSession creates the initial state for a first-contact user.
func NewSession(userID string, now time.Time) *Session {
	return &Session{
		UserID:      userID,
		State:       StateLangSelect,
		LastUpdated: now,
	}
}

// Scope is the (course, cycle, section) triple that partitions the
// retrieval index.
type Scope struct {
	Course  string
	Cycle   string
	Section string
}

// Scope returns the selection triple currently held by the session.
func (s *Session) Scope() Scope {
	return Scope{Course: s.Course, Cycle: s.Cycle, Section: s.Section}
}

// ResetToMenu clears the course selection but keeps the language. Used by
// the global menu keyword.
func (s *Session) ResetToMenu(now time.Time) {
	s.State = StateMainMenu
	s.Course = ""
	s.Cycle = ""
	s.Section = ""
	s.PendingAction = PendingNone
	s.LastUpdated = now
}

// ResetToInitial returns the session to the first-contact state, clearing
// the language as well. Used for idle expiry and corruption recovery.
func (s *Session) ResetToInitial(now time.Time) {
	s.State = StateLangSelect
	s.Language = ""
	s.Course = ""
	s.Cycle = ""
	s.Section = ""
	s.PendingAction = PendingNone
	s.LastUpdated = now
}

// Validate detects mutually inconsistent fields. A failure here means the
// session must be reset before it is used to build any response.
func (s *Session) Validate() error {
	if s.Cycle != "" && s.Course == "" {
		return fmt.Errorf("session %s: cycle set without course", s.UserID)
	}
	if s.Section != "" && (s.Course == "" || s.Cycle == "") {
		return fmt.Errorf("session %s: section set without course/cycle", s.UserID)
	}
	switch s.State {
	case StateLangSelect:
		// Nothing required yet.
	case StateMainMenu, StateCourseSelect:
		if s.Language == "" {
			return fmt.Errorf("session %s: state %s without language", s.UserID, s.State)
		}
	case StateCycleSelect:
		if s.Language == "" || s.Course == "" {
			return fmt.Errorf("session %s: state %s missing selections", s.UserID, s.State)
		}
	case StateSectionSelect:
		if s.Language == "" || s.Course == "" || s.Cycle == "" {
			return fmt.Errorf("session %s: state %s missing selections", s.UserID, s.State)
		}
	case StateContentMenu:
		if s.Language == "" || s.Course == "" || s.Cycle == "" || s.Section == "" {
			return fmt.Errorf("session %s: state %s missing selections", s.UserID, s.State)
		}
	default:
		return fmt.Errorf("session %s: unknown state %q", s.UserID, s.State)
	}
	return nil
}

// SessionStore abstracts where sessions live (in-process cache or Redis).
type SessionStore interface {
	Get(ctx context.Context, userID string) (*Session, bool, error)
	Save(ctx context.Context, session *Session) error
}
