package events

import "time"

// Event codes emitted by the assistant. Subjects on the bus are
// "copilot.<code>".
const (
	TypeDocumentIndexed  = "DOCUMENT_INDEXED"
	TypeDocumentFailed   = "DOCUMENT_FAILED"
	TypeMessageFlagged   = "MESSAGE_FLAGGED"
	TypeUpdatePublished  = "UPDATE_PUBLISHED"
	TypeSessionReset     = "SESSION_RESET"
	TypeModerationBypass = "MODERATION_BYPASS"
)

// Event defines the contract for all system events.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

func NewDocumentIndexed(documentID string, chunkCount int) Event {
	return BaseEvent{
		Type: TypeDocumentIndexed,
		Data: map[string]interface{}{
			"document_id": documentID,
			"chunk_count": chunkCount,
		},
		OccurredAt: time.Now(),
	}
}

func NewDocumentFailed(documentID, reason string, attempts int) Event {
	return BaseEvent{
		Type: TypeDocumentFailed,
		Data: map[string]interface{}{
			"document_id": documentID,
			"reason":      reason,
			"attempts":    attempts,
		},
		OccurredAt: time.Now(),
	}
}

func NewMessageFlagged(userID, category string) Event {
	return BaseEvent{
		Type: TypeMessageFlagged,
		Data: map[string]interface{}{
			"user_id":  userID,
			"category": category,
		},
		OccurredAt: time.Now(),
	}
}

func NewUpdatePublished(updateID, course, category string) Event {
	return BaseEvent{
		Type: TypeUpdatePublished,
		Data: map[string]interface{}{
			"update_id": updateID,
			"course":    course,
			"category":  category,
		},
		OccurredAt: time.Now(),
	}
}

func NewSessionReset(userID, reason string) Event {
	return BaseEvent{
		Type: TypeSessionReset,
		Data: map[string]interface{}{
			"user_id": userID,
			"reason":  reason,
		},
		OccurredAt: time.Now(),
	}
}

func NewModerationBypass(userID string) Event {
	return BaseEvent{
		Type: TypeModerationBypass,
		Data: map[string]interface{}{
			"user_id": userID,
		},
		OccurredAt: time.Now(),
	}
}
