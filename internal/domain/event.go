package domain

// EventType represents the type of a conversation event.
type EventType string

const (
	EventTypeConversationCreated EventType = "conversation.created"
	EventTypeConversationRead    EventType = "conversation.read"
)

// Event is pushed to connected participants when a conversation changes.
type Event struct {
	Type         EventType     `json:"type"`
	EventID      string        `json:"event_id"`
	Ts           int64         `json:"ts"` // Unix milliseconds
	Conversation *Conversation `json:"conversation"`
}
