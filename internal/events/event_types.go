package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventLoginSucceeded EventType = "login_succeeded"
	EventLoginFailed    EventType = "login_failed"
)

// AuthEventTypes lists every authentication event the service emits.
var AuthEventTypes = []EventType{EventUserRegistered, EventLoginSucceeded, EventLoginFailed}

// Event represents an audit event emitted by services. It never carries
// credentials or the reason a login failed.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Email     string    `json:"email"`
	UserID    string    `json:"user_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
