package domain

import "context"

// Message type names used to route notifications to handlers.
const (
	MessageEventCreated         = "event.created"
	MessageEventBlocked         = "event.blocked"
	MessageRegisterVerification = "user.register_verification"
)

// Message is an immutable domain notification describing one completed state
// transition. Produced exactly once per transition, after the state-changing
// write is durable, and consumed independently by zero or more handlers.
type Message interface {
	MessageType() string
}

// EventCreatedMessage announces a newly created event. It carries enough data
// for handlers to act without re-querying the event.
type EventCreatedMessage struct {
	EventID     string
	Title       string
	OwnerID     string
	CategoryIDs []string
}

func (EventCreatedMessage) MessageType() string { return MessageEventCreated }

// BlockedEventMessage announces that an event was blocked, with the ids of all
// visitors affected at the time of blocking.
type BlockedEventMessage struct {
	EventID string
	Title   string
	UserIDs []string
}

func (BlockedEventMessage) MessageType() string { return MessageEventBlocked }

// RegisterVerificationMessage announces a new registration that needs email
// verification. The verification token is minted by the handler.
type RegisterVerificationMessage struct {
	UserID string
	Email  string
	Name   string
}

func (RegisterVerificationMessage) MessageType() string { return MessageRegisterVerification }

// Publisher dispatches a message to its subscribed handlers. Publish returns
// once dispatch is initiated; handler completion, and handler failure, are
// invisible to the publisher.
type Publisher interface {
	Publish(ctx context.Context, msg Message)
}

// Handler consumes one message type. A handler owns its own failure domain: an
// error return is logged and dropped, never redelivered.
type Handler interface {
	Handle(ctx context.Context, msg Message) error
}
