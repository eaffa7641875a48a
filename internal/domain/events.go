package domain

import (
	"context"
	"time"
)

type EventName string

const (
	EventRegistered    EventName = "registered"
	EventVerified      EventName = "verified"
	EventPasswordReset EventName = "password_reset"
)

type Event struct {
	Name       EventName
	User       *User
	OccurredAt time.Time
}

// EventPublisher delivers account lifecycle events to their listeners.
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}
