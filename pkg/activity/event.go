// Package activity provides a small audit trail for admin mutations. Events
// flow through registered hooks; sinks (logging, go-users activity records)
// attach as hooks.
package activity

import (
	"strings"
	"time"
)

// DefaultChannel is applied to events that do not name one.
const DefaultChannel = "friendboard"

// Event is a single audit entry describing who did what to which object.
type Event struct {
	Verb       string
	ActorID    string
	ObjectType string
	ObjectID   string
	FriendID   string
	Channel    string
	Metadata   map[string]any
	OccurredAt time.Time
}

// normalize trims identifying fields and fills defaults. Returns false when
// the event is too incomplete to record.
func (e *Event) normalize() bool {
	e.Verb = strings.TrimSpace(e.Verb)
	e.ObjectType = strings.TrimSpace(e.ObjectType)
	e.ObjectID = strings.TrimSpace(e.ObjectID)
	if e.Verb == "" || e.ObjectType == "" {
		return false
	}
	if e.Channel == "" {
		e.Channel = DefaultChannel
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	return true
}
