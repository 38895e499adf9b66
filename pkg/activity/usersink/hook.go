// Package usersink forwards friendboard audit events into a go-users
// activity log.
package usersink

import (
	"context"

	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"

	"github.com/goliatone/go-friendboard/pkg/activity"
)

// Sink is the minimal surface needed from a go-users activity logger.
type Sink interface {
	Log(ctx context.Context, record types.ActivityRecord) error
}

// Hook adapts activity events into go-users activity records. Events whose
// identifiers are not valid UUIDs are logged with zero ids rather than
// dropped, so the audit trail stays complete.
type Hook struct {
	Sink Sink
}

// Notify maps and forwards one event. A nil sink is a no-op.
func (h Hook) Notify(ctx context.Context, evt activity.Event) error {
	if h.Sink == nil {
		return nil
	}
	record := types.ActivityRecord{
		ActorID:    parseID(evt.ActorID),
		UserID:     parseID(evt.FriendID),
		Verb:       evt.Verb,
		ObjectType: evt.ObjectType,
		ObjectID:   evt.ObjectID,
		Channel:    evt.Channel,
		Data:       evt.Metadata,
		OccurredAt: evt.OccurredAt,
	}
	return h.Sink.Log(ctx, record)
}

func parseID(raw string) uuid.UUID {
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
