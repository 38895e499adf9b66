package usersink

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"

	"github.com/goliatone/go-friendboard/pkg/activity"
)

type recordingSink struct {
	records []types.ActivityRecord
	err     error
}

func (s *recordingSink) Log(_ context.Context, record types.ActivityRecord) error {
	s.records = append(s.records, record)
	return s.err
}

func TestHookNotifyMapsEvent(t *testing.T) {
	sink := &recordingSink{}
	hook := Hook{Sink: sink}

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	actorID := uuid.New()
	friendID := uuid.New()
	objectID := uuid.New().String()

	event := activity.Event{
		Verb:       "widget.update",
		ActorID:    actorID.String(),
		FriendID:   friendID.String(),
		ObjectType: "widget_instance",
		ObjectID:   objectID,
		Channel:    activity.DefaultChannel,
		Metadata: map[string]any{
			"type": "pixel_art",
		},
		OccurredAt: now,
	}

	if err := hook.Notify(context.Background(), event); err != nil {
		t.Fatalf("notify: %v", err)
	}

	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	record := sink.records[0]
	if record.ActorID != actorID {
		t.Fatalf("expected actor %s got %s", actorID, record.ActorID)
	}
	if record.UserID != friendID {
		t.Fatalf("expected friend mapped to user %s got %s", friendID, record.UserID)
	}
	if record.Verb != "widget.update" || record.ObjectType != "widget_instance" || record.ObjectID != objectID {
		t.Fatalf("unexpected record payload: %+v", record)
	}
	if record.Channel != activity.DefaultChannel {
		t.Fatalf("expected channel %q got %q", activity.DefaultChannel, record.Channel)
	}
	if record.OccurredAt != now {
		t.Fatalf("expected occurred_at %v got %v", now, record.OccurredAt)
	}
	if record.Data["type"] != "pixel_art" {
		t.Fatalf("expected metadata forwarded, got %v", record.Data)
	}
}

func TestHookNotifyToleratesBadIdentifiers(t *testing.T) {
	sink := &recordingSink{}
	hook := Hook{Sink: sink}

	err := hook.Notify(context.Background(), activity.Event{
		Verb:       "friend.remove",
		ActorID:    "not-a-uuid",
		ObjectType: "friend",
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(sink.records) != 1 {
		t.Fatalf("expected record despite bad ids, got %d", len(sink.records))
	}
	if sink.records[0].ActorID != uuid.Nil {
		t.Fatalf("expected zero actor id, got %s", sink.records[0].ActorID)
	}
}

func TestHookNotifyNilSink(t *testing.T) {
	hook := Hook{}
	if err := hook.Notify(context.Background(), activity.Event{Verb: "v", ObjectType: "o"}); err != nil {
		t.Fatalf("expected nil sink no-op, got %v", err)
	}
}
