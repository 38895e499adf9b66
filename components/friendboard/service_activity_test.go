package friendboard

import (
	"context"
	"testing"

	"github.com/goliatone/go-friendboard/pkg/activity"
)

func TestServiceEmitsAuditEvents(t *testing.T) {
	var events []activity.Event
	emitter := activity.NewEmitter(activity.Hooks{
		activity.HookFunc(func(_ context.Context, evt activity.Event) error {
			events = append(events, evt)
			return nil
		}),
	}, activity.Config{Enabled: true})

	provider := NewInMemoryProvider()
	store := newTestStore(provider)
	service := NewService(Options{
		Store: store,
		Friends: NewFriendManager(FriendManagerOptions{
			Friends:   provider,
			Content:   provider,
			Instances: store,
		}),
		Content:  NewContentManager(ContentManagerOptions{Content: provider}),
		Activity: emitter,
	})
	service.EnterEdit("/admin")
	session := service.Session("/admin")
	ctx := ContextWithActivity(context.Background(), ActivityContext{ActorID: "admin-1", Path: "/admin"})

	friend, err := service.CreateFriend(ctx, session, CreateFriendRequest{DisplayName: "Sam"})
	if err != nil {
		t.Fatalf("CreateFriend returned error: %v", err)
	}
	widget, err := service.CreateWidget(ctx, session, friend.ID, TypeGuestbook, nil)
	if err != nil {
		t.Fatalf("CreateWidget returned error: %v", err)
	}
	if err := service.RemoveWidget(ctx, session, widget.ID); err != nil {
		t.Fatalf("RemoveWidget returned error: %v", err)
	}

	wantVerbs := []string{"friend.create", "widget.create", "widget.remove"}
	if len(events) != len(wantVerbs) {
		t.Fatalf("expected %d audit events, got %#v", len(wantVerbs), events)
	}
	for idx, verb := range wantVerbs {
		if events[idx].Verb != verb {
			t.Fatalf("event %d: expected verb %s, got %s", idx, verb, events[idx].Verb)
		}
		if events[idx].ActorID != "admin-1" {
			t.Fatalf("event %d: expected actor admin-1, got %s", idx, events[idx].ActorID)
		}
	}
	if events[1].ObjectID != widget.ID || events[1].FriendID != friend.ID {
		t.Fatalf("widget.create event should carry instance and friend ids, got %#v", events[1])
	}
}

func TestServiceSkipsAuditWhenDisabled(t *testing.T) {
	calls := 0
	emitter := activity.NewEmitter(activity.Hooks{
		activity.HookFunc(func(context.Context, activity.Event) error {
			calls++
			return nil
		}),
	}, activity.Config{})

	service := newTestService(NewInMemoryProvider())
	service.opts.Activity = emitter
	service.EnterEdit("/admin")
	session := service.Session("/admin")
	if _, err := service.CreateFriend(context.Background(), session, CreateFriendRequest{DisplayName: "Sam"}); err != nil {
		t.Fatalf("CreateFriend returned error: %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no audit calls while disabled, got %d", calls)
	}
}
