package sqlitestore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	friendboard "github.com/goliatone/go-friendboard/components/friendboard"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "friendboard_test.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return New(db, zerolog.Nop())
}

func TestInstanceRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	inst := friendboard.WidgetInstance{
		ID:        "w1",
		FriendID:  "friend-1",
		Type:      friendboard.TypePixelArt,
		Order:     0,
		Config:    map[string]any{"width": float64(16)},
		CreatedAt: now,
		UpdatedAt: now,
	}
	rev, err := store.SaveInstance(ctx, inst, 0)
	if err != nil {
		t.Fatalf("save instance: %v", err)
	}
	if rev != 1 {
		t.Fatalf("expected revision 1, got %d", rev)
	}

	snap, err := store.LoadInstances(ctx, "friend-1")
	if err != nil {
		t.Fatalf("load instances: %v", err)
	}
	if snap.Revision != 1 || len(snap.Instances) != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	got := snap.Instances[0]
	if got.ID != "w1" || got.Type != friendboard.TypePixelArt {
		t.Fatalf("unexpected instance: %+v", got)
	}
	if got.Config["width"] != float64(16) {
		t.Fatalf("expected config round trip, got %v", got.Config)
	}
}

func TestConditionalWritesRejectStaleRevision(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	inst := friendboard.WidgetInstance{ID: "w1", FriendID: "friend-1", Type: friendboard.TypeGuestbook}
	if _, err := store.SaveInstance(ctx, inst, 0); err != nil {
		t.Fatalf("save instance: %v", err)
	}
	if _, err := store.SaveInstance(ctx, inst, 0); !errors.Is(err, friendboard.ErrConflict) {
		t.Fatalf("stale save: expected ErrConflict, got %v", err)
	}
	if _, err := store.DeleteInstance(ctx, "w1", 0); !errors.Is(err, friendboard.ErrConflict) {
		t.Fatalf("stale delete: expected ErrConflict, got %v", err)
	}
	if _, err := store.SaveOrder(ctx, "friend-1", []string{"w1"}, 7); !errors.Is(err, friendboard.ErrConflict) {
		t.Fatalf("stale reorder: expected ErrConflict, got %v", err)
	}
	if _, err := store.DeleteInstance(ctx, "w1", 1); err != nil {
		t.Fatalf("delete with current revision: %v", err)
	}
	if _, err := store.DeleteInstance(ctx, "w1", 2); !errors.Is(err, friendboard.ErrNotFound) {
		t.Fatalf("missing instance: expected ErrNotFound, got %v", err)
	}
}

func TestSaveOrderRewritesPositions(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	rev := friendboard.Revision(0)
	for _, id := range []string{"a", "b", "c"} {
		next, err := store.SaveInstance(ctx, friendboard.WidgetInstance{ID: id, FriendID: "friend-1", Type: friendboard.TypeStickyNote}, rev)
		if err != nil {
			t.Fatalf("seed %s: %v", id, err)
		}
		rev = next
	}
	if _, err := store.SaveOrder(ctx, "friend-1", []string{"c", "a", "b"}, rev); err != nil {
		t.Fatalf("save order: %v", err)
	}
	snap, err := store.LoadInstances(ctx, "friend-1")
	if err != nil {
		t.Fatalf("load instances: %v", err)
	}
	want := []string{"c", "a", "b"}
	for idx, id := range want {
		if snap.Instances[idx].ID != id {
			t.Fatalf("position %d: expected %s, got %s", idx, id, snap.Instances[idx].ID)
		}
	}
}

func TestFriendRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	friend := friendboard.FriendRecord{
		ID:          "friend-1",
		DisplayName: "Sam",
		Slug:        "sam",
		Theme:       map[string]any{"accent": "#2563eb"},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := store.SaveFriend(ctx, friend); err != nil {
		t.Fatalf("save friend: %v", err)
	}

	bySlug, err := store.FriendBySlug(ctx, "sam")
	if err != nil {
		t.Fatalf("friend by slug: %v", err)
	}
	if bySlug.ID != "friend-1" || bySlug.Theme["accent"] != "#2563eb" {
		t.Fatalf("unexpected friend: %+v", bySlug)
	}

	if err := store.SaveFriend(ctx, friendboard.FriendRecord{ID: "friend-2", DisplayName: "Ana", Slug: "ana"}); err != nil {
		t.Fatalf("save second friend: %v", err)
	}
	friends, err := store.Friends(ctx)
	if err != nil {
		t.Fatalf("list friends: %v", err)
	}
	if len(friends) != 2 || friends[0].DisplayName != "Ana" {
		t.Fatalf("expected friends sorted by name, got %+v", friends)
	}

	if err := store.DeleteFriend(ctx, "friend-1"); err != nil {
		t.Fatalf("delete friend: %v", err)
	}
	if _, err := store.FriendByID(ctx, "friend-1"); !errors.Is(err, friendboard.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.DeleteFriend(ctx, "friend-1"); !errors.Is(err, friendboard.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestContentRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for idx, body := range []string{"first", "second"} {
		entry := friendboard.ContentEntry{
			ID:        body,
			FriendID:  "friend-1",
			Kind:      friendboard.ContentInbox,
			Body:      body,
			CreatedAt: base.Add(time.Duration(idx) * time.Minute),
			UpdatedAt: base.Add(time.Duration(idx) * time.Minute),
		}
		if err := store.SaveContent(ctx, entry); err != nil {
			t.Fatalf("save content %s: %v", body, err)
		}
	}

	entries, err := store.ContentFor(ctx, "friend-1", friendboard.ContentInbox)
	if err != nil {
		t.Fatalf("content for: %v", err)
	}
	if len(entries) != 2 || entries[0].Body != "second" {
		t.Fatalf("expected newest first, got %+v", entries)
	}

	other, err := store.ContentFor(ctx, "friend-1", friendboard.ContentBio)
	if err != nil {
		t.Fatalf("content for bio: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected kind filter, got %+v", other)
	}

	if err := store.DeleteContentForFriend(ctx, "friend-1"); err != nil {
		t.Fatalf("delete content for friend: %v", err)
	}
	entries, err = store.ContentFor(ctx, "friend-1", friendboard.ContentInbox)
	if err != nil {
		t.Fatalf("content for after delete: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected cascade cleanup, got %+v", entries)
	}
}

func TestStoreBacksInstanceStore(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	engine := friendboard.NewInstanceStore(friendboard.StoreOptions{
		Provider:  store,
		Validator: friendboard.NewSchemaValidator(),
	})
	session := friendboard.Session{Identity: friendboard.IdentityAdmin, Mode: friendboard.ModeEdit}
	if _, err := engine.Create(ctx, session, "friend-1", friendboard.TypeGuestbook, nil); err != nil {
		t.Fatalf("create through engine: %v", err)
	}
	if _, err := engine.Create(ctx, session, "friend-1", friendboard.TypeGuestbook, nil); !errors.Is(err, friendboard.ErrMultiplicity) {
		t.Fatalf("expected ErrMultiplicity, got %v", err)
	}
	list, err := engine.List(ctx, "friend-1")
	if err != nil {
		t.Fatalf("list through engine: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one instance, got %+v", list)
	}
}
