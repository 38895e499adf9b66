package friendboard

import (
	"context"
	"errors"
	"testing"
)

func newTestService(provider *InMemoryProvider) *Service {
	store := newTestStore(provider)
	return NewService(Options{
		Store: store,
		Friends: NewFriendManager(FriendManagerOptions{
			Friends:   provider,
			Content:   provider,
			Instances: store,
		}),
		Content: NewContentManager(ContentManagerOptions{Content: provider}),
	})
}

func TestSessionTracksPathAndMode(t *testing.T) {
	service := newTestService(NewInMemoryProvider())

	session := service.Session("/admin/pages/sam")
	if session.Identity != IdentityAdmin || session.Mode != ModeView {
		t.Fatalf("expected admin in view, got %#v", session)
	}
	if session.CanEdit() {
		t.Fatal("admin in view mode must not pass the gate")
	}

	if mode := service.EnterEdit("/sam"); mode != ModeView {
		t.Fatalf("friend path must not reach edit, got %s", mode)
	}
	if mode := service.EnterEdit("/admin"); mode != ModeEdit {
		t.Fatalf("admin path should reach edit, got %s", mode)
	}
	if !service.Session("/admin").CanEdit() {
		t.Fatal("admin in edit mode should pass the gate")
	}
	// The same mode paired with a friend path still fails the gate.
	if service.Session("/sam").CanEdit() {
		t.Fatal("friend path must not pass the gate even in edit mode")
	}
	if mode := service.EnterView(); mode != ModeView {
		t.Fatalf("EnterView should return view, got %s", mode)
	}
}

func TestDashboardComposesForViewer(t *testing.T) {
	provider := NewInMemoryProvider()
	service := newTestService(provider)
	service.EnterEdit("/admin")
	session := service.Session("/admin")

	friend, err := service.CreateFriend(context.Background(), session, CreateFriendRequest{DisplayName: "Sam", Slug: "sam"})
	if err != nil {
		t.Fatalf("CreateFriend returned error: %v", err)
	}
	if _, err := service.CreateWidget(context.Background(), session, friend.ID, TypeGuestbook, nil); err != nil {
		t.Fatalf("CreateWidget returned error: %v", err)
	}

	adminPage, err := service.Dashboard(context.Background(), "/admin/pages/sam", "sam")
	if err != nil {
		t.Fatalf("Dashboard returned error: %v", err)
	}
	if adminPage.Identity != IdentityAdmin || !adminPage.Slots[0].Editable {
		t.Fatalf("expected editable admin page, got %#v", adminPage)
	}

	friendPage, err := service.Dashboard(context.Background(), "/sam", "sam")
	if err != nil {
		t.Fatalf("Dashboard returned error: %v", err)
	}
	if friendPage.Identity != IdentityFriend || friendPage.Slots[0].Editable {
		t.Fatalf("expected read-only friend page, got %#v", friendPage)
	}

	if _, err := service.Dashboard(context.Background(), "/nobody", "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown slug, got %v", err)
	}
}

func TestServiceRequiresCollaborators(t *testing.T) {
	service := NewService(Options{})
	if _, err := service.ListWidgets(context.Background(), "friend-1"); err == nil {
		t.Fatal("expected error without instance store")
	}
	if _, err := service.Friends(context.Background()); err == nil {
		t.Fatal("expected error without friend manager")
	}
	if _, err := service.ContentEntries(context.Background(), "friend-1", ContentBio); err == nil {
		t.Fatal("expected error without content manager")
	}
	if len(service.Catalog()) == 0 {
		t.Fatal("catalog should fall back to the default registry")
	}
}

func TestRemoveFriendCascadesThroughService(t *testing.T) {
	provider := NewInMemoryProvider()
	service := newTestService(provider)
	service.EnterEdit("/admin")
	session := service.Session("/admin")

	friend, err := service.CreateFriend(context.Background(), session, CreateFriendRequest{DisplayName: "Mika"})
	if err != nil {
		t.Fatalf("CreateFriend returned error: %v", err)
	}
	if _, err := service.CreateWidget(context.Background(), session, friend.ID, TypePixelArt, nil); err != nil {
		t.Fatalf("CreateWidget returned error: %v", err)
	}
	if _, err := service.AddContent(context.Background(), session, friend.ID, ContentBio, "bio"); err != nil {
		t.Fatalf("AddContent returned error: %v", err)
	}
	if err := service.RemoveFriend(context.Background(), session, friend.ID); err != nil {
		t.Fatalf("RemoveFriend returned error: %v", err)
	}
	widgets, err := service.ListWidgets(context.Background(), friend.ID)
	if err != nil {
		t.Fatalf("ListWidgets returned error: %v", err)
	}
	if len(widgets) != 0 {
		t.Fatalf("expected widgets cascaded, got %#v", widgets)
	}
}
