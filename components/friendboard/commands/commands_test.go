package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	friendboard "github.com/goliatone/go-friendboard/components/friendboard"
)

func TestCreateWidgetCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewCreateWidgetCommand(service, nil)
	err := cmd.Execute(context.Background(), CreateWidgetInput{
		Path:     "/admin",
		FriendID: "friend-1",
		Type:     friendboard.TypePixelArt,
		ActorID:  "admin-1",
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.createCalls != 1 {
		t.Fatalf("expected create call")
	}
	if service.lastSession.Identity != friendboard.IdentityAdmin {
		t.Fatalf("expected admin session from /admin, got %#v", service.lastSession)
	}
	if service.lastActivity.ActorID != "admin-1" || service.lastActivity.Path != "/admin" {
		t.Fatalf("expected activity context propagated, got %#v", service.lastActivity)
	}
}

func TestCreateWidgetCommandRequiresService(t *testing.T) {
	cmd := NewCreateWidgetCommand(nil, nil)
	if err := cmd.Execute(context.Background(), CreateWidgetInput{}); err == nil {
		t.Fatal("expected error without service")
	}
}

func TestUpdateWidgetCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewUpdateWidgetCommand(service, nil)
	order := 2
	err := cmd.Execute(context.Background(), UpdateWidgetInput{
		Path:       "/admin",
		InstanceID: "inst-1",
		Config:     map[string]any{"text": "hi"},
		Order:      &order,
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.updateCalls != 1 {
		t.Fatalf("expected update call")
	}
	if service.lastPatch.Order == nil || *service.lastPatch.Order != 2 {
		t.Fatalf("expected order patch, got %#v", service.lastPatch)
	}
}

func TestUpdateWidgetCommandRequiresInstanceID(t *testing.T) {
	cmd := NewUpdateWidgetCommand(&stubService{}, nil)
	if err := cmd.Execute(context.Background(), UpdateWidgetInput{Path: "/admin"}); err == nil {
		t.Fatal("expected error without instance id")
	}
}

func TestRemoveWidgetCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewRemoveWidgetCommand(service, nil)
	if err := cmd.Execute(context.Background(), RemoveWidgetInput{Path: "/admin", InstanceID: "inst-1"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.removeCalls != 1 {
		t.Fatalf("expected remove call")
	}
}

func TestReorderWidgetsCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewReorderWidgetsCommand(service, nil)
	err := cmd.Execute(context.Background(), ReorderWidgetsInput{
		Path:        "/admin",
		FriendID:    "friend-1",
		InstanceIDs: []string{"w2", "w1"},
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.reorderCalls != 1 {
		t.Fatalf("expected reorder call")
	}
}

func TestFriendCommands(t *testing.T) {
	service := &stubService{}
	add := NewAddFriendCommand(service, nil)
	if err := add.Execute(context.Background(), AddFriendInput{Path: "/admin", DisplayName: "Sam"}); err != nil {
		t.Fatalf("add Execute returned error: %v", err)
	}
	if service.addFriendCalls != 1 {
		t.Fatalf("expected add friend call")
	}
	remove := NewRemoveFriendCommand(service, nil)
	if err := remove.Execute(context.Background(), RemoveFriendInput{Path: "/admin", FriendID: "friend-1"}); err != nil {
		t.Fatalf("remove Execute returned error: %v", err)
	}
	if service.removeFriendCalls != 1 {
		t.Fatalf("expected remove friend call")
	}
}

func TestSeedCommand(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "seed.yaml")
	doc := "version: \"1\"\nfriends:\n  - display_name: Sam\n    slug: sam\n"
	if err := os.WriteFile(manifest, []byte(doc), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	service := &stubService{}
	telemetry := &stubTelemetry{}
	cmd := NewSeedCommand(service, telemetry)
	if err := cmd.Execute(context.Background(), SeedInput{ManifestPath: manifest, Path: "/admin"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.seedCalls != 1 {
		t.Fatalf("expected seed call")
	}
	if telemetry.calls == 0 {
		t.Fatalf("expected telemetry to record events")
	}
}

func TestSeedCommandRequiresManifestPath(t *testing.T) {
	cmd := NewSeedCommand(&stubService{}, nil)
	if err := cmd.Execute(context.Background(), SeedInput{Path: "/admin"}); err == nil {
		t.Fatal("expected error without manifest path")
	}
}

type stubService struct {
	createCalls       int
	updateCalls       int
	removeCalls       int
	reorderCalls      int
	addFriendCalls    int
	removeFriendCalls int
	seedCalls         int
	lastSession       friendboard.Session
	lastActivity      friendboard.ActivityContext
	lastPatch         friendboard.UpdatePatch
}

func (s *stubService) Session(path string) friendboard.Session {
	return friendboard.Session{Identity: friendboard.ResolveIdentity(path), Mode: friendboard.ModeEdit}
}

func (s *stubService) CreateWidget(ctx context.Context, session friendboard.Session, friendID string, typeID friendboard.WidgetTypeID, config map[string]any) (friendboard.WidgetInstance, error) {
	s.createCalls++
	s.lastSession = session
	s.lastActivity = friendboard.ActivityFrom(ctx)
	return friendboard.WidgetInstance{ID: "inst-1", FriendID: friendID, Type: typeID, Config: config}, nil
}

func (s *stubService) UpdateWidget(ctx context.Context, session friendboard.Session, instanceID string, patch friendboard.UpdatePatch) (friendboard.WidgetInstance, error) {
	s.updateCalls++
	s.lastSession = session
	s.lastPatch = patch
	return friendboard.WidgetInstance{ID: instanceID}, nil
}

func (s *stubService) RemoveWidget(ctx context.Context, session friendboard.Session, instanceID string) error {
	s.removeCalls++
	s.lastSession = session
	return nil
}

func (s *stubService) ReorderWidgets(ctx context.Context, session friendboard.Session, friendID string, orderedIDs []string) error {
	s.reorderCalls++
	s.lastSession = session
	return nil
}

func (s *stubService) CreateFriend(ctx context.Context, session friendboard.Session, req friendboard.CreateFriendRequest) (friendboard.FriendRecord, error) {
	s.addFriendCalls++
	s.lastSession = session
	return friendboard.FriendRecord{ID: "friend-1", DisplayName: req.DisplayName, Slug: req.Slug}, nil
}

func (s *stubService) RemoveFriend(ctx context.Context, session friendboard.Session, friendID string) error {
	s.removeFriendCalls++
	s.lastSession = session
	return nil
}

func (s *stubService) ApplySeed(ctx context.Context, session friendboard.Session, doc *friendboard.SeedManifest) error {
	s.seedCalls++
	s.lastSession = session
	return nil
}

type stubTelemetry struct {
	calls int
}

func (s *stubTelemetry) Record(context.Context, string, map[string]any) {
	s.calls++
}
