package friendboard

import (
	"context"
	"errors"

	"github.com/goliatone/go-friendboard/pkg/activity"
)

var (
	errMissingStore   = errors.New("friendboard: instance store not configured")
	errMissingFriends = errors.New("friendboard: friend manager not configured")
	errMissingContent = errors.New("friendboard: content manager not configured")
)

// Options configures the Service. Every collaborator is injectable; the mode
// controller in particular is an owned instance, never process-global state.
type Options struct {
	Store     *InstanceStore
	Friends   *FriendManager
	Content   *ContentManager
	Mode      *ModeController
	Telemetry Telemetry
	Activity  *activity.Emitter
}

// Service is the engine facade transports talk to. It resolves identity from
// the request path, pairs it with the current mode, and hands the resulting
// session to the store, which re-checks the gate independently.
type Service struct {
	opts Options
}

// NewService builds a Service with safe defaults.
func NewService(opts Options) *Service {
	if opts.Mode == nil {
		opts.Mode = NewModeController()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Service{opts: opts}
}

// Mode exposes the controller for subscription and transports.
func (s *Service) Mode() *ModeController {
	return s.opts.Mode
}

// Session derives the caller's session from the navigation path and the
// current mode. Identity is recomputed on every call, never cached.
func (s *Service) Session(path string) Session {
	return Session{
		Identity: ResolveIdentity(path),
		Mode:     s.opts.Mode.Current(),
	}
}

// EnterEdit attempts the View->Edit transition for the path's identity and
// returns the resulting mode. Non-admin attempts leave the mode untouched.
func (s *Service) EnterEdit(path string) Mode {
	s.opts.Mode.EnterEdit(ResolveIdentity(path))
	return s.opts.Mode.Current()
}

// EnterView returns the dashboard to read-only mode.
func (s *Service) EnterView() Mode {
	s.opts.Mode.EnterView()
	return s.opts.Mode.Current()
}

// Catalog returns the widget type catalog in declaration order.
func (s *Service) Catalog() []WidgetTypeDescriptor {
	if s.opts.Store == nil {
		return NewTypeRegistry().Descriptors()
	}
	return s.opts.Store.Registry().Descriptors()
}

// ListWidgets returns a friend's ordered instances.
func (s *Service) ListWidgets(ctx context.Context, friendID string) ([]WidgetInstance, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}
	return store.List(ctx, friendID)
}

// CreateWidget places a new widget instance for a friend.
func (s *Service) CreateWidget(ctx context.Context, session Session, friendID string, typeID WidgetTypeID, config map[string]any) (WidgetInstance, error) {
	store, err := s.store()
	if err != nil {
		return WidgetInstance{}, err
	}
	instance, err := store.Create(ctx, session, friendID, typeID, config)
	if err != nil {
		return WidgetInstance{}, err
	}
	s.audit(ctx, "widget.create", "widget_instance", instance.ID, friendID)
	return instance, nil
}

// UpdateWidget patches an instance's config and/or order.
func (s *Service) UpdateWidget(ctx context.Context, session Session, instanceID string, patch UpdatePatch) (WidgetInstance, error) {
	store, err := s.store()
	if err != nil {
		return WidgetInstance{}, err
	}
	instance, err := store.Update(ctx, session, instanceID, patch)
	if err != nil {
		return WidgetInstance{}, err
	}
	s.audit(ctx, "widget.update", "widget_instance", instanceID, instance.FriendID)
	return instance, nil
}

// RemoveWidget deletes an instance.
func (s *Service) RemoveWidget(ctx context.Context, session Session, instanceID string) error {
	store, err := s.store()
	if err != nil {
		return err
	}
	if err := store.Delete(ctx, session, instanceID); err != nil {
		return err
	}
	s.audit(ctx, "widget.remove", "widget_instance", instanceID, "")
	return nil
}

// ReorderWidgets applies a full permutation of a friend's instance ids.
func (s *Service) ReorderWidgets(ctx context.Context, session Session, friendID string, orderedIDs []string) error {
	store, err := s.store()
	if err != nil {
		return err
	}
	if err := store.Reorder(ctx, session, friendID, orderedIDs); err != nil {
		return err
	}
	s.audit(ctx, "widget.reorder", "friend", friendID, friendID)
	return nil
}

// CreateFriend registers a friend record.
func (s *Service) CreateFriend(ctx context.Context, session Session, req CreateFriendRequest) (FriendRecord, error) {
	friends, err := s.friends()
	if err != nil {
		return FriendRecord{}, err
	}
	friend, err := friends.CreateFriend(ctx, session, req)
	if err != nil {
		return FriendRecord{}, err
	}
	s.audit(ctx, "friend.create", "friend", friend.ID, friend.ID)
	return friend, nil
}

// RemoveFriend deletes a friend and cascades its widgets and content.
func (s *Service) RemoveFriend(ctx context.Context, session Session, friendID string) error {
	friends, err := s.friends()
	if err != nil {
		return err
	}
	if err := friends.DeleteFriend(ctx, session, friendID); err != nil {
		return err
	}
	s.audit(ctx, "friend.remove", "friend", friendID, friendID)
	return nil
}

// Friends lists friend records for the management views.
func (s *Service) Friends(ctx context.Context) ([]FriendRecord, error) {
	friends, err := s.friends()
	if err != nil {
		return nil, err
	}
	return friends.Friends(ctx)
}

// AddContent creates a bio or inbox entry for a friend.
func (s *Service) AddContent(ctx context.Context, session Session, friendID string, kind ContentKind, body string) (ContentEntry, error) {
	content, err := s.content()
	if err != nil {
		return ContentEntry{}, err
	}
	entry, err := content.AddEntry(ctx, session, friendID, kind, body)
	if err != nil {
		return ContentEntry{}, err
	}
	s.audit(ctx, "content.add", "content_entry", entry.ID, friendID)
	return entry, nil
}

// ContentEntries lists a friend's entries of one kind.
func (s *Service) ContentEntries(ctx context.Context, friendID string, kind ContentKind) ([]ContentEntry, error) {
	content, err := s.content()
	if err != nil {
		return nil, err
	}
	return content.Entries(ctx, friendID, kind)
}

// RemoveContent deletes one content entry.
func (s *Service) RemoveContent(ctx context.Context, session Session, entryID string) error {
	content, err := s.content()
	if err != nil {
		return err
	}
	if err := content.RemoveEntry(ctx, session, entryID); err != nil {
		return err
	}
	s.audit(ctx, "content.remove", "content_entry", entryID, "")
	return nil
}

// Dashboard resolves the friend behind slug and composes the page for the
// path's identity and the current mode.
func (s *Service) Dashboard(ctx context.Context, path, slug string) (DashboardPage, error) {
	friends, err := s.friends()
	if err != nil {
		return DashboardPage{}, err
	}
	store, err := s.store()
	if err != nil {
		return DashboardPage{}, err
	}
	friend, err := friends.FriendBySlug(ctx, slug)
	if err != nil {
		return DashboardPage{}, err
	}
	instances, err := store.List(ctx, friend.ID)
	if err != nil {
		return DashboardPage{}, err
	}
	page := ComposeDashboard(friend, instances, ResolveIdentity(path), s.opts.Mode.Current())
	s.opts.Telemetry.Record(ctx, "friendboard.dashboard.compose", map[string]any{
		"friend_id": friend.ID,
		"identity":  string(page.Identity),
	})
	return page, nil
}

func (s *Service) store() (*InstanceStore, error) {
	if s.opts.Store == nil {
		return nil, errMissingStore
	}
	return s.opts.Store, nil
}

func (s *Service) friends() (*FriendManager, error) {
	if s.opts.Friends == nil {
		return nil, errMissingFriends
	}
	return s.opts.Friends, nil
}

func (s *Service) content() (*ContentManager, error) {
	if s.opts.Content == nil {
		return nil, errMissingContent
	}
	return s.opts.Content, nil
}

func (s *Service) audit(ctx context.Context, verb, objectType, objectID, friendID string) {
	if !s.opts.Activity.Enabled() {
		return
	}
	meta := ActivityFrom(ctx)
	_ = s.opts.Activity.Emit(ctx, activity.Event{
		Verb:       verb,
		ActorID:    meta.ActorID,
		ObjectType: objectType,
		ObjectID:   objectID,
		FriendID:   friendID,
	})
}
