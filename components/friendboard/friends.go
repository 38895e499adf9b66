package friendboard

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ettle/strcase"
	"github.com/google/uuid"
)

// FriendManagerOptions configures the friend manager.
type FriendManagerOptions struct {
	Friends   FriendStore
	Content   ContentStore
	Instances *InstanceStore
	Telemetry Telemetry
	Now       func() time.Time
	NewID     func() string
}

// FriendManager runs the admin-facing friend CRUD workflows. It owns no
// widget invariants of its own: instance mutation always goes through the
// instance store, which enforces the gate independently.
type FriendManager struct {
	opts FriendManagerOptions
}

// NewFriendManager builds a manager with safe defaults.
func NewFriendManager(opts FriendManagerOptions) *FriendManager {
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &FriendManager{opts: opts}
}

// CreateFriendRequest captures the add-friend flow input. Slug is derived
// from the display name when empty.
type CreateFriendRequest struct {
	DisplayName string
	Slug        string
	Theme       map[string]any
}

// CreateFriend registers a new friend record.
func (m *FriendManager) CreateFriend(ctx context.Context, session Session, req CreateFriendRequest) (FriendRecord, error) {
	if !session.CanEdit() {
		return FriendRecord{}, ErrForbidden
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		return FriendRecord{}, fmt.Errorf("friendboard: friend display name is required")
	}
	slug := req.Slug
	if slug == "" {
		slug = strcase.ToKebab(req.DisplayName)
	}
	if _, err := m.opts.Friends.FriendBySlug(ctx, slug); err == nil {
		return FriendRecord{}, fmt.Errorf("friendboard: friend slug %s already taken", slug)
	}
	now := m.opts.Now().UTC()
	friend := FriendRecord{
		ID:          m.opts.NewID(),
		DisplayName: req.DisplayName,
		Slug:        slug,
		Theme:       req.Theme,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := m.opts.Friends.SaveFriend(ctx, friend); err != nil {
		return FriendRecord{}, err
	}
	m.opts.Telemetry.Record(ctx, "friendboard.friend.create", map[string]any{
		"friend_id": friend.ID,
		"slug":      friend.Slug,
	})
	return friend, nil
}

// UpdateFriend patches display name and theme. The slug is stable once
// assigned; public URLs depend on it.
func (m *FriendManager) UpdateFriend(ctx context.Context, session Session, friendID string, displayName string, theme map[string]any) (FriendRecord, error) {
	if !session.CanEdit() {
		return FriendRecord{}, ErrForbidden
	}
	friend, err := m.opts.Friends.FriendByID(ctx, friendID)
	if err != nil {
		return FriendRecord{}, err
	}
	if strings.TrimSpace(displayName) != "" {
		friend.DisplayName = displayName
	}
	if theme != nil {
		friend.Theme = theme
	}
	friend.UpdatedAt = m.opts.Now().UTC()
	if err := m.opts.Friends.SaveFriend(ctx, friend); err != nil {
		return FriendRecord{}, err
	}
	m.opts.Telemetry.Record(ctx, "friendboard.friend.update", map[string]any{"friend_id": friendID})
	return friend, nil
}

// DeleteFriend removes the record and cascades through the instance store and
// content store so no orphaned instances or entries survive.
func (m *FriendManager) DeleteFriend(ctx context.Context, session Session, friendID string) error {
	if !session.CanEdit() {
		return ErrForbidden
	}
	if _, err := m.opts.Friends.FriendByID(ctx, friendID); err != nil {
		return err
	}
	if m.opts.Instances != nil {
		if err := m.opts.Instances.DeleteAllForFriend(ctx, session, friendID); err != nil {
			return err
		}
	}
	if m.opts.Content != nil {
		if err := m.opts.Content.DeleteContentForFriend(ctx, friendID); err != nil {
			return err
		}
	}
	if err := m.opts.Friends.DeleteFriend(ctx, friendID); err != nil {
		return err
	}
	m.opts.Telemetry.Record(ctx, "friendboard.friend.delete", map[string]any{"friend_id": friendID})
	return nil
}

// Friends lists friend records sorted by display name.
func (m *FriendManager) Friends(ctx context.Context) ([]FriendRecord, error) {
	friends, err := m.opts.Friends.Friends(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(friends, func(i, j int) bool {
		return friends[i].DisplayName < friends[j].DisplayName
	})
	return friends, nil
}

// FriendBySlug resolves the record behind a public page path key.
func (m *FriendManager) FriendBySlug(ctx context.Context, slug string) (FriendRecord, error) {
	return m.opts.Friends.FriendBySlug(ctx, slug)
}
