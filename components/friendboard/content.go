package friendboard

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContentManagerOptions configures the content manager.
type ContentManagerOptions struct {
	Content   ContentStore
	Telemetry Telemetry
	Now       func() time.Time
	NewID     func() string
}

// ContentManager handles bios and inbox entries for the admin management
// views. It applies the same identity+mode gate as the instance store.
type ContentManager struct {
	opts ContentManagerOptions
}

// NewContentManager builds a manager with safe defaults.
func NewContentManager(opts ContentManagerOptions) *ContentManager {
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &ContentManager{opts: opts}
}

// AddEntry creates a content entry for a friend.
func (m *ContentManager) AddEntry(ctx context.Context, session Session, friendID string, kind ContentKind, body string) (ContentEntry, error) {
	if !session.CanEdit() {
		return ContentEntry{}, ErrForbidden
	}
	if kind != ContentBio && kind != ContentInbox {
		return ContentEntry{}, fmt.Errorf("friendboard: unknown content kind %q", kind)
	}
	if strings.TrimSpace(body) == "" {
		return ContentEntry{}, fmt.Errorf("friendboard: content body is required")
	}
	now := m.opts.Now().UTC()
	entry := ContentEntry{
		ID:        m.opts.NewID(),
		FriendID:  friendID,
		Kind:      kind,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.opts.Content.SaveContent(ctx, entry); err != nil {
		return ContentEntry{}, err
	}
	m.opts.Telemetry.Record(ctx, "friendboard.content.add", map[string]any{
		"friend_id": friendID,
		"kind":      string(kind),
	})
	return entry, nil
}

// Entries lists a friend's entries of one kind, newest first.
func (m *ContentManager) Entries(ctx context.Context, friendID string, kind ContentKind) ([]ContentEntry, error) {
	entries, err := m.opts.Content.ContentFor(ctx, friendID, kind)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

// RemoveEntry deletes one entry, used by inbox triage.
func (m *ContentManager) RemoveEntry(ctx context.Context, session Session, entryID string) error {
	if !session.CanEdit() {
		return ErrForbidden
	}
	if err := m.opts.Content.DeleteContent(ctx, entryID); err != nil {
		return err
	}
	m.opts.Telemetry.Record(ctx, "friendboard.content.remove", map[string]any{"entry_id": entryID})
	return nil
}
