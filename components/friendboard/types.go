package friendboard

import (
	"context"
	"time"
)

// Identity is the role inferred from the navigation path. It is recomputed on
// every resolution and never cached between requests.
type Identity string

const (
	IdentityAdmin  Identity = "admin"
	IdentityFriend Identity = "friend"
)

// Mode is the dashboard UI mode. Edit is reachable by admins only.
type Mode string

const (
	ModeView Mode = "view"
	ModeEdit Mode = "edit"
)

// Session pairs the resolved identity with the current dashboard mode. Every
// mutating store operation checks both before touching state.
type Session struct {
	Identity Identity
	Mode     Mode
}

// CanEdit reports whether the session passes the dual identity+mode gate.
func (s Session) CanEdit() bool {
	return s.Identity == IdentityAdmin && s.Mode == ModeEdit
}

// WidgetTypeID identifies an entry in the fixed widget catalog.
type WidgetTypeID string

// WidgetTypeDescriptor describes one catalog entry, including whether a friend
// may own more than one instance of it and the JSON schema its configuration
// payload must satisfy.
type WidgetTypeDescriptor struct {
	ID             WidgetTypeID
	Name           string
	Description    string
	AllowsMultiple bool
	Schema         map[string]any
}

// WidgetInstance is one concrete placement of a widget type on a friend's
// page. Type and FriendID are immutable after creation; changing a widget's
// type is modeled as delete + create.
type WidgetInstance struct {
	ID        string
	FriendID  string
	Type      WidgetTypeID
	Order     int
	Config    map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UpdatePatch carries the mutable fields of a widget instance.
type UpdatePatch struct {
	Config map[string]any
	Order  *int
}

// FriendRecord is the owner of a widget instance collection. Deleting a
// friend cascades through the instance store.
type FriendRecord struct {
	ID          string
	DisplayName string
	Slug        string
	Theme       map[string]any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ContentKind distinguishes content entries managed for a friend.
type ContentKind string

const (
	ContentBio   ContentKind = "bio"
	ContentInbox ContentKind = "inbox"
)

// ContentEntry is an admin-curated piece of content attached to a friend.
type ContentEntry struct {
	ID        string
	FriendID  string
	Kind      ContentKind
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Revision is the snapshot token for a friend's instance set. Providers bump
// it on every accepted write and reject writes carrying a stale value.
type Revision uint64

// InstanceSnapshot is the provider's view of one friend's instances plus the
// revision the snapshot was taken at.
type InstanceSnapshot struct {
	Instances []WidgetInstance
	Revision  Revision
}

// PersistenceProvider is the storage contract consumed by the instance store.
// Mutating calls are conditional writes: a provider must reject them with
// ErrConflict when rev no longer matches its current revision for the friend,
// so a losing concurrent writer never silently clobbers state.
type PersistenceProvider interface {
	LoadInstances(ctx context.Context, friendID string) (InstanceSnapshot, error)
	SaveInstance(ctx context.Context, instance WidgetInstance, rev Revision) (Revision, error)
	DeleteInstance(ctx context.Context, instanceID string, rev Revision) (Revision, error)
	SaveOrder(ctx context.Context, friendID string, orderedIDs []string, rev Revision) (Revision, error)
}

// FriendStore persists friend records.
type FriendStore interface {
	SaveFriend(ctx context.Context, friend FriendRecord) error
	FriendByID(ctx context.Context, id string) (FriendRecord, error)
	FriendBySlug(ctx context.Context, slug string) (FriendRecord, error)
	Friends(ctx context.Context) ([]FriendRecord, error)
	DeleteFriend(ctx context.Context, id string) error
}

// ContentStore persists bios and inbox entries.
type ContentStore interface {
	SaveContent(ctx context.Context, entry ContentEntry) error
	ContentFor(ctx context.Context, friendID string, kind ContentKind) ([]ContentEntry, error)
	DeleteContent(ctx context.Context, entryID string) error
	DeleteContentForFriend(ctx context.Context, friendID string) error
}

// InstanceEvent describes a mutation for UI subscribers. It carries the
// affected friend and the operation kind, not the full payload.
type InstanceEvent struct {
	FriendID string `json:"friend_id"`
	Op       string `json:"op"`
}

// Operation kinds carried by InstanceEvent.
const (
	OpCreate  = "create"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpReorder = "reorder"
	OpCascade = "cascade"
)

// RefreshHook notifies transports (REST/WebSocket) about instance changes.
type RefreshHook interface {
	InstanceChanged(ctx context.Context, event InstanceEvent) error
}

// WidgetSlot pairs an instance with the editability flag the renderer needs.
type WidgetSlot struct {
	Instance WidgetInstance `json:"instance"`
	Editable bool           `json:"editable"`
}

// DashboardPage is the fully composed per-friend page handed to renderers.
type DashboardPage struct {
	Friend   FriendRecord `json:"friend"`
	Slots    []WidgetSlot `json:"slots"`
	Identity Identity     `json:"identity"`
	Mode     Mode         `json:"mode"`
}
