package friendboard

import (
	"context"
	"fmt"
	"sync"
)

// InMemoryProvider is a concurrency-safe provider suitable for tests and
// demos. It implements the PersistenceProvider, FriendStore, and ContentStore
// contracts, including revision-checked conditional writes.
type InMemoryProvider struct {
	mu        sync.Mutex
	instances map[string]WidgetInstance
	revisions map[string]Revision
	friends   map[string]FriendRecord
	content   map[string]ContentEntry
}

// NewInMemoryProvider creates an empty provider.
func NewInMemoryProvider() *InMemoryProvider {
	return &InMemoryProvider{
		instances: make(map[string]WidgetInstance),
		revisions: make(map[string]Revision),
		friends:   make(map[string]FriendRecord),
		content:   make(map[string]ContentEntry),
	}
}

// LoadInstances returns a friend's instances with the current revision.
func (p *InMemoryProvider) LoadInstances(_ context.Context, friendID string) (InstanceSnapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	snap := InstanceSnapshot{Revision: p.revisions[friendID]}
	for _, inst := range p.instances {
		if inst.FriendID == friendID {
			snap.Instances = append(snap.Instances, inst)
		}
	}
	return snap, nil
}

// SaveInstance writes an instance when rev matches the friend's current
// revision, bumping it on success.
func (p *InMemoryProvider) SaveInstance(_ context.Context, instance WidgetInstance, rev Revision) (Revision, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	next, err := p.bump(instance.FriendID, rev)
	if err != nil {
		return 0, err
	}
	p.instances[instance.ID] = instance
	return next, nil
}

// DeleteInstance removes an instance under the same revision check.
func (p *InMemoryProvider) DeleteInstance(_ context.Context, instanceID string, rev Revision) (Revision, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	inst, ok := p.instances[instanceID]
	if !ok {
		return 0, fmt.Errorf("%w: instance %s", ErrNotFound, instanceID)
	}
	next, err := p.bump(inst.FriendID, rev)
	if err != nil {
		return 0, err
	}
	delete(p.instances, instanceID)
	return next, nil
}

// SaveOrder rewrites order values 0..n-1 following the given sequence.
func (p *InMemoryProvider) SaveOrder(_ context.Context, friendID string, orderedIDs []string, rev Revision) (Revision, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	next, err := p.bump(friendID, rev)
	if err != nil {
		return 0, err
	}
	for pos, id := range orderedIDs {
		if inst, ok := p.instances[id]; ok && inst.FriendID == friendID {
			inst.Order = pos
			p.instances[id] = inst
		}
	}
	return next, nil
}

// bump performs the compare-and-swap on a friend's revision. Caller holds
// p.mu.
func (p *InMemoryProvider) bump(friendID string, rev Revision) (Revision, error) {
	current := p.revisions[friendID]
	if current != rev {
		return 0, fmt.Errorf("%w: friend %s", ErrConflict, friendID)
	}
	next := current + 1
	p.revisions[friendID] = next
	return next, nil
}

// SaveFriend inserts or replaces a friend record.
func (p *InMemoryProvider) SaveFriend(_ context.Context, friend FriendRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.friends[friend.ID] = friend
	return nil
}

// FriendByID fetches a friend record.
func (p *InMemoryProvider) FriendByID(_ context.Context, id string) (FriendRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	friend, ok := p.friends[id]
	if !ok {
		return FriendRecord{}, fmt.Errorf("%w: friend %s", ErrNotFound, id)
	}
	return friend, nil
}

// FriendBySlug fetches a friend record by its path key.
func (p *InMemoryProvider) FriendBySlug(_ context.Context, slug string) (FriendRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, friend := range p.friends {
		if friend.Slug == slug {
			return friend, nil
		}
	}
	return FriendRecord{}, fmt.Errorf("%w: friend slug %s", ErrNotFound, slug)
}

// Friends lists every friend record.
func (p *InMemoryProvider) Friends(_ context.Context) ([]FriendRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]FriendRecord, 0, len(p.friends))
	for _, friend := range p.friends {
		out = append(out, friend)
	}
	return out, nil
}

// DeleteFriend removes a friend record.
func (p *InMemoryProvider) DeleteFriend(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.friends[id]; !ok {
		return fmt.Errorf("%w: friend %s", ErrNotFound, id)
	}
	delete(p.friends, id)
	return nil
}

// SaveContent inserts or replaces a content entry.
func (p *InMemoryProvider) SaveContent(_ context.Context, entry ContentEntry) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.content[entry.ID] = entry
	return nil
}

// ContentFor lists a friend's entries of one kind.
func (p *InMemoryProvider) ContentFor(_ context.Context, friendID string, kind ContentKind) ([]ContentEntry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []ContentEntry
	for _, entry := range p.content {
		if entry.FriendID == friendID && entry.Kind == kind {
			out = append(out, entry)
		}
	}
	return out, nil
}

// DeleteContent removes one entry.
func (p *InMemoryProvider) DeleteContent(_ context.Context, entryID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.content[entryID]; !ok {
		return fmt.Errorf("%w: content %s", ErrNotFound, entryID)
	}
	delete(p.content, entryID)
	return nil
}

// DeleteContentForFriend removes every entry owned by a friend.
func (p *InMemoryProvider) DeleteContentForFriend(_ context.Context, friendID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, entry := range p.content {
		if entry.FriendID == friendID {
			delete(p.content, id)
		}
	}
	return nil
}
