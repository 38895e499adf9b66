// Package sqlitestore provides a sqlite-backed persistence provider for the
// friendboard engine. Conditional writes are implemented with a per-friend
// revision row: each accepted write increments it inside the same
// transaction, so a writer carrying a stale revision loses with ErrConflict
// instead of clobbering a concurrent admin session.
package sqlitestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	friendboard "github.com/goliatone/go-friendboard/components/friendboard"
)

// Open creates a gorm handle over the modernc sqlite driver.
func Open(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        path,
	}, &gorm.Config{})
}

// Store implements friendboard.PersistenceProvider, FriendStore, and
// ContentStore over sqlite.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// New builds a store around an open gorm handle.
func New(db *gorm.DB, log zerolog.Logger) *Store {
	return &Store{db: db, log: log}
}

var (
	_ friendboard.PersistenceProvider = (*Store)(nil)
	_ friendboard.FriendStore         = (*Store)(nil)
	_ friendboard.ContentStore        = (*Store)(nil)
)

// LoadInstances returns a friend's instances with the current revision.
func (s *Store) LoadInstances(ctx context.Context, friendID string) (friendboard.InstanceSnapshot, error) {
	var rows []WidgetInstanceModel
	if err := s.db.WithContext(ctx).Where("friend_id = ?", friendID).Order("position ASC, created_at ASC").Find(&rows).Error; err != nil {
		return friendboard.InstanceSnapshot{}, err
	}
	snap := friendboard.InstanceSnapshot{Revision: s.revision(ctx, friendID)}
	for _, row := range rows {
		instance, err := toInstance(row)
		if err != nil {
			return friendboard.InstanceSnapshot{}, err
		}
		snap.Instances = append(snap.Instances, instance)
	}
	return snap, nil
}

// SaveInstance upserts an instance under the revision check.
func (s *Store) SaveInstance(ctx context.Context, instance friendboard.WidgetInstance, rev friendboard.Revision) (friendboard.Revision, error) {
	config, err := json.Marshal(instance.Config)
	if err != nil {
		return 0, fmt.Errorf("sqlitestore: marshal config for %s: %w", instance.ID, err)
	}
	next := rev + 1
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := bumpRevision(tx, instance.FriendID, rev); err != nil {
			return err
		}
		row := WidgetInstanceModel{
			ID:        instance.ID,
			FriendID:  instance.FriendID,
			Type:      string(instance.Type),
			Position:  instance.Order,
			Config:    string(config),
			CreatedAt: instance.CreatedAt,
			UpdatedAt: instance.UpdatedAt,
		}
		return tx.Save(&row).Error
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}

// DeleteInstance removes an instance under the revision check.
func (s *Store) DeleteInstance(ctx context.Context, instanceID string, rev friendboard.Revision) (friendboard.Revision, error) {
	next := rev + 1
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row WidgetInstanceModel
		if err := tx.Where("id = ?", instanceID).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: instance %s", friendboard.ErrNotFound, instanceID)
			}
			return err
		}
		if err := bumpRevision(tx, row.FriendID, rev); err != nil {
			return err
		}
		return tx.Delete(&WidgetInstanceModel{}, "id = ?", instanceID).Error
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}

// SaveOrder rewrites positions 0..n-1 following the given sequence.
func (s *Store) SaveOrder(ctx context.Context, friendID string, orderedIDs []string, rev friendboard.Revision) (friendboard.Revision, error) {
	next := rev + 1
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := bumpRevision(tx, friendID, rev); err != nil {
			return err
		}
		for pos, id := range orderedIDs {
			if err := tx.Model(&WidgetInstanceModel{}).
				Where("id = ? AND friend_id = ?", id, friendID).
				Update("position", pos).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}

// SaveFriend inserts or replaces a friend record.
func (s *Store) SaveFriend(ctx context.Context, friend friendboard.FriendRecord) error {
	theme, err := json.Marshal(friend.Theme)
	if err != nil {
		return fmt.Errorf("sqlitestore: marshal theme for %s: %w", friend.ID, err)
	}
	row := FriendModel{
		ID:          friend.ID,
		DisplayName: friend.DisplayName,
		Slug:        friend.Slug,
		Theme:       string(theme),
		CreatedAt:   friend.CreatedAt,
		UpdatedAt:   friend.UpdatedAt,
	}
	return s.db.WithContext(ctx).Save(&row).Error
}

// FriendByID fetches a friend record.
func (s *Store) FriendByID(ctx context.Context, id string) (friendboard.FriendRecord, error) {
	var row FriendModel
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return friendboard.FriendRecord{}, fmt.Errorf("%w: friend %s", friendboard.ErrNotFound, id)
		}
		return friendboard.FriendRecord{}, err
	}
	return toFriend(row)
}

// FriendBySlug fetches a friend record by its page path key.
func (s *Store) FriendBySlug(ctx context.Context, slug string) (friendboard.FriendRecord, error) {
	var row FriendModel
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return friendboard.FriendRecord{}, fmt.Errorf("%w: friend slug %s", friendboard.ErrNotFound, slug)
		}
		return friendboard.FriendRecord{}, err
	}
	return toFriend(row)
}

// Friends lists every friend record.
func (s *Store) Friends(ctx context.Context) ([]friendboard.FriendRecord, error) {
	var rows []FriendModel
	if err := s.db.WithContext(ctx).Order("display_name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]friendboard.FriendRecord, 0, len(rows))
	for _, row := range rows {
		friend, err := toFriend(row)
		if err != nil {
			return nil, err
		}
		out = append(out, friend)
	}
	return out, nil
}

// DeleteFriend removes a friend record and its revision row.
func (s *Store) DeleteFriend(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&FriendModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: friend %s", friendboard.ErrNotFound, id)
		}
		return tx.Delete(&FriendRevisionModel{}, "friend_id = ?", id).Error
	})
}

// SaveContent inserts or replaces a content entry.
func (s *Store) SaveContent(ctx context.Context, entry friendboard.ContentEntry) error {
	row := ContentEntryModel{
		ID:        entry.ID,
		FriendID:  entry.FriendID,
		Kind:      string(entry.Kind),
		Body:      entry.Body,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
	return s.db.WithContext(ctx).Save(&row).Error
}

// ContentFor lists a friend's entries of one kind.
func (s *Store) ContentFor(ctx context.Context, friendID string, kind friendboard.ContentKind) ([]friendboard.ContentEntry, error) {
	var rows []ContentEntryModel
	if err := s.db.WithContext(ctx).
		Where("friend_id = ? AND kind = ?", friendID, string(kind)).
		Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]friendboard.ContentEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, friendboard.ContentEntry{
			ID:        row.ID,
			FriendID:  row.FriendID,
			Kind:      friendboard.ContentKind(row.Kind),
			Body:      row.Body,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return out, nil
}

// DeleteContent removes one entry.
func (s *Store) DeleteContent(ctx context.Context, entryID string) error {
	result := s.db.WithContext(ctx).Delete(&ContentEntryModel{}, "id = ?", entryID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: content %s", friendboard.ErrNotFound, entryID)
	}
	return nil
}

// DeleteContentForFriend removes every entry owned by a friend.
func (s *Store) DeleteContentForFriend(ctx context.Context, friendID string) error {
	return s.db.WithContext(ctx).Delete(&ContentEntryModel{}, "friend_id = ?", friendID).Error
}

func (s *Store) revision(ctx context.Context, friendID string) friendboard.Revision {
	var row FriendRevisionModel
	if err := s.db.WithContext(ctx).Where("friend_id = ?", friendID).First(&row).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn().Err(err).Str("friend_id", friendID).Msg("read friend revision")
		}
		return 0
	}
	return friendboard.Revision(row.Revision)
}

// bumpRevision performs the compare-and-swap inside the caller's transaction.
func bumpRevision(tx *gorm.DB, friendID string, rev friendboard.Revision) error {
	if rev == 0 {
		result := tx.Exec(
			"INSERT INTO friend_revisions (friend_id, revision) VALUES (?, 1) ON CONFLICT (friend_id) DO UPDATE SET revision = revision + 1 WHERE friend_revisions.revision = 0",
			friendID,
		)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: friend %s", friendboard.ErrConflict, friendID)
		}
		return nil
	}
	result := tx.Model(&FriendRevisionModel{}).
		Where("friend_id = ? AND revision = ?", friendID, uint64(rev)).
		Update("revision", uint64(rev)+1)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: friend %s", friendboard.ErrConflict, friendID)
	}
	return nil
}

func toInstance(row WidgetInstanceModel) (friendboard.WidgetInstance, error) {
	var config map[string]any
	if row.Config != "" {
		if err := json.Unmarshal([]byte(row.Config), &config); err != nil {
			return friendboard.WidgetInstance{}, fmt.Errorf("sqlitestore: unmarshal config for %s: %w", row.ID, err)
		}
	}
	return friendboard.WidgetInstance{
		ID:        row.ID,
		FriendID:  row.FriendID,
		Type:      friendboard.WidgetTypeID(row.Type),
		Order:     row.Position,
		Config:    config,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func toFriend(row FriendModel) (friendboard.FriendRecord, error) {
	var theme map[string]any
	if row.Theme != "" {
		if err := json.Unmarshal([]byte(row.Theme), &theme); err != nil {
			return friendboard.FriendRecord{}, fmt.Errorf("sqlitestore: unmarshal theme for %s: %w", row.ID, err)
		}
	}
	return friendboard.FriendRecord{
		ID:          row.ID,
		DisplayName: row.DisplayName,
		Slug:        row.Slug,
		Theme:       theme,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}
