package sqlitestore

import "time"

type WidgetInstanceModel struct {
	ID        string `gorm:"primaryKey"`
	FriendID  string `gorm:"not null;index"`
	Type      string `gorm:"not null;index"`
	Position  int    `gorm:"not null;default:0"`
	Config    string `gorm:"not null;default:'{}'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (WidgetInstanceModel) TableName() string { return "widget_instances" }

type FriendRevisionModel struct {
	FriendID string `gorm:"primaryKey"`
	Revision uint64 `gorm:"not null;default:0"`
}

func (FriendRevisionModel) TableName() string { return "friend_revisions" }

type FriendModel struct {
	ID          string `gorm:"primaryKey"`
	DisplayName string `gorm:"not null"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Theme       string `gorm:"not null;default:'{}'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (FriendModel) TableName() string { return "friends" }

type ContentEntryModel struct {
	ID        string `gorm:"primaryKey"`
	FriendID  string `gorm:"not null;index"`
	Kind      string `gorm:"not null;index"`
	Body      string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ContentEntryModel) TableName() string { return "content_entries" }
