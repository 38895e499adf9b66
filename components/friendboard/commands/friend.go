package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	friendboard "github.com/goliatone/go-friendboard/components/friendboard"
)

// AddFriendInput captures the add-friend flow payload.
type AddFriendInput struct {
	Path        string         `json:"path"`
	DisplayName string         `json:"display_name"`
	Slug        string         `json:"slug,omitempty"`
	Theme       map[string]any `json:"theme,omitempty"`
	ActorID     string         `json:"actor_id"`
}

type addFriendService interface {
	Session(path string) friendboard.Session
	CreateFriend(ctx context.Context, session friendboard.Session, req friendboard.CreateFriendRequest) (friendboard.FriendRecord, error)
}

// AddFriendCommand wraps Service.CreateFriend.
type AddFriendCommand struct {
	service   addFriendService
	telemetry Telemetry
}

// NewAddFriendCommand creates a command instance.
func NewAddFriendCommand(service addFriendService, telemetry Telemetry) *AddFriendCommand {
	return &AddFriendCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AddFriendInput] = (*AddFriendCommand)(nil)

// Execute registers the friend.
func (c *AddFriendCommand) Execute(ctx context.Context, msg AddFriendInput) error {
	if c.service == nil {
		return errors.New("add friend command requires service")
	}
	ctx = friendboard.ContextWithActivity(ctx, friendboard.ActivityContext{
		ActorID: msg.ActorID,
		Path:    msg.Path,
	})
	session := c.service.Session(msg.Path)
	friend, err := c.service.CreateFriend(ctx, session, friendboard.CreateFriendRequest{
		DisplayName: msg.DisplayName,
		Slug:        msg.Slug,
		Theme:       msg.Theme,
	})
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "friendboard.friend.create", map[string]any{
		"friend_id": friend.ID,
		"slug":      friend.Slug,
	})
	return nil
}

// RemoveFriendInput identifies the friend to delete. Deletion cascades
// through the instance and content stores.
type RemoveFriendInput struct {
	Path     string `json:"path"`
	FriendID string `json:"friend_id"`
	ActorID  string `json:"actor_id"`
}

type removeFriendService interface {
	Session(path string) friendboard.Session
	RemoveFriend(ctx context.Context, session friendboard.Session, friendID string) error
}

// RemoveFriendCommand wraps Service.RemoveFriend.
type RemoveFriendCommand struct {
	service   removeFriendService
	telemetry Telemetry
}

// NewRemoveFriendCommand creates a command instance.
func NewRemoveFriendCommand(service removeFriendService, telemetry Telemetry) *RemoveFriendCommand {
	return &RemoveFriendCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RemoveFriendInput] = (*RemoveFriendCommand)(nil)

// Execute removes the friend and everything it owns.
func (c *RemoveFriendCommand) Execute(ctx context.Context, msg RemoveFriendInput) error {
	if c.service == nil {
		return errors.New("remove friend command requires service")
	}
	ctx = friendboard.ContextWithActivity(ctx, friendboard.ActivityContext{
		ActorID: msg.ActorID,
		Path:    msg.Path,
	})
	session := c.service.Session(msg.Path)
	if err := c.service.RemoveFriend(ctx, session, msg.FriendID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "friendboard.friend.remove", map[string]any{"friend_id": msg.FriendID})
	return nil
}
