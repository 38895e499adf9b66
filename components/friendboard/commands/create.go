package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	friendboard "github.com/goliatone/go-friendboard/components/friendboard"
)

// CreateWidgetInput captures a widget placement request. Path carries the
// caller's navigation path; identity is derived from it, never trusted from
// the payload.
type CreateWidgetInput struct {
	Path     string                   `json:"path"`
	FriendID string                   `json:"friend_id"`
	Type     friendboard.WidgetTypeID `json:"type"`
	Config   map[string]any           `json:"config"`
	ActorID  string                   `json:"actor_id"`
}

type createService interface {
	Session(path string) friendboard.Session
	CreateWidget(ctx context.Context, session friendboard.Session, friendID string, typeID friendboard.WidgetTypeID, config map[string]any) (friendboard.WidgetInstance, error)
}

// CreateWidgetCommand wraps Service.CreateWidget so transports can place
// widgets without linking directly against the service.
type CreateWidgetCommand struct {
	service   createService
	telemetry Telemetry
}

// NewCreateWidgetCommand creates a command instance.
func NewCreateWidgetCommand(service createService, telemetry Telemetry) *CreateWidgetCommand {
	return &CreateWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CreateWidgetInput] = (*CreateWidgetCommand)(nil)

// Execute delegates to the engine service.
func (c *CreateWidgetCommand) Execute(ctx context.Context, msg CreateWidgetInput) error {
	if c.service == nil {
		return errors.New("create command requires service")
	}
	ctx = friendboard.ContextWithActivity(ctx, friendboard.ActivityContext{
		ActorID: msg.ActorID,
		Path:    msg.Path,
	})
	session := c.service.Session(msg.Path)
	if _, err := c.service.CreateWidget(ctx, session, msg.FriendID, msg.Type, msg.Config); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "friendboard.widget.create", map[string]any{
		"friend_id": msg.FriendID,
		"type":      string(msg.Type),
	})
	return nil
}
