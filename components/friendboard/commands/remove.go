package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	friendboard "github.com/goliatone/go-friendboard/components/friendboard"
)

// RemoveWidgetInput identifies the widget instance to remove.
type RemoveWidgetInput struct {
	Path       string `json:"path"`
	InstanceID string `json:"instance_id"`
	ActorID    string `json:"actor_id"`
}

type removeService interface {
	Session(path string) friendboard.Session
	RemoveWidget(ctx context.Context, session friendboard.Session, instanceID string) error
}

// RemoveWidgetCommand wraps Service.RemoveWidget.
type RemoveWidgetCommand struct {
	service   removeService
	telemetry Telemetry
}

// NewRemoveWidgetCommand builds a command instance.
func NewRemoveWidgetCommand(service removeService, telemetry Telemetry) *RemoveWidgetCommand {
	return &RemoveWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RemoveWidgetInput] = (*RemoveWidgetCommand)(nil)

// Execute removes the widget instance.
func (c *RemoveWidgetCommand) Execute(ctx context.Context, msg RemoveWidgetInput) error {
	if c.service == nil {
		return errors.New("remove command requires service")
	}
	ctx = friendboard.ContextWithActivity(ctx, friendboard.ActivityContext{
		ActorID: msg.ActorID,
		Path:    msg.Path,
	})
	session := c.service.Session(msg.Path)
	if err := c.service.RemoveWidget(ctx, session, msg.InstanceID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "friendboard.widget.remove", map[string]any{"instance_id": msg.InstanceID})
	return nil
}
