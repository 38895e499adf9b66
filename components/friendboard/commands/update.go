package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	friendboard "github.com/goliatone/go-friendboard/components/friendboard"
)

// UpdateWidgetInput captures widget update payloads. Only config and order
// are mutable.
type UpdateWidgetInput struct {
	Path       string         `json:"path"`
	InstanceID string         `json:"instance_id"`
	Config     map[string]any `json:"config,omitempty"`
	Order      *int           `json:"order,omitempty"`
	ActorID    string         `json:"actor_id"`
}

type updateService interface {
	Session(path string) friendboard.Session
	UpdateWidget(ctx context.Context, session friendboard.Session, instanceID string, patch friendboard.UpdatePatch) (friendboard.WidgetInstance, error)
}

// UpdateWidgetCommand wraps Service.UpdateWidget.
type UpdateWidgetCommand struct {
	service   updateService
	telemetry Telemetry
}

// NewUpdateWidgetCommand creates the command.
func NewUpdateWidgetCommand(service updateService, telemetry Telemetry) *UpdateWidgetCommand {
	return &UpdateWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateWidgetInput] = (*UpdateWidgetCommand)(nil)

// Execute updates the instance.
func (c *UpdateWidgetCommand) Execute(ctx context.Context, msg UpdateWidgetInput) error {
	if c.service == nil {
		return errors.New("update command requires service")
	}
	if msg.InstanceID == "" {
		return errors.New("update command requires instance id")
	}
	ctx = friendboard.ContextWithActivity(ctx, friendboard.ActivityContext{
		ActorID: msg.ActorID,
		Path:    msg.Path,
	})
	session := c.service.Session(msg.Path)
	patch := friendboard.UpdatePatch{Config: msg.Config, Order: msg.Order}
	if _, err := c.service.UpdateWidget(ctx, session, msg.InstanceID, patch); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "friendboard.widget.update", map[string]any{
		"instance_id": msg.InstanceID,
	})
	return nil
}
