package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	friendboard "github.com/goliatone/go-friendboard/components/friendboard"
)

// ReorderWidgetsInput contains the reorder payload. InstanceIDs must be a
// full permutation of the friend's current instance set.
type ReorderWidgetsInput struct {
	Path        string   `json:"path"`
	FriendID    string   `json:"friend_id"`
	InstanceIDs []string `json:"instance_ids"`
	ActorID     string   `json:"actor_id"`
}

type reorderService interface {
	Session(path string) friendboard.Session
	ReorderWidgets(ctx context.Context, session friendboard.Session, friendID string, orderedIDs []string) error
}

// ReorderWidgetsCommand wraps Service.ReorderWidgets.
type ReorderWidgetsCommand struct {
	service   reorderService
	telemetry Telemetry
}

// NewReorderWidgetsCommand builds the command.
func NewReorderWidgetsCommand(service reorderService, telemetry Telemetry) *ReorderWidgetsCommand {
	return &ReorderWidgetsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ReorderWidgetsInput] = (*ReorderWidgetsCommand)(nil)

// Execute applies the new ordering.
func (c *ReorderWidgetsCommand) Execute(ctx context.Context, msg ReorderWidgetsInput) error {
	if c.service == nil {
		return errors.New("reorder command requires service")
	}
	ctx = friendboard.ContextWithActivity(ctx, friendboard.ActivityContext{
		ActorID: msg.ActorID,
		Path:    msg.Path,
	})
	session := c.service.Session(msg.Path)
	if err := c.service.ReorderWidgets(ctx, session, msg.FriendID, msg.InstanceIDs); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "friendboard.widget.reorder", map[string]any{
		"friend_id": msg.FriendID,
		"count":     len(msg.InstanceIDs),
	})
	return nil
}
