package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	friendboard "github.com/goliatone/go-friendboard/components/friendboard"
)

// SeedInput points at the manifest to apply.
type SeedInput struct {
	ManifestPath string `json:"manifest_path"`
	Path         string `json:"path"`
	ActorID      string `json:"actor_id"`
}

type seedService interface {
	Session(path string) friendboard.Session
	ApplySeed(ctx context.Context, session friendboard.Session, doc *friendboard.SeedManifest) error
}

// SeedCommand provisions friends and starter widgets from a manifest file.
type SeedCommand struct {
	service   seedService
	telemetry Telemetry
}

// NewSeedCommand wires dependencies.
func NewSeedCommand(service seedService, telemetry Telemetry) *SeedCommand {
	return &SeedCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SeedInput] = (*SeedCommand)(nil)

// Execute reads the manifest and applies it.
func (c *SeedCommand) Execute(ctx context.Context, msg SeedInput) error {
	if c.service == nil {
		return errors.New("seed command requires service")
	}
	if msg.ManifestPath == "" {
		return errors.New("seed command requires manifest path")
	}
	doc, err := friendboard.ReadSeedManifest(msg.ManifestPath)
	if err != nil {
		return err
	}
	ctx = friendboard.ContextWithActivity(ctx, friendboard.ActivityContext{
		ActorID: msg.ActorID,
		Path:    msg.Path,
	})
	session := c.service.Session(msg.Path)
	if err := c.service.ApplySeed(ctx, session, doc); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "friendboard.seed", map[string]any{
		"manifest": msg.ManifestPath,
		"friends":  len(doc.Friends),
	})
	return nil
}
