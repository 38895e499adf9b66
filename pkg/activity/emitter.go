package activity

import "context"

// Config toggles the audit trail.
type Config struct {
	Enabled bool
	Channel string
}

// Emitter pushes events through its hooks when enabled.
type Emitter struct {
	hooks Hooks
	cfg   Config
}

// NewEmitter builds an emitter. An emitter with no hooks is disabled
// regardless of config.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	return &Emitter{hooks: hooks, cfg: cfg}
}

// Enabled reports whether Emit will do anything.
func (e *Emitter) Enabled() bool {
	return e != nil && e.cfg.Enabled && len(e.hooks) > 0
}

// Emit publishes an event to every hook. No-op when disabled.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if !e.Enabled() {
		return nil
	}
	if evt.Channel == "" {
		evt.Channel = e.cfg.Channel
	}
	return e.hooks.Notify(ctx, evt)
}
