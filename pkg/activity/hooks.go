package activity

import (
	"context"
	"errors"
)

// Hook receives audit events.
type Hook interface {
	Notify(ctx context.Context, evt Event) error
}

// HookFunc adapts a function to the Hook interface.
type HookFunc func(ctx context.Context, evt Event) error

// Notify calls fn.
func (fn HookFunc) Notify(ctx context.Context, evt Event) error {
	return fn(ctx, evt)
}

// Hooks is an ordered set of hooks notified for each event.
type Hooks []Hook

// Notify normalizes the event and fans it out. Events missing a verb or
// object type are skipped silently; hook errors are joined so one failing
// sink does not starve the rest.
func (h Hooks) Notify(ctx context.Context, evt Event) error {
	if len(h) == 0 {
		return nil
	}
	if !evt.normalize() {
		return nil
	}
	var errs error
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, evt); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}
