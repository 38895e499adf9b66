package friendboard

import "context"

// ActivityContext carries actor identifiers for audit events emitted by the
// service on successful mutations.
type ActivityContext struct {
	ActorID string
	Path    string
}

type activityContextKey struct{}

// ContextWithActivity stores activity context on the provided context.
func ContextWithActivity(ctx context.Context, meta ActivityContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, activityContextKey{}, meta)
}

// ActivityFrom extracts the activity context, zero when absent.
func ActivityFrom(ctx context.Context) ActivityContext {
	if ctx == nil {
		return ActivityContext{}
	}
	if meta, ok := ctx.Value(activityContextKey{}).(ActivityContext); ok {
		return meta
	}
	return ActivityContext{}
}
