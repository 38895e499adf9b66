package friendboard

import "errors"

// Engine errors. Forbidden and ErrMultiplicity are routine outcomes the UI
// should usually prevent; the store enforces them regardless. ErrConflict is
// retryable after re-fetching the friend's instance list; the rest are
// terminal for the call.
var (
	ErrUnknownType  = errors.New("friendboard: unknown widget type")
	ErrMultiplicity = errors.New("friendboard: widget type already placed for friend")
	ErrNotFound     = errors.New("friendboard: not found")
	ErrForbidden    = errors.New("friendboard: mutation requires admin identity in edit mode")
	ErrSetMismatch  = errors.New("friendboard: reorder ids do not match current instance set")
	ErrConflict     = errors.New("friendboard: concurrent write detected")
)
