package friendboard

import "sync"

// ModeListener observes mode transitions.
type ModeListener func(Mode)

// ModeController is the two-state View/Edit machine for one page session.
// Controllers are owned and injected explicitly; there is no package-level
// instance. State starts in View and is never persisted.
type ModeController struct {
	mu        sync.Mutex
	mode      Mode
	listeners map[int]ModeListener
	next      int
}

// NewModeController creates a controller in View mode.
func NewModeController() *ModeController {
	return &ModeController{
		mode:      ModeView,
		listeners: make(map[int]ModeListener),
	}
}

// Current returns the current mode.
func (c *ModeController) Current() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// EnterEdit transitions to Edit when the identity is admin. For any other
// identity the call is a silent no-op: the affordance should never be exposed
// to non-admins, so there is nothing to report.
func (c *ModeController) EnterEdit(identity Identity) {
	if identity != IdentityAdmin {
		return
	}
	c.transition(ModeEdit)
}

// EnterView transitions to View. Always permitted.
func (c *ModeController) EnterView() {
	c.transition(ModeView)
}

// Subscribe registers a listener invoked on every actual transition. The
// returned cancel removes it.
func (c *ModeController) Subscribe(fn ModeListener) func() {
	c.mu.Lock()
	id := c.next
	c.next++
	c.listeners[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *ModeController) transition(mode Mode) {
	c.mu.Lock()
	if c.mode == mode {
		c.mu.Unlock()
		return
	}
	c.mode = mode
	notify := make([]ModeListener, 0, len(c.listeners))
	for _, fn := range c.listeners {
		notify = append(notify, fn)
	}
	c.mu.Unlock()
	for _, fn := range notify {
		fn(mode)
	}
}
