// Package notify keeps the single user-facing message slot. Rapid-fire
// notifications overwrite rather than queue, so the user always sees the
// outcome of the most recent action instead of a growing backlog.
package notify

import (
	"sync"
	"time"
)

// Severity of a message, mirrored by the presenter's styling.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Message is the currently displayed notification.
type Message struct {
	Text     string
	Severity Severity
	Expiry   time.Time
}

// Test seams.
var (
	timeNow   = time.Now
	afterFunc = time.AfterFunc
)

// Center holds zero or one active message. A new message supersedes the
// current one immediately; every message auto-dismisses after the TTL unless
// dismissed manually first.
type Center struct {
	mu       sync.Mutex
	current  *Message
	gen      uint64
	ttl      time.Duration
	onChange func(*Message)
}

// NewCenter builds a Center. onChange, when non-nil, receives the new message
// on display and nil on dismissal; it is called outside the internal lock.
func NewCenter(ttl time.Duration, onChange func(*Message)) *Center {
	return &Center{ttl: ttl, onChange: onChange}
}

// Notify replaces any displayed message and schedules auto-dismissal.
func (c *Center) Notify(text string, severity Severity) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	m := &Message{Text: text, Severity: severity, Expiry: timeNow().Add(c.ttl)}
	c.current = m
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(m)
	}
	afterFunc(c.ttl, func() { c.expire(gen) })
}

// Dismiss removes the displayed message, if any.
func (c *Center) Dismiss() {
	c.mu.Lock()
	c.gen++
	had := c.current != nil
	c.current = nil
	fn := c.onChange
	c.mu.Unlock()

	if had && fn != nil {
		fn(nil)
	}
}

// Current returns the displayed message, or nil.
func (c *Center) Current() *Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// expire dismisses the message of generation gen. A stale timer whose message
// was already superseded or dismissed is a no-op.
func (c *Center) expire(gen uint64) {
	c.mu.Lock()
	if c.gen != gen || c.current == nil {
		c.mu.Unlock()
		return
	}
	c.current = nil
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(nil)
	}
}
