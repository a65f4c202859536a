// Package notify shows short-lived status messages. Only the newest notice
// is visible, and each notice expires on its own timer.
package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a notice stays visible.
const DefaultTTL = 3 * time.Second

// Kind distinguishes success from error notices.
type Kind int

// Notice kinds.
const (
	KindSuccess Kind = iota
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Notice is one displayed message.
type Notice struct {
	CreatedAt time.Time
	Message   string
	Kind      Kind
	ID        uuid.UUID
}

// Scheduler runs f after d. It returns a function that cancels the call.
type Scheduler func(d time.Duration, f func()) (cancel func() bool)

// AfterFunc schedules with time.AfterFunc.
func AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithTTL sets how long notices stay visible.
func WithTTL(ttl time.Duration) Option {
	return func(n *Notifier) {
		if ttl > 0 {
			n.ttl = ttl
		}
	}
}

// WithScheduler replaces the expiry scheduler.
func WithScheduler(s Scheduler) Option {
	return func(n *Notifier) {
		if s != nil {
			n.schedule = s
		}
	}
}

// WithClock sets the clock used to stamp notices.
func WithClock(now func() time.Time) Option {
	return func(n *Notifier) {
		if now != nil {
			n.now = now
		}
	}
}

// Notifier holds the currently visible notice.
type Notifier struct {
	now      func() time.Time
	schedule Scheduler
	current  *Notice
	cancels  map[uuid.UUID]func() bool
	ttl      time.Duration
	mu       sync.Mutex
}

// New creates a Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		ttl:      DefaultTTL,
		schedule: AfterFunc,
		now:      time.Now,
		cancels:  make(map[uuid.UUID]func() bool),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// TTL returns the configured visibility window.
func (n *Notifier) TTL() time.Duration {
	return n.ttl
}

// Notify replaces the visible notice with message and schedules its expiry.
func (n *Notifier) Notify(message string, kind Kind) Notice {
	notice := Notice{
		ID:        newID(),
		Message:   message,
		Kind:      kind,
		CreatedAt: n.now(),
	}

	n.mu.Lock()
	n.current = &notice
	n.mu.Unlock()

	slog.Debug("Notice shown", "id", notice.ID, "kind", kind, "message", message)

	id := notice.ID
	cancel := n.schedule(n.ttl, func() { n.Expire(id) })

	n.mu.Lock()
	// The timer may already have fired with a zero TTL scheduler.
	if n.current != nil && n.current.ID == id {
		n.cancels[id] = cancel
	}
	n.mu.Unlock()

	return notice
}

// Success is shorthand for Notify(message, KindSuccess).
func (n *Notifier) Success(message string) Notice {
	return n.Notify(message, KindSuccess)
}

// Error is shorthand for Notify(message, KindError).
func (n *Notifier) Error(message string) Notice {
	return n.Notify(message, KindError)
}

// Current returns the visible notice.
func (n *Notifier) Current() (Notice, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current == nil {
		return Notice{}, false
	}
	return *n.current, true
}

// Expire clears the visible notice only if it is still the one identified
// by id. It reports whether anything was cleared.
func (n *Notifier) Expire(id uuid.UUID) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.cancels, id)
	if n.current == nil || n.current.ID != id {
		return false
	}
	n.current = nil
	return true
}

// Close cancels every outstanding expiry timer.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for id, cancel := range n.cancels {
		if cancel != nil {
			cancel()
		}
		delete(n.cancels, id)
	}
}

func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
