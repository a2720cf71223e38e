// Package binding glues the activation tracker into an event-driven
// control loop.
//
// The window-manager round trip is inherently asynchronous: a token is
// requested now and arrives as a later event. The binding models that as
// a three-state wait with bounded patience instead of blocking:
//
//	Idle -> AwaitingToken -> Ready -> Idle
//
// A trigger arms a deadline and moves to AwaitingToken; the token-ready
// event moves to Ready; the next window-creation tick consumes the token
// (or, past the deadline, proceeds untagged) and returns to Idle. The
// host event loop only has to deliver three things: the token-ready
// event, window-close events, and a per-cycle tick.
package binding

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/snotify-go/internal/core/domain"
	"github.com/yndnr/snotify-go/internal/telemetry/logger"
	"github.com/yndnr/snotify-go/internal/telemetry/metric"
)

// DefaultPatience bounds the wait for a requested token.
const DefaultPatience = 2 * time.Second

// DefaultTriggerInterval is the minimum spacing between honored
// triggers, absorbing key repeat.
const DefaultTriggerInterval = 250 * time.Millisecond

// TokenRequester issues activation tokens. *service.ActivationService
// satisfies it.
type TokenRequester interface {
	RequestToken(ctx context.Context, window domain.WindowID) (string, error)
}

// Decision is the outcome of one event-loop tick: whether the
// application should build its deferred window now, and with what token.
type Decision struct {
	// Create is true when the deferred window should be built this cycle.
	Create bool

	// Token tags the new window; empty means the deadline expired and the
	// window goes untagged.
	Token string
}

// Clock supplies the current instant; injectable for tests.
type Clock func() time.Time

// Binding is the event-loop side of the activation protocol.
type Binding struct {
	requester TokenRequester
	log       logger.Logger
	metrics   *metric.Registry
	clock     Clock
	patience  time.Duration
	limiter   *rate.Limiter

	mu       sync.Mutex
	state    domain.State
	token    string
	pending  *domain.PendingActivation
	deadline time.Time
}

// Option configures a Binding.
type Option func(*Binding)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(b *Binding) { b.clock = c }
}

// WithPatience replaces the token-wait deadline duration.
func WithPatience(d time.Duration) Option {
	return func(b *Binding) { b.patience = d }
}

// WithLogger replaces the logger.
func WithLogger(l logger.Logger) Option {
	return func(b *Binding) { b.log = l }
}

// WithMetrics replaces the metrics registry.
func WithMetrics(m *metric.Registry) Option {
	return func(b *Binding) { b.metrics = m }
}

// WithTriggerInterval replaces the trigger debounce spacing.
func WithTriggerInterval(d time.Duration) Option {
	return func(b *Binding) { b.limiter = rate.NewLimiter(rate.Every(d), 1) }
}

// New creates a Binding in the Idle state.
func New(requester TokenRequester, opts ...Option) *Binding {
	b := &Binding{
		requester: requester,
		log:       logger.Default(),
		metrics:   metric.New(),
		clock:     time.Now,
		patience:  DefaultPatience,
		limiter:   rate.NewLimiter(rate.Every(DefaultTriggerInterval), 1),
		state:     domain.StateIdle,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Start seeds the binding with an environment-supplied token, if any.
// With a token the binding begins in Ready and the first window built is
// tagged; without one it begins in Idle.
func (b *Binding) Start(envToken string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if envToken == "" {
		b.state = domain.StateIdle
		return
	}
	b.token = envToken
	b.state = domain.StateReady
	b.deadline = b.clock().Add(b.patience)
	b.log.Debug("starting with inherited token", "token", envToken, "state", b.state)
}

// State returns the current state.
func (b *Binding) State() domain.State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Trigger handles an explicit user action on an existing window: request
// a fresh token and arm the deadline. Triggers inside the debounce
// window, or while a request is already pending, are ignored.
//
// A requester failure (no display, protocol unsupported) leaves the
// binding Idle and is returned for reporting; it never terminates the
// process.
func (b *Binding) Trigger(ctx context.Context, window domain.WindowID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.limiter.AllowN(b.clock(), 1) {
		b.log.Debug("trigger debounced", "window", window)
		return nil
	}
	if b.state != domain.StateIdle {
		b.log.Debug("trigger ignored", "window", window, "state", b.state)
		return nil
	}

	requestID, err := b.requester.RequestToken(ctx, window)
	if err != nil {
		b.log.Warn("activation request failed", "window", window, "error", err)
		return err
	}

	b.pending = &domain.PendingActivation{
		RequestID: requestID,
		Window:    window,
		Deadline:  b.clock().Add(b.patience),
	}
	b.deadline = b.pending.Deadline
	b.state = domain.StateAwaitingToken
	b.log.Debug("awaiting activation token", "window", window, "request_id", requestID)
	return nil
}

// TokenReady delivers the asynchronous token notification. It implements
// service.TokenSink. Notifications for a window with no pending request
// (closed meanwhile, or a stale duplicate) are dropped.
func (b *Binding) TokenReady(window domain.WindowID, requestID, token string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != domain.StateAwaitingToken || b.pending == nil || b.pending.Window != window {
		b.log.Debug("stale token notification dropped", "window", window, "request_id", requestID)
		return
	}

	b.pending.Token = token
	b.token = token
	b.state = domain.StateReady
	b.deadline = b.clock().Add(b.patience)
	b.log.Debug("activation token ready", "window", window, "request_id", requestID, "token", token)
}

// WindowClosed drops a pending request whose owning window went away.
// No cancellation message is sent to the window manager.
func (b *Binding) WindowClosed(window domain.WindowID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pending == nil || b.pending.Window != window {
		return
	}
	b.log.Debug("pending activation dropped with window", "window", window,
		"request_id", b.pending.RequestID)
	b.reset()
}

// Tick is the per-cycle deadline check. In Ready it consumes the token
// and directs the caller to build the tagged window; past the deadline in
// AwaitingToken it directs an untagged build. Either way the binding
// returns to Idle; otherwise the decision is empty.
func (b *Binding) Tick() Decision {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case domain.StateReady:
		token := b.token
		b.reset()
		return Decision{Create: true, Token: token}

	case domain.StateAwaitingToken:
		if b.clock().Before(b.deadline) {
			return Decision{}
		}
		b.metrics.DeadlineExpired.Inc()
		b.log.Warn("activation deadline expired, proceeding untagged",
			"window", b.pending.Window, "request_id", b.pending.RequestID)
		b.reset()
		return Decision{Create: true}

	default:
		return Decision{}
	}
}

// reset returns to Idle. Caller holds the lock.
func (b *Binding) reset() {
	b.state = domain.StateIdle
	b.token = ""
	b.pending = nil
	b.deadline = time.Time{}
}
