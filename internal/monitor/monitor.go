// Package monitor observes startup-notification traffic on a display.
//
// Senders broadcast each message as an ordered chunk sequence from a
// throwaway origin window. The monitor reassembles sequences per origin,
// parses the completed messages, and hands them to a callback. It is the
// receive-side counterpart of the proxy sender and exists for the
// monitor role of the protocol (launch feedback, debugging).
package monitor

import (
	"context"

	"github.com/yndnr/snotify-go/internal/core/domain"
	"github.com/yndnr/snotify-go/internal/display"
	"github.com/yndnr/snotify-go/internal/telemetry/logger"
	"github.com/yndnr/snotify-go/internal/telemetry/metric"
	"github.com/yndnr/snotify-go/internal/wire"
)

// Event is one complete startup-notification message seen on the wire.
type Event struct {
	// Origin is the proxy window the sender used.
	Origin domain.WindowID

	// Verb is the message verb ("new", "change", "remove").
	Verb string

	// Token is the activation token the message refers to.
	Token string

	// Params holds all message parameters, including ID.
	Params map[string]string
}

// Handler consumes monitor events.
type Handler func(Event)

// Monitor reassembles and parses inbound protocol messages.
type Monitor struct {
	watcher display.Watcher
	log     logger.Logger
	metrics *metric.Registry

	// partial accumulates chunk payloads per origin window until a
	// message terminator arrives.
	partial map[domain.WindowID][][wire.ChunkSize]byte
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithLogger replaces the logger.
func WithLogger(l logger.Logger) Option {
	return func(m *Monitor) { m.log = l }
}

// WithMetrics replaces the metrics registry.
func WithMetrics(r *metric.Registry) Option {
	return func(m *Monitor) { m.metrics = r }
}

// New creates a Monitor reading from the given watcher.
func New(w display.Watcher, opts ...Option) *Monitor {
	m := &Monitor{
		watcher: w,
		log:     logger.Default(),
		metrics: metric.New(),
		partial: make(map[domain.WindowID][][wire.ChunkSize]byte),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run subscribes to the display and delivers events to handle until the
// context is cancelled or the subscription ends. Run owns the chunk
// stream; it is not safe for concurrent use.
func (m *Monitor) Run(ctx context.Context, handle Handler) error {
	ch, err := m.watcher.WatchStartupChunks(ctx)
	if err != nil {
		return err
	}

	for chunk := range ch {
		m.ingest(chunk, handle)
	}
	return ctx.Err()
}

// ingest folds one chunk into the per-origin reassembly state.
func (m *Monitor) ingest(c display.StartupChunk, handle Handler) {
	switch c.Kind {
	case wire.KindBegin:
		// A begin chunk abandons any unfinished sequence from the same
		// origin; the sender never interleaves messages on one window.
		m.partial[c.Origin] = [][wire.ChunkSize]byte{c.Payload}

	case wire.KindContinuation:
		seq, ok := m.partial[c.Origin]
		if !ok {
			m.log.Debug("continuation chunk without begin dropped", "origin", c.Origin)
			return
		}
		m.partial[c.Origin] = append(seq, c.Payload)
	}

	raw, done := wire.Join(m.partial[c.Origin])
	if !done {
		return
	}
	delete(m.partial, c.Origin)

	msg, err := wire.Parse(raw)
	if err != nil {
		m.log.Warn("unparseable startup notification message",
			"origin", c.Origin, "error", err)
		return
	}

	m.metrics.MessagesSeen.WithLabelValues(msg.Verb).Inc()
	handle(Event{
		Origin: c.Origin,
		Verb:   msg.Verb,
		Token:  msg.ID(),
		Params: msg.Params,
	})
}
