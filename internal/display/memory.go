// Package display abstracts the display-server connection.
package display

import (
	"context"
	"sync"

	"github.com/yndnr/snotify-go/internal/core/domain"
	"github.com/yndnr/snotify-go/internal/wire"
)

// Memory is an in-process display connection. It records created windows,
// properties, and broadcast chunks, and replays chunks to watchers, so
// the protocol engine can be exercised without a display server.
type Memory struct {
	mu         sync.Mutex
	nextID     domain.WindowID
	alive      map[domain.WindowID]bool
	known      map[domain.WindowID]bool // ever created, even if destroyed
	props      map[domain.WindowID]map[string]string
	sent       []StartupChunk
	watchers   []chan StartupChunk
	closed     bool
	sendBudget int // sends remaining before injected failure; -1 = unlimited
}

// NewMemory creates an empty in-process display.
func NewMemory() *Memory {
	return &Memory{
		nextID:     1,
		alive:      make(map[domain.WindowID]bool),
		known:      make(map[domain.WindowID]bool),
		props:      make(map[domain.WindowID]map[string]string),
		sendBudget: -1,
	}
}

// FailSendsAfter makes SendStartupChunk fail once n further sends have
// succeeded. Used to exercise mid-sequence transport failures.
func (m *Memory) FailSendsAfter(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendBudget = n
}

// CreateProxyWindow implements Conn.
func (m *Memory) CreateProxyWindow() (domain.WindowID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return domain.None, domain.ErrNoDisplay
	}

	id := m.nextID
	m.nextID++
	m.alive[id] = true
	m.known[id] = true
	m.props[id] = make(map[string]string)
	return id, nil
}

// DestroyWindow implements Conn. Destroying an unknown or already
// destroyed window fails with ErrWindowGone.
func (m *Memory) DestroyWindow(id domain.WindowID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return domain.ErrNoDisplay
	}
	if !m.alive[id] {
		return domain.ErrWindowGone
	}
	delete(m.alive, id)
	return nil
}

// SendStartupChunk implements Conn. The origin window must be alive.
func (m *Memory) SendStartupChunk(origin domain.WindowID, kind wire.Kind, payload [wire.ChunkSize]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return domain.ErrNoDisplay
	}
	if !m.alive[origin] {
		return domain.ErrWindowGone
	}
	if m.sendBudget == 0 {
		return domain.ErrEventSend.WithDetails("injected send failure")
	}
	if m.sendBudget > 0 {
		m.sendBudget--
	}

	chunk := StartupChunk{Origin: origin, Kind: kind, Payload: payload}
	m.sent = append(m.sent, chunk)
	for _, w := range m.watchers {
		select {
		case w <- chunk:
		default: // slow watcher, drop rather than block the sender
		}
	}
	return nil
}

// SetStartupID implements Conn.
func (m *Memory) SetStartupID(id domain.WindowID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return domain.ErrNoDisplay
	}
	if !m.alive[id] {
		return domain.ErrWindowGone
	}
	m.props[id][AtomStartupID] = token
	return nil
}

// Screen implements Conn.
func (m *Memory) Screen() int { return 0 }

// Close implements Conn.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	for _, w := range m.watchers {
		close(w)
	}
	m.watchers = nil
	return nil
}

// WatchStartupChunks implements Watcher.
func (m *Memory) WatchStartupChunks(ctx context.Context) (<-chan StartupChunk, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, domain.ErrNoDisplay
	}
	ch := make(chan StartupChunk, 64)
	m.watchers = append(m.watchers, ch)
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, w := range m.watchers {
			if w == ch {
				m.watchers = append(m.watchers[:i], m.watchers[i+1:]...)
				close(ch)
				break
			}
		}
	}()

	return ch, nil
}

// Alive reports whether a window currently exists on the display.
func (m *Memory) Alive(id domain.WindowID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.alive[id]
}

// EverCreated reports whether a window id was ever created here.
func (m *Memory) EverCreated(id domain.WindowID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.known[id]
}

// StartupID returns the startup-id property advertised on a window.
func (m *Memory) StartupID(id domain.WindowID) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.props[id][AtomStartupID]
	return v, ok
}

// Sent returns a copy of every chunk broadcast so far, in send order.
func (m *Memory) Sent() []StartupChunk {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]StartupChunk, len(m.sent))
	copy(out, m.sent)
	return out
}
