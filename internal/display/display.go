// Package display abstracts the display-server connection.
package display

import (
	"context"

	"github.com/yndnr/snotify-go/internal/core/domain"
	"github.com/yndnr/snotify-go/internal/wire"
)

// Atom names used by the startup-notification protocol.
const (
	AtomStartupInfoBegin = "_NET_STARTUP_INFO_BEGIN"
	AtomStartupInfo      = "_NET_STARTUP_INFO"
	AtomStartupID        = "_NET_STARTUP_ID"
)

// Conn is a display-server connection carrying the startup-notification
// protocol.
//
// Implementations preserve per-connection send order: chunks sent in
// sequence from one goroutine are observed by receivers in that sequence.
type Conn interface {
	// CreateProxyWindow creates an invisible, unmanaged 1x1 window
	// positioned off-screen, subscribed to structure and property-change
	// notifications. Its only purpose is to originate client messages.
	CreateProxyWindow() (domain.WindowID, error)

	// DestroyWindow destroys a window created on this connection.
	DestroyWindow(id domain.WindowID) error

	// SendStartupChunk broadcasts one message chunk from origin to the
	// root window, fire-and-forget. Only local send success is checked;
	// receipt is never acknowledged.
	SendStartupChunk(origin domain.WindowID, kind wire.Kind, payload [wire.ChunkSize]byte) error

	// SetStartupID advertises the token on a window as its startup-id
	// string property.
	SetStartupID(id domain.WindowID, token string) error

	// Screen returns the default screen number of the connection.
	Screen() int

	// Close severs the connection.
	Close() error
}

// StartupChunk is one inbound protocol event as seen by a monitor.
type StartupChunk struct {
	// Origin is the window the sender created to originate the message.
	Origin domain.WindowID

	// Kind distinguishes a message's first chunk from continuations.
	Kind wire.Kind

	// Payload is the fixed-size chunk data.
	Payload [wire.ChunkSize]byte
}

// Watcher is the receive side of the protocol: a connection that can
// observe the startup-info chunks other clients broadcast.
type Watcher interface {
	// WatchStartupChunks subscribes to inbound chunks until ctx is done.
	// The channel is closed when the subscription ends.
	WatchStartupChunks(ctx context.Context) (<-chan StartupChunk, error)
}
