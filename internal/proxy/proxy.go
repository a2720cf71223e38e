// Package proxy sends startup-notification messages over a throwaway
// proxy window.
//
// The wire format piggybacks on the client-message broadcast primitive,
// which needs a valid origin window; the proxy window exists only long
// enough to originate the chunk sequence and is destroyed on every exit
// path, success or failure.
package proxy

import (
	"github.com/yndnr/snotify-go/internal/display"
	"github.com/yndnr/snotify-go/internal/wire"
)

// Send broadcasts one serialized startup-notification message.
//
// It creates a proxy window, emits the message's chunks in order, and
// destroys the window before returning. A chunk send failure aborts the
// sequence immediately; the destroy still runs. The destroy's own result
// is ignored: the window is gone either way once the connection drops.
func Send(conn display.Conn, msg []byte) error {
	origin, err := conn.CreateProxyWindow()
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.DestroyWindow(origin)
	}()

	for _, chunk := range wire.Split(msg) {
		if err := conn.SendStartupChunk(origin, chunk.Kind, chunk.Data); err != nil {
			return err
		}
	}
	return nil
}
