// Package display abstracts the display-server connection.
package display

import (
	"context"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/yndnr/snotify-go/internal/core/domain"
	"github.com/yndnr/snotify-go/internal/wire"
)

// X11 is the real display connection, speaking the X protocol through
// jezek/xgb.
type X11 struct {
	conn   *xgb.Conn
	screen *xproto.ScreenInfo

	atomBegin     xproto.Atom
	atomInfo      xproto.Atom
	atomStartupID xproto.Atom
}

// ConnectX11 opens a connection to the X server named by display
// (e.g. ":0"); an empty display falls back to $DISPLAY.
func ConnectX11(display string) (*X11, error) {
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, domain.ErrNoDisplay.WithCause(err)
	}

	x := &X11{
		conn:   conn,
		screen: xproto.Setup(conn).DefaultScreen(conn),
	}

	for _, a := range []struct {
		name string
		dst  *xproto.Atom
	}{
		{AtomStartupInfoBegin, &x.atomBegin},
		{AtomStartupInfo, &x.atomInfo},
		{AtomStartupID, &x.atomStartupID},
	} {
		reply, err := xproto.InternAtom(conn, false, uint16(len(a.name)), a.name).Reply()
		if err != nil {
			conn.Close()
			return nil, domain.ErrNoDisplay.WithCause(err)
		}
		*a.dst = reply.Atom
	}

	return x, nil
}

// CreateProxyWindow implements Conn. The window is 1x1, off-screen at
// (-100,-100), override-redirect, and subscribed to StructureNotify and
// PropertyChange so it is a valid client-message origin.
func (x *X11) CreateProxyWindow() (domain.WindowID, error) {
	wid, err := xproto.NewWindowId(x.conn)
	if err != nil {
		return domain.None, domain.ErrProxyCreate.WithCause(err)
	}

	err = xproto.CreateWindowChecked(
		x.conn,
		x.screen.RootDepth,
		wid,
		x.screen.Root,
		-100, -100, 1, 1, 0,
		xproto.WindowClassInputOutput,
		x.screen.RootVisual,
		xproto.CwOverrideRedirect|xproto.CwEventMask,
		[]uint32{
			1,
			xproto.EventMaskStructureNotify | xproto.EventMaskPropertyChange,
		},
	).Check()
	if err != nil {
		return domain.None, domain.ErrProxyCreate.WithCause(err)
	}

	return domain.WindowID(wid), nil
}

// DestroyWindow implements Conn.
func (x *X11) DestroyWindow(id domain.WindowID) error {
	err := xproto.DestroyWindowChecked(x.conn, xproto.Window(id)).Check()
	if err != nil {
		return mapWindowError(err)
	}
	return nil
}

// SendStartupChunk implements Conn. The chunk travels as an 8-bit-format
// client message to the root window, propagate-false, delivered to
// clients holding PropertyChange on the root. Only the local send result
// is checked.
func (x *X11) SendStartupChunk(origin domain.WindowID, kind wire.Kind, payload [wire.ChunkSize]byte) error {
	msgType := x.atomInfo
	if kind == wire.KindBegin {
		msgType = x.atomBegin
	}

	ev := xproto.ClientMessageEvent{
		Format: 8,
		Window: xproto.Window(origin),
		Type:   msgType,
		Data:   xproto.ClientMessageDataUnionData8New(payload[:]),
	}

	err := xproto.SendEventChecked(
		x.conn,
		false,
		x.screen.Root,
		xproto.EventMaskPropertyChange,
		string(ev.Bytes()),
	).Check()
	if err != nil {
		return domain.ErrEventSend.WithCause(mapWindowError(err))
	}
	return nil
}

// SetStartupID implements Conn.
func (x *X11) SetStartupID(id domain.WindowID, token string) error {
	err := xproto.ChangePropertyChecked(
		x.conn,
		xproto.PropModeReplace,
		xproto.Window(id),
		x.atomStartupID,
		xproto.AtomString,
		8,
		uint32(len(token)),
		[]byte(token),
	).Check()
	if err != nil {
		return domain.ErrPropertySet.WithCause(mapWindowError(err))
	}
	return nil
}

// Screen implements Conn.
func (x *X11) Screen() int {
	return x.conn.DefaultScreen
}

// Close implements Conn.
func (x *X11) Close() error {
	x.conn.Close()
	return nil
}

// WatchStartupChunks implements Watcher. The caller is expected to own
// the connection: cancelling the context closes it, which is what
// unblocks the event wait.
func (x *X11) WatchStartupChunks(ctx context.Context) (<-chan StartupChunk, error) {
	err := xproto.ChangeWindowAttributesChecked(
		x.conn,
		x.screen.Root,
		xproto.CwEventMask,
		[]uint32{xproto.EventMaskPropertyChange},
	).Check()
	if err != nil {
		return nil, domain.ErrNoDisplay.WithCause(err)
	}

	ch := make(chan StartupChunk, 64)

	go func() {
		<-ctx.Done()
		x.conn.Close()
	}()

	go func() {
		defer close(ch)
		for {
			ev, xerr := x.conn.WaitForEvent()
			if ev == nil && xerr == nil {
				return // connection closed
			}
			if xerr != nil {
				continue
			}

			cm, ok := ev.(xproto.ClientMessageEvent)
			if !ok || cm.Format != 8 {
				continue
			}

			var kind wire.Kind
			switch cm.Type {
			case x.atomBegin:
				kind = wire.KindBegin
			case x.atomInfo:
				kind = wire.KindContinuation
			default:
				continue
			}

			var payload [wire.ChunkSize]byte
			copy(payload[:], cm.Data.Data8)

			select {
			case ch <- StartupChunk{Origin: domain.WindowID(cm.Window), Kind: kind, Payload: payload}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

// mapWindowError folds the X server's BadWindow response into the domain
// taxonomy so callers can test for a vanished window uniformly.
func mapWindowError(err error) error {
	if _, ok := err.(xproto.WindowError); ok {
		return domain.ErrWindowGone.WithCause(err)
	}
	return err
}
