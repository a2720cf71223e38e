// Package proxy sends startup-notification messages over a throwaway
// proxy window.
package proxy

import (
	"bytes"
	"errors"
	"testing"

	"github.com/yndnr/snotify-go/internal/core/domain"
	"github.com/yndnr/snotify-go/internal/display"
	"github.com/yndnr/snotify-go/internal/wire"
)

func TestSend_ChunksArriveInOrder(t *testing.T) {
	m := display.NewMemory()
	msg := wire.RemoveMessage("workstation4217_TIME3735928559") // 42 bytes, 3 chunks

	if err := Send(m, msg); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	sent := m.Sent()
	if len(sent) != 3 {
		t.Fatalf("sent %d chunks, want 3", len(sent))
	}

	var joined []byte
	for i, c := range sent {
		wantKind := wire.KindContinuation
		if i == 0 {
			wantKind = wire.KindBegin
		}
		if c.Kind != wantKind {
			t.Errorf("chunk %d kind = %v, want %v", i, c.Kind, wantKind)
		}
		if c.Origin != sent[0].Origin {
			t.Errorf("chunk %d origin = %d, want single origin %d", i, c.Origin, sent[0].Origin)
		}
		joined = append(joined, c.Payload[:]...)
	}

	if !bytes.Equal(joined[:len(msg)], msg) {
		t.Error("reassembled chunks differ from the message")
	}
}

func TestSend_ProxyWindowDestroyedOnSuccess(t *testing.T) {
	m := display.NewMemory()

	if err := Send(m, wire.RemoveMessage("T123")); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	origin := m.Sent()[0].Origin
	if !m.EverCreated(origin) {
		t.Fatal("origin window was never created on the display")
	}
	if m.Alive(origin) {
		t.Error("proxy window still alive after Send")
	}

	// A follow-up operation referencing the endpoint fails.
	if err := m.DestroyWindow(origin); !errors.Is(err, domain.ErrWindowGone) {
		t.Errorf("follow-up DestroyWindow() error = %v, want ErrWindowGone", err)
	}
}

func TestSend_ProxyWindowDestroyedOnFailure(t *testing.T) {
	m := display.NewMemory()
	m.FailSendsAfter(1)

	msg := wire.RemoveMessage("workstation4217_TIME3735928559") // 3 chunks
	err := Send(m, msg)
	if !errors.Is(err, domain.ErrEventSend) {
		t.Fatalf("Send() error = %v, want ErrEventSend", err)
	}

	// One chunk went out before the failure; the endpoint is gone anyway.
	sent := m.Sent()
	if len(sent) != 1 {
		t.Fatalf("sent %d chunks before failing, want 1", len(sent))
	}
	if m.Alive(sent[0].Origin) {
		t.Error("proxy window still alive after failed Send")
	}
}

func TestSend_CreateFailureSurfaced(t *testing.T) {
	m := display.NewMemory()
	m.Close()

	err := Send(m, wire.RemoveMessage("T123"))
	if !errors.Is(err, domain.ErrNoDisplay) {
		t.Errorf("Send() error = %v, want ErrNoDisplay", err)
	}
}

func TestSend_EmptyMessageStillCleansUp(t *testing.T) {
	m := display.NewMemory()

	if err := Send(m, nil); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if len(m.Sent()) != 0 {
		t.Errorf("sent %d chunks for empty message, want 0", len(m.Sent()))
	}
}
