// Package display abstracts the display-server connection.
package display

import (
	"context"
	"errors"
	"testing"

	"github.com/yndnr/snotify-go/internal/core/domain"
	"github.com/yndnr/snotify-go/internal/wire"
)

func TestMemory_CreateDestroy(t *testing.T) {
	m := NewMemory()

	id, err := m.CreateProxyWindow()
	if err != nil {
		t.Fatalf("CreateProxyWindow() error = %v", err)
	}
	if !m.Alive(id) {
		t.Error("window should be alive after creation")
	}

	if err := m.DestroyWindow(id); err != nil {
		t.Fatalf("DestroyWindow() error = %v", err)
	}
	if m.Alive(id) {
		t.Error("window should be gone after destruction")
	}
}

func TestMemory_OperationsOnDestroyedWindowFail(t *testing.T) {
	m := NewMemory()
	id, _ := m.CreateProxyWindow()
	if err := m.DestroyWindow(id); err != nil {
		t.Fatalf("DestroyWindow() error = %v", err)
	}

	var payload [wire.ChunkSize]byte

	if err := m.DestroyWindow(id); !errors.Is(err, domain.ErrWindowGone) {
		t.Errorf("second DestroyWindow() error = %v, want ErrWindowGone", err)
	}
	if err := m.SendStartupChunk(id, wire.KindBegin, payload); !errors.Is(err, domain.ErrWindowGone) {
		t.Errorf("SendStartupChunk() error = %v, want ErrWindowGone", err)
	}
	if err := m.SetStartupID(id, "T123"); !errors.Is(err, domain.ErrWindowGone) {
		t.Errorf("SetStartupID() error = %v, want ErrWindowGone", err)
	}
}

func TestMemory_SendRecordsInOrder(t *testing.T) {
	m := NewMemory()
	origin, _ := m.CreateProxyWindow()

	for i := 0; i < 3; i++ {
		var payload [wire.ChunkSize]byte
		payload[0] = byte(i)
		kind := wire.KindContinuation
		if i == 0 {
			kind = wire.KindBegin
		}
		if err := m.SendStartupChunk(origin, kind, payload); err != nil {
			t.Fatalf("SendStartupChunk(%d) error = %v", i, err)
		}
	}

	sent := m.Sent()
	if len(sent) != 3 {
		t.Fatalf("Sent() length = %d, want 3", len(sent))
	}
	for i, c := range sent {
		if c.Payload[0] != byte(i) {
			t.Errorf("chunk %d out of order: payload[0] = %d", i, c.Payload[0])
		}
	}
}

func TestMemory_FailSendsAfter(t *testing.T) {
	m := NewMemory()
	origin, _ := m.CreateProxyWindow()
	m.FailSendsAfter(2)

	var payload [wire.ChunkSize]byte
	kinds := []wire.Kind{wire.KindBegin, wire.KindContinuation}
	for i, kind := range kinds {
		if err := m.SendStartupChunk(origin, kind, payload); err != nil {
			t.Fatalf("send %d should succeed, got %v", i, err)
		}
	}
	if err := m.SendStartupChunk(origin, wire.KindContinuation, payload); !errors.Is(err, domain.ErrEventSend) {
		t.Errorf("third send error = %v, want ErrEventSend", err)
	}
}

func TestMemory_WatcherReceivesChunks(t *testing.T) {
	m := NewMemory()
	origin, _ := m.CreateProxyWindow()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := m.WatchStartupChunks(ctx)
	if err != nil {
		t.Fatalf("WatchStartupChunks() error = %v", err)
	}

	var payload [wire.ChunkSize]byte
	copy(payload[:], "remove: ID=T123\x00")
	if err := m.SendStartupChunk(origin, wire.KindBegin, payload); err != nil {
		t.Fatalf("SendStartupChunk() error = %v", err)
	}

	got := <-ch
	if got.Origin != origin {
		t.Errorf("chunk origin = %d, want %d", got.Origin, origin)
	}
	if got.Kind != wire.KindBegin {
		t.Errorf("chunk kind = %v, want KindBegin", got.Kind)
	}
	if got.Payload != payload {
		t.Errorf("chunk payload = %q, want %q", got.Payload[:], payload[:])
	}
}

func TestMemory_ClosedConnectionRejectsEverything(t *testing.T) {
	m := NewMemory()
	id, _ := m.CreateProxyWindow()
	if err := m.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if _, err := m.CreateProxyWindow(); !errors.Is(err, domain.ErrNoDisplay) {
		t.Errorf("CreateProxyWindow() after close error = %v, want ErrNoDisplay", err)
	}
	if err := m.DestroyWindow(id); !errors.Is(err, domain.ErrNoDisplay) {
		t.Errorf("DestroyWindow() after close error = %v, want ErrNoDisplay", err)
	}
}

func TestMemory_SetStartupID(t *testing.T) {
	m := NewMemory()
	id, _ := m.CreateProxyWindow()

	if err := m.SetStartupID(id, "host1_TIME7"); err != nil {
		t.Fatalf("SetStartupID() error = %v", err)
	}

	got, ok := m.StartupID(id)
	if !ok || got != "host1_TIME7" {
		t.Errorf("StartupID() = %q, %v; want %q, true", got, ok, "host1_TIME7")
	}
}
