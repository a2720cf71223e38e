// Package service provides the activation session tracker for snotify.
package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/snotify-go/internal/core/domain"
	"github.com/yndnr/snotify-go/internal/display"
	"github.com/yndnr/snotify-go/internal/wire"
)

// chanSink collects token-ready notifications on a channel.
type chanSink struct {
	ch chan tokenReady
}

type tokenReady struct {
	window    domain.WindowID
	requestID string
	token     string
}

func newChanSink() *chanSink {
	return &chanSink{ch: make(chan tokenReady, 8)}
}

func (s *chanSink) TokenReady(window domain.WindowID, requestID, token string) {
	s.ch <- tokenReady{window: window, requestID: requestID, token: token}
}

func (s *chanSink) wait(t *testing.T) tokenReady {
	t.Helper()
	select {
	case tr := <-s.ch:
		return tr
	case <-time.After(2 * time.Second):
		t.Fatal("token-ready notification never arrived")
		return tokenReady{}
	}
}

func TestReadTokenFromEnv(t *testing.T) {
	t.Setenv(EnvStartupID, "host1_TIME7")
	svc := NewActivationService(display.NewMemory(), nil, nil)

	token, ok := svc.ReadTokenFromEnv()
	if !ok || token != "host1_TIME7" {
		t.Fatalf("ReadTokenFromEnv() = %q, %v; want %q, true", token, ok, "host1_TIME7")
	}

	// One-shot: the variable is cleared so children do not inherit it.
	if _, ok := svc.ReadTokenFromEnv(); ok {
		t.Error("second ReadTokenFromEnv() should find nothing")
	}
}

func TestReadTokenFromEnv_Absent(t *testing.T) {
	t.Setenv(EnvStartupID, "")
	svc := NewActivationService(display.NewMemory(), nil, nil)

	if token, ok := svc.ReadTokenFromEnv(); ok {
		t.Errorf("ReadTokenFromEnv() = %q, want absent", token)
	}
}

func TestRequestToken_DeliversAsync(t *testing.T) {
	svc := NewActivationService(display.NewMemory(), nil, nil)
	sink := newChanSink()
	svc.Bind(sink)

	reqID, err := svc.RequestToken(context.Background(), 7)
	if err != nil {
		t.Fatalf("RequestToken() error = %v", err)
	}
	if !strings.HasPrefix(reqID, domain.RequestIDPrefix) {
		t.Errorf("request id = %q, want prefix %q", reqID, domain.RequestIDPrefix)
	}

	tr := sink.wait(t)
	if tr.window != 7 {
		t.Errorf("notification window = %d, want 7", tr.window)
	}
	if tr.requestID != reqID {
		t.Errorf("notification request id = %q, want %q", tr.requestID, reqID)
	}
	if !strings.Contains(tr.token, "_TIME") {
		t.Errorf("token %q missing _TIME marker", tr.token)
	}
}

func TestRequestToken_Unsupported(t *testing.T) {
	svc := NewActivationService(nil, nil, nil)
	svc.Bind(newChanSink())

	_, err := svc.RequestToken(context.Background(), 7)
	if !errors.Is(err, domain.ErrProtocolUnsupported) {
		t.Errorf("RequestToken() error = %v, want ErrProtocolUnsupported", err)
	}
}

func TestRequestToken_NoSink(t *testing.T) {
	svc := NewActivationService(display.NewMemory(), nil, nil)

	_, err := svc.RequestToken(context.Background(), 7)
	if !errors.Is(err, domain.ErrNoPendingRequest) {
		t.Errorf("RequestToken() error = %v, want ErrNoPendingRequest", err)
	}
}

func TestCompleteToken_PropertyBeforeMessage(t *testing.T) {
	m := display.NewMemory()
	svc := NewActivationService(m, nil, nil)

	window, err := m.CreateProxyWindow() // stands in for an app window
	if err != nil {
		t.Fatalf("CreateProxyWindow() error = %v", err)
	}

	if err := svc.CompleteToken(context.Background(), window, "T123"); err != nil {
		t.Fatalf("CompleteToken() error = %v", err)
	}

	// The token is advertised on the window.
	id, ok := m.StartupID(window)
	if !ok || id != "T123" {
		t.Errorf("StartupID = %q, %v; want %q, true", id, ok, "T123")
	}

	// Exactly one begin-tagged chunk carrying remove: ID=T123\0.
	sent := m.Sent()
	if len(sent) != 1 {
		t.Fatalf("sent %d chunks, want 1", len(sent))
	}
	if sent[0].Kind != wire.KindBegin {
		t.Errorf("chunk kind = %v, want KindBegin", sent[0].Kind)
	}
	want := make([]byte, wire.ChunkSize)
	copy(want, "remove: ID=T123\x00")
	if !bytes.Equal(sent[0].Payload[:], want) {
		t.Errorf("payload = %q, want %q", sent[0].Payload[:], want)
	}

	// The proxy origin is not the tagged window and is gone already.
	if sent[0].Origin == window {
		t.Error("completion message originated from the app window, not a proxy")
	}
	if m.Alive(sent[0].Origin) {
		t.Error("proxy window still alive after completion")
	}
}

func TestCompleteToken_WindowGone(t *testing.T) {
	m := display.NewMemory()
	svc := NewActivationService(m, nil, nil)

	window, _ := m.CreateProxyWindow()
	m.DestroyWindow(window)

	err := svc.CompleteToken(context.Background(), window, "T123")
	if !errors.Is(err, domain.ErrWindowGone) {
		t.Errorf("CompleteToken() error = %v, want ErrWindowGone", err)
	}
	if len(m.Sent()) != 0 {
		t.Error("no completion message should go out when tagging fails")
	}
}

func TestCompleteToken_Unsupported(t *testing.T) {
	svc := NewActivationService(nil, nil, nil)

	err := svc.CompleteToken(context.Background(), 7, "T123")
	if !errors.Is(err, domain.ErrProtocolUnsupported) {
		t.Errorf("CompleteToken() error = %v, want ErrProtocolUnsupported", err)
	}
}
