// Package service provides the activation session tracker for snotify.
package service

import (
	"context"
	"os"

	"github.com/yndnr/snotify-go/internal/core/domain"
	"github.com/yndnr/snotify-go/internal/display"
	"github.com/yndnr/snotify-go/internal/proxy"
	"github.com/yndnr/snotify-go/internal/telemetry/logger"
	"github.com/yndnr/snotify-go/internal/telemetry/metric"
	"github.com/yndnr/snotify-go/internal/wire"
	"github.com/yndnr/snotify-go/pkg/sntoken"
)

// EnvStartupID is the environment variable a launcher uses to hand an
// activation token to the process it spawns.
const EnvStartupID = "DESKTOP_STARTUP_ID"

// TokenSink receives the asynchronous token-ready notification for an
// issued request. The event-loop binding implements it by enqueueing an
// event; delivery order follows issue order per window.
type TokenSink interface {
	TokenReady(window domain.WindowID, requestID, token string)
}

// ActivationService tracks activation tokens for the process.
type ActivationService struct {
	conn    display.Conn // nil when the platform lacks the protocol
	log     logger.Logger
	metrics *metric.Registry
	sink    TokenSink
}

// NewActivationService creates an ActivationService. A nil conn is
// allowed and makes token requests fail with ErrProtocolUnsupported;
// windows stay usable without activation semantics.
func NewActivationService(conn display.Conn, log logger.Logger, m *metric.Registry) *ActivationService {
	if log == nil {
		log = logger.Default()
	}
	if m == nil {
		m = metric.New()
	}
	return &ActivationService{
		conn:    conn,
		log:     log,
		metrics: m,
	}
}

// Bind installs the sink token-ready notifications are delivered to.
func (s *ActivationService) Bind(sink TokenSink) {
	s.sink = sink
}

// Supported reports whether the platform carries the protocol.
func (s *ActivationService) Supported() bool {
	return s.conn != nil
}

// ReadTokenFromEnv performs the one-shot startup read of the inherited
// activation token. The variable is cleared so child processes do not
// inherit a stale token. Absence is a normal, silent case.
func (s *ActivationService) ReadTokenFromEnv() (string, bool) {
	token := os.Getenv(EnvStartupID)
	if token == "" {
		return "", false
	}
	os.Unsetenv(EnvStartupID)

	s.metrics.TokensFromEnv.Inc()
	s.log.Debug("activation token inherited from environment", "token", token)
	return token, true
}

// RequestToken issues a fresh activation token for a window. The token
// itself is produced locally; the eventual token-ready notification is
// delivered asynchronously through the bound sink, like any other
// event-loop event.
func (s *ActivationService) RequestToken(ctx context.Context, window domain.WindowID) (string, error) {
	if s.conn == nil {
		return "", domain.ErrProtocolUnsupported
	}
	if s.sink == nil {
		return "", domain.ErrNoPendingRequest.WithDetails("no token sink bound")
	}

	requestID, err := domain.NewRequestID()
	if err != nil {
		return "", err
	}
	token := sntoken.Generate()

	s.metrics.TokensIssued.Inc()
	logger.L(logger.WithRequestID(ctx, requestID)).Debug("activation token issued",
		"window", window, "token", token)

	go s.sink.TokenReady(window, requestID, token)
	return requestID, nil
}

// CompleteToken performs the finish sequence for a window: advertise the
// token as the window's startup-id property, then broadcast the
// startup-complete message. The property must be visible before the
// completion message referencing it goes out, so the order is fixed.
func (s *ActivationService) CompleteToken(ctx context.Context, window domain.WindowID, token string) error {
	if s.conn == nil {
		return domain.ErrProtocolUnsupported
	}

	if err := s.conn.SetStartupID(window, token); err != nil {
		s.metrics.SendFailures.Inc()
		return err
	}

	msg := wire.RemoveMessage(token)
	if err := proxy.Send(s.conn, msg); err != nil {
		s.metrics.SendFailures.Inc()
		return err
	}

	s.metrics.TokensCompleted.Inc()
	s.metrics.ProxyWindows.Inc()
	s.metrics.ChunksSent.Add(float64(len(wire.Split(msg))))

	logger.L(ctx).Debug("startup complete announced", "window", window, "token", token)
	return nil
}
