// Package launch starts child processes under startup notification.
//
// A launcher generates the activation token, announces the launch to the
// display ("new:"), and hands the token to the child through the
// environment. If the launchee never completes the sequence itself, the
// launcher is expected to send the completion after the child exits.
package launch

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/yndnr/snotify-go/internal/core/service"
	"github.com/yndnr/snotify-go/internal/display"
	"github.com/yndnr/snotify-go/internal/proxy"
	"github.com/yndnr/snotify-go/internal/telemetry/logger"
	"github.com/yndnr/snotify-go/internal/telemetry/metric"
	"github.com/yndnr/snotify-go/internal/wire"
	"github.com/yndnr/snotify-go/pkg/sntoken"
)

// Launcher spawns programs with a fresh activation token.
type Launcher struct {
	conn    display.Conn
	log     logger.Logger
	metrics *metric.Registry
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithLogger replaces the logger.
func WithLogger(l logger.Logger) Option {
	return func(lc *Launcher) { lc.log = l }
}

// WithMetrics replaces the metrics registry.
func WithMetrics(m *metric.Registry) Option {
	return func(lc *Launcher) { lc.metrics = m }
}

// New creates a Launcher on the given display connection.
func New(conn display.Conn, opts ...Option) *Launcher {
	l := &Launcher{
		conn:    conn,
		log:     logger.Default(),
		metrics: metric.New(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Prepare generates a token for argv, broadcasts the launch
// announcement, and returns the token together with a command ready to
// start. The child's environment carries the token; the caller owns
// starting and reaping the command.
func (l *Launcher) Prepare(ctx context.Context, argv []string) (string, *exec.Cmd, error) {
	token := sntoken.Generate()

	msg := wire.NewMessage(token, filepath.Base(argv[0]), l.conn.Screen())
	if err := proxy.Send(l.conn, msg); err != nil {
		l.metrics.SendFailures.Inc()
		return "", nil, err
	}
	l.metrics.TokensIssued.Inc()
	l.metrics.ProxyWindows.Inc()
	l.metrics.ChunksSent.Add(float64(len(wire.Split(msg))))

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = append(os.Environ(), service.EnvStartupID+"="+token)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	l.log.Debug("launch announced", "argv0", argv[0], "token", token)
	return token, cmd, nil
}

// Complete broadcasts the startup-complete message for a token on behalf
// of a launchee that does not speak the protocol itself.
func (l *Launcher) Complete(token string) error {
	msg := wire.RemoveMessage(token)
	if err := proxy.Send(l.conn, msg); err != nil {
		l.metrics.SendFailures.Inc()
		return err
	}
	l.metrics.TokensCompleted.Inc()
	l.metrics.ProxyWindows.Inc()
	l.metrics.ChunksSent.Add(float64(len(wire.Split(msg))))

	l.log.Debug("launch completed", "token", token)
	return nil
}
