package command

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/snotify-go/internal/cli/output"
	"github.com/yndnr/snotify-go/internal/display"
	"github.com/yndnr/snotify-go/internal/infra/shutdown"
	"github.com/yndnr/snotify-go/internal/journal"
	"github.com/yndnr/snotify-go/internal/monitor"
	"github.com/yndnr/snotify-go/internal/telemetry/metric"
)

// MonitorCommand returns the monitor command.
func MonitorCommand() *cli.Command {
	return &cli.Command{
		Name:  "monitor",
		Usage: "Watch startup-notification messages on the display",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "metrics-listen",
				Usage: "Expose Prometheus metrics on this address (e.g., 127.0.0.1:9314)",
			},
			&cli.StringFlag{
				Name:  "journal",
				Usage: "Record observed messages to a journal at this directory",
			},
		},
		Action: monitorRun,
	}
}

// monitorLine is the JSON shape of one observed message.
type monitorLine struct {
	Origin uint32            `json:"origin"`
	Verb   string            `json:"verb"`
	Token  string            `json:"token"`
	Params map[string]string `json:"params,omitempty"`
}

func monitorRun(c *cli.Context) error {
	cfg := appConfig(c)
	log := appLogger(c)

	conn, err := display.ConnectX11(cfg.Display)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	sd := shutdown.NewHandler(5 * time.Second)
	sd.OnShutdown(func(context.Context) error {
		cancel()
		return conn.Close()
	})

	metrics := metric.New()
	if addr := metricsAddr(c, cfg.MetricsListen); addr != "" {
		srv := &http.Server{Addr: addr, Handler: metrics.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics listener failed", "addr", addr, "error", err)
			}
		}()
		sd.OnShutdown(srv.Shutdown)
		log.Info("metrics listening", "addr", addr)
	}

	emit := eventPrinter(c)
	if dir := c.String("journal"); dir != "" {
		jrnl, err := journal.Open(dir, journal.WithLogger(log))
		if err != nil {
			return err
		}
		sd.OnShutdown(func(context.Context) error { return jrnl.Close() })

		print := emit
		emit = func(ev monitor.Event) {
			print(ev)
			rec := journal.FromEvent(ev.Origin, ev.Verb, ev.Token, ev.Params)
			if err := jrnl.Append(rec); err != nil {
				log.Error("journal append failed", "token", ev.Token, "error", err)
			}
		}
	}

	m := monitor.New(conn, monitor.WithLogger(log), monitor.WithMetrics(metrics))

	go func() {
		if err := sd.Wait(); err != nil {
			log.Error("shutdown", "error", err)
		}
	}()

	if err := m.Run(ctx, emit); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// eventPrinter builds the per-event output function for the configured
// format: one compact JSON object or one text line per message.
func eventPrinter(c *cli.Context) monitor.Handler {
	w := c.App.Writer
	if appConfig(c).Output == "json" {
		enc := &output.JSONFormatter{Compact: true}
		return func(ev monitor.Event) {
			_ = enc.Format(w, monitorLine{
				Origin: uint32(ev.Origin),
				Verb:   ev.Verb,
				Token:  ev.Token,
				Params: ev.Params,
			})
		}
	}
	return func(ev monitor.Event) {
		fmt.Fprintf(w, "%-8s %s (origin 0x%08x)\n", ev.Verb, ev.Token, uint32(ev.Origin))
	}
}

func metricsAddr(c *cli.Context, fallback string) string {
	if addr := c.String("metrics-listen"); addr != "" {
		return addr
	}
	return fallback
}
