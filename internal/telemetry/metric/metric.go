// Package metric provides Prometheus metrics for snotify.
//
// It tracks the protocol engine's activity: tokens issued and completed,
// deadline expiries, proxy-window churn, and the chunk traffic on the
// display connection.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all application metrics.
type Registry struct {
	// Token lifecycle
	TokensIssued    prometheus.Counter
	TokensCompleted prometheus.Counter
	TokensFromEnv   prometheus.Counter
	DeadlineExpired prometheus.Counter

	// Transport
	ChunksSent   prometheus.Counter
	SendFailures prometheus.Counter
	ProxyWindows prometheus.Counter

	// Monitor
	MessagesSeen *prometheus.CounterVec // labeled by verb

	gatherer prometheus.Gatherer
}

// New creates a metrics registry backed by its own Prometheus registry.
func New() *Registry {
	reg := prometheus.NewRegistry()
	return NewWith(reg, reg)
}

// NewWith creates a metrics registry on an existing registerer/gatherer
// pair (shared process registries, tests).
func NewWith(reg prometheus.Registerer, g prometheus.Gatherer) *Registry {
	f := promauto.With(reg)

	return &Registry{
		TokensIssued: f.NewCounter(prometheus.CounterOpts{
			Name: "snotify_tokens_issued_total",
			Help: "Activation tokens generated for launch requests.",
		}),
		TokensCompleted: f.NewCounter(prometheus.CounterOpts{
			Name: "snotify_tokens_completed_total",
			Help: "Startup-complete announcements sent.",
		}),
		TokensFromEnv: f.NewCounter(prometheus.CounterOpts{
			Name: "snotify_tokens_from_env_total",
			Help: "Activation tokens inherited from the environment.",
		}),
		DeadlineExpired: f.NewCounter(prometheus.CounterOpts{
			Name: "snotify_deadline_expired_total",
			Help: "Token waits abandoned because the deadline passed.",
		}),
		ChunksSent: f.NewCounter(prometheus.CounterOpts{
			Name: "snotify_chunks_sent_total",
			Help: "Protocol chunks broadcast on the display connection.",
		}),
		SendFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "snotify_send_failures_total",
			Help: "Protocol message sends that failed locally.",
		}),
		ProxyWindows: f.NewCounter(prometheus.CounterOpts{
			Name: "snotify_proxy_windows_total",
			Help: "Throwaway proxy windows created to originate messages.",
		}),
		MessagesSeen: f.NewCounterVec(prometheus.CounterOpts{
			Name: "snotify_messages_seen_total",
			Help: "Startup-notification messages observed by the monitor.",
		}, []string{"verb"}),

		gatherer: g,
	}
}

// Handler returns an HTTP handler serving this registry's metrics.
func (r *Registry) Handler() http.Handler {
	if r.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
