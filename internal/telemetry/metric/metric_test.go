// Package metric provides Prometheus metrics for snotify.
package metric

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew_CountersStartAtZero(t *testing.T) {
	r := New()

	if got := testutil.ToFloat64(r.TokensIssued); got != 0 {
		t.Errorf("TokensIssued = %v, want 0", got)
	}
	if got := testutil.ToFloat64(r.ChunksSent); got != 0 {
		t.Errorf("ChunksSent = %v, want 0", got)
	}
}

func TestRegistry_Increment(t *testing.T) {
	r := New()

	r.TokensIssued.Inc()
	r.ChunksSent.Add(3)
	r.MessagesSeen.WithLabelValues("remove").Inc()

	if got := testutil.ToFloat64(r.TokensIssued); got != 1 {
		t.Errorf("TokensIssued = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.ChunksSent); got != 3 {
		t.Errorf("ChunksSent = %v, want 3", got)
	}
	if got := testutil.ToFloat64(r.MessagesSeen.WithLabelValues("remove")); got != 1 {
		t.Errorf(`MessagesSeen{verb="remove"} = %v, want 1`, got)
	}
}

func TestRegistry_Handler(t *testing.T) {
	r := New()
	r.TokensIssued.Inc()

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET /metrics error = %v", err)
	}
	defer resp.Body.Close()

	buf := make([]byte, 1<<16)
	n, _ := resp.Body.Read(buf)
	body := string(buf[:n])

	if !strings.Contains(body, "snotify_tokens_issued_total 1") {
		t.Errorf("metrics output missing counter, got:\n%s", body)
	}
}

func TestNew_IsolatedRegistries(t *testing.T) {
	// Two registries must not collide on registration.
	a := New()
	b := New()

	a.TokensIssued.Inc()
	if got := testutil.ToFloat64(b.TokensIssued); got != 0 {
		t.Errorf("second registry TokensIssued = %v, want 0", got)
	}
}
