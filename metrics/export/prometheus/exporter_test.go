package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avylov/tokenauth"
)

type stubSource struct {
	snapshot tokenauth.MetricsSnapshot
}

func (s *stubSource) MetricsSnapshot() tokenauth.MetricsSnapshot {
	return s.snapshot
}

func TestRenderEmptySnapshot(t *testing.T) {
	exporter := NewPrometheusExporterFromSource(&stubSource{})
	if got := exporter.Render(); got != "" {
		t.Fatalf("Render = %q, want empty", got)
	}
}

func TestRenderNilExporter(t *testing.T) {
	var exporter *PrometheusExporter
	if got := exporter.Render(); got != "" {
		t.Fatalf("Render = %q, want empty", got)
	}
}

func TestRenderCounters(t *testing.T) {
	exporter := NewPrometheusExporterFromSource(&stubSource{
		snapshot: tokenauth.MetricsSnapshot{
			Counters: map[tokenauth.MetricID]uint64{
				tokenauth.MetricLoginSuccess:         7,
				tokenauth.MetricRefreshReuseDetected: 2,
			},
			Histograms: map[tokenauth.MetricID][]uint64{},
		},
	})

	out := exporter.Render()

	for _, want := range []string{
		"# TYPE tokenauth_login_success_total counter",
		"tokenauth_login_success_total 7",
		"tokenauth_refresh_reuse_detected_total 2",
		"tokenauth_logout_total 0",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderHistogramIsCumulative(t *testing.T) {
	exporter := NewPrometheusExporterFromSource(&stubSource{
		snapshot: tokenauth.MetricsSnapshot{
			Counters: map[tokenauth.MetricID]uint64{
				tokenauth.MetricLoginSuccess: 1,
			},
			Histograms: map[tokenauth.MetricID][]uint64{
				tokenauth.MetricAuthenticateLatency: {3, 1, 0, 0, 0, 0, 0, 2},
			},
		},
	})

	out := exporter.Render()

	for _, want := range []string{
		"# TYPE tokenauth_authenticate_latency_seconds histogram",
		`tokenauth_authenticate_latency_seconds_bucket{le="0.005"} 3`,
		`tokenauth_authenticate_latency_seconds_bucket{le="0.01"} 4`,
		`tokenauth_authenticate_latency_seconds_bucket{le="+Inf"} 6`,
		"tokenauth_authenticate_latency_seconds_count 6",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestHandlerSetsContentType(t *testing.T) {
	exporter := NewPrometheusExporterFromSource(&stubSource{
		snapshot: tokenauth.MetricsSnapshot{
			Counters: map[tokenauth.MetricID]uint64{
				tokenauth.MetricLoginSuccess: 1,
			},
		},
	})

	rec := httptest.NewRecorder()
	exporter.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "tokenauth_login_success_total 1") {
		t.Fatalf("body missing counter:\n%s", rec.Body.String())
	}
}
