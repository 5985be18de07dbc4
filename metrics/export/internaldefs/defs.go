// Package internaldefs holds the metric name table shared by the export
// bridges. It lives under metrics/export so the bridges agree on names and
// bucket layout without the root package knowing about exposition formats.
package internaldefs

import (
	"github.com/avylov/tokenauth"
)

// CounterDef binds a core counter ID to its exported name and help text.
type CounterDef struct {
	ID   tokenauth.MetricID
	Name string
	Help string
}

// HistogramDef binds a core histogram ID to its exported name and help text.
type HistogramDef struct {
	ID   tokenauth.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the export bridges.
var CounterDefs = []CounterDef{
	{ID: tokenauth.MetricLoginSuccess, Name: "tokenauth_login_success_total", Help: "Successful login attempts."},
	{ID: tokenauth.MetricLoginFailure, Name: "tokenauth_login_failure_total", Help: "Failed login attempts."},
	{ID: tokenauth.MetricRefreshSuccess, Name: "tokenauth_refresh_success_total", Help: "Successful refresh rotations."},
	{ID: tokenauth.MetricRefreshFailure, Name: "tokenauth_refresh_failure_total", Help: "Failed refresh attempts."},
	{ID: tokenauth.MetricRefreshReuseDetected, Name: "tokenauth_refresh_reuse_detected_total", Help: "Refresh attempts with a rotated-out token."},
	{ID: tokenauth.MetricLogout, Name: "tokenauth_logout_total", Help: "Logout operations."},
	{ID: tokenauth.MetricStorageFailure, Name: "tokenauth_storage_failure_total", Help: "Refresh store infrastructure failures."},
	{ID: tokenauth.MetricGateAuthenticated, Name: "tokenauth_gate_authenticated_total", Help: "Requests entering handlers with a resolved identity."},
	{ID: tokenauth.MetricGateAnonymous, Name: "tokenauth_gate_anonymous_total", Help: "Requests proceeding unauthenticated."},
}

// HistogramDefs is an exported constant or variable used by the export bridges.
var HistogramDefs = []HistogramDef{
	{ID: tokenauth.MetricAuthenticateLatency, Name: "tokenauth_authenticate_latency_seconds", Help: "Access token verification latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the export bridges.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the export bridges.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets copies a raw snapshot slice into the fixed bucket shape,
// tolerating nil and short slices.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into the cumulative counts
// both exposition formats expect.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
