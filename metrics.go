package tokenauth

import (
	"sync/atomic"
	"time"
)

// MetricID identifies a counter or histogram in the service registry.
type MetricID uint16

const (
	// MetricLoginSuccess is an exported constant or variable used by the session service.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure is an exported constant or variable used by the session service.
	MetricLoginFailure
	// MetricRefreshSuccess is an exported constant or variable used by the session service.
	MetricRefreshSuccess
	// MetricRefreshFailure is an exported constant or variable used by the session service.
	MetricRefreshFailure
	// MetricRefreshReuseDetected counts refresh attempts with a rotated-out token.
	MetricRefreshReuseDetected
	// MetricLogout is an exported constant or variable used by the session service.
	MetricLogout
	// MetricStorageFailure counts store round-trips that failed as infrastructure errors.
	MetricStorageFailure
	// MetricGateAuthenticated counts requests that entered handlers with a resolved identity.
	MetricGateAuthenticated
	// MetricGateAnonymous counts requests that proceeded unauthenticated.
	MetricGateAnonymous
	// MetricAuthenticateLatency is the access-token verification latency histogram.
	MetricAuthenticateLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics is the lock-free counter registry shared by a [Service]. All
// methods are safe for concurrent use; a nil or disabled registry is a no-op.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot is a point-in-time copy of all counters and histograms,
// consumed by the metrics/export bridges.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics builds a registry from config. Disabled registries keep every
// operation a cheap early return.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether the registry records anything at all.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc increments a counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records a latency sample. Only [MetricAuthenticateLatency] carries
// a histogram.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enableLatency || id != MetricAuthenticateLatency {
		return
	}

	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
}

// Value reads a single counter.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies every counter and histogram for export.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, int(metricIDCount)),
		Histograms: make(map[MetricID][]uint64, 1),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricAuthenticateLatency].buckets[i])
		}
		s.Histograms[MetricAuthenticateLatency] = buckets
	}

	return s
}

func bucketIndex(d time.Duration) int {
	ms := d.Milliseconds()

	switch {
	case ms <= 5:
		return 0
	case ms <= 10:
		return 1
	case ms <= 25:
		return 2
	case ms <= 50:
		return 3
	case ms <= 100:
		return 4
	case ms <= 250:
		return 5
	case ms <= 500:
		return 6
	default:
		return 7
	}
}
