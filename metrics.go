package rsclient

import (
	"sync/atomic"
	"time"
)

// MetricID identifies one in-process counter or histogram.
type MetricID uint16

const (
	// MetricRequestSuccess counts requests whose payload was delivered.
	MetricRequestSuccess MetricID = iota
	// MetricRequestFailure counts classified request failures.
	MetricRequestFailure
	// MetricNetworkError counts transport failures with no response.
	MetricNetworkError
	// MetricEnvelopeRejected counts envelope-level rejections.
	MetricEnvelopeRejected
	// MetricAuthExpired counts authentication-expiry classifications.
	MetricAuthExpired
	// MetricSessionCleared counts persisted-session teardowns.
	MetricSessionCleared
	// MetricLoginSuccess counts fully authenticated logins.
	MetricLoginSuccess
	// MetricLoginDegraded counts logins whose profile fetch failed.
	MetricLoginDegraded
	// MetricLoginRejected counts rejected credential exchanges.
	MetricLoginRejected
	// MetricLogout counts logout operations.
	MetricLogout
	// MetricUploadSuccess counts validated upload results.
	MetricUploadSuccess
	// MetricUploadRejected counts uploads rejected before or after
	// transmission, including malformed responses.
	MetricUploadRejected
	// MetricAvatarCleanup counts advisory stale-avatar deletions issued.
	MetricAvatarCleanup
	// MetricAvatarCleanupFailed counts advisory deletions that failed
	// and were ignored.
	MetricAvatarCleanupFailed
	// MetricMissingUserID counts requests sent without an X-User-ID
	// header because the session carried no coercible id.
	MetricMissingUserID
	// MetricRequestLatency is the request latency histogram.
	MetricRequestLatency

	metricIDCount
)

const histBucketCount = 8

type paddedCounter struct {
	value uint64
	_     [7]uint64
}

type latencyHistogram struct {
	buckets [histBucketCount]uint64
}

// Metrics holds the client's atomic counters. All methods are safe for
// concurrent use and become no-ops when metrics are disabled.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	latency       latencyHistogram
}

// MetricsSnapshot is a point-in-time copy of all counters and histograms.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics creates a metrics holder for the given configuration.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether counters are recorded at all.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc adds one to the counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records one request duration in the latency histogram.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enableLatency || id != MetricRequestLatency {
		return
	}
	atomic.AddUint64(&m.latency.buckets[bucketIndex(d)], 1)
}

// Value reads one counter.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies every counter and histogram.
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
			buckets[i] = atomic.LoadUint64(&m.latency.buckets[i])
		}
		s.Histograms[MetricRequestLatency] = buckets
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
