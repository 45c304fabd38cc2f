package internaldefs

import (
	rsclient "github.com/rsplatform/rsclient"
)

// CounterDef pairs a core metric id with its stable exported name.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable.
type CounterDef struct {
	ID   rsclient.MetricID
	Name string
	Help string
}

// HistogramDef pairs a core histogram id with its stable exported name.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable.
type HistogramDef struct {
	ID   rsclient.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in render order.
var CounterDefs = []CounterDef{
	{ID: rsclient.MetricRequestSuccess, Name: "rsclient_request_success_total", Help: "Requests that completed with a success envelope."},
	{ID: rsclient.MetricRequestFailure, Name: "rsclient_request_failure_total", Help: "Requests that were classified as failures."},
	{ID: rsclient.MetricNetworkError, Name: "rsclient_network_error_total", Help: "Requests that failed at the transport layer."},
	{ID: rsclient.MetricEnvelopeRejected, Name: "rsclient_envelope_rejected_total", Help: "Responses rejected by envelope code."},
	{ID: rsclient.MetricAuthExpired, Name: "rsclient_auth_expired_total", Help: "Requests that observed authentication expiry."},
	{ID: rsclient.MetricSessionCleared, Name: "rsclient_session_cleared_total", Help: "Session teardowns."},
	{ID: rsclient.MetricLoginSuccess, Name: "rsclient_login_success_total", Help: "Fully authenticated logins."},
	{ID: rsclient.MetricLoginDegraded, Name: "rsclient_login_degraded_total", Help: "Logins that fell back to a synthetic profile."},
	{ID: rsclient.MetricLoginRejected, Name: "rsclient_login_rejected_total", Help: "Rejected credential exchanges."},
	{ID: rsclient.MetricLogout, Name: "rsclient_logout_total", Help: "Logout operations."},
	{ID: rsclient.MetricUploadSuccess, Name: "rsclient_upload_success_total", Help: "Uploads that returned a valid result."},
	{ID: rsclient.MetricUploadRejected, Name: "rsclient_upload_rejected_total", Help: "Uploads rejected for a malformed result."},
	{ID: rsclient.MetricAvatarCleanup, Name: "rsclient_avatar_cleanup_total", Help: "Stale avatar objects deleted before re-upload."},
	{ID: rsclient.MetricAvatarCleanupFailed, Name: "rsclient_avatar_cleanup_failed_total", Help: "Advisory avatar deletes that failed."},
	{ID: rsclient.MetricMissingUserID, Name: "rsclient_missing_user_id_total", Help: "Requests sent without a usable user id header."},
}

// HistogramDefs lists every exported histogram in render order.
var HistogramDefs = []HistogramDef{
	{ID: rsclient.MetricRequestLatency, Name: "rsclient_request_latency_seconds", Help: "Request latency histogram."},
}

// HistogramBounds holds the upper bucket bounds in Prometheus le label form.
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

// HistogramBoundSuffix holds the same bounds as instrument name suffixes.
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

// NormalizeBuckets widens a raw snapshot slice into the fixed bucket array,
// padding with zeros when the snapshot is short.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into the cumulative form
// both exporters emit.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
