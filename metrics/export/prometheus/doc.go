// Package prometheus provides Prometheus collectors for rsclient metrics.
//
// [NewPrometheusExporter] accepts an [rsclient.Client] and exposes an [http.Handler]
// that renders all rsclient counters and histograms in Prometheus text exposition
// format. Counter names are prefixed rsclient_*_total; the single histogram is
// rsclient_request_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate client state.
package prometheus
