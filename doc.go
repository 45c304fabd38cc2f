// Package rsclient is the Go access layer for the remote-sensing image
// analysis platform. It mediates all traffic between a consumer and the
// platform's three backend services — the business API, the algorithm
// API, and the file/object API — through three parameterized request
// pipelines sharing one persisted session.
//
// The package is designed for concurrent callers: Client methods are safe
// to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// rsclient is the public surface. It exposes [Client], [Builder],
// [Config], the failure taxonomy ([APIError] and its sentinels), and the
// typed facade methods. Flow orchestration lives under internal/ and is
// never exported; session persistence lives in the session subpackage.
//
// # What this package must NOT do
//
//   - Validate business payloads; domain records pass through opaque.
//   - Cache responses or retry failed requests.
//   - Unwrap envelopes ad hoc at call sites: every response crosses the
//     pipeline's normalizer exactly once, and callers only ever see the
//     unwrapped payload or a classified failure.
//
// # Failure contract
//
// Every failed operation yields an [*APIError] that matches one taxonomy
// sentinel under errors.Is. Authentication expiry — HTTP 401 from any
// pipeline, or envelope code 401 — additionally clears the persisted
// session before the caller observes the rejection.
package rsclient
