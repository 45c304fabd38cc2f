package rsclient

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/rsplatform/rsclient/session"
)

// Client is the access layer's public surface: three request pipelines
// sharing one persisted session, plus the login, file, and typed facade
// operations built on them.
//
// Client instances are intended to be configured through [Builder] during
// initialization and then treated as immutable.
type Client struct {
	config   Config
	sessions session.Store
	notifier Notifier
	logger   zerolog.Logger
	metrics  *Metrics
	audit    *auditDispatcher

	business *pipeline
	algo     *pipeline
	files    *pipeline

	// profileHTTP is the bare transport for the login profile fetch,
	// which must not re-enter the main pipeline's credential injector
	// while no session exists yet.
	profileHTTP *http.Client
}

// Close drains the audit dispatcher. The Client is unusable afterwards
// only in the sense that further audit events are dropped; in-flight
// requests complete normally.
func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.audit != nil {
		c.audit.Close()
	}
}

// Config returns a copy of the effective configuration.
func (c *Client) Config() Config {
	return c.config
}

// MetricsSnapshot copies the client's counters and histograms.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	if c == nil || c.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return c.metrics.Snapshot()
}

// AuditDropped reports how many audit events were discarded under
// backpressure.
func (c *Client) AuditDropped() uint64 {
	if c == nil || c.audit == nil {
		return 0
	}
	return c.audit.Dropped()
}

// Session returns the current persisted session record, nil when absent.
func (c *Client) Session(ctx context.Context) (*SessionRecord, error) {
	return c.sessions.Load(ctx)
}

// IsLoggedIn reports whether a complete session — token and profile — is
// persisted. Derived purely from storage; no network call.
func (c *Client) IsLoggedIn(ctx context.Context) bool {
	rec, err := c.sessions.Load(ctx)
	if err != nil {
		return false
	}
	return rec.IsLoggedIn()
}

// IsAdmin reports whether the persisted profile carries the
// administrator role. No network call.
func (c *Client) IsAdmin(ctx context.Context) bool {
	rec, err := c.sessions.Load(ctx)
	if err != nil {
		return false
	}
	return rec.IsLoggedIn() && rec.User.IsAdmin()
}

// SessionExpiresAt reads the persisted token's expiry claim without
// verifying the signature. Returns session.ErrNoExpiry for opaque or
// claim-less tokens, and a zero time with no error when no session is
// persisted.
func (c *Client) SessionExpiresAt(ctx context.Context) (time.Time, error) {
	rec, err := c.sessions.Load(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if !rec.IsLoggedIn() {
		return time.Time{}, nil
	}
	return session.TokenExpiresAt(rec.Token)
}

// clearSession tears down the persisted session. Shared by the pipelines
// (authentication expiry) and the logout path; failures are logged, not
// raised, since teardown must not mask the failure that triggered it.
func (c *Client) clearSession(ctx context.Context) {
	if err := c.sessions.Clear(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("session clear failed")
		return
	}
	c.metrics.Inc(MetricSessionCleared)
	c.audit.Emit(ctx, AuditEvent{
		Timestamp: time.Now(),
		EventType: AuditSessionCleared,
		Success:   true,
	})
}
