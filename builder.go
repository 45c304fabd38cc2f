package rsclient

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rsplatform/rsclient/session"
)

// Builder assembles a [Client]. Zero or more With calls followed by one
// Build; a Builder must not be reused.
type Builder struct {
	config    Config
	hasConfig bool

	sessions  session.Store
	notifier  Notifier
	auditSink AuditSink
	logger    *zerolog.Logger
	transport http.RoundTripper

	built bool
}

// New creates a Builder seeded with the default configuration. The three
// endpoint URLs have no defaults and must be supplied via WithConfig or
// WithEndpoints.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration. Fields left zero fall back
// to their defaults at Build.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	b.hasConfig = true
	return b
}

// WithEndpoints sets the three backend base URLs.
func (b *Builder) WithEndpoints(businessURL, algoURL, fileURL string) *Builder {
	b.config.Endpoints = EndpointsConfig{
		BusinessURL: businessURL,
		AlgoURL:     algoURL,
		FileURL:     fileURL,
	}
	return b
}

// WithSessionStore sets the persisted-session store. Defaults to an
// in-memory store, which does not survive the process.
func (b *Builder) WithSessionStore(st session.Store) *Builder {
	b.sessions = st
	return b
}

// WithNotifier sets the user-facing notification sink.
func (b *Builder) WithNotifier(n Notifier) *Builder {
	b.notifier = n
	return b
}

// WithAuditSink sets the audit event sink. Audit must also be enabled in
// the configuration.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = &logger
	return b
}

// WithTransport sets the HTTP round tripper shared by all pipelines,
// mainly for tests and custom TLS setups.
func (b *Builder) WithTransport(rt http.RoundTripper) *Builder {
	b.transport = rt
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration and wires the three pipelines.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	b.built = true

	cfg := b.config
	if b.hasConfig {
		applyConfigDefaults(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Endpoints.BusinessURL = trimBaseURL(cfg.Endpoints.BusinessURL)
	cfg.Endpoints.AlgoURL = trimBaseURL(cfg.Endpoints.AlgoURL)
	cfg.Endpoints.FileURL = trimBaseURL(cfg.Endpoints.FileURL)

	store := b.sessions
	if store == nil {
		store = session.NewMemoryStore()
	}
	notifier := b.notifier
	if notifier == nil {
		notifier = NoOpNotifier{}
	}
	logger := zerolog.Nop()
	if b.logger != nil {
		logger = *b.logger
	}

	client := &Client{
		config:   cfg,
		sessions: store,
		notifier: notifier,
		logger:   logger,
		metrics:  NewMetrics(cfg.Metrics),
		audit:    newAuditDispatcher(cfg.Audit, b.auditSink),
		profileHTTP: &http.Client{
			Timeout:   cfg.Transport.BusinessTimeout,
			Transport: b.transport,
		},
	}

	deps := &pipelineDeps{
		sessions:     store,
		notifier:     notifier,
		logger:       logger,
		metrics:      client.metrics,
		audit:        client.audit,
		userAgent:    cfg.Transport.UserAgent,
		clearSession: client.clearSession,
	}

	client.business = newPipeline("business", cfg.Endpoints.BusinessURL, cfg.Transport.BusinessTimeout, authBearerAndUserID, b.transport, deps)
	client.algo = newPipeline("algo", cfg.Endpoints.AlgoURL, cfg.Transport.AlgoTimeout, authBearerOnly, b.transport, deps)
	client.files = newPipeline("file", cfg.Endpoints.FileURL, cfg.Transport.FileTimeout, authBearerOnly, b.transport, deps)

	return client, nil
}

// applyConfigDefaults backfills zero-valued ambient fields on a caller
// supplied Config so WithConfig does not force callers to restate every
// default.
func applyConfigDefaults(cfg *Config) {
	def := defaultConfig()

	if cfg.Transport.BusinessTimeout == 0 {
		cfg.Transport.BusinessTimeout = def.Transport.BusinessTimeout
	}
	if cfg.Transport.AlgoTimeout == 0 {
		cfg.Transport.AlgoTimeout = def.Transport.AlgoTimeout
	}
	if cfg.Transport.FileTimeout == 0 {
		cfg.Transport.FileTimeout = def.Transport.FileTimeout
	}
	if cfg.Transport.UserAgent == "" {
		cfg.Transport.UserAgent = def.Transport.UserAgent
	}
	if cfg.Files.AvatarBucket == "" {
		cfg.Files.AvatarBucket = def.Files.AvatarBucket
	}
	if cfg.Files.DefaultAvatarMarker == "" {
		cfg.Files.DefaultAvatarMarker = def.Files.DefaultAvatarMarker
	}
	if cfg.Files.PlaceholderPath == "" {
		cfg.Files.PlaceholderPath = def.Files.PlaceholderPath
	}
	if cfg.Routes.AdminLanding == "" {
		cfg.Routes.AdminLanding = def.Routes.AdminLanding
	}
	if cfg.Routes.DefaultLanding == "" {
		cfg.Routes.DefaultLanding = def.Routes.DefaultLanding
	}
	if cfg.Audit.BufferSize == 0 {
		cfg.Audit.BufferSize = def.Audit.BufferSize
	}
}
