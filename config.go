package rsclient

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config defines the static wiring of a Client: where the three services
// live, how long each pipeline waits, and which ambient subsystems are
// enabled.
//
// Config instances are intended to be populated during initialization and
// then treated as immutable; Build copies them.
type Config struct {
	Endpoints EndpointsConfig
	Transport TransportConfig
	Files     FilesConfig
	Routes    RoutesConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
}

/*
====================================
ENDPOINTS CONFIG
====================================
*/

// EndpointsConfig holds the three backend base URLs. All three are
// required; they are otherwise opaque configuration.
type EndpointsConfig struct {
	BusinessURL string
	AlgoURL     string
	FileURL     string
}

/*
====================================
TRANSPORT CONFIG
====================================
*/

// TransportConfig holds the per-pipeline timeout ceilings and shared
// HTTP client knobs. A request exceeding its ceiling is classified as
// network-unavailable; the layer performs no retries.
type TransportConfig struct {
	BusinessTimeout time.Duration
	AlgoTimeout     time.Duration
	FileTimeout     time.Duration
	UserAgent       string
}

/*
====================================
FILES CONFIG
====================================
*/

// FilesConfig governs object-address resolution and the avatar lifecycle.
type FilesConfig struct {
	// AvatarBucket is the reserved bucket receiving stale-object
	// cleanup on upload.
	AvatarBucket string
	// DefaultAvatarMarker identifies the well-known default avatar
	// inside a stored URL; avatars matching it are never deleted.
	DefaultAvatarMarker string
	// PlaceholderPath is the fixed address returned by URL resolution
	// when its preconditions fail. Relative to FileURL.
	PlaceholderPath string
}

/*
====================================
ROUTES CONFIG
====================================
*/

// RoutesConfig names the post-login landing surfaces handed back to the
// consumer's navigation layer. This package never navigates itself.
type RoutesConfig struct {
	AdminLanding   string
	DefaultLanding string
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig controls the asynchronous audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig controls the in-process counters and the request latency
// histogram.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

func defaultConfig() Config {
	return Config{
		Transport: TransportConfig{
			BusinessTimeout: 10 * time.Second,
			AlgoTimeout:     60 * time.Second,
			FileTimeout:     60 * time.Second,
			UserAgent:       "rsclient/1",
		},
		Files: FilesConfig{
			AvatarBucket:        "avatars",
			DefaultAvatarMarker: "default_avatar",
			PlaceholderPath:     "/file/avatars/default_avatar.svg",
		},
		Routes: RoutesConfig{
			AdminLanding:   "/admin",
			DefaultLanding: "/dashboard",
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

// Validate checks the configuration for internal consistency. Build calls
// it; callers constructing configs by hand may call it early.
func (c Config) Validate() error {
	if err := validateBaseURL("Endpoints.BusinessURL", c.Endpoints.BusinessURL); err != nil {
		return err
	}
	if err := validateBaseURL("Endpoints.AlgoURL", c.Endpoints.AlgoURL); err != nil {
		return err
	}
	if err := validateBaseURL("Endpoints.FileURL", c.Endpoints.FileURL); err != nil {
		return err
	}

	if c.Transport.BusinessTimeout <= 0 || c.Transport.AlgoTimeout <= 0 || c.Transport.FileTimeout <= 0 {
		return errors.New("Transport timeouts must be positive")
	}
	if c.Files.AvatarBucket == "" {
		return errors.New("Files.AvatarBucket must not be empty")
	}
	if c.Files.PlaceholderPath == "" {
		return errors.New("Files.PlaceholderPath must not be empty")
	}
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit.BufferSize must be positive when audit is enabled")
	}
	return nil
}

func validateBaseURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s is not an absolute URL: %q", field, raw)
	}
	return nil
}

func trimBaseURL(raw string) string {
	return strings.TrimRight(raw, "/")
}
