package rsclient

import (
	"strings"
	"testing"
	"time"
)

func validTestConfig() Config {
	cfg := defaultConfig()
	cfg.Endpoints = EndpointsConfig{
		BusinessURL: "http://business.local",
		AlgoURL:     "http://algo.local",
		FileURL:     "http://files.local",
	}
	return cfg
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := validTestConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidateRequiresEndpoints(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing business", func(c *Config) { c.Endpoints.BusinessURL = "" }, "BusinessURL"},
		{"missing algo", func(c *Config) { c.Endpoints.AlgoURL = "" }, "AlgoURL"},
		{"missing file", func(c *Config) { c.Endpoints.FileURL = "" }, "FileURL"},
		{"relative url", func(c *Config) { c.Endpoints.FileURL = "/just/a/path" }, "FileURL"},
		{"zero timeout", func(c *Config) { c.Transport.BusinessTimeout = 0 }, "timeouts"},
		{"no avatar bucket", func(c *Config) { c.Files.AvatarBucket = "" }, "AvatarBucket"},
		{"audit without buffer", func(c *Config) { c.Audit.Enabled = true; c.Audit.BufferSize = 0 }, "BufferSize"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validTestConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation failure")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want mention of %s", err, tc.want)
			}
		})
	}
}

func TestApplyConfigDefaultsBackfills(t *testing.T) {
	cfg := Config{
		Endpoints: EndpointsConfig{
			BusinessURL: "http://business.local",
			AlgoURL:     "http://algo.local",
			FileURL:     "http://files.local",
		},
	}
	applyConfigDefaults(&cfg)

	if cfg.Transport.BusinessTimeout != 10*time.Second {
		t.Fatalf("business timeout = %v", cfg.Transport.BusinessTimeout)
	}
	if cfg.Transport.AlgoTimeout != 60*time.Second || cfg.Transport.FileTimeout != 60*time.Second {
		t.Fatalf("long timeouts = %v / %v", cfg.Transport.AlgoTimeout, cfg.Transport.FileTimeout)
	}
	if cfg.Files.AvatarBucket != "avatars" {
		t.Fatalf("avatar bucket = %q", cfg.Files.AvatarBucket)
	}
	if cfg.Routes.DefaultLanding != "/dashboard" {
		t.Fatalf("default landing = %q", cfg.Routes.DefaultLanding)
	}
}

func TestTrimBaseURL(t *testing.T) {
	if got := trimBaseURL("http://x/"); got != "http://x" {
		t.Fatalf("got %q", got)
	}
	if got := trimBaseURL("http://x"); got != "http://x" {
		t.Fatalf("got %q", got)
	}
}
