package rsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rsplatform/rsclient/session"
)

// authMode selects the credential-injection strategy of a pipeline.
type authMode uint8

const (
	// authBearerAndUserID attaches both the bearer token and the
	// X-User-ID header (business API).
	authBearerAndUserID authMode = iota
	// authBearerOnly attaches only the bearer token (algorithm and
	// file APIs; uploads carry X-User-ID explicitly).
	authBearerOnly
)

const headerUserID = "X-User-ID"

// pipelineDeps is the ambient machinery shared by the three pipelines.
type pipelineDeps struct {
	sessions  session.Store
	notifier  Notifier
	logger    zerolog.Logger
	metrics   *Metrics
	audit     *auditDispatcher
	userAgent string

	// clearSession tears down the persisted session on authentication
	// expiry. Implemented by the Client so all pipelines share one
	// teardown path.
	clearSession func(ctx context.Context)
}

// pipeline is one configured request/response lane: base URL, timeout
// ceiling, and auth strategy. The three instances replace what would
// otherwise be three copies of interceptor logic.
type pipeline struct {
	name string
	base string
	auth authMode
	http *http.Client
	deps *pipelineDeps
}

func newPipeline(name, baseURL string, timeout time.Duration, auth authMode, rt http.RoundTripper, deps *pipelineDeps) *pipeline {
	return &pipeline{
		name: name,
		base: trimBaseURL(baseURL),
		auth: auth,
		http: &http.Client{
			Timeout:   timeout,
			Transport: rt,
		},
		deps: deps,
	}
}

func (p *pipeline) get(ctx context.Context, path string, query url.Values, out any) error {
	return p.do(ctx, http.MethodGet, path, query, nil, "", nil, out, nil)
}

func (p *pipeline) post(ctx context.Context, path string, body, out any) error {
	reader, contentType, err := jsonBody(body)
	if err != nil {
		return err
	}
	return p.do(ctx, http.MethodPost, path, nil, reader, contentType, nil, out, nil)
}

func (p *pipeline) put(ctx context.Context, path string, body, out any) error {
	reader, contentType, err := jsonBody(body)
	if err != nil {
		return err
	}
	return p.do(ctx, http.MethodPut, path, nil, reader, contentType, nil, out, nil)
}

func (p *pipeline) delete(ctx context.Context, path string, out any) error {
	return p.do(ctx, http.MethodDelete, path, nil, nil, "", nil, out, nil)
}

// getBinary fetches a raw body, bypassing envelope handling entirely.
func (p *pipeline) getBinary(ctx context.Context, path string) ([]byte, error) {
	var raw []byte
	if err := p.do(ctx, http.MethodGet, path, nil, nil, "", nil, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// postMultipart sends a prebuilt multipart body with extra headers and
// hands the unwrapped payload back for operation-specific validation.
func (p *pipeline) postMultipart(ctx context.Context, path string, body io.Reader, contentType string, headers map[string]string, out any) error {
	return p.do(ctx, http.MethodPost, path, nil, body, contentType, headers, out, nil)
}

func jsonBody(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("marshal request body: %w", err)
	}
	return bytes.NewReader(data), "application/json", nil
}

// do runs one request through the full pipeline: credential injection,
// transport, envelope normalization, and failure classification. Callers
// receive the unwrapped payload in out (or raw bytes in binary) — never
// a raw envelope.
func (p *pipeline) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, headers map[string]string, out any, binary *[]byte) error {
	u := p.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if p.deps.userAgent != "" {
		req.Header.Set("User-Agent", p.deps.userAgent)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	p.injectCredentials(ctx, req)

	start := time.Now()
	resp, err := p.http.Do(req)
	if err != nil {
		return p.fail(ctx, requestID, method, u, 0,
			apiError(ErrNetworkUnavailable, 0, 0, msgNetworkUnavailable, nil), err)
	}

	raw, err := io.ReadAll(resp.Body)
	closeErr := resp.Body.Close()
	if err != nil {
		return p.fail(ctx, requestID, method, u, resp.StatusCode,
			apiError(ErrNetworkUnavailable, resp.StatusCode, 0, msgNetworkUnavailable, nil), err)
	}
	if closeErr != nil {
		p.deps.logger.Debug().Err(closeErr).Str("url", u).Msg("close response body")
	}

	duration := time.Since(start)
	p.deps.metrics.Observe(MetricRequestLatency, duration)
	p.deps.logger.Debug().
		Str("pipeline", p.name).
		Str("method", method).
		Str("url", u).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("duration", duration).
		Msg("request complete")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		env, _ := parseEnvelope(raw)
		return p.fail(ctx, requestID, method, u, resp.StatusCode, classifyStatus(resp.StatusCode, env, raw), nil)
	}

	if binary != nil {
		*binary = raw
		p.deps.metrics.Inc(MetricRequestSuccess)
		return nil
	}

	env, enveloped := parseEnvelope(raw)
	if !enveloped {
		// Already-unwrapped data: the algorithm service answers some
		// endpoints without the standard wrapper.
		p.deps.metrics.Inc(MetricRequestSuccess)
		return decodePayload(raw, out)
	}

	if env.IsSuccess() {
		p.deps.metrics.Inc(MetricRequestSuccess)
		return decodePayload(env.Data, out)
	}

	p.deps.metrics.Inc(MetricEnvelopeRejected)
	return p.fail(ctx, requestID, method, u, resp.StatusCode, classifyEnvelope(env, raw), nil)
}

// injectCredentials attaches the session's token and user id. A missing
// or malformed session is non-fatal: anonymous endpoints must still work,
// and rejecting under-authenticated requests is the backend's call.
func (p *pipeline) injectCredentials(ctx context.Context, req *http.Request) {
	rec, err := p.deps.sessions.Load(ctx)
	if err != nil {
		p.deps.logger.Warn().Err(err).Msg("session load failed, proceeding unauthenticated")
		return
	}
	if rec == nil {
		return
	}

	if rec.Token != "" {
		req.Header.Set("Authorization", "Bearer "+rec.Token)
	}

	if p.auth != authBearerAndUserID {
		return
	}
	if id, ok := rec.User.StringID(); ok {
		req.Header.Set(headerUserID, id)
	} else {
		p.deps.metrics.Inc(MetricMissingUserID)
		p.deps.logger.Debug().Str("url", req.URL.String()).Msg("session carries no user id, header omitted")
	}
}

// fail finalizes a classified failure: session teardown on expiry,
// metrics, audit, and user notification unless the request is silent.
func (p *pipeline) fail(ctx context.Context, requestID, method, url string, status int, apiErr *APIError, cause error) error {
	p.deps.metrics.Inc(MetricRequestFailure)

	switch apiErr.Kind {
	case ErrNetworkUnavailable:
		p.deps.metrics.Inc(MetricNetworkError)
		p.deps.logger.Warn().Err(cause).Str("method", method).Str("url", url).Msg("transport failure")
	case ErrAuthenticationExpired:
		p.deps.metrics.Inc(MetricAuthExpired)
		p.deps.clearSession(ctx)
	}

	if !silentFromContext(ctx) {
		p.deps.notifier.Notify(ctx, Notification{Level: NotifyError, Message: apiErr.Message})
	}

	p.deps.audit.Emit(ctx, AuditEvent{
		Timestamp: time.Now(),
		EventType: AuditRequestFailure,
		RequestID: requestID,
		Pipeline:  p.name,
		Method:    method,
		URL:       url,
		Status:    status,
		Success:   false,
		Error:     apiErr.Error(),
	})

	return apiErr
}

func decodePayload(data json.RawMessage, out any) error {
	if out == nil {
		return nil
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("decode response payload: %w", err)
	}
	return nil
}
