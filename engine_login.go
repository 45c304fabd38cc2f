package rsclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rsplatform/rsclient/internal/flows"
	"github.com/rsplatform/rsclient/session"
)

// LoginResult is the outcome of a successful (or degraded) login.
type LoginResult struct {
	User  *UserRecord
	Token string
	// Degraded is set when the follow-up profile fetch failed and a
	// minimal synthetic profile was persisted instead.
	Degraded bool
	// Landing is the route the consumer's navigation layer should go
	// to: the context redirect when present, otherwise the role-based
	// landing surface.
	Landing string
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login performs the chained sign-in: credential exchange on the
// business pipeline, profile fetch on a bare transport, session persist.
//
// A failed exchange returns ErrLoginRejected with the server's message.
// A failed profile fetch does not fail the login; the result comes back
// with Degraded set and session state a caller can recognize as partial.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	deps := flows.LoginDeps{
		Exchange: func(ctx context.Context, username, password string) (json.RawMessage, error) {
			var raw json.RawMessage
			err := c.business.post(ctx, "/user/login", loginPayload{Username: username, Password: password}, &raw)
			return raw, err
		},
		FetchProfile: c.fetchProfile,
		SaveSession:  c.sessions.Save,
	}

	res, err := flows.Login(ctx, deps, username, password)
	if res != nil && res.Status == flows.LoginRejected {
		return nil, c.loginRejected(ctx, username, err)
	}
	if err != nil {
		// Exchange and profile both succeeded; only the persist can
		// fail here, and a session we cannot store is no session.
		return nil, fmt.Errorf("persist session: %w", err)
	}

	degraded := res.Status == flows.LoginDegraded
	out := &LoginResult{
		User:     res.User,
		Token:    res.Token,
		Degraded: degraded,
		Landing:  c.landingRoute(ctx, res.User),
	}

	eventType := AuditLoginSuccess
	metric := MetricLoginSuccess
	if degraded {
		eventType = AuditLoginDegraded
		metric = MetricLoginDegraded
	}
	c.metrics.Inc(metric)
	userID, _ := res.User.StringID()
	c.audit.Emit(ctx, AuditEvent{
		Timestamp: time.Now(),
		EventType: eventType,
		UserID:    userID,
		Success:   true,
	})
	if !silentFromContext(ctx) {
		c.notifier.Notify(ctx, Notification{Level: NotifySuccess, Message: "login successful"})
	}
	return out, nil
}

// loginRejected converts an exchange failure into ErrLoginRejected,
// carrying the server's message through. Network and expiry failures
// pass through unchanged; they describe the transport, not the
// credentials.
func (c *Client) loginRejected(ctx context.Context, username string, cause error) error {
	if errors.Is(cause, ErrNetworkUnavailable) || errors.Is(cause, ErrAuthenticationExpired) {
		return cause
	}

	c.metrics.Inc(MetricLoginRejected)
	c.audit.Emit(ctx, AuditEvent{
		Timestamp: time.Now(),
		EventType: AuditLoginRejected,
		Metadata:  map[string]string{"username": username},
	})

	var apiErr *APIError
	if errors.As(cause, &apiErr) {
		return apiError(ErrLoginRejected, apiErr.StatusCode, apiErr.Code, apiErr.Message, apiErr.Raw)
	}
	rejected := apiError(ErrLoginRejected, 0, 0, "login failed", nil)
	if !silentFromContext(ctx) {
		c.notifier.Notify(ctx, Notification{Level: NotifyError, Message: rejected.Message})
	}
	return rejected
}

// landingRoute picks the post-login destination: an explicit context
// redirect wins, then the admin surface for administrators.
func (c *Client) landingRoute(ctx context.Context, user *session.User) string {
	if target := redirectFromContext(ctx); target != "" {
		return target
	}
	if user != nil && user.IsAdmin() {
		return c.config.Routes.AdminLanding
	}
	return c.config.Routes.DefaultLanding
}

// fetchProfile loads the full profile for a freshly issued token. It
// runs on the bare transport: the session is not persisted yet, so the
// pipeline's credential injector has nothing to inject.
func (c *Client) fetchProfile(ctx context.Context, token string) (*session.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.Endpoints.BusinessURL+"/user/current", nil)
	if err != nil {
		return nil, fmt.Errorf("build profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.Transport.UserAgent)

	resp, err := c.profileHTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("profile fetch: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("profile fetch: status %d", resp.StatusCode)
	}

	payload := json.RawMessage(body)
	if env, ok := parseEnvelope(body); ok {
		if !env.IsSuccess() {
			return nil, fmt.Errorf("profile fetch: %s", messageOr(env.ErrorMessage(), msgRequestFailed))
		}
		payload = env.Data
	}

	var user session.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, fmt.Errorf("profile fetch: decode: %w", err)
	}
	return &user, nil
}

// Logout tears down the session. The server-side call is advisory: the
// local session is cleared whether or not the server acknowledges, so a
// dead backend can never pin a user into a stale login.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.business.post(WithSilent(ctx), "/user/logout", nil, nil); err != nil {
		c.logger.Warn().Err(err).Msg("server-side logout failed, clearing locally")
	}
	c.clearSession(ctx)
	c.metrics.Inc(MetricLogout)
	c.audit.Emit(ctx, AuditEvent{
		Timestamp: time.Now(),
		EventType: AuditLogout,
		Success:   true,
	})
	return nil
}
