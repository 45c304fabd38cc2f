package flows

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/rsplatform/rsclient/session"
)

// LoginStatus is the terminal state of a login run.
type LoginStatus uint8

const (
	// LoginAuthenticated means both the credential exchange and the
	// follow-up profile fetch succeeded.
	LoginAuthenticated LoginStatus = iota
	// LoginDegraded means the exchange succeeded but the profile fetch
	// failed; a minimal synthetic profile was persisted instead.
	LoginDegraded
	// LoginRejected means the credential exchange itself failed or the
	// exchange response carried no usable token.
	LoginRejected
)

var errNoToken = errors.New("flows: exchange response carries no token")

// LoginDeps wires the login flow to the transport and session layers.
type LoginDeps struct {
	// Exchange posts the credentials and returns the unwrapped payload.
	Exchange func(ctx context.Context, username, password string) (json.RawMessage, error)
	// FetchProfile loads the full profile for a freshly issued token.
	FetchProfile func(ctx context.Context, token string) (*session.User, error)
	// SaveSession persists the authenticated record.
	SaveSession func(ctx context.Context, rec *session.Record) error
}

// LoginResult carries the outcome of a login run. Token and User are
// set for both the authenticated and degraded statuses.
type LoginResult struct {
	Status LoginStatus
	Token  string
	User   *session.User
}

// exchangePayload covers the token nesting variants seen across
// deployments: token at the top level, token one level down under
// "data", or the whole payload being a bare JSON string token.
type exchangePayload struct {
	Token    string        `json:"token"`
	UserInfo *session.User `json:"userInfo"`
	Data     struct {
		Token    string        `json:"token"`
		UserInfo *session.User `json:"userInfo"`
	} `json:"data"`
}

// Login runs the chained credential exchange and profile fetch.
//
// A failed exchange rejects the login outright. A failed profile fetch
// degrades it: the session is still established, with a synthetic
// profile so callers can tell the record is partial. The exchange
// response's avatar, when present, overrides the profile's.
func Login(ctx context.Context, deps LoginDeps, username, password string) (*LoginResult, error) {
	raw, err := deps.Exchange(ctx, username, password)
	if err != nil {
		return &LoginResult{Status: LoginRejected}, err
	}

	token, inline := extractToken(raw)
	if token == "" {
		return &LoginResult{Status: LoginRejected}, errNoToken
	}

	res := &LoginResult{Status: LoginAuthenticated, Token: token}

	user, err := deps.FetchProfile(ctx, token)
	if err != nil || user == nil {
		res.Status = LoginDegraded
		user = degradedProfile(username)
	}
	if inline != nil && inline.Avatar != "" {
		user.Avatar = inline.Avatar
	}
	res.User = user

	if err := deps.SaveSession(ctx, &session.Record{Token: token, User: user}); err != nil {
		return res, err
	}
	return res, nil
}

// extractToken pulls the token out of the exchange payload, probing
// the known nesting variants. The second return is the inline profile
// shipped alongside the token, when the deployment sends one.
func extractToken(raw json.RawMessage) (string, *session.User) {
	var p exchangePayload
	if err := json.Unmarshal(raw, &p); err == nil {
		if p.Token != "" {
			return p.Token, p.UserInfo
		}
		if p.Data.Token != "" {
			return p.Data.Token, p.Data.UserInfo
		}
	}
	var bare string
	if err := json.Unmarshal(raw, &bare); err == nil && strings.TrimSpace(bare) != "" {
		return bare, nil
	}
	return "", nil
}

func degradedProfile(username string) *session.User {
	return &session.User{
		ID:       json.Number("0"),
		Username: username,
		Status:   1,
		Error:    "profile fetch failed",
	}
}
