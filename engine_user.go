package rsclient

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// ProfileUpdate carries the mutable profile fields. Nil pointers are
// omitted from the request, so partial updates never blank a field.
type ProfileUpdate struct {
	Username *string `json:"username,omitempty"`
	RealName *string `json:"realName,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Password *string `json:"password,omitempty"`
}

// CurrentUser fetches the signed-in user's profile and refreshes the
// persisted copy so session-derived predicates stay current.
func (c *Client) CurrentUser(ctx context.Context) (*UserRecord, error) {
	var user UserRecord
	if err := c.business.get(ctx, "/user/current", nil, &user); err != nil {
		return nil, err
	}

	rec, err := c.sessions.Load(ctx)
	if err == nil && rec.IsLoggedIn() {
		rec.User = &user
		if err := c.sessions.Save(ctx, rec); err != nil {
			c.logger.Warn().Err(err).Msg("profile refresh persist failed")
		}
	}
	return &user, nil
}

// User fetches another user's profile by id.
func (c *Client) User(ctx context.Context, id string) (*UserRecord, error) {
	var user UserRecord
	if err := c.business.get(ctx, "/user/"+url.PathEscape(id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Users pages through the user directory. Username and realName filter
// when non-empty; it is an administrator-only listing server-side.
func (c *Client) Users(ctx context.Context, q PageQuery, username, realName string) (*Page[UserRecord], error) {
	query := pageQueryValues(q)
	if username != "" {
		query.Set("username", username)
	}
	if realName != "" {
		query.Set("realName", realName)
	}
	var page Page[UserRecord]
	if err := c.business.get(ctx, "/user/page", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Register creates an account and returns the new user's id. It does
// not establish a session; callers follow up with Login.
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	var id json.Number
	if err := c.business.post(ctx, "/user/register", loginPayload{Username: username, Password: password}, &id); err != nil {
		return "", err
	}
	return id.String(), nil
}

// UpdateProfile applies a partial profile update to the given user. When
// the target is the signed-in user, the persisted profile is re-fetched
// so the session does not go stale.
func (c *Client) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) error {
	if err := c.business.put(ctx, "/user/"+url.PathEscape(id), update, nil); err != nil {
		return err
	}

	rec, err := c.sessions.Load(ctx)
	if err != nil || !rec.IsLoggedIn() {
		return nil
	}
	if current, ok := rec.User.StringID(); ok && current == id {
		if _, err := c.CurrentUser(WithSilent(ctx)); err != nil {
			c.logger.Warn().Err(err).Msg("session profile refresh failed after update")
		}
	}
	return nil
}

// ChangePassword rotates the signed-in user's password through the
// profile update endpoint.
func (c *Client) ChangePassword(ctx context.Context, password string) error {
	rec, err := c.sessions.Load(ctx)
	if err != nil || !rec.IsLoggedIn() {
		return apiError(ErrMissingIdentity, 0, 0, "no signed-in user", nil)
	}
	id, ok := rec.User.StringID()
	if !ok {
		return apiError(ErrMissingIdentity, 0, 0, "session carries no usable user id", nil)
	}
	return c.business.put(ctx, "/user/"+url.PathEscape(id), ProfileUpdate{Password: &password}, nil)
}

func pageQueryValues(q PageQuery) url.Values {
	values := url.Values{}
	if q.Current > 0 {
		values.Set("current", strconv.Itoa(q.Current))
	}
	if q.Size > 0 {
		values.Set("size", strconv.Itoa(q.Size))
	}
	return values
}
