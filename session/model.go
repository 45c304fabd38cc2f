package session

import (
	"encoding/json"
	"strings"
)

// RoleAdmin is the role value that marks an administrator account.
const RoleAdmin = 1

// User is the profile half of the persisted session record. The backend
// reports ids as either JSON numbers or strings; json.Number accepts both.
type User struct {
	ID       json.Number `json:"id"`
	Username string      `json:"username"`
	RealName string      `json:"realName,omitempty"`
	Phone    *string     `json:"phone"`
	Email    *string     `json:"email"`
	Role     int         `json:"role"`
	Status   int         `json:"status"`
	Avatar   string      `json:"avatar,omitempty"`

	// Error marks a degraded profile synthesized after a failed
	// profile fetch. Empty on fully authenticated sessions.
	Error string `json:"error,omitempty"`
}

// StringID returns the user id coerced to its string form. The second
// return is false when the id is absent or blank, which is a hard
// precondition failure for identity-scoped operations.
func (u *User) StringID() (string, bool) {
	if u == nil {
		return "", false
	}
	id := strings.TrimSpace(u.ID.String())
	if id == "" {
		return "", false
	}
	return id, true
}

// IsAdmin reports whether the profile carries the administrator role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Record is the single serialized session record: token plus profile.
// It is written atomically by the login flow and cleared on logout or
// authentication expiry.
type Record struct {
	Token string `json:"token"`
	User  *User  `json:"userInfo"`
}

// IsLoggedIn reports whether the record represents an authenticated
// session. The invariant is strict: both halves must be present.
func (r *Record) IsLoggedIn() bool {
	return r != nil && r.Token != "" && r.User != nil
}
