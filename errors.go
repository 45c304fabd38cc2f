package rsclient

import (
	"errors"
	"fmt"
)

var (
	// ErrNetworkUnavailable classifies transport failures where no
	// response arrived at all: refused connections, DNS failures, and
	// the per-pipeline timeout ceiling.
	ErrNetworkUnavailable = errors.New("network unavailable")
	// ErrBadRequest classifies HTTP 400 responses.
	ErrBadRequest = errors.New("bad request")
	// ErrAuthenticationExpired classifies HTTP 401 responses and
	// envelope code 401. It always clears the persisted session.
	ErrAuthenticationExpired = errors.New("authentication expired")
	// ErrForbidden classifies HTTP 403 responses.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound classifies HTTP 404 responses.
	ErrNotFound = errors.New("not found")
	// ErrServerError classifies HTTP 500 responses.
	ErrServerError = errors.New("server error")
	// ErrApplicationError classifies envelope rejections carrying a
	// non-success, non-401 code.
	ErrApplicationError = errors.New("application error")
	// ErrMalformedUploadResponse is returned when the file service
	// answers an upload with anything but string-typed url, bucket, and
	// objectKey fields. Partial upload results are never surfaced.
	ErrMalformedUploadResponse = errors.New("malformed upload response")
	// ErrMissingIdentity is returned when an identity-scoped mutating
	// operation runs without a session carrying a coercible user id.
	ErrMissingIdentity = errors.New("missing user identity")
	// ErrLoginRejected is returned when the credential exchange fails;
	// the server-provided message travels in the APIError.
	ErrLoginRejected = errors.New("login rejected")
)

// APIError carries a classified request failure: the taxonomy sentinel,
// the originating HTTP status or envelope code, the human-readable
// message, and the raw response body for diagnostics.
//
// APIError matches its sentinel under errors.Is, so callers branch with
// errors.Is(err, rsclient.ErrNotFound) rather than inspecting fields.
type APIError struct {
	Kind       error
	StatusCode int
	Code       int
	Message    string
	Raw        []byte
}

// Error formats the classification and message.
func (e *APIError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Message)
}

// Unwrap exposes the taxonomy sentinel to errors.Is.
func (e *APIError) Unwrap() error {
	return e.Kind
}

func apiError(kind error, status, code int, message string, raw []byte) *APIError {
	return &APIError{
		Kind:       kind,
		StatusCode: status,
		Code:       code,
		Message:    message,
		Raw:        raw,
	}
}
