package rsclient

import "net/http"

// User-facing fallback messages, used when the server supplied none.
const (
	msgNetworkUnavailable = "network unreachable, check the connection and try again"
	msgBadRequest         = "invalid request parameters"
	msgAuthExpired        = "login expired, please sign in again"
	msgForbidden          = "no permission to access this resource"
	msgNotFound           = "the requested resource does not exist"
	msgServerError        = "internal server error"
	msgRequestFailed      = "request failed"
)

// classifyStatus maps a non-2xx HTTP status to the failure taxonomy. The
// server's envelope message, when present, overrides the fallback for the
// statuses where it is meaningful to relay.
func classifyStatus(status int, env *Envelope, raw []byte) *APIError {
	serverMsg := env.ErrorMessage()

	switch status {
	case http.StatusBadRequest:
		return apiError(ErrBadRequest, status, 0, messageOr(serverMsg, msgBadRequest), raw)
	case http.StatusUnauthorized:
		// The fixed message wins here: the server's own wording for a
		// dead session is rarely actionable for the user.
		return apiError(ErrAuthenticationExpired, status, 0, msgAuthExpired, raw)
	case http.StatusForbidden:
		return apiError(ErrForbidden, status, 0, msgForbidden, raw)
	case http.StatusNotFound:
		return apiError(ErrNotFound, status, 0, msgNotFound, raw)
	case http.StatusInternalServerError:
		return apiError(ErrServerError, status, 0, messageOr(serverMsg, msgServerError), raw)
	default:
		return apiError(ErrApplicationError, status, 0, messageOr(serverMsg, msgRequestFailed), raw)
	}
}

// classifyEnvelope maps a non-success envelope to the failure taxonomy.
func classifyEnvelope(env *Envelope, raw []byte) *APIError {
	code := 0
	if env != nil && env.Code != nil {
		code = *env.Code
	}

	if env.IsAuthExpired() {
		return apiError(ErrAuthenticationExpired, 0, code, msgAuthExpired, raw)
	}
	return apiError(ErrApplicationError, 0, code, messageOr(env.ErrorMessage(), msgRequestFailed), raw)
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
