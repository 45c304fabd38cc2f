package rsclient

import (
	"bytes"
	"encoding/json"
)

// Envelope is the backend's standard response wrapper. The services
// disagree on conventions — msg vs message, success 200 vs 0 — so the
// compatibility table below is the single place those are reconciled.
type Envelope struct {
	Code    *int            `json:"code"`
	Msg     string          `json:"msg"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Envelope compatibility table. Consulted only here; call sites never
// re-derive success or message conventions.
var envelopeSuccessCodes = map[int]struct{}{
	200: {},
	0:   {},
}

// envelopeCodeAuthExpired is the reserved envelope code meaning the
// session is no longer valid.
const envelopeCodeAuthExpired = 401

// IsSuccess reports whether the envelope's code is one of the accepted
// success values.
func (e *Envelope) IsSuccess() bool {
	if e == nil || e.Code == nil {
		return false
	}
	_, ok := envelopeSuccessCodes[*e.Code]
	return ok
}

// IsAuthExpired reports whether the envelope carries the reserved
// authentication-expiry code.
func (e *Envelope) IsAuthExpired() bool {
	return e != nil && e.Code != nil && *e.Code == envelopeCodeAuthExpired
}

// ErrorMessage extracts the server-provided message, preferring msg over
// message and falling back to the stringified data payload.
func (e *Envelope) ErrorMessage() string {
	if e == nil {
		return ""
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Message != "" {
		return e.Message
	}
	if len(e.Data) > 0 && !bytes.Equal(e.Data, []byte("null")) {
		return string(e.Data)
	}
	return ""
}

// parseEnvelope decodes body as an envelope. The second return is false
// when the body is not a JSON object carrying a code property — such
// bodies are already-unwrapped data and bypass envelope handling.
func parseEnvelope(body []byte) (*Envelope, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}

	// Probe for the code property without committing to the envelope
	// shape; `{"code": null}` still counts as enveloped.
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, false
	}
	if _, ok := probe["code"]; !ok {
		return nil, false
	}

	var env Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, false
	}
	return &env, true
}
