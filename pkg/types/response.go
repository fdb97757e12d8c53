// Package types holds the JSON envelope shapes every endpoint responds with:
// successes under "data", failures under "error".
package types

// SuccessEnvelope wraps any successful payload.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the wire form of a typed error: a stable machine-readable code,
// a human-readable message, and optional structured details.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps an APIError for transport.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
