package mailtm

import (
	"fmt"
	"time"
)

// TimeoutError is returned when a call to the upstream provider does not
// complete within the client's timeout. It is always retryable.
type TimeoutError struct {
	Endpoint string
	Timeout  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("mailtm: %s timed out after %v", e.Endpoint, e.Timeout)
}

// UpstreamError is returned when the provider responds with an unexpected
// non-2xx status. A StatusCode of 0 means the request produced no response at
// all (connection failure). Retryable only for 429, 5xx and no-response.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("mailtm: upstream unreachable: %s", e.Body)
	}
	return fmt.Sprintf("mailtm: upstream returned %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the failure is transient.
func (e *UpstreamError) Retryable() bool {
	return e.StatusCode == 0 || e.StatusCode == 429 || e.StatusCode >= 500
}

// AuthError is returned when the provider rejects the given credentials or
// bearer token. Not retryable - the session is invalid.
type AuthError struct {
	StatusCode int
	Body       string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("mailtm: authentication failed with %d: %s", e.StatusCode, e.Body)
}

// NotFoundError is returned when a message id does not exist upstream.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("mailtm: message %q not found", e.ID)
}

// ProtocolError is returned when a 2xx response does not match the shape the
// provider contract promises. Not retryable - it indicates contract drift.
type ProtocolError struct {
	Endpoint string
	Reason   string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("mailtm: unexpected %s response: %s", e.Endpoint, e.Reason)
}

// retryable classifies an error for the retry loop. Timeouts and transient
// upstream statuses are retried, everything else fails fast.
func retryable(err error) bool {
	switch e := err.(type) {
	case *TimeoutError:
		return true
	case *UpstreamError:
		return e.Retryable()
	default:
		return false
	}
}
