package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Sentinel errors for adapter operations.
var (
	// ErrUnsupportedMessageType indicates a conversation turn whose kind
	// has no wire-format role mapping. Translation of the whole batch is
	// aborted.
	ErrUnsupportedMessageType = errors.New("unsupported message type")

	// ErrUnsupportedContentType indicates turn content of a shape the
	// adapter cannot translate.
	ErrUnsupportedContentType = errors.New("unsupported content type")

	// ErrMalformedResponse indicates a 200 response missing the expected
	// completion content.
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrStreamTransport indicates an I/O failure while reading a
	// streaming response body.
	ErrStreamTransport = errors.New("stream transport failure")
)

// APIError is a non-2xx provider response, reported after the retry
// policy is exhausted. Body is truncated to a fixed cap by the adapter.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("provider returned HTTP %d: %s", e.Status, e.Body)
}

// Retryable reports whether the status is worth another attempt:
// rate limiting or a server-side failure.
func (e *APIError) Retryable() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}

// IsRetryable reports whether the error is transient and the HTTP call
// can be retried after a delay. Caller cancellation is never retryable.
func IsRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}

	// Connection refused/reset and timeouts surface as net errors
	// wrapped in *url.Error by the HTTP client.
	var netErr net.Error
	return errors.As(err, &netErr)
}
