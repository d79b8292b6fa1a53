// Package provider defines the contract for communicating with a remote
// text-generation API: the Provider interface, per-call options, typed
// errors, and the retry policy applied to outbound HTTP calls.
package provider

import (
	"context"

	"github.com/llmwire/llmwire/chat"
)

// Provider is the interface for a chat completion backend. Concrete
// implementations live in subpackages (e.g. provider/openaicompat).
type Provider interface {
	// Complete sends the conversation and returns the full response text.
	Complete(ctx context.Context, turns []chat.Turn, opts ...CallOption) (string, error)

	// Stream sends the conversation and returns a channel of text deltas.
	// Initial connection errors are returned directly. Mid-stream errors
	// are delivered via StreamDelta.Err. The channel is closed when the
	// stream terminates, on every path.
	Stream(ctx context.Context, turns []chat.Turn, opts ...CallOption) (<-chan StreamDelta, error)

	// ModelName returns the identifier of the underlying model.
	ModelName() string
}

// StreamDelta is one incremental unit of generated text received during
// a streaming call. A non-nil Err signals a mid-stream failure; no
// further deltas follow it.
type StreamDelta struct {
	Text string
	Err  error
}

// CallSettings holds the per-call parameters collected from CallOptions.
type CallSettings struct {
	// Stop holds call-time stop sequences, merged with the configured
	// ones by the adapter.
	Stop []string

	// Observer receives per-delta and per-error notifications.
	// Never nil after NewCallSettings.
	Observer chat.Observer
}

// CallOption configures a single Complete or Stream call.
type CallOption func(*CallSettings)

// WithStop adds stop sequences for this call only.
func WithStop(stop ...string) CallOption {
	return func(s *CallSettings) { s.Stop = append(s.Stop, stop...) }
}

// WithObserver attaches a progress observer for this call.
func WithObserver(obs chat.Observer) CallOption {
	return func(s *CallSettings) { s.Observer = obs }
}

// NewCallSettings applies the given options. The observer defaults to a
// no-op implementation so adapters never need a nil check.
func NewCallSettings(opts ...CallOption) CallSettings {
	s := CallSettings{Observer: chat.NopObserver{}}
	for _, opt := range opts {
		opt(&s)
	}
	if s.Observer == nil {
		s.Observer = chat.NopObserver{}
	}
	return s
}
