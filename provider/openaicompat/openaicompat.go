// Package openaicompat implements a provider adapter for any HTTP API
// exposing the OpenAI chat completions interface (llm7, Mistral, Groq,
// DeepSeek, vLLM, LiteLLM, etc.) via a configurable base URL.
package openaicompat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/llmwire/llmwire/chat"
	"github.com/llmwire/llmwire/observability"
	"github.com/llmwire/llmwire/provider"
)

// Client is a stateless per-call translator between chat turns and an
// OpenAI-compatible completion API. It is safe for concurrent use; the
// only shared state is the immutable configuration and the HTTP
// connection pool.
type Client struct {
	config Config
	client *http.Client
	retry  provider.RetryPolicy
	logger *slog.Logger
}

// Option configures optional Client behavior.
type Option func(*Client)

// WithLogger injects a structured logger. When nil or omitted, all log
// output is silently discarded (zero cost).
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithRetryPolicy replaces the retry policy derived from the
// configuration's max_retries.
func WithRetryPolicy(policy provider.RetryPolicy) Option {
	return func(c *Client) { c.retry = policy }
}

// New creates a Client from the given configuration. Unset fields are
// filled with defaults before validation.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.defaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config: cfg,
		retry:  provider.RetryPolicy{MaxRetries: *cfg.MaxRetries},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.New(provider.DiscardHandler{})
	}
	if c.client == nil {
		// Use a transport with response-header timeout instead of a
		// global client timeout. A global timeout kills long-running
		// SSE streams; per-request context handles cancellation.
		c.client = &http.Client{
			Transport: &http.Transport{
				ResponseHeaderTimeout: cfg.Timeout,
			},
		}
	}

	return c, nil
}

// ModelName implements provider.Provider.
func (p *Client) ModelName() string {
	return p.config.Model
}

// Complete implements provider.Provider. It sends the conversation as a
// single blocking call and returns the first choice's message content.
func (p *Client) Complete(ctx context.Context, turns []chat.Turn, opts ...provider.CallOption) (string, error) {
	settings := provider.NewCallSettings(opts...)
	start := time.Now()

	text, err := p.complete(ctx, turns, settings)
	if err != nil {
		observability.RequestsTotal.WithLabelValues("complete", "error").Inc()
		settings.Observer.OnError(err)
		return "", err
	}

	observability.RequestsTotal.WithLabelValues("complete", "ok").Inc()
	observability.RequestDuration.WithLabelValues("complete").Observe(time.Since(start).Seconds())
	return text, nil
}

func (p *Client) complete(ctx context.Context, turns []chat.Turn, settings provider.CallSettings) (string, error) {
	messages, err := convertTurns(turns, p.logger)
	if err != nil {
		return "", err
	}

	resp, err := p.send(ctx, p.buildRequest(messages, settings.Stop, false))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	var wr wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return "", fmt.Errorf("%w: decode body: %w", provider.ErrMalformedResponse, err)
	}
	if len(wr.Choices) == 0 || wr.Choices[0].Message.Content == nil {
		return "", fmt.Errorf("%w: missing choices[0].message.content", provider.ErrMalformedResponse)
	}

	return *wr.Choices[0].Message.Content, nil
}

// Stream implements provider.Provider. The returned channel delivers
// text deltas in arrival order and is closed when the stream ends, on
// every path. Each delta is also reported to the call's observer.
func (p *Client) Stream(ctx context.Context, turns []chat.Turn, opts ...provider.CallOption) (<-chan provider.StreamDelta, error) {
	settings := provider.NewCallSettings(opts...)
	start := time.Now()

	messages, err := convertTurns(turns, p.logger)
	if err != nil {
		observability.RequestsTotal.WithLabelValues("stream", "error").Inc()
		settings.Observer.OnError(err)
		return nil, err
	}

	resp, err := p.send(ctx, p.buildRequest(messages, settings.Stop, true))
	if err != nil {
		observability.RequestsTotal.WithLabelValues("stream", "error").Inc()
		settings.Observer.OnError(err)
		return nil, err
	}

	observability.RequestsTotal.WithLabelValues("stream", "ok").Inc()
	observability.RequestDuration.WithLabelValues("stream").Observe(time.Since(start).Seconds())
	observability.ActiveStreams.Inc()

	out := make(chan provider.StreamDelta, 16)
	go p.decodeStream(ctx, resp.Body, settings.Observer, out)
	return out, nil
}

var _ provider.Provider = (*Client)(nil)
