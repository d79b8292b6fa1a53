package provider

import (
	"context"
	"log/slog"
	"time"
)

// RetryPolicy controls how outbound HTTP calls are retried. The zero
// value is usable; unset fields fall back to defaults.
type RetryPolicy struct {
	// MaxRetries is the number of additional attempts after the first.
	// Zero disables retries.
	MaxRetries int

	// InitialBackoff is the delay before the first retry. Default: 500ms.
	InitialBackoff time.Duration

	// MaxBackoff caps the exponential backoff duration. Default: 30s.
	MaxBackoff time.Duration
}

// withDefaults fills zero-value fields with sensible defaults.
func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	if p.InitialBackoff <= 0 {
		p.InitialBackoff = 500 * time.Millisecond
	}
	if p.MaxBackoff <= 0 {
		p.MaxBackoff = 30 * time.Second
	}
	return p
}

// Delay returns the backoff before retry number attempt (zero-based):
// InitialBackoff doubled per attempt, capped at MaxBackoff.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	p = p.withDefaults()
	d := p.InitialBackoff
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= p.MaxBackoff {
			return p.MaxBackoff
		}
	}
	if d > p.MaxBackoff {
		return p.MaxBackoff
	}
	return d
}

// Do runs fn up to policy.MaxRetries+1 times, sleeping between attempts
// per the policy. It stops early on success, on a non-retryable error,
// or when ctx is done. The last error is returned once attempts are
// exhausted.
//
// fn owns any resources it acquires on a failed attempt; Do never sees
// an *http.Response, only the classified error.
func Do(ctx context.Context, policy RetryPolicy, logger *slog.Logger, fn func(context.Context) error) error {
	policy = policy.withDefaults()
	if logger == nil {
		logger = slog.New(DiscardHandler{})
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return lastErr
		}
		if !IsRetryable(lastErr) || attempt >= policy.MaxRetries {
			return lastErr
		}

		delay := policy.Delay(attempt)
		logger.Warn("retrying provider request",
			"attempt", attempt+1,
			"max_retries", policy.MaxRetries,
			"delay", delay,
			"error", lastErr,
		)

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

// DiscardHandler is a slog.Handler that drops all records. Enabled
// returns false so slog skips formatting entirely (zero cost).
type DiscardHandler struct{}

func (DiscardHandler) Enabled(context.Context, slog.Level) bool {
	return false
}

func (DiscardHandler) Handle(context.Context, slog.Record) error {
	return nil
}

func (DiscardHandler) WithAttrs([]slog.Attr) slog.Handler {
	return DiscardHandler{}
}

func (DiscardHandler) WithGroup(string) slog.Handler {
	return DiscardHandler{}
}
