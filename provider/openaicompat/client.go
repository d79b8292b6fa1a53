package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/llmwire/llmwire/observability"
	"github.com/llmwire/llmwire/provider"
)

// Wire types for JSON serialization.

type wireRequest struct {
	Model       string        `json:"model"`
	Messages    []wireMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stop        []string      `json:"stop,omitempty"`
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type wireResponse struct {
	Choices []wireChoice `json:"choices"`
}

type wireChoice struct {
	Message wireChoiceMessage `json:"message"`
}

type wireChoiceMessage struct {
	// Content is a pointer so a missing field is distinguishable from
	// an empty completion.
	Content *string `json:"content"`
}

type wireStreamChunk struct {
	Choices []wireStreamChoice `json:"choices"`
}

type wireStreamChoice struct {
	Delta wireStreamDelta `json:"delta"`
}

type wireStreamDelta struct {
	Content string `json:"content"`
}

// buildRequest assembles the provider payload from translated messages,
// call-time stop sequences, and the client configuration.
func (p *Client) buildRequest(messages []wireMessage, callStop []string, stream bool) wireRequest {
	return wireRequest{
		Model:       p.config.Model,
		Messages:    messages,
		Temperature: *p.config.Temperature,
		Stream:      stream,
		MaxTokens:   p.config.MaxTokens,
		Stop:        mergeStop(p.config.Stop, callStop),
	}
}

// mergeStop unions configured and call-time stop sequences, dropping
// duplicates while preserving first-seen order. Returns nil when both
// sides are empty so the field is omitted from the payload.
func mergeStop(configured, callTime []string) []string {
	if len(configured) == 0 && len(callTime) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(configured)+len(callTime))
	out := make([]string, 0, len(configured)+len(callTime))
	for _, group := range [][]string{configured, callTime} {
		for _, s := range group {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// doRequest executes a single HTTP POST to the chat completions endpoint.
func (p *Client) doRequest(ctx context.Context, body wireRequest) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := p.config.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if p.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	}
	for k, v := range p.config.Headers {
		req.Header.Set(k, v)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		// Do not classify caller cancellation/timeout as a provider
		// failure; the retry policy would otherwise re-attempt it.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("send request: %w", err)
	}

	return resp, nil
}

// send runs doRequest under the retry policy. On return the response
// has status 200; any non-200 attempt has been drained and closed.
func (p *Client) send(ctx context.Context, body wireRequest) (*http.Response, error) {
	var resp *http.Response
	attempt := 0
	err := provider.Do(ctx, p.retry, p.logger, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			observability.RetriesTotal.Inc()
		}

		r, err := p.doRequest(ctx, body)
		if err != nil {
			return err
		}
		if r.StatusCode != http.StatusOK {
			return errorFromResponse(r)
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// maxErrorBodySize caps how much of an error response body is read to
// prevent memory spikes.
const maxErrorBodySize = 4096

// errorFromResponse builds an APIError from a non-200 response. The
// body read is best-effort and the response is always closed.
func errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	_ = resp.Body.Close()
	return &provider.APIError{
		Status: resp.StatusCode,
		Body:   strings.TrimSpace(string(body)),
	}
}
