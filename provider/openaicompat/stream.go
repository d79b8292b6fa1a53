package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/llmwire/llmwire/chat"
	"github.com/llmwire/llmwire/observability"
	"github.com/llmwire/llmwire/provider"
)

// lineBuffer accumulates raw bytes from arbitrarily-chunked reads and
// yields complete newline-terminated lines. The partial tail is kept
// across feeds; transport chunk boundaries need not align with line
// boundaries.
type lineBuffer struct {
	buf []byte
}

func (b *lineBuffer) feed(p []byte) {
	b.buf = append(b.buf, p...)
}

// nextLine extracts the next complete line, without its terminator.
// A trailing \r is stripped so CRLF streams decode identically.
func (b *lineBuffer) nextLine() (string, bool) {
	i := bytes.IndexByte(b.buf, '\n')
	if i < 0 {
		return "", false
	}
	line := string(bytes.TrimRight(b.buf[:i], "\r"))
	b.buf = b.buf[i+1:]
	return line, true
}

// pending returns the number of buffered bytes not yet forming a line.
func (b *lineBuffer) pending() int {
	return len(b.buf)
}

// decodeStream reads the response body incrementally and emits one
// StreamDelta per decoded content delta, in arrival order. It owns the
// body and closes it exactly once, on every exit path.
func (p *Client) decodeStream(ctx context.Context, body io.ReadCloser, obs chat.Observer, out chan<- provider.StreamDelta) {
	defer close(out)
	defer body.Close() //nolint:errcheck // best-effort close
	defer observability.ActiveStreams.Dec()

	var lines lineBuffer
	chunk := make([]byte, 4096)
	for {
		n, readErr := body.Read(chunk)
		if n > 0 {
			lines.feed(chunk[:n])
			for {
				line, ok := lines.nextLine()
				if !ok {
					break
				}
				emitted, done := p.decodeLine(line)
				if emitted != "" {
					obs.OnToken(emitted)
					observability.StreamDeltasTotal.Inc()
					select {
					case out <- provider.StreamDelta{Text: emitted}:
					case <-ctx.Done():
						return
					}
				}
				if done {
					if pending := lines.pending(); pending > 0 {
						p.logger.Debug("discarding buffered bytes after stream terminator",
							"bytes", pending,
						)
					}
					return
				}
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				// Some compatible providers close the connection
				// without sending the [DONE] sentinel.
				return
			}

			var err error
			if ctx.Err() != nil {
				err = ctx.Err()
			} else {
				err = fmt.Errorf("%w: %w", provider.ErrStreamTransport, readErr)
			}
			obs.OnError(err)
			select {
			case out <- provider.StreamDelta{Err: err}:
			case <-ctx.Done():
			}
			return
		}
	}
}

// decodeLine interprets a single protocol line. It returns the content
// delta to emit (empty for none) and whether the stream is finished.
// Blank lines and lines without the event-data prefix are skipped, and
// a malformed payload skips that line only.
func (p *Client) decodeLine(line string) (string, bool) {
	line = strings.TrimSpace(line)

	// Accept both "data: " (with space) and "data:" (without). Some
	// OpenAI-compatible providers omit the space after the colon.
	var data string
	switch {
	case strings.HasPrefix(line, "data: "):
		data = strings.TrimPrefix(line, "data: ")
	case strings.HasPrefix(line, "data:"):
		data = strings.TrimPrefix(line, "data:")
	default:
		return "", false
	}

	data = strings.TrimSpace(data)
	if data == "[DONE]" {
		return "", true
	}

	var chunk wireStreamChunk
	if err := json.Unmarshal([]byte(data), &chunk); err != nil {
		p.logger.Warn("skipping malformed stream line", "error", err)
		return "", false
	}

	if len(chunk.Choices) == 0 {
		return "", false
	}
	return chunk.Choices[0].Delta.Content, false
}
