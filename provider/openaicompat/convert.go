package openaicompat

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/llmwire/llmwire/chat"
	"github.com/llmwire/llmwire/provider"
)

// convertTurns translates conversation turns into wire messages,
// preserving order. Any unsupported turn aborts the whole batch.
func convertTurns(turns []chat.Turn, logger *slog.Logger) ([]wireMessage, error) {
	messages := make([]wireMessage, len(turns))
	for i, turn := range turns {
		role, err := roleForKind(turn.Kind)
		if err != nil {
			return nil, err
		}

		content := turn.Text
		if turn.Parts != nil {
			content, err = flattenParts(turn.Parts, logger)
			if err != nil {
				return nil, err
			}
		}

		messages[i] = wireMessage{Role: role, Content: content}
	}
	return messages, nil
}

// roleForKind maps a turn kind to its wire-format role.
func roleForKind(kind chat.Kind) (string, error) {
	switch kind {
	case chat.KindSystem:
		return "system", nil
	case chat.KindHuman:
		return "user", nil
	case chat.KindAssistant:
		return "assistant", nil
	default:
		return "", fmt.Errorf("%w: %q", provider.ErrUnsupportedMessageType, kind)
	}
}

// flattenParts joins the text parts of structured content with newlines.
// Image and binary parts are dropped with a diagnostic; a part type
// outside the chat package's sealed set is an error. Zero text parts
// yield the empty string.
func flattenParts(parts []chat.Part, logger *slog.Logger) (string, error) {
	texts := make([]string, 0, len(parts))
	dropped := 0
	for _, part := range parts {
		switch p := part.(type) {
		case chat.TextPart:
			texts = append(texts, p.Text)
		case chat.ImagePart, chat.BinaryPart:
			dropped++
		default:
			return "", fmt.Errorf("%w: %T", provider.ErrUnsupportedContentType, part)
		}
	}

	if dropped > 0 {
		logger.Warn("dropped non-text content parts",
			"dropped", dropped,
			"kept", len(texts),
		)
	}

	return strings.Join(texts, "\n"), nil
}
