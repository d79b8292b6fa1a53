package openaicompat

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/llmwire/llmwire/chat"
	"github.com/llmwire/llmwire/provider"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestConvertTurns(t *testing.T) {
	turns := []chat.Turn{
		chat.System("You are helpful"),
		chat.Human("What is the capital of France?"),
		chat.Assistant("Paris"),
	}

	messages, err := convertTurns(turns, discardLogger())
	if err != nil {
		t.Fatalf("convertTurns: %v", err)
	}

	want := []wireMessage{
		{Role: "system", Content: "You are helpful"},
		{Role: "user", Content: "What is the capital of France?"},
		{Role: "assistant", Content: "Paris"},
	}
	if len(messages) != len(want) {
		t.Fatalf("len = %d, want %d", len(messages), len(want))
	}
	for i := range want {
		if messages[i] != want[i] {
			t.Errorf("messages[%d] = %+v, want %+v", i, messages[i], want[i])
		}
	}
}

func TestConvertTurns_UnsupportedKind(t *testing.T) {
	turns := []chat.Turn{
		chat.Human("hello"),
		{Kind: chat.Kind("tool"), Text: "result"},
	}

	messages, err := convertTurns(turns, discardLogger())
	if !errors.Is(err, provider.ErrUnsupportedMessageType) {
		t.Fatalf("expected ErrUnsupportedMessageType, got: %v", err)
	}
	if messages != nil {
		t.Errorf("expected no partial results, got %v", messages)
	}
}

func TestConvertTurns_EmptyBatch(t *testing.T) {
	messages, err := convertTurns(nil, discardLogger())
	if err != nil {
		t.Fatalf("convertTurns: %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("len = %d, want 0", len(messages))
	}
}

func TestFlattenParts(t *testing.T) {
	tests := []struct {
		name  string
		parts []chat.Part
		want  string
	}{
		{
			name:  "single text",
			parts: []chat.Part{chat.TextPart{Text: "hello"}},
			want:  "hello",
		},
		{
			name: "text parts joined with newline",
			parts: []chat.Part{
				chat.TextPart{Text: "a"},
				chat.TextPart{Text: "b"},
			},
			want: "a\nb",
		},
		{
			name: "non-text parts dropped",
			parts: []chat.Part{
				chat.TextPart{Text: "a"},
				chat.ImagePart{URL: "https://example.com/cat.png"},
				chat.TextPart{Text: "b"},
			},
			want: "a\nb",
		},
		{
			name: "zero text parts",
			parts: []chat.Part{
				chat.ImagePart{URL: "https://example.com/cat.png"},
				chat.BinaryPart{MIMEType: "audio/ogg", Data: []byte{1, 2}},
			},
			want: "",
		},
		{
			name:  "empty list",
			parts: []chat.Part{},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := flattenParts(tt.parts, discardLogger())
			if err != nil {
				t.Fatalf("flattenParts: %v", err)
			}
			if got != tt.want {
				t.Errorf("flattenParts = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvertTurns_StructuredContent(t *testing.T) {
	turns := []chat.Turn{
		{Kind: chat.KindHuman, Parts: []chat.Part{
			chat.TextPart{Text: "look at this"},
			chat.ImagePart{URL: "https://example.com/cat.png"},
			chat.TextPart{Text: "what breed?"},
		}},
	}

	messages, err := convertTurns(turns, discardLogger())
	if err != nil {
		t.Fatalf("convertTurns: %v", err)
	}
	if got, want := messages[0].Content, "look at this\nwhat breed?"; got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestRoleForKind(t *testing.T) {
	tests := []struct {
		kind chat.Kind
		want string
	}{
		{chat.KindSystem, "system"},
		{chat.KindHuman, "user"},
		{chat.KindAssistant, "assistant"},
	}
	for _, tt := range tests {
		got, err := roleForKind(tt.kind)
		if err != nil {
			t.Fatalf("roleForKind(%q): %v", tt.kind, err)
		}
		if got != tt.want {
			t.Errorf("roleForKind(%q) = %q, want %q", tt.kind, got, tt.want)
		}
	}

	if _, err := roleForKind(chat.Kind("function")); !errors.Is(err, provider.ErrUnsupportedMessageType) {
		t.Errorf("expected ErrUnsupportedMessageType, got: %v", err)
	}
}
