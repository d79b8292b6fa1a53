// Package chat defines the conversation types a host framework exchanges
// with a provider adapter: turns tagged by speaker, structured content
// parts, and the per-call progress observer capability.
package chat

// Kind identifies the speaker of a conversation turn.
type Kind string

// Kind constants for conversation turns.
const (
	KindSystem    Kind = "system"
	KindHuman     Kind = "human"
	KindAssistant Kind = "assistant"
)

// Turn is a single message in a conversation. Content is either plain
// Text or a list of typed Parts; when Parts is non-nil it takes
// precedence and Text is ignored.
type Turn struct {
	Kind  Kind
	Text  string
	Parts []Part
}

// System returns a system turn with plain text content.
func System(text string) Turn {
	return Turn{Kind: KindSystem, Text: text}
}

// Human returns a human turn with plain text content.
func Human(text string) Turn {
	return Turn{Kind: KindHuman, Text: text}
}

// Assistant returns an assistant turn with plain text content.
func Assistant(text string) Turn {
	return Turn{Kind: KindAssistant, Text: text}
}

// Part is one element of structured turn content. Implementations are
// sealed to the types defined in this package so adapters can enumerate
// them exhaustively.
type Part interface {
	isPart()
}

// TextPart carries plain text content.
type TextPart struct {
	Text string
}

func (TextPart) isPart() {}

// ImagePart references an image by URL. Adapters that only handle text
// drop it.
type ImagePart struct {
	URL    string
	Detail string
}

func (ImagePart) isPart() {}

// BinaryPart carries raw bytes with a MIME type. Adapters that only
// handle text drop it.
type BinaryPart struct {
	MIMEType string
	Data     []byte
}

func (BinaryPart) isPart() {}
