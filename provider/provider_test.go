package provider

import (
	"testing"

	"github.com/llmwire/llmwire/chat"
)

// recordingObserver captures notifications for assertions.
type recordingObserver struct {
	tokens []string
	errs   []error
}

func (r *recordingObserver) OnToken(text string) { r.tokens = append(r.tokens, text) }
func (r *recordingObserver) OnError(err error)   { r.errs = append(r.errs, err) }

func TestNewCallSettings_Defaults(t *testing.T) {
	s := NewCallSettings()
	if s.Observer == nil {
		t.Fatal("default observer is nil")
	}
	if len(s.Stop) != 0 {
		t.Errorf("default stop = %v, want empty", s.Stop)
	}
}

func TestNewCallSettings_Options(t *testing.T) {
	obs := &recordingObserver{}
	s := NewCallSettings(WithStop("A", "B"), WithStop("C"), WithObserver(obs))

	if got, want := len(s.Stop), 3; got != want {
		t.Fatalf("stop len = %d, want %d", got, want)
	}
	if s.Stop[0] != "A" || s.Stop[1] != "B" || s.Stop[2] != "C" {
		t.Errorf("stop = %v, want [A B C]", s.Stop)
	}
	if s.Observer != obs {
		t.Error("observer not applied")
	}
}

func TestNewCallSettings_NilObserverReplaced(t *testing.T) {
	s := NewCallSettings(WithObserver(nil))
	if s.Observer == nil {
		t.Fatal("nil observer not replaced with no-op")
	}
	// Must not panic.
	s.Observer.OnToken("x")
	s.Observer.OnError(nil)
}

var _ chat.Observer = (*recordingObserver)(nil)
