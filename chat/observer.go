package chat

// Observer receives per-call progress notifications from an adapter.
// OnToken is invoked once per emitted text delta, in emission order.
// OnError is invoked once for a terminal call failure, before the error
// is returned to the caller.
//
// Implementations must be safe to call from the adapter's streaming
// goroutine.
type Observer interface {
	OnToken(text string)
	OnError(err error)
}

// NopObserver discards all notifications.
type NopObserver struct{}

// OnToken implements Observer.
func (NopObserver) OnToken(string) {}

// OnError implements Observer.
func (NopObserver) OnError(error) {}

var _ Observer = NopObserver{}
