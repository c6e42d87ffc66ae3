package common

import (
	"context"
	"sync"
)

// EventHandler is implemented by *state.State.
type EventHandler interface {
	AddHandler(fn any) (rm func())
}

// Subscribe delivers every event of type T matching filter on the returned channel, until cancel is called.
// Events are not dropped: the handler blocks until the event is received or the subscription is cancelled.
func Subscribe[T any](h EventHandler, filter func(T) bool) (events <-chan T, cancel func()) {
	ch := make(chan T)
	done := make(chan struct{})

	rm := h.AddHandler(func(v any) {
		ev, ok := v.(T)
		if !ok || !filter(ev) {
			return
		}

		select {
		case ch <- ev:
		case <-done:
		}
	})

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			rm()
			close(done)
		})
	}
}

// WaitFor blocks until an event arrives on events, or ctx is done.
// ok is false if ctx expired first.
func WaitFor[T any](ctx context.Context, events <-chan T) (ev T, ok bool) {
	select {
	case ev = <-events:
		return ev, true
	case <-ctx.Done():
		return ev, false
	}
}
