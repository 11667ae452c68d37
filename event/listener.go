package event

import "sync"

// Listener holds a single bus subscription whose handler can be swapped
// without resubscribing. The subscription is established once; dispatch
// reads the latest handler at call time, so replacing the handler never
// loses or duplicates deliveries and never leaks subscriptions.
type Listener struct {
	mu     sync.Mutex
	fn     Handler
	cancel UnsubscribeFunc
}

// Listen subscribes to the named event and returns a Listener dispatching
// to fn. Use Set to replace the handler and Close to unsubscribe.
func Listen(bus *Bus, name Name, fn Handler) *Listener {
	l := &Listener{fn: fn}
	l.cancel = bus.Subscribe(name, l.dispatch)
	return l
}

func (l *Listener) dispatch(payload any) {
	l.mu.Lock()
	fn := l.fn
	l.mu.Unlock()
	if fn != nil {
		fn(payload)
	}
}

// Set replaces the handler. A nil handler silences the listener while
// keeping the subscription alive.
func (l *Listener) Set(fn Handler) {
	l.mu.Lock()
	l.fn = fn
	l.mu.Unlock()
}

// Close removes the underlying subscription. Safe to call more than once.
func (l *Listener) Close() {
	l.cancel()
}
