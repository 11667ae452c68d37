// Package event provides the per-grid publish/subscribe channel that
// connects grid internals to plugin code.
//
// One Bus is created per grid instance and shared by reference across the
// whole composition. Delivery is synchronous and re-entrant: Emit invokes
// every current subscriber in registration order on the calling goroutine,
// and a handler may itself call Emit (nested emissions resolve depth-first).
package event

import "sync"

// Name identifies an event on the bus. Built-in names are declared below;
// plugins may emit and subscribe to any name they agree on. Payload shape
// is the emitting side's contract and is not validated by the bus.
type Name string

// Built-in grid lifecycle events.
const (
	// DataChange fires when the visible row set changes. Payload: []*rowmodel.Row.
	DataChange Name = "data-change"
	// SelectionChange fires when row selection changes. Payload: []*rowmodel.Row.
	SelectionChange Name = "selection-change"
	// FilterChange fires when the filter state changes. Payload: []rowmodel.Filter.
	FilterChange Name = "filter-change"
	// SortingChange fires when the sorting state changes. Payload: []rowmodel.Sort.
	SortingChange Name = "sorting-change"
	// PaginationChange fires when page index or size changes. Payload: rowmodel.Pagination.
	PaginationChange Name = "pagination-change"
	// RowClick fires when a data row is clicked. Payload: *rowmodel.Row.
	RowClick Name = "row-click"
)

// Handler receives an event payload.
type Handler func(payload any)

// UnsubscribeFunc removes a subscription. Calling it more than once is a
// no-op, never an error.
type UnsubscribeFunc func()

type subscriber struct {
	id int
	fn Handler
}

// Bus is a synchronous publish/subscribe channel. The zero value is not
// usable; create one with NewBus. A Bus must not be shared across grid
// instances.
type Bus struct {
	mu     sync.Mutex
	subs   map[Name][]subscriber
	nextID int
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Name][]subscriber)}
}

// Subscribe registers fn for the named event and returns a function that
// removes exactly that registration. The same fn may be registered more
// than once; each registration is delivered and removed independently.
func (b *Bus) Subscribe(name Name, fn Handler) UnsubscribeFunc {
	if fn == nil {
		return func() {}
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[name] = append(b.subs[name], subscriber{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.remove(name, id)
		})
	}
}

func (b *Bus) remove(name Name, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[name]
	for i, s := range subs {
		if s.id == id {
			b.subs[name] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(b.subs[name]) == 0 {
		delete(b.subs, name)
	}
}

// Emit invokes every current subscriber for the named event synchronously,
// in registration order, passing payload unchanged. Emitting to an event
// with zero subscribers is a no-op.
func (b *Bus) Emit(name Name, payload any) {
	b.mu.Lock()
	subs := b.subs[name]
	// Snapshot so handlers can subscribe/unsubscribe re-entrantly without
	// disturbing this delivery pass.
	snapshot := make([]subscriber, len(subs))
	copy(snapshot, subs)
	b.mu.Unlock()

	for _, s := range snapshot {
		s.fn(payload)
	}
}

// SubscriberCount returns the number of active subscriptions for an event.
func (b *Bus) SubscriberCount(name Name) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[name])
}
