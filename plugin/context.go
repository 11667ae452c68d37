package plugin

import (
	"github.com/dshills/gridstorm/event"
	"github.com/dshills/gridstorm/rowmodel"
)

// Context is the consistent grid-state snapshot handed to slot renderers
// on every render pass. All fields reflect the same instant; the grid
// rebuilds the context each pass and emits change events by diffing
// against the previous one.
type Context struct {
	// Table is the live grid surface for reads and mutations.
	Table Table

	// Data is the current visible page of rows.
	Data []*rowmodel.Row

	// Columns is the derived, ordered, visible column list.
	Columns []rowmodel.Column

	// SelectedRows is the current selection.
	SelectedRows []*rowmodel.Row

	// OpenArgs is the active plugin's open payload. It is only meaningful
	// to the plugin that is currently active; others can check
	// Table.Panel().ActiveID() to know whether it is theirs.
	OpenArgs any
}

// Listen subscribes fn to a named event for as long as the returned
// Listener lives. Use Listener.Set to swap the handler between renders
// without resubscribing.
func (c *Context) Listen(name event.Name, fn event.Handler) *event.Listener {
	return event.Listen(c.Table.Bus(), name, fn)
}

// Emit publishes an event on the grid's bus.
func (c *Context) Emit(name event.Name, payload any) {
	c.Table.Bus().Emit(name, payload)
}

// Use asserts that a context was supplied by a grid render pass. Slot
// renderers that thread the context through helper code call this at the
// boundary; a nil or detached context panics immediately, surfacing broken
// plugin wiring instead of degrading silently.
func Use(c *Context) *Context {
	if c == nil || c.Table == nil {
		panic("plugin: context used outside a grid render pass; slot renderers receive it from the grid root")
	}
	return c
}
