package grid

import (
	"github.com/dshills/gridstorm/event"
	"github.com/dshills/gridstorm/plugin"
	"github.com/dshills/gridstorm/rowmodel"
)

// Columns returns the derived column list: declared columns reordered by
// the explicit order, hidden columns removed. Filter metadata rides along
// so filter UIs and the context menu see the same ordering.
func (g *Grid) Columns() []rowmodel.Column {
	ordered := orderColumns(g.columns, g.columnOrder)
	out := make([]rowmodel.Column, 0, len(ordered))
	for _, c := range ordered {
		if g.engine.ColumnVisible(c.Key) {
			out = append(out, c)
		}
	}
	return out
}

// orderColumns applies an explicit order list to declared columns. Ordered
// keys come first, in list order; unknown keys in the list are ignored;
// columns absent from the list keep declaration order, appended after the
// ordered ones.
func orderColumns(declared []rowmodel.Column, order []string) []rowmodel.Column {
	if len(order) == 0 {
		return declared
	}

	byKey := make(map[string]rowmodel.Column, len(declared))
	for _, c := range declared {
		byKey[c.Key] = c
	}

	out := make([]rowmodel.Column, 0, len(declared))
	placed := make(map[string]bool, len(order))
	for _, key := range order {
		c, ok := byKey[key]
		if !ok || placed[key] {
			continue
		}
		out = append(out, c)
		placed[key] = true
	}
	for _, c := range declared {
		if !placed[c.Key] {
			out = append(out, c)
		}
	}
	return out
}

// capture snapshots the engine state the context provider diffs.
func (g *Grid) capture() snapshot {
	return snapshot{
		data:     g.engine.Rows(),
		selected: g.engine.SelectedRows(),
		filters:  g.engine.Filters(),
		sorting:  g.engine.Sorting(),
		page:     g.engine.Pagination(),
	}
}

// sync recomputes the state snapshot, emits one event per changed field,
// and records the snapshot as the new baseline. Comparison is by slice
// reference (the engine returns stable references for unchanged state),
// so unchanged state emits nothing. Each changed field emits exactly once
// per sync, with the new value as payload.
func (g *Grid) sync() {
	next := g.capture()
	if !g.prevInit {
		g.prev = next
		g.prevInit = true
		return
	}
	prev := g.prev
	g.prev = next

	if !sameSlice(prev.data, next.data) {
		g.bus.Emit(event.DataChange, next.data)
	}
	if !sameSlice(prev.selected, next.selected) {
		g.bus.Emit(event.SelectionChange, next.selected)
	}
	if !sameSlice(prev.filters, next.filters) {
		g.bus.Emit(event.FilterChange, next.filters)
	}
	if !sameSlice(prev.sorting, next.sorting) {
		g.bus.Emit(event.SortingChange, next.sorting)
	}
	if prev.page != next.page {
		g.bus.Emit(event.PaginationChange, next.page)
	}
}

// sameSlice reports reference equality for slices: same length and same
// backing start. Contents are not compared; the row-model engine's
// stability contract makes reference comparison sufficient.
func sameSlice[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}

// Context builds the consistent state snapshot handed to slot renderers
// and menu factories for the current render pass.
func (g *Grid) Context() *plugin.Context {
	return &plugin.Context{
		Table:        g,
		Data:         g.engine.Rows(),
		Columns:      g.Columns(),
		SelectedRows: g.engine.SelectedRows(),
		OpenArgs:     g.activation.Args(),
	}
}
