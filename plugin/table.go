package plugin

import (
	"github.com/dshills/gridstorm/event"
	"github.com/dshills/gridstorm/rowmodel"
)

// PanelControl is the activation surface plugins use to open and close
// side panels and inline rows.
type PanelControl interface {
	// Open activates the plugin's panel with the given open args, closing
	// any other active plugin.
	Open(pluginID string, args any)

	// Close deactivates whichever plugin is active.
	Close()

	// Toggle opens the plugin if inactive, closes it if active.
	Toggle(pluginID string)

	// IsOpen reports whether the plugin is the active one.
	IsOpen(pluginID string) bool

	// ActiveID returns the active plugin id, or "" and false.
	ActiveID() (string, bool)

	// SetActive activates the plugin with no open args (or deactivates
	// with an empty id). Unlike Open it never carries args.
	SetActive(pluginID string)
}

// Table is the grid surface plugins interact with. It is implemented by
// grid.Grid; plugins depend only on this interface, which keeps plugin
// modules free of the grid's composition internals.
type Table interface {
	// Data returns the current visible page of rows.
	Data() []*rowmodel.Row

	// Columns returns the derived, ordered, visible column list.
	Columns() []rowmodel.Column

	// SelectedRows returns the current selection as rows.
	SelectedRows() []*rowmodel.Row

	// SetFilters replaces the filter state.
	SetFilters(filters []rowmodel.Filter)

	// Filters returns the current filter state.
	Filters() []rowmodel.Filter

	// SetSorting replaces the sorting state.
	SetSorting(sorts []rowmodel.Sort)

	// Sorting returns the current sorting state.
	Sorting() []rowmodel.Sort

	// SetPageIndex moves to the given zero-based page.
	SetPageIndex(index int)

	// SetPageSize changes the page size.
	SetPageSize(size int)

	// Pagination returns the current page state.
	Pagination() rowmodel.Pagination

	// PageCount returns the number of pages.
	PageCount() int

	// SetColumnOrder sets the explicit column order. Keys not in the list
	// keep declaration order after the ordered ones; unknown keys are
	// ignored.
	SetColumnOrder(keys []string)

	// ColumnOrder returns the explicit column order, or nil.
	ColumnOrder() []string

	// SetColumnVisible shows or hides a column. Unknown keys are a no-op.
	SetColumnVisible(key string, visible bool)

	// ColumnVisible reports whether a column is shown.
	ColumnVisible(key string) bool

	// ToggleSelected flips a row's selection.
	ToggleSelected(rowID string)

	// Panel returns the plugin activation surface.
	Panel() PanelControl

	// Bus returns the grid's event bus.
	Bus() *event.Bus
}
