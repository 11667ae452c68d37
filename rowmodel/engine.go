package rowmodel

// Engine derives the rows the grid displays. The grid mutates engine state
// in response to user interaction and renders whatever Rows returns.
//
// Reference stability contract: Rows, SelectedRows, Filters, and Sorting
// must return the same slice reference across calls while the underlying
// state is unchanged, and a new reference after any change. The grid's
// change detection compares references, not contents.
type Engine interface {
	// SetRows replaces the full row set.
	SetRows(rows []*Row)

	// Rows returns the current visible page after filtering, sorting, and
	// pagination. In manual mode the row set is returned verbatim.
	Rows() []*Row

	// RowByID returns a row from the full set, or nil.
	RowByID(id string) *Row

	// SetFilters replaces the filter state.
	SetFilters(filters []Filter)

	// Filters returns the current filter state.
	Filters() []Filter

	// SetSorting replaces the sorting state.
	SetSorting(sorts []Sort)

	// Sorting returns the current sorting state.
	Sorting() []Sort

	// SetPageIndex moves to the given zero-based page. Out-of-range
	// indexes clamp to the valid range.
	SetPageIndex(index int)

	// SetPageSize changes the page size and resets to the first page.
	SetPageSize(size int)

	// Pagination returns the current page state.
	Pagination() Pagination

	// PageCount returns the number of pages for the current state. In
	// manual mode it is computed from the externally supplied total.
	PageCount() int

	// SetColumnVisible shows or hides a column. The grid guards against
	// unknown column keys before delegating here.
	SetColumnVisible(key string, visible bool)

	// ColumnVisible reports whether a column is shown. Columns default to
	// visible.
	ColumnVisible(key string) bool

	// SetSelected marks a row selected or not. Unknown ids are a no-op.
	SetSelected(id string, selected bool)

	// ToggleSelected flips a row's selection. Unknown ids are a no-op.
	ToggleSelected(id string)

	// ClearSelection deselects every row.
	ClearSelection()

	// SelectedRows returns the selected rows in row-set order.
	SelectedRows() []*Row

	// SetManualTotal switches the engine to manual mode with the given
	// externally computed total row count; filtering, sorting, and
	// pagination become the data supplier's responsibility. A negative
	// total switches back to automatic mode.
	SetManualTotal(total int)

	// Manual reports whether manual mode is active.
	Manual() bool
}
