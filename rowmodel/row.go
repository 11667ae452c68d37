// Package rowmodel defines the tabular data model the grid renders and the
// Engine interface the grid delegates row derivation to.
//
// The grid itself never filters, sorts, or paginates; it hands those
// concerns to an Engine and renders whatever page the engine returns.
// Memory is a reference engine for in-process data; applications with
// server-side data supply their own Engine or run Memory in manual mode.
package rowmodel

// Row is a single data row. Rows are identified by ID; cell values are
// keyed by column key. Rows are treated as immutable once handed to an
// engine; replace the row set to change data.
type Row struct {
	ID    string
	Cells map[string]any
}

// NewRow creates a row with the given id and cell values.
func NewRow(id string, cells map[string]any) *Row {
	return &Row{ID: id, Cells: cells}
}

// Value returns the cell value for a column key, or nil.
func (r *Row) Value(key string) any {
	if r == nil || r.Cells == nil {
		return nil
	}
	return r.Cells[key]
}

// FilterType describes how a column's values are filtered, for filter UIs.
type FilterType string

// Filter types a column can declare.
const (
	FilterText   FilterType = "text"
	FilterSelect FilterType = "select"
	FilterNumber FilterType = "number"
)

// FilterMeta declares filter typing for a column. A column without
// FilterMeta is not filterable.
type FilterMeta struct {
	Type FilterType
	// Options enumerates the selectable values for FilterSelect columns.
	Options []string
}

// Column describes one grid column.
type Column struct {
	// Key identifies the column and indexes into Row.Cells.
	Key string
	// Title is the user-facing header label.
	Title string
	// Width is the preferred display width in cells; 0 means automatic.
	Width int
	// FilterMeta declares filter typing; nil means not filterable.
	FilterMeta *FilterMeta
}
