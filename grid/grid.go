// Package grid composes the gridstorm data grid: it owns one event bus,
// one activation controller, one row-model engine, and one context-menu
// engine per grid instance, derives the per-render plugin context
// snapshot, and drives the slot renderers.
package grid

import (
	"errors"
	"fmt"

	"github.com/dshills/gridstorm/event"
	"github.com/dshills/gridstorm/internal/logging"
	"github.com/dshills/gridstorm/menu"
	"github.com/dshills/gridstorm/plugin"
	"github.com/dshills/gridstorm/render"
	"github.com/dshills/gridstorm/rowmodel"
)

// Construction errors.
var (
	ErrNoColumns         = errors.New("grid: at least one column is required")
	ErrDuplicatePluginID = errors.New("grid: duplicate plugin id")
)

// Options configures a grid.
type Options struct {
	// Columns declares the grid's columns, in declaration order.
	Columns []rowmodel.Column

	// Plugins is the ordered plugin-instance list. Order matters: header,
	// footer, and cell slots resolve in list order.
	Plugins []*plugin.Instance

	// Rows is the initial row set.
	Rows []*rowmodel.Row

	// Engine overrides the row-model engine. Defaults to rowmodel.Memory.
	Engine rowmodel.Engine

	// PageSize overrides the default page size.
	PageSize int

	// TotalRowCount, when positive, switches the engine to manual mode:
	// the supplied rows are treated as externally filtered, sorted, and
	// paginated, and the page count is computed from this total.
	TotalRowCount int

	// PanelWidth is the open side-panel width in cells; 0 means 28.
	PanelWidth int

	// Logger receives grid debug logging. Nil disables logging.
	Logger *logging.Logger
}

// Grid is a mounted data grid. It implements plugin.Table.
//
// A Grid is driven from a single UI goroutine: call HandleEvent for each
// input event and Render to draw. Its bus, activation controller, and
// engine must not be shared with another grid.
type Grid struct {
	columns     []rowmodel.Column
	columnOrder []string
	plugins     []*plugin.Instance
	engine      rowmodel.Engine
	bus         *event.Bus
	activation  *Activation
	menus       *menu.Engine
	log         *logging.Logger
	panelWidth  int

	// slotFns holds each plugin's slot renderers, built once from its
	// validated config at construction.
	slotFns map[string]slotFuncs

	// Last surface rendered to; used for clipboard writes from menu
	// entries activated via HandleEvent.
	surface render.Surface

	// geometry of the last render, for hit testing.
	geom geometry

	// previous snapshot values for change detection.
	prev     snapshot
	prevInit bool
}

// snapshot captures the state the context provider diffs between renders.
type snapshot struct {
	data     []*rowmodel.Row
	selected []*rowmodel.Row
	filters  []rowmodel.Filter
	sorting  []rowmodel.Sort
	page     rowmodel.Pagination
}

// New creates a grid. Plugin ids must be unique within the list.
func New(opts Options) (*Grid, error) {
	if len(opts.Columns) == 0 {
		return nil, ErrNoColumns
	}
	seen := make(map[string]bool, len(opts.Plugins))
	for _, p := range opts.Plugins {
		if seen[p.ID()] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePluginID, p.ID())
		}
		seen[p.ID()] = true
	}

	engine := opts.Engine
	if engine == nil {
		engine = rowmodel.NewMemory()
	}
	if opts.PageSize > 0 {
		engine.SetPageSize(opts.PageSize)
	}
	engine.SetRows(opts.Rows)
	if opts.TotalRowCount > 0 {
		engine.SetManualTotal(opts.TotalRowCount)
	}

	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	panelWidth := opts.PanelWidth
	if panelWidth <= 0 {
		panelWidth = 28
	}

	g := &Grid{
		columns:    opts.Columns,
		plugins:    opts.Plugins,
		engine:     engine,
		bus:        event.NewBus(),
		activation: NewActivation(),
		log:        log.WithComponent("grid"),
		panelWidth: panelWidth,
	}
	g.slotFns = buildSlotFuncs(opts.Plugins)
	g.menus = menu.NewEngine(menu.Deps{
		Plugins:   func() []*plugin.Instance { return g.plugins },
		Table:     g,
		ArgsFor:   g.activation.argsFor,
		Clipboard: g.writeClipboard,
		Emit:      g.bus.Emit,
	})

	// Baseline snapshot: the first sync after mount diffs against this
	// and emits nothing for unchanged state.
	g.prev = g.capture()
	g.prevInit = true

	return g, nil
}

// Bus returns the grid's event bus.
func (g *Grid) Bus() *event.Bus { return g.bus }

// Panel returns the plugin activation surface.
func (g *Grid) Panel() plugin.PanelControl { return g.activation }

// Plugins returns the ordered plugin-instance list.
func (g *Grid) Plugins() []*plugin.Instance { return g.plugins }

// Menus exposes the context-menu engine state for embedding applications.
func (g *Grid) Menus() *menu.Engine { return g.menus }

// Data returns the current visible page of rows.
func (g *Grid) Data() []*rowmodel.Row { return g.engine.Rows() }

// SelectedRows returns the current selection as rows.
func (g *Grid) SelectedRows() []*rowmodel.Row { return g.engine.SelectedRows() }

// SetRows replaces the full row set.
func (g *Grid) SetRows(rows []*rowmodel.Row) {
	g.engine.SetRows(rows)
	g.sync()
}

// SetFilters replaces the filter state.
func (g *Grid) SetFilters(filters []rowmodel.Filter) {
	g.engine.SetFilters(filters)
	g.sync()
}

// Filters returns the current filter state.
func (g *Grid) Filters() []rowmodel.Filter { return g.engine.Filters() }

// SetSorting replaces the sorting state.
func (g *Grid) SetSorting(sorts []rowmodel.Sort) {
	g.engine.SetSorting(sorts)
	g.sync()
}

// Sorting returns the current sorting state.
func (g *Grid) Sorting() []rowmodel.Sort { return g.engine.Sorting() }

// SetPageIndex moves to the given zero-based page.
func (g *Grid) SetPageIndex(index int) {
	g.engine.SetPageIndex(index)
	g.sync()
}

// SetPageSize changes the page size.
func (g *Grid) SetPageSize(size int) {
	g.engine.SetPageSize(size)
	g.sync()
}

// Pagination returns the current page state.
func (g *Grid) Pagination() rowmodel.Pagination { return g.engine.Pagination() }

// PageCount returns the number of pages.
func (g *Grid) PageCount() int { return g.engine.PageCount() }

// SetManualTotal switches manual mode on (total >= 0) or off (negative).
func (g *Grid) SetManualTotal(total int) {
	g.engine.SetManualTotal(total)
	g.sync()
}

// ToggleSelected flips a row's selection. Unknown ids are a no-op.
func (g *Grid) ToggleSelected(rowID string) {
	g.engine.ToggleSelected(rowID)
	g.sync()
}

// SetSelected marks a row selected or not. Unknown ids are a no-op.
func (g *Grid) SetSelected(rowID string, selected bool) {
	g.engine.SetSelected(rowID, selected)
	g.sync()
}

// ClearSelection deselects every row.
func (g *Grid) ClearSelection() {
	g.engine.ClearSelection()
	g.sync()
}

// SetColumnVisible shows or hides a column. Unknown column keys are a
// no-op: the available columns may have changed under a pending call.
func (g *Grid) SetColumnVisible(key string, visible bool) {
	if !g.hasColumn(key) {
		return
	}
	g.engine.SetColumnVisible(key, visible)
	g.sync()
}

// ColumnVisible reports whether a column is shown.
func (g *Grid) ColumnVisible(key string) bool {
	return g.engine.ColumnVisible(key)
}

// ToggleColumn flips a column's visibility. Unknown keys are a no-op.
func (g *Grid) ToggleColumn(key string) {
	if !g.hasColumn(key) {
		return
	}
	g.engine.SetColumnVisible(key, !g.engine.ColumnVisible(key))
	g.sync()
}

// SetColumnOrder sets the explicit column order. Keys absent from the
// list keep declaration order, appended after the ordered ones; unknown
// keys in the list are ignored.
func (g *Grid) SetColumnOrder(keys []string) {
	g.columnOrder = keys
	g.sync()
}

// ColumnOrder returns the explicit column order, or nil when column
// declaration order applies.
func (g *Grid) ColumnOrder() []string { return g.columnOrder }

func (g *Grid) hasColumn(key string) bool {
	for _, c := range g.columns {
		if c.Key == key {
			return true
		}
	}
	return false
}

func (g *Grid) writeClipboard(text string) {
	if g.surface != nil {
		g.surface.SetClipboard(text)
	}
}
