package plugin

import (
	"github.com/dshills/gridstorm/render"
	"github.com/dshills/gridstorm/rowmodel"
)

// PanelPosition is the grid edge a side panel docks to.
type PanelPosition string

// Side panel positions.
const (
	PanelLeft  PanelPosition = "left"
	PanelRight PanelPosition = "right"
)

// PanelRenderFunc renders a side panel, header, or footer region.
type PanelRenderFunc func(rc *Context, s render.Surface, area render.Rect)

// CellRenderFunc renders one cell. Returning false declines the cell,
// letting the next candidate (or the grid's default renderer) handle it.
type CellRenderFunc func(cc CellContext, s render.Surface, area render.Rect) bool

// InlineRenderFunc renders expandable content below a data row.
type InlineRenderFunc func(rc *Context, row *rowmodel.Row, s render.Surface, area render.Rect)

// SidePanelSlot declares a tab-activated panel docked to a grid edge.
type SidePanelSlot struct {
	// Position selects the grid edge. Defaults to PanelRight.
	Position PanelPosition
	// Header overrides the panel title; empty uses the plugin name.
	Header string
	// Render produces the panel renderer for a validated config.
	Render func(cfg Config) PanelRenderFunc
}

// HeaderSlot declares a bar above the grid. Every declaring plugin
// renders, in plugin-list order.
type HeaderSlot struct {
	// Height is the bar height in rows; 0 means 1.
	Height int
	Render func(cfg Config) PanelRenderFunc
}

// FooterSlot declares a bar below the grid. Every declaring plugin
// renders, in plugin-list order.
type FooterSlot struct {
	// Height is the bar height in rows; 0 means 1.
	Height int
	Render func(cfg Config) PanelRenderFunc
}

// CellSlot declares a per-cell renderer. The first declaring plugin in
// list order whose renderer accepts a given cell wins it.
type CellSlot struct {
	Render func(cfg Config) CellRenderFunc
}

// InlineRowSlot declares expandable content below a specific row. Only the
// active plugin's inline row renders, for the row named by its open args.
type InlineRowSlot struct {
	// Height is the expanded region height in rows; 0 means 3.
	Height int
	Render func(cfg Config) InlineRenderFunc
}

// Slots is the closed set of extension points a plugin may fill. Every
// field is optional.
type Slots struct {
	SidePanel *SidePanelSlot
	Header    *HeaderSlot
	Footer    *FooterSlot
	Cell      *CellSlot
	InlineRow *InlineRowSlot
}

// CellContext is the narrowed context handed to cell slot renderers.
type CellContext struct {
	// Grid is the shared plugin context for this render pass.
	Grid *Context
	// Column is the cell's column.
	Column rowmodel.Column
	// Row is the cell's row.
	Row *rowmodel.Row
	// Value is the cell value (Row.Value(Column.Key)).
	Value any
	// Selected reports whether the row is currently selected.
	Selected bool
}
