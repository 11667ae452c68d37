package plugin

import (
	"github.com/dshills/gridstorm/event"
	"github.com/dshills/gridstorm/rowmodel"
)

// MenuEntry is one context-menu entry produced by a plugin item factory.
// The zero value of Hidden means shown; set Hidden to true to drop the
// entry for this open.
type MenuEntry struct {
	Label    string
	Icon     rune
	OnClick  func()
	Hidden   bool
	Disabled bool
}

// CellMenuContext is the context handed to cell menu item factories.
type CellMenuContext struct {
	Column       rowmodel.Column
	Row          *rowmodel.Row
	Value        any
	SelectedRows []*rowmodel.Row
	Table        Table
	// PluginArgs is the plugin's open args if it is the active plugin,
	// nil otherwise.
	PluginArgs any
	// Emit publishes on the grid's bus.
	Emit func(name event.Name, payload any)
}

// ColumnMenuContext is the context handed to column menu item factories.
type ColumnMenuContext struct {
	Column     rowmodel.Column
	Table      Table
	PluginArgs any
	Emit       func(name event.Name, payload any)
}

// CellMenuItem declares one cell context-menu contribution.
type CellMenuItem struct {
	// ID identifies the item within the plugin.
	ID string
	// Build produces the entry for a specific open. It runs on every menu
	// open with fresh context.
	Build func(ctx CellMenuContext) MenuEntry
}

// ColumnMenuItem declares one column context-menu contribution.
type ColumnMenuItem struct {
	ID    string
	Build func(ctx ColumnMenuContext) MenuEntry
}

// CellItem is shorthand for declaring a cell menu item.
func CellItem(id string, build func(ctx CellMenuContext) MenuEntry) CellMenuItem {
	return CellMenuItem{ID: id, Build: build}
}

// ColumnItem is shorthand for declaring a column menu item.
func ColumnItem(id string, build func(ctx ColumnMenuContext) MenuEntry) ColumnMenuItem {
	return ColumnMenuItem{ID: id, Build: build}
}
