// Package menu implements the grid's context-menu engine.
//
// The engine is a small state machine: Closed, or Open on a cell or a
// column header. Opening collects entries from every plugin's menu item
// factories, filters hidden ones, and drops empty sections; a menu with no
// entries at all never opens, so "no menu" and "empty menu" are the same
// non-event. Escape, clicking outside, or activating a non-disabled entry
// closes it; right-clicking elsewhere replaces it.
package menu

import (
	"fmt"

	"github.com/dshills/gridstorm/event"
	"github.com/dshills/gridstorm/plugin"
	"github.com/dshills/gridstorm/render"
	"github.com/dshills/gridstorm/rowmodel"
)

// Kind tags the open-state variant.
type Kind int

// Open-state variants.
const (
	KindCell Kind = iota
	KindColumn
)

// Section is a titled group of menu entries. The built-in cell section has
// an empty title; plugin sections are titled with the plugin name.
type Section struct {
	Title   string
	Entries []plugin.MenuEntry
}

// State is the open-menu state: which variant, for which target, anchored
// where.
type State struct {
	Kind     Kind
	Column   rowmodel.Column
	Row      *rowmodel.Row
	Value    any
	Anchor   render.Rect
	Sections []Section
}

// Deps wires the engine to its grid.
type Deps struct {
	// Plugins returns the grid's ordered plugin list.
	Plugins func() []*plugin.Instance
	// Table is the grid surface handed to item factories.
	Table plugin.Table
	// ArgsFor returns a plugin's open args if it is active, nil otherwise.
	ArgsFor func(pluginID string) any
	// Clipboard writes text to the system clipboard.
	Clipboard func(text string)
	// Emit publishes on the grid's bus.
	Emit func(name event.Name, payload any)
}

// Engine owns the context-menu state for one grid.
type Engine struct {
	deps   Deps
	state  *State
	bounds render.Rect
}

// NewEngine creates a closed menu engine.
func NewEngine(deps Deps) *Engine {
	return &Engine{deps: deps}
}

// SetBounds tells the engine the drawable area so open menus can be placed
// adjacent to their anchor without running off the surface.
func (e *Engine) SetBounds(bounds render.Rect) {
	e.bounds = bounds
}

// IsOpen reports whether a menu is open.
func (e *Engine) IsOpen() bool {
	return e.state != nil
}

// CurrentState returns the open state, or nil.
func (e *Engine) CurrentState() *State {
	return e.state
}

// Close dismisses any open menu. Safe to call when closed.
func (e *Engine) Close() {
	e.state = nil
}

// OpenCell opens the menu for a cell. The anchor is the clicked cell's
// screen rect; the menu appears at its bottom-left corner. Cell menus
// always contain at least the built-in Copy entry, so this always opens.
func (e *Engine) OpenCell(column rowmodel.Column, row *rowmodel.Row, anchor render.Rect) {
	value := row.Value(column.Key)

	sections := []Section{{
		Entries: []plugin.MenuEntry{{
			Label:   "Copy",
			OnClick: func() { e.deps.Clipboard(copyText(value)) },
		}},
	}}

	for _, p := range e.deps.Plugins() {
		items := p.CellMenuItems()
		if len(items) == 0 {
			continue
		}
		ctx := plugin.CellMenuContext{
			Column:       column,
			Row:          row,
			Value:        value,
			SelectedRows: e.deps.Table.SelectedRows(),
			Table:        e.deps.Table,
			PluginArgs:   e.deps.ArgsFor(p.ID()),
			Emit:         e.deps.Emit,
		}
		sec := Section{Title: p.Name()}
		for _, item := range items {
			entry := item.Build(ctx)
			if entry.Hidden {
				continue
			}
			sec.Entries = append(sec.Entries, entry)
		}
		if len(sec.Entries) > 0 {
			sections = append(sections, sec)
		}
	}

	e.state = &State{
		Kind:     KindCell,
		Column:   column,
		Row:      row,
		Value:    value,
		Anchor:   anchor,
		Sections: sections,
	}
}

// OpenColumn opens the menu for a column header. With no contributing
// plugins there is nothing to show, so the state stays closed.
func (e *Engine) OpenColumn(column rowmodel.Column, anchor render.Rect) {
	var sections []Section
	for _, p := range e.deps.Plugins() {
		items := p.ColumnMenuItems()
		if len(items) == 0 {
			continue
		}
		ctx := plugin.ColumnMenuContext{
			Column:     column,
			Table:      e.deps.Table,
			PluginArgs: e.deps.ArgsFor(p.ID()),
			Emit:       e.deps.Emit,
		}
		sec := Section{Title: p.Name()}
		for _, item := range items {
			entry := item.Build(ctx)
			if entry.Hidden {
				continue
			}
			sec.Entries = append(sec.Entries, entry)
		}
		if len(sec.Entries) > 0 {
			sections = append(sections, sec)
		}
	}

	if len(sections) == 0 {
		e.state = nil
		return
	}
	e.state = &State{
		Kind:     KindColumn,
		Column:   column,
		Anchor:   anchor,
		Sections: sections,
	}
}

// copyText renders a cell value for the clipboard: its string form, or
// empty for nil.
func copyText(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}
