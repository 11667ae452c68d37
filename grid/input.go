package grid

import (
	"github.com/dshills/gridstorm/event"
	"github.com/dshills/gridstorm/render"
	"github.com/dshills/gridstorm/rowmodel"
)

// HandleEvent routes one input event through the grid: an open context
// menu sees it first, then the grid chrome (tabs, column header, rows).
// Returns true when the event changed grid state and a re-render is due.
func (g *Grid) HandleEvent(ev render.Event) bool {
	switch ev.Type {
	case render.EventResize:
		return true
	case render.EventKey:
		return g.handleKey(ev)
	case render.EventMouse:
		return g.handleMouse(ev)
	}
	return false
}

func (g *Grid) handleKey(ev render.Event) bool {
	if g.menus.HandleKey(ev.Key) {
		return true
	}
	switch ev.Key {
	case render.KeyEscape:
		if _, open := g.activation.ActiveID(); open {
			g.activation.Close()
			return true
		}
	case render.KeyPageDown:
		return g.pageBy(1)
	case render.KeyPageUp:
		return g.pageBy(-1)
	case render.KeyHome:
		return g.pageTo(0)
	case render.KeyEnd:
		return g.pageTo(g.engine.PageCount() - 1)
	}
	return false
}

func (g *Grid) handleMouse(ev render.Event) bool {
	x, y := ev.MouseX, ev.MouseY

	switch ev.MouseButton {
	case render.MouseWheelDown:
		return g.pageBy(1)
	case render.MouseWheelUp:
		return g.pageBy(-1)
	case render.MouseRight:
		return g.handleRightClick(x, y)
	case render.MouseLeft:
		return g.handleLeftClick(x, y)
	}
	return false
}

func (g *Grid) handleLeftClick(x, y int) bool {
	if g.menus.HandleClick(x, y) {
		return true
	}

	if id, ok := g.geom.tabAt(x, y); ok {
		g.activation.Toggle(id)
		g.log.Debug("panel toggled", "plugin", id)
		return true
	}

	if g.geom.colHeader.Contains(x, y) {
		if span, ok := g.geom.columnAt(x); ok {
			g.cycleSort(span.column.Key)
			return true
		}
	}

	if rb, ok := g.geom.rowAt(y); ok && rb.area.Contains(x, y) {
		g.ToggleSelected(rb.row.ID)
		g.bus.Emit(event.RowClick, rb.row)
		return true
	}
	return false
}

func (g *Grid) handleRightClick(x, y int) bool {
	g.menus.Close()

	if g.geom.colHeader.Contains(x, y) {
		if span, ok := g.geom.columnAt(x); ok {
			anchor := render.Rect{X: span.x, Y: y, Width: span.width, Height: 1}
			g.menus.OpenColumn(span.column, anchor)
			return true
		}
	}

	if rb, ok := g.geom.rowAt(y); ok && rb.area.Contains(x, y) {
		if span, ok := g.geom.columnAt(x); ok {
			g.menus.OpenCell(span.column, rb.row, g.geom.cellRect(span, rb))
			return true
		}
	}
	return false
}

// cycleSort advances single-column sorting for key: unsorted becomes
// ascending, ascending becomes descending, descending clears. Sorting on
// another column replaces it.
func (g *Grid) cycleSort(key string) {
	current := g.engine.Sorting()
	var next []rowmodel.Sort
	switch {
	case len(current) == 1 && current[0].Column == key && !current[0].Desc:
		next = []rowmodel.Sort{{Column: key, Desc: true}}
	case len(current) == 1 && current[0].Column == key && current[0].Desc:
		next = nil
	default:
		next = []rowmodel.Sort{{Column: key}}
	}
	g.SetSorting(next)
}

func (g *Grid) pageBy(delta int) bool {
	return g.pageTo(g.engine.Pagination().PageIndex + delta)
}

func (g *Grid) pageTo(index int) bool {
	before := g.engine.Pagination()
	g.SetPageIndex(index)
	return g.engine.Pagination() != before
}
