package grid

import (
	"github.com/dshills/gridstorm/plugin"
	"github.com/dshills/gridstorm/render"
	"github.com/dshills/gridstorm/rowmodel"
)

// tabRailWidth is the width of a side tab rail in cells.
const tabRailWidth = 10

// band is a screen region owned by one plugin.
type band struct {
	pluginID string
	area     render.Rect
}

// colSpan is one visible column's horizontal extent within the body.
type colSpan struct {
	column rowmodel.Column
	x      int
	width  int
}

// rowBand is one data row's vertical extent, plus the inline-row region
// expanded below it when the active plugin opened on this row.
type rowBand struct {
	row    *rowmodel.Row
	area   render.Rect
	inline render.Rect
}

// geometry is the byproduct of one layout pass, kept for hit testing.
type geometry struct {
	bounds    render.Rect
	headers   []band
	colHeader render.Rect
	cols      []colSpan
	body      render.Rect
	rows      []rowBand
	leftTabs  []band
	rightTabs []band
	panel     band
	footers   []band
	status    render.Rect
}

// cellRect returns the screen rect of one cell inside a row band.
func (ge *geometry) cellRect(span colSpan, rb rowBand) render.Rect {
	return render.Rect{X: span.x, Y: rb.area.Y, Width: span.width, Height: 1}
}

// columnAt returns the column span containing x, if any.
func (ge *geometry) columnAt(x int) (colSpan, bool) {
	for _, span := range ge.cols {
		if x >= span.x && x < span.x+span.width {
			return span, true
		}
	}
	return colSpan{}, false
}

// rowAt returns the row band whose data row contains y, if any. Inline
// regions belong to the owning plugin and do not hit-test as rows.
func (ge *geometry) rowAt(y int) (rowBand, bool) {
	for _, rb := range ge.rows {
		if y == rb.area.Y {
			return rb, true
		}
	}
	return rowBand{}, false
}

// tabAt returns the plugin id of the side tab containing (x, y), if any.
func (ge *geometry) tabAt(x, y int) (string, bool) {
	for _, t := range append(ge.leftTabs, ge.rightTabs...) {
		if t.area.Contains(x, y) {
			return t.pluginID, true
		}
	}
	return "", false
}

// sidePanelPlugins returns the plugins declaring a side panel docked to
// the given edge, in plugin-list order.
func (g *Grid) sidePanelPlugins(pos plugin.PanelPosition) []*plugin.Instance {
	var out []*plugin.Instance
	for _, p := range g.plugins {
		sp := p.Slots().SidePanel
		if sp == nil {
			continue
		}
		at := sp.Position
		if at == "" {
			at = plugin.PanelRight
		}
		if at == pos {
			out = append(out, p)
		}
	}
	return out
}

// activePanelPlugin returns the active plugin when it declares a side
// panel, nil otherwise.
func (g *Grid) activePanelPlugin() *plugin.Instance {
	id, ok := g.activation.ActiveID()
	if !ok {
		return nil
	}
	for _, p := range g.plugins {
		if p.ID() == id && p.Slots().SidePanel != nil {
			return p
		}
	}
	return nil
}

// inlineTarget returns the active plugin's inline-row slot and target row
// id, when an inline row should expand this pass. The open args name the
// row: a plain string, or a map with a "rowId" key.
func (g *Grid) inlineTarget() (*plugin.Instance, string, bool) {
	id, ok := g.activation.ActiveID()
	if !ok {
		return nil, "", false
	}
	var active *plugin.Instance
	for _, p := range g.plugins {
		if p.ID() == id {
			active = p
			break
		}
	}
	if active == nil || active.Slots().InlineRow == nil {
		return nil, "", false
	}
	switch args := g.activation.Args().(type) {
	case string:
		return active, args, args != ""
	case map[string]any:
		if rid, ok := args["rowId"].(string); ok && rid != "" {
			return active, rid, true
		}
	}
	return nil, "", false
}

func barHeight(h int) int {
	if h <= 0 {
		return 1
	}
	return h
}

// layout tiles the surface: header bars, then the middle band (tab rails,
// open panel, and the body with its column header and rows), then footer
// bars and the built-in status line.
func (g *Grid) layout(width, height int) geometry {
	ge := geometry{bounds: render.Rect{Width: width, Height: height}}
	y := 0

	for _, p := range g.plugins {
		hs := p.Slots().Header
		if hs == nil {
			continue
		}
		h := barHeight(hs.Height)
		ge.headers = append(ge.headers, band{
			pluginID: p.ID(),
			area:     render.Rect{X: 0, Y: y, Width: width, Height: h},
		})
		y += h
	}

	bottom := height - 1 // status line
	for i := len(g.plugins) - 1; i >= 0; i-- {
		p := g.plugins[i]
		fs := p.Slots().Footer
		if fs == nil {
			continue
		}
		h := barHeight(fs.Height)
		bottom -= h
		ge.footers = append([]band{{
			pluginID: p.ID(),
			area:     render.Rect{X: 0, Y: bottom, Width: width, Height: h},
		}}, ge.footers...)
	}
	ge.status = render.Rect{X: 0, Y: height - 1, Width: width, Height: 1}

	middle := render.Rect{X: 0, Y: y, Width: width, Height: bottom - y}
	if middle.Empty() {
		return ge
	}

	left := g.sidePanelPlugins(plugin.PanelLeft)
	right := g.sidePanelPlugins(plugin.PanelRight)

	x0, x1 := middle.X, middle.Right()
	if len(left) > 0 {
		rail := render.Rect{X: x0, Y: middle.Y, Width: tabRailWidth, Height: middle.Height}
		for i, p := range left {
			ge.leftTabs = append(ge.leftTabs, band{pluginID: p.ID(), area: rail.Row(i)})
		}
		x0 += tabRailWidth
	}
	if len(right) > 0 {
		rail := render.Rect{X: x1 - tabRailWidth, Y: middle.Y, Width: tabRailWidth, Height: middle.Height}
		for i, p := range right {
			ge.rightTabs = append(ge.rightTabs, band{pluginID: p.ID(), area: rail.Row(i)})
		}
		x1 -= tabRailWidth
	}

	if active := g.activePanelPlugin(); active != nil {
		w := min(g.panelWidth, x1-x0)
		pos := active.Slots().SidePanel.Position
		if pos == "" {
			pos = plugin.PanelRight
		}
		if pos == plugin.PanelLeft {
			ge.panel = band{pluginID: active.ID(), area: render.Rect{X: x0, Y: middle.Y, Width: w, Height: middle.Height}}
			x0 += w
		} else {
			ge.panel = band{pluginID: active.ID(), area: render.Rect{X: x1 - w, Y: middle.Y, Width: w, Height: middle.Height}}
			x1 -= w
		}
	}

	body := render.Rect{X: x0, Y: middle.Y, Width: x1 - x0, Height: middle.Height}
	if body.Empty() {
		return ge
	}
	ge.colHeader = body.Row(0)
	ge.body = render.Rect{X: body.X, Y: body.Y + 1, Width: body.Width, Height: body.Height - 1}
	ge.cols = spanColumns(g.Columns(), body.X, body.Width)

	inlinePlugin, inlineRowID, expand := g.inlineTarget()
	rows := g.engine.Rows()
	ry := ge.body.Y
	for _, row := range rows {
		if ry >= ge.body.Bottom() {
			break
		}
		rb := rowBand{row: row, area: render.Rect{X: body.X, Y: ry, Width: body.Width, Height: 1}}
		ry++
		if expand && row.ID == inlineRowID {
			h := inlinePlugin.Slots().InlineRow.Height
			if h <= 0 {
				h = 3
			}
			h = min(h, ge.body.Bottom()-ry)
			if h > 0 {
				rb.inline = render.Rect{X: body.X, Y: ry, Width: body.Width, Height: h}
				ry += h
			}
		}
		ge.rows = append(ge.rows, rb)
	}
	return ge
}

// spanColumns distributes the body width over the visible columns.
// Declared widths are honored; columns without one share the remainder
// evenly, and the last column absorbs rounding slack.
func spanColumns(cols []rowmodel.Column, x, width int) []colSpan {
	if len(cols) == 0 || width <= 0 {
		return nil
	}

	fixed, flex := 0, 0
	for _, c := range cols {
		if c.Width > 0 {
			fixed += c.Width
		} else {
			flex++
		}
	}
	share := 0
	if flex > 0 {
		share = max((width-fixed)/flex, 1)
	}

	spans := make([]colSpan, 0, len(cols))
	cx := x
	for i, c := range cols {
		w := c.Width
		if w <= 0 {
			w = share
		}
		if i == len(cols)-1 {
			w = x + width - cx
		}
		if w <= 0 {
			break
		}
		w = min(w, x+width-cx)
		spans = append(spans, colSpan{column: c, x: cx, width: w})
		cx += w
		if cx >= x+width {
			break
		}
	}
	return spans
}
