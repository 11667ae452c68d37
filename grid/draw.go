package grid

import (
	"fmt"

	"github.com/dshills/gridstorm/plugin"
	"github.com/dshills/gridstorm/render"
)

// Grid chrome styles.
var (
	styleDefault   = render.Style{}
	styleColHeader = render.Style{}.Bold().Underline()
	styleSelected  = render.Style{}.Reverse()
	styleTab       = render.Style{}
	styleTabActive = render.Style{}.Reverse()
	stylePanelHead = render.Style{}.Bold()
	styleStatus    = render.Style{}.Reverse()
	styleSortMark  = render.Style{}.Bold()
)

// slotFuncs holds one plugin's materialized slot renderers. Factories run
// once per configured instance, not once per frame, so renderers may keep
// state in their closures.
type slotFuncs struct {
	header plugin.PanelRenderFunc
	footer plugin.PanelRenderFunc
	panel  plugin.PanelRenderFunc
	cell   plugin.CellRenderFunc
	inline plugin.InlineRenderFunc
}

func buildSlotFuncs(plugins []*plugin.Instance) map[string]slotFuncs {
	out := make(map[string]slotFuncs, len(plugins))
	for _, p := range plugins {
		var fns slotFuncs
		slots := p.Slots()
		if slots.Header != nil && slots.Header.Render != nil {
			fns.header = slots.Header.Render(p.Config())
		}
		if slots.Footer != nil && slots.Footer.Render != nil {
			fns.footer = slots.Footer.Render(p.Config())
		}
		if slots.SidePanel != nil && slots.SidePanel.Render != nil {
			fns.panel = slots.SidePanel.Render(p.Config())
		}
		if slots.Cell != nil && slots.Cell.Render != nil {
			fns.cell = slots.Cell.Render(p.Config())
		}
		if slots.InlineRow != nil && slots.InlineRow.Render != nil {
			fns.inline = slots.InlineRow.Render(p.Config())
		}
		out[p.ID()] = fns
	}
	return out
}

// Render draws the full grid onto the surface and records the resulting
// geometry for hit testing. It first reconciles pending state changes, so
// a render pass that follows mutations emits their change events before
// any slot renderer runs.
func (g *Grid) Render(s render.Surface) {
	g.surface = s
	g.sync()

	width, height := s.Size()
	g.geom = g.layout(width, height)
	g.menus.SetBounds(g.geom.bounds)

	s.Clear()
	rc := g.Context()

	for _, hb := range g.geom.headers {
		if fn := g.slotFns[hb.pluginID].header; fn != nil {
			fn(rc, s, hb.area)
		}
	}

	g.drawColumnHeader(s)
	g.drawRows(rc, s)
	g.drawTabs(s)
	g.drawPanel(rc, s)

	for _, fb := range g.geom.footers {
		if fn := g.slotFns[fb.pluginID].footer; fn != nil {
			fn(rc, s, fb.area)
		}
	}
	g.drawStatus(s)

	g.menus.Render(s)
	s.Show()
}

func (g *Grid) drawColumnHeader(s render.Surface) {
	area := g.geom.colHeader
	if area.Empty() {
		return
	}
	render.FillLine(s, area, area.Y, styleColHeader)
	sorts := g.engine.Sorting()
	for _, span := range g.geom.cols {
		title := span.column.Title
		if title == "" {
			title = span.column.Key
		}
		cell := render.Rect{X: span.x, Y: area.Y, Width: span.width, Height: 1}
		w := render.DrawText(s, cell, span.x, area.Y, styleColHeader, " "+title)
		for _, srt := range sorts {
			if srt.Column != span.column.Key {
				continue
			}
			mark := "▲"
			if srt.Desc {
				mark = "▼"
			}
			render.DrawText(s, cell, span.x+w, area.Y, styleSortMark, mark)
		}
	}
}

func (g *Grid) drawRows(rc *plugin.Context, s render.Surface) {
	selected := make(map[string]bool)
	for _, r := range g.engine.SelectedRows() {
		selected[r.ID] = true
	}

	for _, rb := range g.geom.rows {
		rowStyle := styleDefault
		if selected[rb.row.ID] {
			rowStyle = styleSelected
		}
		render.FillLine(s, rb.area, rb.area.Y, rowStyle)

		for _, span := range g.geom.cols {
			cellArea := g.geom.cellRect(span, rb)
			cc := plugin.CellContext{
				Grid:     rc,
				Column:   span.column,
				Row:      rb.row,
				Value:    rb.row.Value(span.column.Key),
				Selected: selected[rb.row.ID],
			}
			if g.renderCellSlot(cc, s, cellArea) {
				continue
			}
			render.DrawText(s, cellArea, cellArea.X, cellArea.Y, rowStyle, " "+formatValue(cc.Value))
		}

		if !rb.inline.Empty() {
			if id, ok := g.activation.ActiveID(); ok {
				if fn := g.slotFns[id].inline; fn != nil {
					s.Fill(rb.inline, render.Cell{Rune: ' ', Style: styleDefault})
					fn(rc, rb.row, s, rb.inline)
				}
			}
		}
	}
}

// renderCellSlot offers the cell to each declaring plugin in list order;
// the first renderer that accepts it wins.
func (g *Grid) renderCellSlot(cc plugin.CellContext, s render.Surface, area render.Rect) bool {
	for _, p := range g.plugins {
		fn := g.slotFns[p.ID()].cell
		if fn == nil {
			continue
		}
		if fn(cc, s, area) {
			return true
		}
	}
	return false
}

func (g *Grid) drawTabs(s render.Surface) {
	active, _ := g.activation.ActiveID()
	for _, t := range append(g.geom.leftTabs, g.geom.rightTabs...) {
		style := styleTab
		if t.pluginID == active {
			style = styleTabActive
		}
		name := t.pluginID
		for _, p := range g.plugins {
			if p.ID() == t.pluginID {
				name = p.Name()
				break
			}
		}
		render.FillLine(s, t.area, t.area.Y, style)
		render.DrawText(s, t.area, t.area.X, t.area.Y, style, " "+name)
	}
}

func (g *Grid) drawPanel(rc *plugin.Context, s render.Surface) {
	pb := g.geom.panel
	if pb.pluginID == "" || pb.area.Empty() {
		return
	}
	var active *plugin.Instance
	for _, p := range g.plugins {
		if p.ID() == pb.pluginID {
			active = p
			break
		}
	}
	if active == nil {
		return
	}

	header := active.Slots().SidePanel.Header
	if header == "" {
		header = active.Name()
	}
	render.FillLine(s, pb.area, pb.area.Y, stylePanelHead)
	render.DrawText(s, pb.area, pb.area.X, pb.area.Y, stylePanelHead, " "+header)

	body := render.Rect{X: pb.area.X, Y: pb.area.Y + 1, Width: pb.area.Width, Height: pb.area.Height - 1}
	if body.Empty() {
		return
	}
	s.Fill(body, render.Cell{Rune: ' ', Style: styleDefault})
	if fn := g.slotFns[pb.pluginID].panel; fn != nil {
		fn(rc, s, body)
	}
}

func (g *Grid) drawStatus(s render.Surface) {
	area := g.geom.status
	if area.Empty() {
		return
	}
	render.FillLine(s, area, area.Y, styleStatus)
	page := g.engine.Pagination()
	text := fmt.Sprintf(" Page %d/%d", page.PageIndex+1, g.engine.PageCount())
	if n := len(g.engine.SelectedRows()); n > 0 {
		text += fmt.Sprintf("  %d selected", n)
	}
	render.DrawText(s, area, area.X, area.Y, styleStatus, text)
}

// formatValue renders a cell value for the default cell renderer. Nil is
// blank rather than "<nil>".
func formatValue(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
