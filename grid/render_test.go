package grid

import (
	"fmt"
	"testing"

	"github.com/dshills/gridstorm/event"
	"github.com/dshills/gridstorm/plugin"
	"github.com/dshills/gridstorm/render"
	"github.com/dshills/gridstorm/rowmodel"
)

func leftClick(x, y int) render.Event {
	return render.Event{Type: render.EventMouse, MouseX: x, MouseY: y, MouseButton: render.MouseLeft}
}

func rightClick(x, y int) render.Event {
	return render.Event{Type: render.EventMouse, MouseX: x, MouseY: y, MouseButton: render.MouseRight}
}

func keyEvent(k render.Key) render.Event {
	return render.Event{Type: render.EventKey, Key: k}
}

func TestGrid_RenderBasics(t *testing.T) {
	g := newTestGrid(t)
	buf := render.NewBuffer(80, 24)
	g.Render(buf)

	for _, want := range []string{"ID", "Name", "Age", "Status", "Ada", "Grace", "active"} {
		if !buf.ContainsText(want) {
			t.Errorf("rendered grid missing %q:\n%s", want, buf.Contents())
		}
	}
	if !buf.ContainsText("Page 1/1") {
		t.Errorf("status line missing page info: %q", buf.Line(23))
	}

	g.ToggleSelected("1")
	g.Render(buf)
	if !buf.ContainsText("1 selected") {
		t.Errorf("status line missing selection count: %q", buf.Line(23))
	}
}

func TestGrid_HeaderFooterBars(t *testing.T) {
	marker := func(text string) func(cfg plugin.Config) plugin.PanelRenderFunc {
		return func(cfg plugin.Config) plugin.PanelRenderFunc {
			return func(rc *plugin.Context, s render.Surface, area render.Rect) {
				render.DrawText(s, area, area.X, area.Y, render.Style{}, text)
			}
		}
	}

	p1 := plugin.Define(plugin.Options{
		ID: "toolbar", Name: "Toolbar",
		Slots: plugin.Slots{Header: &plugin.HeaderSlot{Render: marker("TOOLBAR")}},
	}).MustConfigure(nil)
	p2 := plugin.Define(plugin.Options{
		ID: "search", Name: "Search",
		Slots: plugin.Slots{Header: &plugin.HeaderSlot{Height: 2, Render: marker("SEARCH")}},
	}).MustConfigure(nil)
	p3 := plugin.Define(plugin.Options{
		ID: "summary", Name: "Summary",
		Slots: plugin.Slots{Footer: &plugin.FooterSlot{Render: marker("SUMMARY")}},
	}).MustConfigure(nil)

	g := newTestGrid(t, p1, p2, p3)
	buf := render.NewBuffer(80, 24)
	g.Render(buf)

	// Headers stack in plugin-list order from the top.
	if _, y, ok := buf.FindText("TOOLBAR"); !ok || y != 0 {
		t.Errorf("TOOLBAR at row %d (found %v), want 0", y, ok)
	}
	if _, y, ok := buf.FindText("SEARCH"); !ok || y != 1 {
		t.Errorf("SEARCH at row %d (found %v), want 1", y, ok)
	}
	// Column header lands below both bars (heights 1 + 2).
	if _, y, ok := buf.FindText("Status"); !ok || y != 3 {
		t.Errorf("column header at row %d (found %v), want 3", y, ok)
	}
	// Footer sits directly above the status line.
	if _, y, ok := buf.FindText("SUMMARY"); !ok || y != 22 {
		t.Errorf("SUMMARY at row %d (found %v), want 22", y, ok)
	}
}

func sidePanelPlugin(id, name string) *plugin.Instance {
	return plugin.Define(plugin.Options{
		ID: id, Name: name,
		Slots: plugin.Slots{SidePanel: &plugin.SidePanelSlot{
			Position: plugin.PanelRight,
			Render: func(cfg plugin.Config) plugin.PanelRenderFunc {
				return func(rc *plugin.Context, s render.Surface, area render.Rect) {
					render.DrawText(s, area, area.X, area.Y, render.Style{}, "panel:"+id)
				}
			},
		}},
	}).MustConfigure(nil)
}

func TestGrid_SidePanelTabsExclusive(t *testing.T) {
	g := newTestGrid(t, sidePanelPlugin("filters", "Filters"), sidePanelPlugin("details", "Details"))
	buf := render.NewBuffer(80, 24)
	g.Render(buf)

	// Both plugins get a tab in the right rail, top to bottom in list
	// order; no panel is open yet.
	if x, y, ok := buf.FindText("Filters"); !ok || x < 70 || y != 0 {
		t.Errorf("Filters tab at (%d,%d) found=%v, want x>=70 y=0", x, y, ok)
	}
	if x, y, ok := buf.FindText("Details"); !ok || x < 70 || y != 1 {
		t.Errorf("Details tab at (%d,%d) found=%v, want x>=70 y=1", x, y, ok)
	}
	if buf.ContainsText("panel:") {
		t.Fatalf("panel rendered while nothing active:\n%s", buf.Contents())
	}

	// Clicking a tab opens that panel.
	if !g.HandleEvent(leftClick(71, 0)) {
		t.Fatal("tab click not handled")
	}
	g.Render(buf)
	if !buf.ContainsText("panel:filters") {
		t.Fatalf("filters panel not rendered:\n%s", buf.Contents())
	}

	// Opening the other tab replaces it; only one panel at a time.
	g.HandleEvent(leftClick(71, 1))
	g.Render(buf)
	if buf.ContainsText("panel:filters") {
		t.Error("filters panel still rendered after details opened")
	}
	if !buf.ContainsText("panel:details") {
		t.Error("details panel not rendered")
	}

	// Clicking the active tab closes it, and Escape would too.
	g.HandleEvent(leftClick(71, 1))
	g.Render(buf)
	if buf.ContainsText("panel:") {
		t.Error("panel still rendered after toggle close")
	}

	g.HandleEvent(leftClick(71, 0))
	if !g.HandleEvent(keyEvent(render.KeyEscape)) {
		t.Fatal("Escape with open panel not handled")
	}
	if _, open := g.activation.ActiveID(); open {
		t.Error("Escape did not close the panel")
	}
}

func TestGrid_CellSlotFirstMatchWins(t *testing.T) {
	ages := plugin.Define(plugin.Options{
		ID: "ages", Name: "Ages",
		Slots: plugin.Slots{Cell: &plugin.CellSlot{
			Render: func(cfg plugin.Config) plugin.CellRenderFunc {
				return func(cc plugin.CellContext, s render.Surface, area render.Rect) bool {
					if cc.Column.Key != "age" {
						return false
					}
					render.DrawText(s, area, area.X, area.Y, render.Style{}, fmt.Sprintf("<%v>", cc.Value))
					return true
				}
			},
		}},
	}).MustConfigure(nil)
	all := plugin.Define(plugin.Options{
		ID: "everything", Name: "Everything",
		Slots: plugin.Slots{Cell: &plugin.CellSlot{
			Render: func(cfg plugin.Config) plugin.CellRenderFunc {
				return func(cc plugin.CellContext, s render.Surface, area render.Rect) bool {
					if cc.Column.Key != "status" {
						return false
					}
					render.DrawText(s, area, area.X, area.Y, render.Style{}, "["+formatValue(cc.Value)+"]")
					return true
				}
			},
		}},
	}).MustConfigure(nil)

	g := newTestGrid(t, ages, all)
	buf := render.NewBuffer(80, 24)
	g.Render(buf)

	if !buf.ContainsText("<36>") {
		t.Errorf("age cell not handled by its plugin:\n%s", buf.Contents())
	}
	if !buf.ContainsText("[active]") {
		t.Errorf("status cell not handled by second plugin:\n%s", buf.Contents())
	}
	// Undeclined columns fall back to the default renderer.
	if !buf.ContainsText("Ada") {
		t.Errorf("name cell lost its default rendering:\n%s", buf.Contents())
	}
}

func TestGrid_InlineRowForActivePluginOnly(t *testing.T) {
	inline := func(id string) *plugin.Instance {
		return plugin.Define(plugin.Options{
			ID: id, Name: id,
			Slots: plugin.Slots{InlineRow: &plugin.InlineRowSlot{
				Height: 2,
				Render: func(cfg plugin.Config) plugin.InlineRenderFunc {
					return func(rc *plugin.Context, row *rowmodel.Row, s render.Surface, area render.Rect) {
						render.DrawText(s, area, area.X, area.Y, render.Style{}, "expanded:"+id+":"+row.ID)
					}
				},
			}},
		}).MustConfigure(nil)
	}

	g := newTestGrid(t, inline("audit"), inline("notes"))
	buf := render.NewBuffer(80, 24)
	g.Render(buf)
	if buf.ContainsText("expanded:") {
		t.Fatal("inline row rendered with nothing active")
	}

	g.Panel().Open("audit", map[string]any{"rowId": "2"})
	g.Render(buf)
	if !buf.ContainsText("expanded:audit:2") {
		t.Fatalf("active plugin's inline row missing:\n%s", buf.Contents())
	}
	if buf.ContainsText("expanded:notes") {
		t.Error("inactive plugin's inline row rendered")
	}

	// The expansion pushes later rows down: row 2 sits at body row 2,
	// the two inline rows follow, then row 3.
	_, rowY, _ := buf.FindText("Brian")
	_, expandY, _ := buf.FindText("expanded:audit:2")
	_, nextY, _ := buf.FindText("Grace")
	if expandY != rowY+1 || nextY != rowY+3 {
		t.Errorf("inline geometry: row=%d expanded=%d next=%d", rowY, expandY, nextY)
	}

	// Opening the other plugin with no row args collapses the expansion.
	g.Panel().SetActive("notes")
	g.Render(buf)
	if buf.ContainsText("expanded:") {
		t.Error("inline row survived activation change without row args")
	}
}

func TestGrid_RowClickTogglesSelection(t *testing.T) {
	g := newTestGrid(t)
	r := record(g)
	buf := render.NewBuffer(80, 24)
	g.Render(buf)

	// Body rows start right under the column header; row "2" is second.
	if !g.HandleEvent(leftClick(10, 2)) {
		t.Fatal("row click not handled")
	}
	if sel := g.SelectedRows(); len(sel) != 1 || sel[0].ID != "2" {
		t.Fatalf("selection after click = %v", rowIDs(sel))
	}
	clicked, ok := r.payloads[event.RowClick].(*rowmodel.Row)
	if !ok || clicked.ID != "2" {
		t.Errorf("row-click payload = %v, want row 2", r.payloads[event.RowClick])
	}

	g.HandleEvent(leftClick(10, 2))
	if sel := g.SelectedRows(); len(sel) != 0 {
		t.Errorf("second click should deselect, got %v", rowIDs(sel))
	}
}

func TestGrid_ColumnMenuHideColumn(t *testing.T) {
	hider := plugin.Define(plugin.Options{
		ID: "columns", Name: "Columns",
		ColumnMenuItems: []plugin.ColumnMenuItem{
			plugin.ColumnItem("hide", func(ctx plugin.ColumnMenuContext) plugin.MenuEntry {
				return plugin.MenuEntry{
					Label:   "Hide column",
					OnClick: func() { ctx.Table.SetColumnVisible(ctx.Column.Key, false) },
				}
			}),
		},
	}).MustConfigure(nil)

	g := newTestGrid(t, hider)
	buf := render.NewBuffer(80, 24)
	g.Render(buf)

	// Right-click the Age column header.
	x, y, ok := buf.FindText("Age")
	if !ok {
		t.Fatalf("Age header not rendered:\n%s", buf.Contents())
	}
	if !g.HandleEvent(rightClick(x, y)) {
		t.Fatal("header right-click not handled")
	}
	if !g.Menus().IsOpen() {
		t.Fatal("column menu did not open")
	}

	g.Render(buf)
	ex, ey, ok := buf.FindText("Hide column")
	if !ok {
		t.Fatalf("menu entry not rendered:\n%s", buf.Contents())
	}

	// Clicking the entry hides the column and closes the menu.
	if !g.HandleEvent(leftClick(ex, ey)) {
		t.Fatal("menu entry click not handled")
	}
	if g.ColumnVisible("age") {
		t.Error("age column still visible")
	}
	if g.Menus().IsOpen() {
		t.Error("menu still open after entry click")
	}
	g.Render(buf)
	if buf.ContainsText("Age") {
		t.Errorf("hidden column still rendered:\n%s", buf.Contents())
	}
}

func TestGrid_CellMenuCopy(t *testing.T) {
	g := newTestGrid(t)
	buf := render.NewBuffer(80, 24)
	g.Render(buf)

	// Right-click the cell holding Ada's name.
	x, y, ok := buf.FindText("Ada")
	if !ok {
		t.Fatal("Ada cell not rendered")
	}
	g.HandleEvent(rightClick(x, y))
	if !g.Menus().IsOpen() {
		t.Fatal("cell menu did not open")
	}

	g.Render(buf)
	cx, cy, ok := buf.FindText("Copy")
	if !ok {
		t.Fatalf("built-in Copy entry not rendered:\n%s", buf.Contents())
	}
	g.HandleEvent(leftClick(cx, cy))
	if got := buf.Clipboard(); got != "Ada" {
		t.Errorf("clipboard = %q, want %q", got, "Ada")
	}
	if g.Menus().IsOpen() {
		t.Error("menu still open after Copy")
	}
}

func TestGrid_PageNavigationKeys(t *testing.T) {
	g, err := New(Options{Columns: testColumns(), Rows: testRows(), PageSize: 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if !g.HandleEvent(keyEvent(render.KeyPageDown)) {
		t.Fatal("PageDown not handled on first page")
	}
	if got := g.Pagination().PageIndex; got != 1 {
		t.Fatalf("page after PageDown = %d, want 1", got)
	}
	// Already on the last page: handled state does not change.
	if g.HandleEvent(keyEvent(render.KeyPageDown)) {
		t.Error("PageDown on last page reported a change")
	}
	if !g.HandleEvent(keyEvent(render.KeyHome)) {
		t.Fatal("Home not handled")
	}
	if got := g.Pagination().PageIndex; got != 0 {
		t.Errorf("page after Home = %d, want 0", got)
	}
}
