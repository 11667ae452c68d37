// Package luaplugin loads grid plugins written as Lua scripts. A script
// declares itself by calling the global plugin() function with a table:
//
//	plugin {
//		id = "totals",
//		name = "Totals",
//		config = {
//			label = { type = "string", default = "Total" },
//		},
//		footer = function(ctx)
//			return ctx.config.label .. ": " .. ctx.rowCount
//		end,
//		cell = function(cell)
//			if cell.column == "age" then return "<" .. cell.value .. ">" end
//		end,
//	}
//
// Scripted slots are text-level: the footer and panel hooks return
// strings the adapter draws, and the cell hook returns replacement text
// or nil to decline the cell. Scripts run in a restricted Lua state with
// the file and code loading primitives removed.
package luaplugin

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/gridstorm/plugin"
	"github.com/dshills/gridstorm/render"
	"github.com/dshills/gridstorm/schema"
)

// Load errors.
var (
	ErrNoDeclaration  = errors.New("luaplugin: script never called plugin()")
	ErrBadDeclaration = errors.New("luaplugin: malformed plugin declaration")
)

// strippedGlobals are removed from every script state. They load code or
// touch the host process, which scripted grid plugins have no business
// doing.
var strippedGlobals = []string{"dofile", "loadfile", "load", "loadstring", "os", "io"}

// Load runs a plugin script and returns the declared plugin descriptor.
// The script's hook functions stay bound to its Lua state; instances
// configured from the descriptor share that state and must be driven from
// the grid's UI goroutine like everything else.
func Load(script string) (*plugin.Descriptor, error) {
	ls := lua.NewState()
	for _, name := range strippedGlobals {
		ls.SetGlobal(name, lua.LNil)
	}

	var declared *lua.LTable
	ls.SetGlobal("plugin", ls.NewFunction(func(L *lua.LState) int {
		declared = L.CheckTable(1)
		return 0
	}))

	if err := ls.DoString(script); err != nil {
		ls.Close()
		return nil, fmt.Errorf("luaplugin: %w", err)
	}
	if declared == nil {
		ls.Close()
		return nil, ErrNoDeclaration
	}

	host := &scriptHost{ls: ls}
	desc, err := host.describe(declared)
	if err != nil {
		ls.Close()
		return nil, err
	}
	return desc, nil
}

// scriptHost owns one script's Lua state and serializes calls into it.
type scriptHost struct {
	mu sync.Mutex
	ls *lua.LState
}

func (h *scriptHost) describe(t *lua.LTable) (*plugin.Descriptor, error) {
	id, ok := h.ls.GetField(t, "id").(lua.LString)
	if !ok || id == "" {
		return nil, fmt.Errorf("%w: missing id", ErrBadDeclaration)
	}
	name, ok := h.ls.GetField(t, "name").(lua.LString)
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrBadDeclaration)
	}

	sch, err := h.configSchema(t)
	if err != nil {
		return nil, err
	}

	var slots plugin.Slots
	if fn, ok := h.ls.GetField(t, "footer").(*lua.LFunction); ok {
		slots.Footer = &plugin.FooterSlot{Render: h.textBarRenderer(fn)}
	}
	if fn, ok := h.ls.GetField(t, "header").(*lua.LFunction); ok {
		slots.Header = &plugin.HeaderSlot{Render: h.textBarRenderer(fn)}
	}
	if fn, ok := h.ls.GetField(t, "panel").(*lua.LFunction); ok {
		slots.SidePanel = &plugin.SidePanelSlot{Render: h.panelRenderer(fn)}
	}
	if fn, ok := h.ls.GetField(t, "cell").(*lua.LFunction); ok {
		slots.Cell = &plugin.CellSlot{Render: h.cellRenderer(fn)}
	}

	return plugin.Define(plugin.Options{
		ID:     string(id),
		Name:   string(name),
		Schema: sch,
		Slots:  slots,
	}), nil
}

// configSchema builds an object schema from the declaration's config
// table: each field names a type and optionally a default.
func (h *scriptHost) configSchema(t *lua.LTable) (*schema.Schema, error) {
	cfg, ok := h.ls.GetField(t, "config").(*lua.LTable)
	if !ok {
		return nil, nil
	}

	b := schema.Object()
	var err error
	cfg.ForEach(func(k, v lua.LValue) {
		key, kok := k.(lua.LString)
		field, vok := v.(*lua.LTable)
		if !kok || !vok {
			err = fmt.Errorf("%w: config fields must be tables", ErrBadDeclaration)
			return
		}
		typ, _ := h.ls.GetField(field, "type").(lua.LString)
		def := toGo(h.ls.GetField(field, "default"))

		var fb *schema.Builder
		switch string(typ) {
		case "string":
			fb = schema.String()
		case "integer":
			fb = schema.Integer()
		case "number":
			fb = schema.Number()
		case "boolean":
			fb = schema.Boolean()
		default:
			err = fmt.Errorf("%w: config field %q has unknown type %q", ErrBadDeclaration, key, typ)
			return
		}
		if def != nil {
			fb = fb.Default(def)
		}
		b = b.Prop(string(key), fb)
	})
	if err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// textBarRenderer adapts a hook returning a string into a header/footer
// renderer drawing that string on the bar's first row.
func (h *scriptHost) textBarRenderer(fn *lua.LFunction) func(cfg plugin.Config) plugin.PanelRenderFunc {
	return func(cfg plugin.Config) plugin.PanelRenderFunc {
		return func(rc *plugin.Context, s render.Surface, area render.Rect) {
			text, err := h.callString(fn, h.contextTable(rc, cfg))
			if err != nil || text == "" {
				return
			}
			render.DrawText(s, area, area.X, area.Y, render.Style{}, " "+text)
		}
	}
}

// panelRenderer adapts a hook returning a string into a side-panel
// renderer; newlines split the text over the panel's rows.
func (h *scriptHost) panelRenderer(fn *lua.LFunction) func(cfg plugin.Config) plugin.PanelRenderFunc {
	return func(cfg plugin.Config) plugin.PanelRenderFunc {
		return func(rc *plugin.Context, s render.Surface, area render.Rect) {
			text, err := h.callString(fn, h.contextTable(rc, cfg))
			if err != nil {
				return
			}
			for i, line := range strings.Split(text, "\n") {
				if i >= area.Height {
					break
				}
				render.DrawText(s, area, area.X, area.Y+i, render.Style{}, " "+line)
			}
		}
	}
}

// cellRenderer adapts a hook returning replacement text or nil into a
// cell slot renderer. Nil declines the cell.
func (h *scriptHost) cellRenderer(fn *lua.LFunction) func(cfg plugin.Config) plugin.CellRenderFunc {
	return func(cfg plugin.Config) plugin.CellRenderFunc {
		return func(cc plugin.CellContext, s render.Surface, area render.Rect) bool {
			cell := h.ls.NewTable()
			h.ls.SetField(cell, "column", lua.LString(cc.Column.Key))
			h.ls.SetField(cell, "rowId", lua.LString(cc.Row.ID))
			h.ls.SetField(cell, "value", toLua(h.ls, cc.Value))
			h.ls.SetField(cell, "selected", lua.LBool(cc.Selected))
			h.ls.SetField(cell, "config", configTable(h.ls, cfg))

			h.mu.Lock()
			err := h.ls.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, cell)
			var ret lua.LValue = lua.LNil
			if err == nil {
				ret = h.ls.Get(-1)
				h.ls.Pop(1)
			}
			h.mu.Unlock()

			text, ok := ret.(lua.LString)
			if err != nil || !ok {
				return false
			}
			style := render.Style{}
			if cc.Selected {
				style = style.Reverse()
			}
			render.DrawText(s, area, area.X, area.Y, style, " "+string(text))
			return true
		}
	}
}

// contextTable exposes the read side of the grid context to a hook.
func (h *scriptHost) contextTable(rc *plugin.Context, cfg plugin.Config) *lua.LTable {
	t := h.ls.NewTable()
	h.ls.SetField(t, "rowCount", lua.LNumber(len(rc.Data)))
	h.ls.SetField(t, "selectedCount", lua.LNumber(len(rc.SelectedRows)))
	page := rc.Table.Pagination()
	h.ls.SetField(t, "pageIndex", lua.LNumber(page.PageIndex))
	h.ls.SetField(t, "pageCount", lua.LNumber(rc.Table.PageCount()))
	h.ls.SetField(t, "config", configTable(h.ls, cfg))

	cols := h.ls.NewTable()
	for i, c := range rc.Columns {
		cols.RawSetInt(i+1, lua.LString(c.Key))
	}
	h.ls.SetField(t, "columns", cols)
	return t
}

func configTable(ls *lua.LState, cfg plugin.Config) *lua.LTable {
	t := ls.NewTable()
	for k, v := range cfg {
		ls.SetField(t, k, toLua(ls, v))
	}
	return t
}

func (h *scriptHost) callString(fn *lua.LFunction, arg lua.LValue) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.ls.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, arg); err != nil {
		return "", err
	}
	ret := h.ls.Get(-1)
	h.ls.Pop(1)
	if s, ok := ret.(lua.LString); ok {
		return string(s), nil
	}
	return "", nil
}

// toLua converts the config and cell value types the grid traffics in.
func toLua(ls *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	default:
		return lua.LString(fmt.Sprintf("%v", val))
	}
}

// toGo converts a Lua scalar to its Go value. Tables and functions map to
// nil; schema defaults are scalars.
func toGo(lv lua.LValue) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int(f)
		}
		return f
	case lua.LString:
		return string(v)
	default:
		return nil
	}
}
