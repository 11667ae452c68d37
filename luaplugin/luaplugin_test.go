package luaplugin

import (
	"errors"
	"testing"

	"github.com/dshills/gridstorm/grid"
	"github.com/dshills/gridstorm/plugin"
	"github.com/dshills/gridstorm/render"
	"github.com/dshills/gridstorm/rowmodel"
)

const totalsScript = `
plugin {
	id = "totals",
	name = "Totals",
	config = {
		label = { type = "string", default = "Rows" },
	},
	footer = function(ctx)
		return ctx.config.label .. ": " .. ctx.rowCount
	end,
	cell = function(cell)
		if cell.column == "age" then
			return "(" .. cell.value .. ")"
		end
	end,
}
`

func TestLoad_DeclaresPlugin(t *testing.T) {
	desc, err := Load(totalsScript)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if desc.ID() != "totals" || desc.Name() != "Totals" {
		t.Errorf("descriptor = %s/%s, want totals/Totals", desc.ID(), desc.Name())
	}

	// The declared config schema validates and defaults.
	inst, err := desc.Configure(nil)
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if got := inst.Config().String("label", ""); got != "Rows" {
		t.Errorf("label default = %q, want Rows", got)
	}
	if _, err := desc.Configure(map[string]any{"label": 7}); err == nil {
		t.Error("Configure accepted a non-string label")
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(`x = 1`); !errors.Is(err, ErrNoDeclaration) {
		t.Errorf("script without plugin(): err = %v", err)
	}
	if _, err := Load(`plugin { name = "No ID" }`); !errors.Is(err, ErrBadDeclaration) {
		t.Errorf("script without id: err = %v", err)
	}
	if _, err := Load(`plugin {`); err == nil {
		t.Error("syntax error not surfaced")
	}
	if _, err := Load(`plugin { id = "x", name = "X", config = { f = { type = "blob" } } }`); !errors.Is(err, ErrBadDeclaration) {
		t.Error("unknown config field type accepted")
	}
}

func TestLoad_SandboxStripsLoaders(t *testing.T) {
	for _, script := range []string{
		`plugin { id = "a", name = "A" } dofile("/etc/passwd")`,
		`plugin { id = "a", name = "A" } loadfile("x")`,
		`plugin { id = "a", name = "A" } os.exit(1)`,
		`plugin { id = "a", name = "A" } io.open("x")`,
	} {
		if _, err := Load(script); err == nil {
			t.Errorf("script using stripped global loaded cleanly: %s", script)
		}
	}
}

func TestScriptedSlots(t *testing.T) {
	desc, err := Load(totalsScript)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	inst, err := desc.Configure(map[string]any{"label": "Count"})
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}

	g, err := grid.New(grid.Options{
		Columns: []rowmodel.Column{
			{Key: "name", Title: "Name"},
			{Key: "age", Title: "Age", Width: 8},
		},
		Rows: []*rowmodel.Row{
			rowmodel.NewRow("1", map[string]any{"name": "Ada", "age": 36}),
			rowmodel.NewRow("2", map[string]any{"name": "Grace", "age": 85}),
		},
		Plugins: []*plugin.Instance{inst},
	})
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}

	buf := render.NewBuffer(60, 16)
	g.Render(buf)

	if !buf.ContainsText("Count: 2") {
		t.Errorf("scripted footer missing:\n%s", buf.Contents())
	}
	if !buf.ContainsText("(36)") {
		t.Errorf("scripted cell renderer missing:\n%s", buf.Contents())
	}
	// The name column declines, falling back to the default renderer.
	if !buf.ContainsText("Ada") {
		t.Errorf("default cell rendering lost:\n%s", buf.Contents())
	}
}
