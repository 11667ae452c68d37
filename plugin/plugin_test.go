package plugin

import (
	"errors"
	"testing"

	"github.com/dshills/gridstorm/schema"
)

func testDescriptor() *Descriptor {
	return Define(Options{
		ID:   "export",
		Name: "Export",
		Schema: schema.Object().
			Prop("format", schema.StringEnum("csv", "json").Default("csv")).
			Prop("limit", schema.Integer().Minimum(1).Default(100)).
			Build(),
	})
}

func TestDescriptor_ConfigureDefaults(t *testing.T) {
	inst, err := testDescriptor().Configure(nil)
	if err != nil {
		t.Fatalf("Configure(nil) failed: %v", err)
	}

	if inst.ID() != "export" || inst.Name() != "Export" {
		t.Errorf("identity = %s/%s, want export/Export", inst.ID(), inst.Name())
	}
	cfg := inst.Config()
	if cfg.String("format", "") != "csv" {
		t.Errorf("format default = %v, want csv", cfg["format"])
	}
	if cfg.Int("limit", 0) != 100 {
		t.Errorf("limit default = %v, want 100", cfg["limit"])
	}
}

func TestDescriptor_ConfigureOverridesDefaults(t *testing.T) {
	inst, err := testDescriptor().Configure(map[string]any{"format": "json", "limit": 5})
	if err != nil {
		t.Fatalf("Configure() failed: %v", err)
	}
	if inst.Config().String("format", "") != "json" {
		t.Errorf("format = %v, want json", inst.Config()["format"])
	}
	if inst.Config().Int("limit", 0) != 5 {
		t.Errorf("limit = %v, want 5", inst.Config()["limit"])
	}
}

func TestDescriptor_ConfigureInvalid(t *testing.T) {
	_, err := testDescriptor().Configure(map[string]any{"format": "xml"})
	if err == nil {
		t.Fatal("Configure with enum violation succeeded")
	}

	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("error type = %T, want *ConfigError", err)
	}
	if cerr.PluginID != "export" {
		t.Errorf("PluginID = %s, want export", cerr.PluginID)
	}
	if len(cerr.Violations()) == 0 {
		t.Error("expected field-level violations")
	}
}

func TestDescriptor_ConfigureJSON(t *testing.T) {
	inst, err := testDescriptor().ConfigureJSON([]byte(`{"format":"json","limit":42}`))
	if err != nil {
		t.Fatalf("ConfigureJSON() failed: %v", err)
	}
	if inst.Config().Int("limit", 0) != 42 {
		t.Errorf("limit = %v, want 42", inst.Config()["limit"])
	}

	if _, err := testDescriptor().ConfigureJSON([]byte(`[1,2]`)); err == nil {
		t.Error("non-object JSON config accepted")
	}
}

func TestDefine_PanicsOnBadDeclaration(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"missing id", Options{Name: "X"}},
		{"bad id", Options{ID: "9 lives", Name: "X"}},
		{"missing name", Options{ID: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Define() did not panic")
				}
			}()
			Define(tt.opts)
		})
	}
}

func TestMustConfigure_PanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustConfigure() did not panic on invalid config")
		}
	}()
	testDescriptor().MustConfigure(map[string]any{"limit": 0})
}

func TestUse_PanicsOutsideRender(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Use(nil) did not panic")
		}
	}()
	Use(nil)
}

func TestConfig_TypedGetters(t *testing.T) {
	cfg := Config{"s": "v", "i": 3, "f": float64(4), "frac": 4.5, "b": true}

	if cfg.String("s", "d") != "v" || cfg.String("missing", "d") != "d" {
		t.Error("String getter wrong")
	}
	if cfg.Int("i", 0) != 3 || cfg.Int("f", 0) != 4 {
		t.Error("Int getter wrong")
	}
	if cfg.Int("frac", -1) != -1 {
		t.Error("fractional float must fall back to default")
	}
	if cfg.Bool("b", false) != true || cfg.Bool("missing", true) != true {
		t.Error("Bool getter wrong")
	}
}
