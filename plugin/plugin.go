// Package plugin defines the extension surface of a gridstorm grid.
//
// A plugin is declared once with Define, configured with Configure against
// its declared schema, and handed to the grid as an immutable Instance.
// Plugins contribute slot renderers (side panel, header, footer, cell,
// inline row) and context-menu items; all plugin state lives in the host
// grid, never in the instance.
package plugin

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/dshills/gridstorm/schema"
	"github.com/tidwall/gjson"
)

// Definition errors.
var (
	ErrMissingID   = errors.New("plugin: id is required")
	ErrInvalidID   = errors.New("plugin: id must be alphanumeric with hyphens")
	ErrMissingName = errors.New("plugin: name is required")
)

// idPattern validates plugin ids.
var idPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)

// Config is a plugin's validated configuration. Treat it as read-only; it
// is shared by every render of the plugin.
type Config map[string]any

// String returns a string config value, or def if absent or mistyped.
func (c Config) String(key, def string) string {
	if v, ok := c[key].(string); ok {
		return v
	}
	return def
}

// Int returns an integer config value, or def. JSON-decoded numbers
// (float64) are accepted when whole.
func (c Config) Int(key string, def int) int {
	switch v := c[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if v == float64(int(v)) {
			return int(v)
		}
	}
	return def
}

// Bool returns a boolean config value, or def.
func (c Config) Bool(key string, def bool) bool {
	if v, ok := c[key].(bool); ok {
		return v
	}
	return def
}

// Options declares a plugin.
type Options struct {
	// ID uniquely identifies the plugin within one grid's plugin list.
	ID string

	// Name is the user-facing label (tab title, menu section header).
	Name string

	// Schema validates and defaults the plugin's configuration. Nil
	// accepts any configuration.
	Schema *schema.Schema

	// Slots are the extension points this plugin fills.
	Slots Slots

	// CellMenuItems contribute entries to the cell context menu.
	CellMenuItems []CellMenuItem

	// ColumnMenuItems contribute entries to the column-header context menu.
	ColumnMenuItems []ColumnMenuItem
}

// Descriptor is an immutable plugin declaration produced by Define.
type Descriptor struct {
	opts      Options
	validator *schema.Validator
}

// Define declares a plugin. It panics on a malformed declaration (missing
// id or name) since that is a programming error in the plugin module, not
// a runtime condition.
func Define(opts Options) *Descriptor {
	if opts.ID == "" {
		panic(ErrMissingID)
	}
	if !idPattern.MatchString(opts.ID) {
		panic(fmt.Errorf("%w: %q", ErrInvalidID, opts.ID))
	}
	if opts.Name == "" {
		panic(fmt.Errorf("%w (id %s)", ErrMissingName, opts.ID))
	}
	return &Descriptor{
		opts:      opts,
		validator: schema.NewValidator(opts.Schema),
	}
}

// ID returns the plugin id.
func (d *Descriptor) ID() string { return d.opts.ID }

// Name returns the user-facing plugin name.
func (d *Descriptor) Name() string { return d.opts.Name }

// Configure validates raw against the plugin's schema, fills defaults for
// unspecified fields, and returns an immutable Instance. A nil raw config
// is treated as empty. On invalid input it returns a *ConfigError carrying
// the field-level violations; this happens at wiring time, before any grid
// mounts.
func (d *Descriptor) Configure(raw map[string]any) (*Instance, error) {
	if raw == nil {
		raw = map[string]any{}
	}
	validated, err := d.validator.Apply(raw)
	if err != nil {
		return nil, &ConfigError{PluginID: d.opts.ID, Err: err}
	}
	return &Instance{desc: d, config: Config(validated)}, nil
}

// MustConfigure is Configure, panicking on invalid configuration. Intended
// for package-level plugin wiring where the config is a literal.
func (d *Descriptor) MustConfigure(raw map[string]any) *Instance {
	inst, err := d.Configure(raw)
	if err != nil {
		panic(err)
	}
	return inst
}

// ConfigureJSON parses a raw JSON object and configures the plugin with it.
func (d *Descriptor) ConfigureJSON(data []byte) (*Instance, error) {
	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return nil, &ConfigError{
			PluginID: d.opts.ID,
			Err:      fmt.Errorf("config must be a JSON object, got %s", parsed.Type),
		}
	}
	raw, _ := parsed.Value().(map[string]any)
	return d.Configure(raw)
}

// Instance is a configured plugin: descriptor plus validated config. It is
// immutable; the grid receives instances in its plugin list.
type Instance struct {
	desc   *Descriptor
	config Config
}

// ID returns the plugin id.
func (p *Instance) ID() string { return p.desc.opts.ID }

// Name returns the user-facing plugin name.
func (p *Instance) Name() string { return p.desc.opts.Name }

// Config returns the validated configuration.
func (p *Instance) Config() Config { return p.config }

// Slots returns the plugin's slot declarations.
func (p *Instance) Slots() Slots { return p.desc.opts.Slots }

// CellMenuItems returns the plugin's cell context-menu contributions.
func (p *Instance) CellMenuItems() []CellMenuItem { return p.desc.opts.CellMenuItems }

// ColumnMenuItems returns the plugin's column context-menu contributions.
func (p *Instance) ColumnMenuItems() []ColumnMenuItem { return p.desc.opts.ColumnMenuItems }

// ConfigError reports that a plugin's raw configuration failed schema
// validation.
type ConfigError struct {
	PluginID string
	Err      error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("plugin %q: invalid configuration: %v", e.PluginID, e.Err)
}

// Unwrap returns the underlying validation error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Violations returns the field-level schema violations, if any.
func (e *ConfigError) Violations() []*schema.ValidationError {
	var verrs *schema.ValidationErrors
	if errors.As(e.Err, &verrs) {
		return verrs.Errors
	}
	return nil
}
