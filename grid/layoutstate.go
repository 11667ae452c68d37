package grid

import (
	"errors"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrBadLayout reports a layout document that is not a JSON object.
var ErrBadLayout = errors.New("grid: layout is not a JSON object")

// SaveLayout serializes the user-adjustable column layout: the explicit
// column order and the hidden columns. Filters, sorting, and pagination
// are session state and are not persisted.
func (g *Grid) SaveLayout() ([]byte, error) {
	doc := []byte(`{}`)
	var err error

	order := g.columnOrder
	if order == nil {
		order = []string{}
	}
	doc, err = sjson.SetBytes(doc, "columnOrder", order)
	if err != nil {
		return nil, err
	}

	hidden := []string{}
	for _, c := range g.columns {
		if !g.engine.ColumnVisible(c.Key) {
			hidden = append(hidden, c.Key)
		}
	}
	doc, err = sjson.SetBytes(doc, "hidden", hidden)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadLayout applies a layout document produced by SaveLayout. Unknown
// column keys in the document are ignored, so a layout saved against an
// older column set still loads.
func (g *Grid) LoadLayout(data []byte) error {
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return ErrBadLayout
	}

	if order := root.Get("columnOrder"); order.IsArray() {
		var keys []string
		for _, k := range order.Array() {
			keys = append(keys, k.String())
		}
		g.columnOrder = keys
	}

	if hidden := root.Get("hidden"); hidden.IsArray() {
		hide := make(map[string]bool)
		for _, k := range hidden.Array() {
			hide[k.String()] = true
		}
		for _, c := range g.columns {
			g.engine.SetColumnVisible(c.Key, !hide[c.Key])
		}
	}

	g.sync()
	return nil
}
