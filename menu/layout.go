package menu

import (
	"github.com/dshills/gridstorm/plugin"
	"github.com/dshills/gridstorm/render"
)

// lineKind tags one row of the rendered menu.
type lineKind int

const (
	lineTitle lineKind = iota
	lineEntry
	lineSeparator
)

type menuLine struct {
	kind  lineKind
	text  string
	entry *plugin.MenuEntry
}

// lines flattens the open sections into display rows. Sections after the
// first are preceded by a separator; titled sections get a title row.
func (e *Engine) lines() []menuLine {
	if e.state == nil {
		return nil
	}
	var out []menuLine
	for si := range e.state.Sections {
		sec := &e.state.Sections[si]
		if si > 0 {
			out = append(out, menuLine{kind: lineSeparator})
		}
		if sec.Title != "" {
			out = append(out, menuLine{kind: lineTitle, text: sec.Title})
		}
		for ei := range sec.Entries {
			entry := &sec.Entries[ei]
			out = append(out, menuLine{kind: lineEntry, text: entryText(entry), entry: entry})
		}
	}
	return out
}

func entryText(entry *plugin.MenuEntry) string {
	if entry.Icon != 0 {
		return string(entry.Icon) + " " + entry.Label
	}
	return entry.Label
}

// menuRect computes where the open menu sits: anchored to the bottom-left
// corner of the trigger, shifted to stay inside the engine bounds.
func (e *Engine) menuRect() render.Rect {
	lines := e.lines()
	if len(lines) == 0 {
		return render.Rect{}
	}

	width := 0
	for _, ln := range lines {
		if w := render.TextWidth(ln.text); w > width {
			width = w
		}
	}
	width += 2 // one cell of padding each side
	height := len(lines)

	rect := render.Rect{
		X:      e.state.Anchor.X,
		Y:      e.state.Anchor.Bottom(),
		Width:  width,
		Height: height,
	}

	if !e.bounds.Empty() {
		if rect.Right() > e.bounds.Right() {
			rect.X = e.bounds.Right() - rect.Width
		}
		if rect.Bottom() > e.bounds.Bottom() {
			// Flip above the anchor when there is no room below.
			rect.Y = e.state.Anchor.Y - rect.Height
		}
		if rect.X < e.bounds.X {
			rect.X = e.bounds.X
		}
		if rect.Y < e.bounds.Y {
			rect.Y = e.bounds.Y
		}
	}
	return rect
}

// entryAt returns the entry under the given surface position, or nil.
func (e *Engine) entryAt(x, y int) *plugin.MenuEntry {
	if e.state == nil {
		return nil
	}
	rect := e.menuRect()
	if !rect.Contains(x, y) {
		return nil
	}
	lines := e.lines()
	idx := y - rect.Y
	if idx < 0 || idx >= len(lines) {
		return nil
	}
	return lines[idx].entry
}
