package menu

import "github.com/dshills/gridstorm/render"

// HandleKey processes a key event. Escape closes an open menu regardless
// of where focus is. Returns true if the event was consumed.
func (e *Engine) HandleKey(key render.Key) bool {
	if e.state == nil {
		return false
	}
	if key == render.KeyEscape {
		e.Close()
		return true
	}
	return false
}

// HandleClick processes a left click at a surface position while a menu is
// open. Clicking a non-disabled entry invokes its OnClick and closes the
// menu; clicking a disabled entry does nothing; clicking outside closes.
// Returns true if the event was consumed (always, while open).
func (e *Engine) HandleClick(x, y int) bool {
	if e.state == nil {
		return false
	}

	rect := e.menuRect()
	if !rect.Contains(x, y) {
		e.Close()
		return true
	}

	entry := e.entryAt(x, y)
	if entry == nil {
		// Title or separator row.
		return true
	}
	if entry.Disabled {
		return true
	}
	if entry.OnClick != nil {
		entry.OnClick()
	}
	e.Close()
	return true
}
