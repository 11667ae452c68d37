package menu

import (
	"strings"

	"github.com/dshills/gridstorm/render"
)

// Menu styles.
var (
	styleMenu      = render.Style{FG: render.ColorWhite, BG: render.RGB(40, 40, 48)}
	styleMenuTitle = styleMenu.Bold()
	styleDisabled  = render.Style{FG: render.ColorGray, BG: render.RGB(40, 40, 48)}
)

// Render draws the open menu on the surface; closed engines draw nothing
// at all.
func (e *Engine) Render(s render.Surface) {
	if e.state == nil {
		return
	}

	rect := e.menuRect()
	if rect.Empty() {
		return
	}
	s.Fill(rect, render.Cell{Rune: ' ', Style: styleMenu})

	lines := e.lines()
	for i, ln := range lines {
		y := rect.Y + i
		switch ln.kind {
		case lineSeparator:
			render.DrawText(s, rect, rect.X, y, styleDisabled, strings.Repeat("─", rect.Width))
		case lineTitle:
			render.DrawText(s, rect, rect.X+1, y, styleMenuTitle, ln.text)
		case lineEntry:
			style := styleMenu
			if ln.entry.Disabled {
				style = styleDisabled
			}
			render.DrawText(s, rect, rect.X+1, y, style, ln.text)
		}
	}
}
