package render

import "github.com/rivo/uniseg"

// TextWidth returns the display width of s in terminal cells, counting
// grapheme clusters rather than runes so wide characters measure correctly.
func TextWidth(s string) int {
	return uniseg.StringWidth(s)
}

// Truncate shortens s to at most width display cells, appending an ellipsis
// when anything was cut. Width below 1 yields an empty string.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if TextWidth(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}

	var out []byte
	used := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		cluster, tail, _, newState := uniseg.FirstGraphemeClusterInString(rest, state)
		w := uniseg.StringWidth(cluster)
		if used+w > width-1 {
			break
		}
		out = append(out, cluster...)
		used += w
		rest = tail
		state = newState
	}
	return string(out) + "…"
}

// DrawText draws s starting at (x, y), clipped to the given area. Text that
// would overflow the area's right edge is truncated with an ellipsis.
// Returns the number of cells written.
func DrawText(s Surface, area Rect, x, y int, style Style, text string) int {
	if !area.Contains(x, y) {
		return 0
	}
	avail := area.Right() - x
	text = Truncate(text, avail)

	written := 0
	state := -1
	for len(text) > 0 {
		cluster, tail, _, newState := uniseg.FirstGraphemeClusterInString(text, state)
		r := []rune(cluster)[0]
		s.SetCell(x+written, y, Cell{Rune: r, Style: style})
		w := uniseg.StringWidth(cluster)
		// Wide clusters occupy extra cells; blank the shadows.
		for i := 1; i < w; i++ {
			s.SetCell(x+written+i, y, Cell{Rune: ' ', Style: style})
		}
		written += w
		text = tail
		state = newState
	}
	return written
}

// FillLine fills a single row of area with the given style.
func FillLine(s Surface, area Rect, y int, style Style) {
	if y < area.Y || y >= area.Bottom() {
		return
	}
	s.Fill(Rect{X: area.X, Y: y, Width: area.Width, Height: 1}, Cell{Rune: ' ', Style: style})
}
