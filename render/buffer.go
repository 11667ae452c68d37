package render

import "strings"

// Buffer is an in-memory Surface for tests. It records cell contents and
// clipboard writes without touching a terminal.
type Buffer struct {
	width, height int
	cells         [][]Cell
	clipboard     string
}

// NewBuffer creates a buffer surface with the given dimensions.
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{width: width, height: height}
	b.reset()
	return b
}

func (b *Buffer) reset() {
	b.cells = make([][]Cell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]Cell, b.width)
		for j := range b.cells[i] {
			b.cells[i][j] = EmptyCell()
		}
	}
}

func (b *Buffer) Size() (int, int) {
	return b.width, b.height
}

func (b *Buffer) SetCell(x, y int, cell Cell) {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = cell
	}
}

func (b *Buffer) GetCell(x, y int) Cell {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return EmptyCell()
}

func (b *Buffer) Fill(rect Rect, cell Cell) {
	for y := rect.Y; y < rect.Bottom() && y < b.height; y++ {
		for x := rect.X; x < rect.Right() && x < b.width; x++ {
			if x >= 0 && y >= 0 {
				b.cells[y][x] = cell
			}
		}
	}
}

func (b *Buffer) Clear() {
	b.reset()
}

func (b *Buffer) Show() {}

func (b *Buffer) SetClipboard(text string) {
	b.clipboard = text
}

// Clipboard returns the last clipboard write.
func (b *Buffer) Clipboard() string {
	return b.clipboard
}

// Line returns the text content of row y with trailing spaces trimmed.
func (b *Buffer) Line(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for x := 0; x < b.width; x++ {
		sb.WriteRune(b.cells[y][x].Rune)
	}
	return strings.TrimRight(sb.String(), " ")
}

// Contents returns all rows joined by newlines, trailing blank rows trimmed.
func (b *Buffer) Contents() string {
	lines := make([]string, b.height)
	for y := 0; y < b.height; y++ {
		lines[y] = b.Line(y)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// ContainsText reports whether the given text appears on any single row.
func (b *Buffer) ContainsText(text string) bool {
	for y := 0; y < b.height; y++ {
		if strings.Contains(b.Line(y), text) {
			return true
		}
	}
	return false
}

// FindText returns the position of the first occurrence of text, scanning
// rows top to bottom. ok is false if the text is not on the surface.
func (b *Buffer) FindText(text string) (x, y int, ok bool) {
	for row := 0; row < b.height; row++ {
		if idx := strings.Index(b.Line(row), text); idx >= 0 {
			return idx, row, true
		}
	}
	return 0, 0, false
}
