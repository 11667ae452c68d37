// Package render provides the drawing surface abstraction for gridstorm.
//
// A Surface is anything the grid can draw rectangular regions of styled
// cells onto. Terminal implements Surface over a tcell screen; Buffer is an
// in-memory implementation for tests.
package render

// Attr represents text attributes (bold, underline, etc.).
type Attr uint8

// Text attribute flags.
const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << iota
	AttrDim            // Faint/dim text
	AttrUnderline      // Underlined text
	AttrReverse        // Reverse video (swap fg/bg)
)

// Has returns true if the attribute set contains the given attribute.
func (a Attr) Has(attr Attr) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attr) With(attr Attr) Attr {
	return a | attr
}

// Color represents a color value. The zero value is the terminal default.
type Color struct {
	R, G, B uint8
	// Set distinguishes a real color from the terminal default.
	Set bool
}

// RGB creates a true color from RGB components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Set: true}
}

// ColorDefault is the terminal's default color.
var ColorDefault = Color{}

// Common colors used by the built-in renderers.
var (
	ColorBlack  = RGB(0, 0, 0)
	ColorWhite  = RGB(255, 255, 255)
	ColorGray   = RGB(128, 128, 128)
	ColorBlue   = RGB(60, 120, 220)
	ColorYellow = RGB(220, 200, 60)
)

// Style describes how a cell is drawn.
type Style struct {
	FG   Color
	BG   Color
	Attr Attr
}

// StyleDefault is the terminal's default style.
var StyleDefault = Style{}

// Bold returns the style with the bold attribute set.
func (s Style) Bold() Style {
	s.Attr = s.Attr.With(AttrBold)
	return s
}

// Underline returns the style with the underline attribute set.
func (s Style) Underline() Style {
	s.Attr = s.Attr.With(AttrUnderline)
	return s
}

// Reverse returns the style with reverse video set.
func (s Style) Reverse() Style {
	s.Attr = s.Attr.With(AttrReverse)
	return s
}

// Foreground returns the style with the given foreground color.
func (s Style) Foreground(c Color) Style {
	s.FG = c
	return s
}

// Background returns the style with the given background color.
func (s Style) Background(c Color) Style {
	s.BG = c
	return s
}

// Cell is a single character cell on a surface.
type Cell struct {
	Rune  rune
	Style Style
}

// EmptyCell returns a blank cell with the default style.
func EmptyCell() Cell {
	return Cell{Rune: ' '}
}
