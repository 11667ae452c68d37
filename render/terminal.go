package render

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Terminal implements Surface using tcell for terminal output.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a new terminal surface.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalFor wraps an existing tcell screen. The caller keeps ownership
// of the screen's lifecycle.
func NewTerminalFor(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Init initializes the terminal and enables mouse reporting.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	return nil
}

// Shutdown restores the terminal state.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, cell Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetContent(x, y, cell.Rune, nil, convertStyle(cell.Style))
}

func (t *Terminal) GetCell(x, y int) Cell {
	t.mu.Lock()
	defer t.mu.Unlock()

	mainc, _, style, _ := t.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	return Cell{Rune: mainc, Style: convertTcellStyle(style)}
}

func (t *Terminal) Fill(rect Rect, cell Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	style := convertStyle(cell.Style)
	width, height := t.screen.Size()
	for y := rect.Y; y < rect.Bottom() && y < height; y++ {
		for x := rect.X; x < rect.Right() && x < width; x++ {
			if x >= 0 && y >= 0 {
				t.screen.SetContent(x, y, cell.Rune, nil, style)
			}
		}
	}
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

func (t *Terminal) SetClipboard(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetClipboard([]byte(text))
}

// PollEvent waits for and returns the next terminal event.
// This is a blocking call.
func (t *Terminal) PollEvent() Event {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return Event{Type: EventNone}
		}
		if out, ok := convertEvent(ev); ok {
			return out
		}
	}
}

// convertStyle converts our style to a tcell style.
func convertStyle(s Style) tcell.Style {
	style := tcell.StyleDefault
	if s.FG.Set {
		style = style.Foreground(tcell.NewRGBColor(int32(s.FG.R), int32(s.FG.G), int32(s.FG.B)))
	}
	if s.BG.Set {
		style = style.Background(tcell.NewRGBColor(int32(s.BG.R), int32(s.BG.G), int32(s.BG.B)))
	}
	if s.Attr.Has(AttrBold) {
		style = style.Bold(true)
	}
	if s.Attr.Has(AttrDim) {
		style = style.Dim(true)
	}
	if s.Attr.Has(AttrUnderline) {
		style = style.Underline(true)
	}
	if s.Attr.Has(AttrReverse) {
		style = style.Reverse(true)
	}
	return style
}

// convertTcellStyle converts a tcell style back to our style.
func convertTcellStyle(style tcell.Style) Style {
	fg, bg, attrs := style.Decompose()
	out := Style{FG: convertTcellColor(fg), BG: convertTcellColor(bg)}
	if attrs&tcell.AttrBold != 0 {
		out.Attr = out.Attr.With(AttrBold)
	}
	if attrs&tcell.AttrDim != 0 {
		out.Attr = out.Attr.With(AttrDim)
	}
	if attrs&tcell.AttrUnderline != 0 {
		out.Attr = out.Attr.With(AttrUnderline)
	}
	if attrs&tcell.AttrReverse != 0 {
		out.Attr = out.Attr.With(AttrReverse)
	}
	return out
}

func convertTcellColor(c tcell.Color) Color {
	if c == tcell.ColorDefault {
		return ColorDefault
	}
	r, g, b := c.RGB()
	return RGB(uint8(r), uint8(g), uint8(b))
}

// convertEvent converts a tcell event into a surface event. Events the grid
// has no use for (paste, focus, interrupts) report ok=false.
func convertEvent(ev tcell.Event) (Event, bool) {
	switch tev := ev.(type) {
	case *tcell.EventKey:
		out := Event{Type: EventKey}
		switch tev.Key() {
		case tcell.KeyRune:
			out.Key = KeyRune
			out.Rune = tev.Rune()
		case tcell.KeyEscape:
			out.Key = KeyEscape
		case tcell.KeyEnter:
			out.Key = KeyEnter
		case tcell.KeyTab:
			out.Key = KeyTab
		case tcell.KeyUp:
			out.Key = KeyUp
		case tcell.KeyDown:
			out.Key = KeyDown
		case tcell.KeyLeft:
			out.Key = KeyLeft
		case tcell.KeyRight:
			out.Key = KeyRight
		case tcell.KeyPgUp:
			out.Key = KeyPageUp
		case tcell.KeyPgDn:
			out.Key = KeyPageDown
		case tcell.KeyHome:
			out.Key = KeyHome
		case tcell.KeyEnd:
			out.Key = KeyEnd
		default:
			return Event{}, false
		}
		return out, true

	case *tcell.EventMouse:
		x, y := tev.Position()
		out := Event{Type: EventMouse, MouseX: x, MouseY: y}
		buttons := tev.Buttons()
		switch {
		case buttons&tcell.Button1 != 0:
			out.MouseButton = MouseLeft
		case buttons&tcell.Button2 != 0:
			out.MouseButton = MouseRight
		case buttons&tcell.WheelUp != 0:
			out.MouseButton = MouseWheelUp
		case buttons&tcell.WheelDown != 0:
			out.MouseButton = MouseWheelDown
		default:
			// Motion and release events are not routed.
			return Event{}, false
		}
		return out, true

	case *tcell.EventResize:
		w, h := tev.Size()
		return Event{Type: EventResize, Width: w, Height: h}, true
	}
	return Event{}, false
}
