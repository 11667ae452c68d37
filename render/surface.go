package render

// Surface is the drawing target for a grid. Implementations handle actual
// output to the terminal or to an in-memory buffer for tests.
type Surface interface {
	// Size returns the surface dimensions in cells.
	Size() (width, height int)

	// SetCell sets a single cell at the given position.
	// Positions outside the surface are silently ignored.
	SetCell(x, y int, cell Cell)

	// GetCell returns the cell at the given position.
	// Returns an empty cell for positions outside the surface.
	GetCell(x, y int) Cell

	// Fill fills a rectangular region with the given cell.
	Fill(rect Rect, cell Cell)

	// Clear clears the entire surface with the default style.
	Clear()

	// Show flushes pending changes to the display.
	Show()

	// SetClipboard writes text to the system clipboard.
	SetClipboard(text string)
}

// EventType identifies the type of input event.
type EventType int

// Input event types.
const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
)

// Key represents a keyboard key.
type Key int

// Key constants for the keys the grid reacts to. KeyRune carries a regular
// character in the event's Rune field.
const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
)

// MouseButton represents a mouse button.
type MouseButton int

// Mouse buttons.
const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// Event represents a terminal input event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune

	// Mouse event fields
	MouseX, MouseY int
	MouseButton    MouseButton

	// Resize event fields
	Width, Height int
}
