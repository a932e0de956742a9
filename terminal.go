package console

import "strings"

// Terminal is the device the editor and menu draw on. Rows and columns are
// zero based. Rows are logical: they keep counting past the bottom of the
// window, so a row recorded at the start of a session stays valid while the
// screen scrolls.
type Terminal interface {
	// ReadKey blocks until one key event is available.
	ReadKey() (Key, error)
	// KeyAvailable reports whether ReadKey would return without blocking.
	KeyAvailable() bool

	CursorPosition() (row, col int)
	SetCursorPosition(row, col int)
	WindowWidth() int

	SetForeground(color Color)
	SetBackground(color Color)
	ResetColors()

	WriteString(s string)
}

type Color int

// Palette colors, in ANSI order.
const (
	ColorBlack Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

var colorNames = map[string]Color{
	"black":   ColorBlack,
	"red":     ColorRed,
	"green":   ColorGreen,
	"yellow":  ColorYellow,
	"blue":    ColorBlue,
	"magenta": ColorMagenta,
	"cyan":    ColorCyan,
	"white":   ColorWhite,
}

func (c Color) String() string {
	for name, color := range colorNames {
		if color == c {
			return name
		}
	}
	return "unknown"
}

// ParseColor maps a palette color name to its Color.
func ParseColor(name string) (Color, bool) {
	c, ok := colorNames[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}
