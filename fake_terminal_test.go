package console

import (
	"io"
	"strings"
	"sync"
	"time"
)

const noColor Color = -1

type cell struct {
	r      rune
	fg, bg Color
}

// fakeTerminal records what is drawn on a grid of cells and serves keys from
// a queue. ReadKey fails with io.EOF once the queue is empty.
type fakeTerminal struct {
	mu       sync.Mutex
	width    int
	keys     []Key
	row, col int
	fg, bg   Color
	cells    map[int]map[int]cell
	resets   int
}

func newFakeTerminal(width int, keys ...Key) *fakeTerminal {
	return &fakeTerminal{
		width: width,
		keys:  keys,
		fg:    noColor,
		bg:    noColor,
		cells: make(map[int]map[int]cell),
	}
}

func (f *fakeTerminal) push(keys ...Key) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, keys...)
}

func (f *fakeTerminal) ReadKey() (Key, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.keys) == 0 {
		return Key{}, io.EOF
	}
	k := f.keys[0]
	f.keys = f.keys[1:]
	return k, nil
}

func (f *fakeTerminal) KeyAvailable() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.keys) > 0
}

func (f *fakeTerminal) CursorPosition() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.col >= f.width {
		return f.row + 1, 0
	}
	return f.row, f.col
}

func (f *fakeTerminal) SetCursorPosition(row, col int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.row, f.col = row, col
}

func (f *fakeTerminal) WindowWidth() int {
	return f.width
}

func (f *fakeTerminal) SetForeground(color Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fg = color
}

func (f *fakeTerminal) SetBackground(color Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bg = color
}

func (f *fakeTerminal) ResetColors() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fg, f.bg = noColor, noColor
	f.resets++
}

func (f *fakeTerminal) WriteString(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range s {
		switch r {
		case '\n':
			f.row++
			f.col = 0
			continue
		case '\t':
			next := (f.col/tabWidth + 1) * tabWidth
			for f.col < next && f.col < f.width {
				f.put(' ')
			}
			continue
		}
		f.put(r)
	}
}

func (f *fakeTerminal) put(r rune) {
	if f.col >= f.width {
		f.row++
		f.col = 0
	}
	if f.cells[f.row] == nil {
		f.cells[f.row] = make(map[int]cell)
	}
	f.cells[f.row][f.col] = cell{r: r, fg: f.fg, bg: f.bg}
	f.col++
}

// line returns the text of row with trailing blanks removed.
func (f *fakeTerminal) line(row int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var b strings.Builder
	for col := 0; col < f.width; col++ {
		c, ok := f.cells[row][col]
		if !ok {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(c.r)
	}
	return strings.TrimRight(b.String(), " ")
}

func (f *fakeTerminal) cellAt(row, col int) cell {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cells[row][col]
}

func runeKeys(s string) []Key {
	keys := make([]Key, 0, len(s))
	for _, r := range s {
		keys = append(keys, RuneKey(r))
	}
	return keys
}

func keyOf(code KeyCode) Key {
	return Key{Code: code}
}

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.WriteDelay = 0
	cfg.MenuPollInterval = time.Millisecond
	return cfg
}
