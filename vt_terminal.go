package console

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

const (
	escapeTimeout = 25 * time.Millisecond
	dsrTimeout    = 200 * time.Millisecond
)

// keyInput is the byte source behind a VTTerminal. read waits up to timeout
// for input, or forever when timeout is negative, and returns no bytes and no
// error when the wait runs out.
type keyInput interface {
	read(timeout time.Duration) ([]byte, error)
}

// VTTerminal drives an ANSI/VT terminal. Colored text is rendered through a
// lipgloss renderer, and the cursor is tracked locally so CursorPosition never
// has to ask the terminal.
type VTTerminal struct {
	in       keyInput
	out      io.Writer
	renderer *lipgloss.Renderer
	size     func() (width, height int)
	logger   *log.Logger
	restore  func() error

	inMu    sync.Mutex
	pending []byte

	mu       sync.Mutex
	row, col int
	top      int
	fg, bg   *Color
}

var _ Terminal = (*VTTerminal)(nil)

func newVTTerminal(in keyInput, out io.Writer, size func() (int, int)) *VTTerminal {
	renderer := lipgloss.NewRenderer(out)
	renderer.SetColorProfile(termenv.ANSI)
	return &VTTerminal{
		in:       in,
		out:      out,
		renderer: renderer,
		size:     size,
		logger:   Logger(),
	}
}

// SetLogger replaces the logger used for undecodable input.
func (t *VTTerminal) SetLogger(logger *log.Logger) {
	if logger != nil {
		t.logger = logger
	}
}

// Close restores the terminal mode saved when the terminal was opened.
func (t *VTTerminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fg, t.bg = nil, nil
	if t.restore == nil {
		return nil
	}
	restore := t.restore
	t.restore = nil
	if err := restore(); err != nil {
		return fmt.Errorf("failed to restore terminal mode: %w", err)
	}
	return nil
}

func (t *VTTerminal) ReadKey() (Key, error) {
	t.inMu.Lock()
	defer t.inMu.Unlock()

	for {
		if len(t.pending) == 0 {
			b, err := t.in.read(-1)
			if err != nil {
				return Key{}, err
			}
			t.pending = append(t.pending, b...)
			continue
		}

		k, n, ok := decodeKey(t.pending)
		if !ok {
			b, err := t.in.read(escapeTimeout)
			if err != nil {
				return Key{}, err
			}
			if len(b) > 0 {
				t.pending = append(t.pending, b...)
				continue
			}
			// Nothing followed: a lone escape is the escape key, anything
			// else is a truncated sequence.
			if t.pending[0] == escape {
				k, n = Key{Code: KeyEscape}, 1
			} else {
				k, n = Key{}, len(t.pending)
			}
		}

		if k.Code == KeyNone {
			t.logger.Warn("undecodable input", "bytes", fmt.Sprintf("%q", t.pending[:n]))
			t.pending = t.pending[n:]
			continue
		}
		t.pending = t.pending[n:]
		return k, nil
	}
}

func (t *VTTerminal) KeyAvailable() bool {
	t.inMu.Lock()
	defer t.inMu.Unlock()

	if len(t.pending) > 0 {
		return true
	}
	b, err := t.in.read(0)
	if err != nil {
		// Let ReadKey report the error.
		return true
	}
	t.pending = append(t.pending, b...)
	return len(t.pending) > 0
}

func (t *VTTerminal) WindowWidth() int {
	w, _ := t.size()
	if w <= 0 {
		return 80
	}
	return w
}

func (t *VTTerminal) height() int {
	_, h := t.size()
	if h <= 0 {
		return 24
	}
	return h
}

// CursorPosition reports the logical cursor. After a write that filled the
// last column, the cursor is reported at the start of the next row.
func (t *VTTerminal) CursorPosition() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.col >= t.WindowWidth() {
		return t.row + 1, 0
	}
	return t.row, t.col
}

// SetCursorPosition moves to a logical cell, scrolling the screen up when the
// row is below the bottom. Rows already scrolled off the top are clamped to
// the first visible row.
func (t *VTTerminal) SetCursorPosition(row, col int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	width := t.WindowWidth()
	if col < 0 {
		col = 0
	}
	if col >= width {
		col = width - 1
	}
	if row < t.top {
		row = t.top
	}
	if bottom := t.top + t.height() - 1; row > bottom {
		fmt.Fprintf(t.out, "\x1b[%dS", row-bottom)
		t.top += row - bottom
	}
	fmt.Fprintf(t.out, "\x1b[%d;%dH", row-t.top+1, col+1)
	t.row, t.col = row, col
}

func (t *VTTerminal) SetForeground(color Color) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fg = &color
}

func (t *VTTerminal) SetBackground(color Color) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bg = &color
}

func (t *VTTerminal) ResetColors() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fg, t.bg = nil, nil
}

func (t *VTTerminal) style() (lipgloss.Style, bool) {
	style := t.renderer.NewStyle().TabWidth(lipgloss.NoTabConversion)
	if t.fg == nil && t.bg == nil {
		return style, false
	}
	if t.fg != nil {
		style = style.Foreground(lipgloss.Color(strconv.Itoa(int(*t.fg))))
	}
	if t.bg != nil {
		style = style.Background(lipgloss.Color(strconv.Itoa(int(*t.bg))))
	}
	return style, true
}

// WriteString writes s in the current colors. Line breaks are written
// unstyled so every styled run stays on one row.
func (t *VTTerminal) WriteString(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	style, styled := t.style()
	width, height := t.WindowWidth(), t.height()
	var b strings.Builder
	for i, part := range strings.Split(s, "\n") {
		if i > 0 {
			b.WriteByte('\n')
			t.advance('\n', width, height)
		}
		if part == "" {
			continue
		}
		if styled {
			b.WriteString(style.Render(part))
		} else {
			b.WriteString(part)
		}
		for _, r := range part {
			t.advance(r, width, height)
		}
	}
	_, _ = io.WriteString(t.out, b.String())
}

// advance moves the tracked cursor over one written rune, following the
// terminal's deferred wrap at the right margin.
func (t *VTTerminal) advance(r rune, width, height int) {
	switch r {
	case '\n':
		t.row++
		t.col = 0
	case '\r':
		t.col = 0
	case '\t':
		if t.col >= width {
			t.row++
			t.col = 0
		}
		t.col = (t.col/tabWidth + 1) * tabWidth
		if t.col > width-1 {
			t.col = width - 1
		}
	default:
		if t.col >= width {
			t.row++
			t.col = 0
		}
		t.col++
	}
	if t.row > t.top+height-1 {
		t.top = t.row - height + 1
	}
}

// queryCursor asks the terminal where the cursor is with a DSR request and
// seeds the tracked position from the reply. Input that arrives ahead of the
// reply is kept for ReadKey.
func (t *VTTerminal) queryCursor() error {
	t.inMu.Lock()
	defer t.inMu.Unlock()

	t.mu.Lock()
	_, err := io.WriteString(t.out, "\x1b[6n")
	t.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to request cursor position: %w", err)
	}

	var buf []byte
	deadline := time.Now().Add(dsrTimeout)
	for {
		if row, col, start, end, ok := parseCursorReport(buf); ok {
			t.pending = append(t.pending, buf[:start]...)
			t.pending = append(t.pending, buf[end:]...)
			t.mu.Lock()
			t.row, t.col, t.top = row-1, col-1, 0
			t.mu.Unlock()
			return nil
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			t.pending = append(t.pending, buf...)
			return fmt.Errorf("no cursor position report within %s", dsrTimeout)
		}
		b, err := t.in.read(remaining)
		if err != nil {
			t.pending = append(t.pending, buf...)
			return fmt.Errorf("failed to read cursor position report: %w", err)
		}
		buf = append(buf, b...)
	}
}

// parseCursorReport finds ESC [ row ; col R in buf and returns the 1-based
// position along with the span of the report.
func parseCursorReport(buf []byte) (row, col, start, end int, ok bool) {
	offset := 0
	for {
		i := bytes.Index(buf[offset:], []byte("\x1b["))
		if i < 0 {
			return 0, 0, 0, 0, false
		}
		start = offset + i
		j := start + 2
		row, j = scanNumber(buf, j)
		if row > 0 && j < len(buf) && buf[j] == ';' {
			col, j = scanNumber(buf, j+1)
			if col > 0 && j < len(buf) && buf[j] == 'R' {
				return row, col, start, j + 1, true
			}
		}
		offset = start + 2
	}
}

func scanNumber(buf []byte, i int) (int, int) {
	n := 0
	for i < len(buf) && buf[i] >= '0' && buf[i] <= '9' {
		n = n*10 + int(buf[i]-'0')
		i++
	}
	return n, i
}
