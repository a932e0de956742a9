package console

import (
	"strings"
	"time"
)

// Writer paints markup lines on a Terminal.
type Writer struct {
	term    Terminal
	palette Palette
	indent  string
	delay   time.Duration
	sleep   func(time.Duration)
}

func NewWriter(term Terminal, cfg *Config) *Writer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Writer{
		term:    term,
		palette: cfg.palette(),
		indent:  cfg.Indent,
		delay:   cfg.WriteDelay,
		sleep:   time.Sleep,
	}
}

// Write paints one markup line followed by a newline, then pauses for the
// configured delay so successive lines stay readable.
func (w *Writer) Write(markup string, isError bool) {
	w.writeInline(markup, isError)
	w.term.ResetColors()
	w.term.WriteString("\n")
	if w.delay > 0 {
		w.sleep(w.delay)
	}
}

// writeInline paints the indent and the segments and returns how many cells
// were written. The background is left untouched.
func (w *Writer) writeInline(markup string, isError bool) int {
	written := 0
	if w.indent != "" {
		w.term.SetForeground(w.palette.Text)
		w.term.WriteString(w.indent)
		written = advanceColumn(written, w.indent)
	}
	for _, s := range Render(markup, isError) {
		w.term.SetForeground(w.palette.color(s.Mode))
		w.term.WriteString(s.Text)
		written = advanceColumn(written, s.Text)
	}
	return written
}

// writePadded paints markup and fills with blanks up to width cells.
func (w *Writer) writePadded(markup string, width int) int {
	written := w.writeInline(markup, false)
	if written < width {
		w.term.WriteString(strings.Repeat(" ", width-written))
		return width
	}
	return written
}

const tabWidth = 8

// advanceColumn returns the column reached after writing s from col,
// honouring tab stops.
func advanceColumn(col int, s string) int {
	for _, r := range s {
		if r == '\t' {
			col = (col/tabWidth + 1) * tabWidth
			continue
		}
		col++
	}
	return col
}
