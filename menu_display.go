package console

import "strconv"

const doneRowMarker = "esc"

// menuDisplay paints the option rows of a menu below its title.
type menuDisplay struct {
	term      Terminal
	writer    *Writer
	palette   Palette
	originRow int
	drawn     []int
}

func newMenuDisplay(term Terminal, writer *Writer, palette Palette, originRow int) *menuDisplay {
	return &menuDisplay{
		term:      term,
		writer:    writer,
		palette:   palette,
		originRow: originRow,
	}
}

func optionRow(index int, label string) string {
	return strconv.Itoa(index+1) + "\t" + label
}

func doneRow(label string) string {
	return doneRowMarker + "\t" + label
}

// display repaints every row, padding each one to the width it had last time
// so a shorter label does not leave stale characters behind.
func (d *menuDisplay) display(options []string, doneLabel string, hasDone bool, selected int) {
	rows := make([]string, 0, len(options)+1)
	for i, option := range options {
		rows = append(rows, optionRow(i, option))
	}
	if hasDone {
		rows = append(rows, doneRow(doneLabel))
	}
	if len(d.drawn) < len(rows) {
		d.drawn = append(d.drawn, make([]int, len(rows)-len(d.drawn))...)
	}

	for i, row := range rows {
		d.term.SetCursorPosition(d.originRow+i, 0)
		if i == selected {
			d.term.SetBackground(d.palette.Selection)
		} else {
			d.term.SetBackground(d.palette.Background)
		}
		d.drawn[i] = d.writer.writePadded(row, d.drawn[i])
		d.term.ResetColors()
	}
	d.term.SetCursorPosition(d.originRow+selected, 0)
}

// below is the first row after the menu.
func (d *menuDisplay) below(rows int) int {
	return d.originRow + rows
}
