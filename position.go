package console

// cursorPosition maps a linear offset from the start of the input area to a
// terminal cell, wrapping at width.
func cursorPosition(offset, startRow, width int) (row, col int) {
	if width <= 0 {
		width = 1
	}
	if offset < 0 {
		offset = 0
	}
	return startRow + offset/width, offset % width
}

// linearOffset is the inverse of cursorPosition.
func linearOffset(row, col, startRow, width int) int {
	if width <= 0 {
		width = 1
	}
	return (row-startRow)*width + col
}
