package console

import "unicode"

func cursorLeftCharacter(editor *LineEditor) {
	if editor.cursor > 0 {
		editor.cursor--
		editor.placeCursor(editor.cursor)
	}
}

func cursorRightCharacter(editor *LineEditor) {
	if editor.cursor < len(editor.buffer) {
		editor.cursor++
		editor.placeCursor(editor.cursor)
	}
}

func goHome(editor *LineEditor) {
	editor.cursor = 0
	editor.placeCursor(editor.cursor)
}

func goEnd(editor *LineEditor) {
	editor.cursor = len(editor.buffer)
	editor.placeCursor(editor.cursor)
}

func eraseCharacterBackwards(editor *LineEditor) {
	if editor.cursor == 0 {
		return
	}
	editor.removeAtIndex(editor.cursor - 1)
	editor.cursor--
	editor.repaintFrom(editor.cursor, 1)
}

func eraseCharacterForwards(editor *LineEditor) {
	if editor.cursor == len(editor.buffer) {
		return
	}
	editor.removeAtIndex(editor.cursor)
	editor.repaintFrom(editor.cursor, 1)
}

func eraseToEnd(editor *LineEditor) {
	erased := len(editor.buffer) - editor.cursor
	if erased == 0 {
		return
	}
	editor.buffer = editor.buffer[:editor.cursor]
	editor.repaintFrom(editor.cursor, erased)
}

func clearLine(editor *LineEditor) {
	editor.setLine("")
}

func historyPrevious(editor *LineEditor) {
	if entry, ok := editor.history.Prev(); ok {
		editor.setLine(entry)
	}
}

// historyNext clears the line once it walks past the newest entry.
func historyNext(editor *LineEditor) {
	editor.setLine(editor.history.Next())
}

func paste(editor *LineEditor) {
	if editor.clipboard == nil {
		return
	}
	text, err := editor.clipboard.ReadAll()
	if err != nil {
		editor.logger.Debug("paste unavailable", "err", err)
		return
	}
	runes := make([]rune, 0, len(text))
	for _, r := range text {
		if unicode.IsPrint(r) {
			runes = append(runes, r)
		}
	}
	editor.insertRunes(runes)
}
