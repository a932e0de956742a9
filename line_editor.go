package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/log"
)

// LineEditor edits one line of input at a time. The terminal cursor is kept
// on the cell of the buffer cursor after every key.
type LineEditor struct {
	term                Terminal
	history             *CommandHistory
	completer           Completer
	completeFromHistory bool
	keys                EditorKeyMap
	clipboard           Clipboard
	logger              *log.Logger
	prompt              string

	buffer     []rune
	cursor     int
	startRow   int
	base       int
	completion *completionState
}

type EditorOption func(*LineEditor)

func WithCompleter(c Completer) EditorOption {
	return func(l *LineEditor) {
		l.completer = c
	}
}

// WithHistoryCompletion makes Tab also offer matching history entries,
// newest first, after the completer's candidates.
func WithHistoryCompletion(enabled bool) EditorOption {
	return func(l *LineEditor) {
		l.completeFromHistory = enabled
	}
}

func WithEditorPrompt(prompt string) EditorOption {
	return func(l *LineEditor) {
		l.prompt = prompt
	}
}

func WithEditorKeys(km EditorKeyMap) EditorOption {
	return func(l *LineEditor) {
		l.keys = km
	}
}

func WithPasteSource(c Clipboard) EditorOption {
	return func(l *LineEditor) {
		l.clipboard = c
	}
}

func WithEditorLogger(logger *log.Logger) EditorOption {
	return func(l *LineEditor) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func NewLineEditor(term Terminal, history *CommandHistory, opts ...EditorOption) *LineEditor {
	if history == nil {
		history = NewCommandHistory(DefaultHistoryCapacity)
	}
	l := &LineEditor{
		term:      term,
		history:   history,
		keys:      DefaultEditorKeyMap,
		clipboard: SystemClipboard,
		logger:    Logger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Begin starts a session on the terminal's current row.
func (l *LineEditor) Begin() {
	l.buffer = l.buffer[:0]
	l.cursor = 0
	l.completion = nil
	l.history.Reset()

	l.term.ResetColors()
	row, col := l.term.CursorPosition()
	l.startRow = row
	if l.prompt != "" {
		l.term.WriteString(l.prompt)
		row, col = l.term.CursorPosition()
	}
	l.base = linearOffset(row, col, l.startRow, l.term.WindowWidth())
	l.logger.Debug("line editor session started", "row", l.startRow, "base", l.base)
}

// HandleKey applies one key. It returns the line and true once the line is
// submitted.
func (l *LineEditor) HandleKey(k Key) (string, bool) {
	if key.Matches(k, l.keys.Complete) {
		l.complete()
		return "", false
	}

	handled := true
	switch {
	case key.Matches(k, l.keys.Submit):
		l.completion = nil
		return l.submit(), true
	case key.Matches(k, l.keys.Clear):
		clearLine(l)
	case key.Matches(k, l.keys.HistoryPrev):
		historyPrevious(l)
	case key.Matches(k, l.keys.HistoryNext):
		historyNext(l)
	case key.Matches(k, l.keys.Left):
		cursorLeftCharacter(l)
	case key.Matches(k, l.keys.Right):
		cursorRightCharacter(l)
	case key.Matches(k, l.keys.Home):
		goHome(l)
	case key.Matches(k, l.keys.End):
		goEnd(l)
	case key.Matches(k, l.keys.Backspace):
		eraseCharacterBackwards(l)
	case key.Matches(k, l.keys.Delete):
		eraseCharacterForwards(l)
	case key.Matches(k, l.keys.KillToEnd):
		eraseToEnd(l)
	case key.Matches(k, l.keys.Paste):
		paste(l)
	case k.IsPrintable():
		l.insertChar(k.Rune)
	default:
		handled = false
	}
	if handled {
		l.completion = nil
	}
	return "", false
}

// ReadLine runs a whole session, reading keys until one submits the line.
func (l *LineEditor) ReadLine() (string, error) {
	l.Begin()
	for {
		k, err := l.term.ReadKey()
		if err != nil {
			return "", fmt.Errorf("failed to read key: %w", err)
		}
		if line, ok := l.HandleKey(k); ok {
			return line, nil
		}
	}
}

func (l *LineEditor) Line() string {
	return string(l.buffer)
}

func (l *LineEditor) Cursor() int {
	return l.cursor
}

func (l *LineEditor) complete() {
	if l.completion == nil {
		current := string(l.buffer)
		var candidates []string
		if l.completer != nil {
			candidates = l.completer.Candidates(current)
		}
		if l.completeFromHistory {
			candidates = append(candidates, historyCandidates(l.history, current)...)
		}
		l.completion = newCompletionState(current, candidates)
		l.logger.Debug("completion started", "prefix", current, "candidates", l.completion.count())
	}

	if l.completion.count() == 0 {
		l.completion = nil
		return
	}
	l.setLine(l.completion.suggest())
}

func (l *LineEditor) submit() string {
	line := string(l.buffer)
	l.history.Push(line)
	l.history.Reset()
	l.placeCursor(len(l.buffer))
	l.term.WriteString("\n")
	l.buffer = l.buffer[:0]
	l.cursor = 0
	l.logger.Debug("line submitted", "length", len(line), "history", l.history.Len())
	return line
}

// placeCursor moves the terminal cursor to the cell of buffer offset.
func (l *LineEditor) placeCursor(offset int) {
	row, col := cursorPosition(l.base+offset, l.startRow, l.term.WindowWidth())
	l.term.SetCursorPosition(row, col)
}

// repaintFrom redraws the buffer from start to its end followed by blanks,
// then puts the terminal cursor back on the buffer cursor.
func (l *LineEditor) repaintFrom(start, blanks int) {
	l.placeCursor(start)
	l.term.WriteString(string(l.buffer[start:]) + strings.Repeat(" ", blanks))
	l.placeCursor(l.cursor)
}

// setLine replaces the whole buffer, blanking what the old content covered,
// and leaves the cursor at the end.
func (l *LineEditor) setLine(s string) {
	oldLen := len(l.buffer)
	l.buffer = []rune(s)
	l.cursor = len(l.buffer)
	blanks := oldLen - len(l.buffer)
	if blanks < 0 {
		blanks = 0
	}
	l.repaintFrom(0, blanks)
}

func (l *LineEditor) insertChar(ch rune) {
	l.insertRunes([]rune{ch})
}

func (l *LineEditor) insertRunes(runes []rune) {
	if len(runes) == 0 {
		return
	}
	start := l.cursor
	b := make([]rune, 0, len(l.buffer)+len(runes))
	b = append(b, l.buffer[:l.cursor]...)
	b = append(b, runes...)
	l.buffer = append(b, l.buffer[l.cursor:]...)
	l.cursor += len(runes)
	l.repaintFrom(start, 0)
}

func (l *LineEditor) removeAtIndex(index int) {
	l.buffer = append(l.buffer[:index], l.buffer[index+1:]...)
}
