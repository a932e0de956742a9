package console

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/log"
)

// KeyRewriteFunc is called with the highlighted index and every key pressed
// in a menu. A non-empty result replaces the highlighted label.
type KeyRewriteFunc func(selected int, k Key) string

// MenuController runs one selectable menu. Options are rendered one per row
// below the title; an optional done row follows them.
type MenuController struct {
	term      Terminal
	writer    *Writer
	palette   Palette
	logger    *log.Logger
	keys      MenuKeyMap
	canceller *MenuCanceller
	onKey     KeyRewriteFunc

	pollInterval    time.Duration
	quickJumpWindow time.Duration
	now             func() time.Time

	title     string
	options   []string
	doneLabel string
	hasDone   bool
	selected  int
	pending   string
	lastKey   time.Time
	display   *menuDisplay
}

type MenuOption func(*MenuController)

// WithDoneLabel adds the done row. Selecting it, or pressing escape, ends the
// menu with -1.
func WithDoneLabel(label string) MenuOption {
	return func(m *MenuController) {
		m.doneLabel = label
		m.hasDone = true
	}
}

func WithInitialSelection(index int) MenuOption {
	return func(m *MenuController) {
		m.selected = index
	}
}

// WithKeyCallback installs a label rewrite callback. Rewritten labels are
// stored in the options slice passed to the menu.
func WithKeyCallback(fn KeyRewriteFunc) MenuOption {
	return func(m *MenuController) {
		m.onKey = fn
	}
}

func WithCanceller(c *MenuCanceller) MenuOption {
	return func(m *MenuController) {
		if c != nil {
			m.canceller = c
		}
	}
}

func WithPollInterval(d time.Duration) MenuOption {
	return func(m *MenuController) {
		if d > 0 {
			m.pollInterval = d
		}
	}
}

func WithQuickJumpWindow(d time.Duration) MenuOption {
	return func(m *MenuController) {
		if d > 0 {
			m.quickJumpWindow = d
		}
	}
}

func WithMenuKeys(km MenuKeyMap) MenuOption {
	return func(m *MenuController) {
		m.keys = km
	}
}

func WithMenuLogger(logger *log.Logger) MenuOption {
	return func(m *MenuController) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func NewMenuController(term Terminal, cfg *Config, title string, options []string, opts ...MenuOption) *MenuController {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	m := &MenuController{
		term:            term,
		writer:          NewWriter(term, cfg),
		palette:         cfg.palette(),
		logger:          Logger(),
		keys:            DefaultMenuKeyMap,
		canceller:       NewMenuCanceller(),
		pollInterval:    cfg.pollInterval(),
		quickJumpWindow: cfg.quickJumpWindow(),
		now:             time.Now,
		title:           title,
		options:         options,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.selected = clamp(m.selected, 0, m.lastIndex())
	m.canceller.setSelected(m.selected)
	return m
}

func (m *MenuController) Canceller() *MenuCanceller {
	return m.canceller
}

func (m *MenuController) Selected() int {
	return m.selected
}

// Run draws the menu and handles keys until an option is chosen or the menu
// is cancelled. It returns the chosen index, or -1.
func (m *MenuController) Run() (int, error) {
	m.term.WriteString("\n")
	m.writer.Write(m.title, false)
	row, _ := m.term.CursorPosition()
	m.display = newMenuDisplay(m.term, m.writer, m.palette, row)
	m.lastKey = m.now()

	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	m.logger.Debug("menu started", "title", Plain(m.title), "options", len(m.options), "done", m.hasDone)
	for {
		m.canceller.setSelected(m.selected)
		m.display.display(m.options, m.doneLabel, m.hasDone, m.selected)

		k, cancelled, err := m.poll(ticker)
		if err != nil {
			return -1, fmt.Errorf("failed to read menu key: %w", err)
		}
		if cancelled {
			m.leave()
			result := -1
			if m.canceller.ReturnSelected() {
				result = m.selected
			}
			m.logger.Debug("menu cancelled", "selected", m.selected, "result", result)
			return result, nil
		}

		m.rewriteLabel(k)
		if result, done := m.dispatch(k); done {
			m.leave()
			m.logger.Debug("menu finished", "result", result)
			return result, nil
		}
	}
}

// poll waits for a key, checking for cancellation on every tick.
func (m *MenuController) poll(ticker *time.Ticker) (Key, bool, error) {
	for {
		if m.canceller.Cancelled() {
			return Key{}, true, nil
		}
		if m.term.KeyAvailable() {
			k, err := m.term.ReadKey()
			return k, false, err
		}
		select {
		case <-m.canceller.Done():
		case <-ticker.C:
		}
	}
}

func (m *MenuController) rewriteLabel(k Key) {
	if m.onKey == nil {
		return
	}
	label := m.onKey(m.selected, k)
	if label != "" && m.selected < len(m.options) {
		m.options[m.selected] = label
	}
}

func (m *MenuController) dispatch(k Key) (int, bool) {
	switch {
	case key.Matches(k, m.keys.Select):
		if m.selected < len(m.options) {
			return m.selected, true
		}
		return -1, true
	case key.Matches(k, m.keys.Done):
		if m.hasDone {
			return -1, true
		}
	case key.Matches(k, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(k, m.keys.Down):
		if m.selected < m.lastIndex() {
			m.selected++
		}
	}
	m.quickJump(k)
	return 0, false
}

// quickJump selects an option by its 1-based number. Digits typed within the
// quick-jump window accumulate; a number out of range starts over from the
// last digit.
func (m *MenuController) quickJump(k Key) {
	now := m.now()
	defer func() {
		m.lastKey = now
	}()

	d, ok := k.digit()
	if !ok {
		m.pending = ""
		return
	}
	if now.Sub(m.lastKey) > m.quickJumpWindow {
		m.pending = ""
	}

	m.pending += string(d)
	index, err := strconv.Atoi(m.pending)
	index--
	if err != nil || index < 0 || index > m.lastIndex() {
		m.pending = string(d)
		index = int(d-'0') - 1
	}

	if index >= 0 && index <= m.lastIndex() {
		m.selected = index
		return
	}
	m.logger.Debug("quick-jump reset", "digit", string(d))
	m.pending = ""
}

// lastIndex is the highest selectable index: the done row when there is one,
// otherwise the last option.
func (m *MenuController) lastIndex() int {
	if m.hasDone {
		return len(m.options)
	}
	return len(m.options) - 1
}

func (m *MenuController) rowCount() int {
	if m.hasDone {
		return len(m.options) + 1
	}
	return len(m.options)
}

func (m *MenuController) leave() {
	m.term.SetCursorPosition(m.display.below(m.rowCount()), 0)
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
