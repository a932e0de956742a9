package console

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/log"
)

var (
	ErrSessionActive        = errors.New("console: another session is in progress")
	ErrNotTerminal          = errors.New("console: input is not a terminal")
	errClipboardUnsupported = errors.New("console: clipboard is not supported on this system")
)

// Console is the host-facing surface: it reads commands, runs menus and
// writes formatted lines on one terminal. It owns the command history, which
// lives as long as the Console.
type Console struct {
	term      Terminal
	cfg       *Config
	logger    *log.Logger
	history   *CommandHistory
	writer    *Writer
	clipboard Clipboard
	commands  WordList
	prompt    string
	promptSet bool

	editorKeys EditorKeyMap
	menuKeys   MenuKeyMap

	mu           sync.Mutex
	busy         bool
	menu         *MenuCanceller
	lastSelected int
}

type Option func(*Console)

func WithConfig(cfg *Config) Option {
	return func(c *Console) {
		if cfg != nil {
			c.cfg = cfg
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(c *Console) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithClipboard(cb Clipboard) Option {
	return func(c *Console) {
		c.clipboard = cb
	}
}

// WithCommands sets the names offered by tab completion, replacing the
// configured ones.
func WithCommands(names ...string) Option {
	return func(c *Console) {
		c.commands = append(WordList{}, names...)
	}
}

func WithPrompt(prompt string) Option {
	return func(c *Console) {
		c.prompt = prompt
		c.promptSet = true
	}
}

func WithEditorKeyMap(km EditorKeyMap) Option {
	return func(c *Console) {
		c.editorKeys = km
	}
}

func WithMenuKeyMap(km MenuKeyMap) Option {
	return func(c *Console) {
		c.menuKeys = km
	}
}

func New(term Terminal, opts ...Option) *Console {
	c := &Console{
		term:       term,
		cfg:        DefaultConfig(),
		logger:     Logger(),
		clipboard:  SystemClipboard,
		editorKeys: DefaultEditorKeyMap,
		menuKeys:   DefaultMenuKeyMap,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.commands == nil {
		c.commands = append(WordList{}, c.cfg.Commands...)
	}
	if !c.promptSet {
		c.prompt = c.cfg.Prompt
	}
	c.history = NewCommandHistory(c.cfg.HistoryCapacity)
	c.writer = NewWriter(term, c.cfg)
	return c
}

func (c *Console) History() *CommandHistory {
	return c.history
}

// SetCommands replaces the names offered by tab completion.
func (c *Console) SetCommands(names ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commands = append(WordList{}, names...)
}

func (c *Console) acquire() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrSessionActive
	}
	c.busy = true
	return nil
}

func (c *Console) release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
}

// GetCommand reads one line from the user.
func (c *Console) GetCommand() (string, error) {
	if err := c.acquire(); err != nil {
		return "", err
	}
	defer c.release()

	c.mu.Lock()
	commands := c.commands
	c.mu.Unlock()

	editor := NewLineEditor(c.term, c.history,
		WithCompleter(commands),
		WithHistoryCompletion(c.cfg.CompleteFromHistory),
		WithEditorPrompt(c.prompt),
		WithEditorKeys(c.editorKeys),
		WithPasteSource(c.clipboard),
		WithEditorLogger(c.logger),
	)
	c.term.WriteString("\n")
	return editor.ReadLine()
}

// Menu shows options under title and returns the chosen index, or -1 when
// the menu is left through the done row or cancelled. The title is markup,
// written like Write. A cancel that returns the selection while the done row
// is highlighted yields len(options).
func (c *Console) Menu(title string, options []string, opts ...MenuOption) (int, error) {
	if err := c.acquire(); err != nil {
		return -1, err
	}
	defer c.release()

	base := []MenuOption{WithMenuKeys(c.menuKeys), WithMenuLogger(c.logger)}
	menu := NewMenuController(c.term, c.cfg, title, options, append(base, opts...)...)

	c.mu.Lock()
	c.menu = menu.Canceller()
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.lastSelected = menu.Selected()
		c.menu = nil
		c.mu.Unlock()
	}()

	return menu.Run()
}

// SignalMenuCancel stops the menu in progress, if any, within one poll
// interval. It may be called from any goroutine and returns the highlighted
// index of that menu, or of the last menu when none is running.
func (c *Console) SignalMenuCancel(returnSelected bool) int {
	c.mu.Lock()
	menu := c.menu
	last := c.lastSelected
	c.mu.Unlock()

	if menu == nil {
		c.logger.Debug("menu cancel signalled with no menu running")
		return last
	}
	return menu.Cancel(returnSelected)
}

func (c *Console) Write(markup string) {
	c.writer.Write(markup, false)
}

func (c *Console) WriteError(markup string) {
	c.writer.Write(markup, true)
}

// VerifyArgCount reports whether actual lies within [min, max], writing an
// error line naming command when it does not.
func (c *Console) VerifyArgCount(command string, min, max, actual int) bool {
	if actual > max {
		c.WriteError(fmt.Sprintf("*%s* expects fewer parameters.", command))
		return false
	}
	if actual < min {
		c.WriteError(fmt.Sprintf("*%s* expects more parameters.", command))
		return false
	}
	return true
}

// KeyHelp renders a one-line summary of the editor bindings.
func (c *Console) KeyHelp() string {
	return help.New().ShortHelpView(c.editorKeys.ShortHelp())
}

// MenuKeyHelp renders a one-line summary of the menu bindings.
func (c *Console) MenuKeyHelp() string {
	return help.New().ShortHelpView(c.menuKeys.ShortHelp())
}
