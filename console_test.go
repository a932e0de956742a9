package console

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(term *fakeTerminal, opts ...Option) *Console {
	opts = append([]Option{WithConfig(testConfig()), WithClipboard(fakeClipboard{})}, opts...)
	return New(term, opts...)
}

func TestGetCommand(t *testing.T) {
	t.Parallel()

	term := newFakeTerminal(40, append(runeKeys("hi"), keyOf(KeyEnter))...)
	c := newTestConsole(term)

	line, err := c.GetCommand()
	require.NoError(t, err)
	assert.Equal(t, "hi", line)
	assert.Equal(t, "hi", term.line(1), "input starts on a fresh row")
	assert.Equal(t, []string{"hi"}, c.History().Entries())
}

func TestGetCommandKeepsHistoryAcrossCalls(t *testing.T) {
	t.Parallel()

	term := newFakeTerminal(40, append(runeKeys("one"), keyOf(KeyEnter))...)
	c := newTestConsole(term)
	_, err := c.GetCommand()
	require.NoError(t, err)

	term.push(keyOf(KeyUp), keyOf(KeyEnter))
	line, err := c.GetCommand()
	require.NoError(t, err)
	assert.Equal(t, "one", line)
	assert.Equal(t, []string{"one", "one"}, c.History().Entries())
}

func TestGetCommandCompletion(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Commands = []string{"status"}

	tests := []struct {
		name  string
		opts  []Option
		input string
		want  string
	}{
		{name: "commands option", opts: []Option{WithCommands("exit", "echo")}, input: "ex", want: "exit"},
		{name: "commands from config", opts: []Option{WithConfig(cfg)}, input: "st", want: "status"},
		{name: "option overrides config", opts: []Option{WithConfig(cfg), WithCommands()}, input: "st", want: "st"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			keys := append(runeKeys(tt.input), keyOf(KeyTab), keyOf(KeyEnter))
			c := newTestConsole(newFakeTerminal(40, keys...), tt.opts...)

			line, err := c.GetCommand()
			require.NoError(t, err)
			assert.Equal(t, tt.want, line)
		})
	}
}

func TestSetCommands(t *testing.T) {
	t.Parallel()

	term := newFakeTerminal(40, append(runeKeys("q"), keyOf(KeyTab), keyOf(KeyEnter))...)
	c := newTestConsole(term, WithCommands("exit"))
	c.SetCommands("quit")

	line, err := c.GetCommand()
	require.NoError(t, err)
	assert.Equal(t, "quit", line)
}

func TestGetCommandPrompt(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Prompt = "$ "
	term := newFakeTerminal(40, append(runeKeys("ls"), keyOf(KeyEnter))...)
	c := newTestConsole(term, WithConfig(cfg))

	line, err := c.GetCommand()
	require.NoError(t, err)
	assert.Equal(t, "ls", line)
	assert.Equal(t, "$ ls", term.line(1))

	term.push(keyOf(KeyEnter))
	c = newTestConsole(term, WithConfig(cfg), WithPrompt(""))
	_, err = c.GetCommand()
	require.NoError(t, err)
	assert.Equal(t, "", term.line(3))
}

func TestMenuAndSignalMenuCancel(t *testing.T) {
	t.Parallel()

	term := newFakeTerminal(40, keyOf(KeyDown))
	c := newTestConsole(term)
	canceller := NewMenuCanceller()

	done := make(chan int, 1)
	go func() {
		index, err := c.Menu("Pick", []string{"a", "b", "c"}, WithCanceller(canceller))
		assert.NoError(t, err)
		done <- index
	}()

	require.Eventually(t, func() bool {
		return canceller.Selected() == 1 && !term.KeyAvailable()
	}, time.Second, time.Millisecond)
	assert.Equal(t, 1, c.SignalMenuCancel(true))

	select {
	case index := <-done:
		assert.Equal(t, 1, index)
	case <-time.After(time.Second):
		t.Fatal("menu did not observe the cancellation")
	}
}

func TestSignalMenuCancelOnDoneRow(t *testing.T) {
	t.Parallel()

	term := newFakeTerminal(40, keyOf(KeyDown), keyOf(KeyDown), keyOf(KeyDown))
	c := newTestConsole(term)
	canceller := NewMenuCanceller()
	options := []string{"a", "b", "c"}

	done := make(chan int, 1)
	go func() {
		index, err := c.Menu("Pick", options, WithDoneLabel("Done"), WithCanceller(canceller))
		assert.NoError(t, err)
		done <- index
	}()

	require.Eventually(t, func() bool {
		return canceller.Selected() == len(options) && !term.KeyAvailable()
	}, time.Second, time.Millisecond)
	assert.Equal(t, len(options), c.SignalMenuCancel(true))

	select {
	case index := <-done:
		assert.Equal(t, len(options), index, "the done row reports its own index")
	case <-time.After(time.Second):
		t.Fatal("menu did not observe the cancellation")
	}
}

func TestSignalMenuCancelWithoutMenu(t *testing.T) {
	t.Parallel()

	term := newFakeTerminal(40, keyOf(KeyDown), keyOf(KeyDown), keyOf(KeyEnter))
	c := newTestConsole(term)
	assert.Equal(t, 0, c.SignalMenuCancel(true))

	index, err := c.Menu("Pick", []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, 2, index)
	assert.Equal(t, 2, c.SignalMenuCancel(false), "reports the last menu's selection")
}

func TestOneSessionAtATime(t *testing.T) {
	t.Parallel()

	term := newFakeTerminal(40)
	c := newTestConsole(term)

	done := make(chan int, 1)
	go func() {
		index, err := c.Menu("Pick", []string{"a", "b"})
		assert.NoError(t, err)
		done <- index
	}()
	require.Eventually(t, func() bool {
		return term.line(1) == " Pick"
	}, time.Second, time.Millisecond)

	_, err := c.GetCommand()
	assert.ErrorIs(t, err, ErrSessionActive)
	_, err = c.Menu("Other", []string{"x"})
	assert.ErrorIs(t, err, ErrSessionActive)

	c.SignalMenuCancel(false)
	select {
	case index := <-done:
		assert.Equal(t, -1, index)
	case <-time.After(time.Second):
		t.Fatal("menu did not observe the cancellation")
	}
}

func TestVerifyArgCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		min, max int
		actual   int
		want     bool
		wantLine string
	}{
		{name: "within range", min: 1, max: 2, actual: 2, want: true},
		{name: "exact", min: 0, max: 0, actual: 0, want: true},
		{name: "too many", min: 0, max: 1, actual: 2, wantLine: " go expects fewer parameters."},
		{name: "too few", min: 2, max: 3, actual: 1, wantLine: " go expects more parameters."},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			term := newFakeTerminal(80)
			c := newTestConsole(term)

			assert.Equal(t, tt.want, c.VerifyArgCount("go", tt.min, tt.max, tt.actual))
			assert.Equal(t, tt.wantLine, term.line(0))
			if !tt.want {
				assert.Equal(t, ColorCyan, term.cellAt(0, 1).fg, "command name")
				assert.Equal(t, ColorRed, term.cellAt(0, 4).fg, "message")
			}
		})
	}
}

func TestWriteColors(t *testing.T) {
	t.Parallel()

	term := newFakeTerminal(80)
	c := newTestConsole(term)
	c.Write("a *b @c@* d")

	assert.Equal(t, " a b c d", term.line(0))
	assert.Equal(t, ColorWhite, term.cellAt(0, 0).fg)
	assert.Equal(t, ColorWhite, term.cellAt(0, 1).fg)
	assert.Equal(t, ColorCyan, term.cellAt(0, 3).fg)
	assert.Equal(t, ColorYellow, term.cellAt(0, 5).fg)
	assert.Equal(t, ColorWhite, term.cellAt(0, 7).fg)

	row, col := term.CursorPosition()
	assert.Equal(t, 1, row)
	assert.Equal(t, 0, col)

	c.WriteError("oops")
	assert.Equal(t, " oops", term.line(1))
	assert.Equal(t, ColorRed, term.cellAt(1, 1).fg)
}

func TestKeyHelp(t *testing.T) {
	t.Parallel()

	c := newTestConsole(newFakeTerminal(80))
	assert.Contains(t, c.KeyHelp(), "submit")
	assert.Contains(t, c.KeyHelp(), "complete")
	assert.Contains(t, c.MenuKeyHelp(), "select")
}
