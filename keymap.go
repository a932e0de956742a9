package console

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

type EditorKeyMap struct {
	Submit      key.Binding
	Complete    key.Binding
	Clear       key.Binding
	HistoryPrev key.Binding
	HistoryNext key.Binding
	Left        key.Binding
	Right       key.Binding
	Home        key.Binding
	End         key.Binding
	Backspace   key.Binding
	Delete      key.Binding
	KillToEnd   key.Binding
	Paste       key.Binding
}

func (km EditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Submit, km.Complete, km.HistoryPrev, km.HistoryNext, km.Clear}
}

func (km EditorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Submit, km.Complete, km.Clear, km.Paste},
		{km.HistoryPrev, km.HistoryNext},
		{km.Left, km.Right, km.Home, km.End},
		{km.Backspace, km.Delete, km.KillToEnd},
	}
}

var _ help.KeyMap = EditorKeyMap{}

var DefaultEditorKeyMap = EditorKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Complete: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "complete"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear"),
	),
	HistoryPrev: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "previous"),
	),
	HistoryNext: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "next"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "ctrl+b"),
		key.WithHelp("←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "ctrl+f"),
		key.WithHelp("→", "right"),
	),
	Home: key.NewBinding(
		key.WithKeys("home", "ctrl+a"),
		key.WithHelp("home", "start of line"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "ctrl+e"),
		key.WithHelp("end", "end of line"),
	),
	Backspace: key.NewBinding(
		key.WithKeys("backspace", "ctrl+h"),
		key.WithHelp("backspace", "erase left"),
	),
	Delete: key.NewBinding(
		key.WithKeys("delete", "ctrl+d"),
		key.WithHelp("del", "erase right"),
	),
	KillToEnd: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "erase to end"),
	),
	Paste: key.NewBinding(
		key.WithKeys("ctrl+v"),
		key.WithHelp("ctrl+v", "paste"),
	),
}

type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Done   key.Binding
}

func (km MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Up, km.Down, km.Select, km.Done}
}

func (km MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{km.Up, km.Down}, {km.Select, km.Done}}
}

var _ help.KeyMap = MenuKeyMap{}

// Digits are not bindable: they always drive quick-jump.
var DefaultMenuKeyMap = MenuKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Done: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "done"),
	),
}
