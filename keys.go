package console

import (
	"strings"
	"unicode"
)

type KeyCode int

const (
	KeyNone KeyCode = iota
	KeyRune
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
)

type Modifier int

const (
	ModifierShift Modifier = 1 << iota
	ModifierAlt
	ModifierCtrl
)

// Key is one decoded key event. Rune is only meaningful for KeyRune.
type Key struct {
	Code KeyCode
	Rune rune
	Mod  Modifier
}

func RuneKey(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

func CtrlKey(r rune) Key {
	return Key{Code: KeyRune, Rune: unicode.ToLower(r), Mod: ModifierCtrl}
}

var keyCodeNames = map[KeyCode]string{
	KeyEnter:     "enter",
	KeyEscape:    "esc",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyTab:       "tab",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
}

// String names the key the way bubbles key bindings spell it, so a Key can be
// passed straight to key.Matches.
func (k Key) String() string {
	var b strings.Builder
	if k.Mod&ModifierCtrl != 0 {
		b.WriteString("ctrl+")
	}
	if k.Mod&ModifierAlt != 0 {
		b.WriteString("alt+")
	}
	if k.Mod&ModifierShift != 0 && k.Code != KeyRune {
		b.WriteString("shift+")
	}
	switch k.Code {
	case KeyRune:
		if k.Rune == ' ' && k.Mod == 0 {
			return " "
		}
		b.WriteRune(k.Rune)
	case KeyNone:
		return ""
	default:
		b.WriteString(keyCodeNames[k.Code])
	}
	return b.String()
}

// IsPrintable reports whether the key inserts a character into a buffer.
func (k Key) IsPrintable() bool {
	return k.Code == KeyRune && k.Mod&(ModifierCtrl|ModifierAlt) == 0 && unicode.IsPrint(k.Rune)
}

func (k Key) digit() (rune, bool) {
	if k.Code == KeyRune && k.Mod == 0 && k.Rune >= '0' && k.Rune <= '9' {
		return k.Rune, true
	}
	return 0, false
}
