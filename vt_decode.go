package console

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const escape = 0x1b

// decodeKey decodes the first key in buf. It returns the key and the number
// of bytes it used; ok is false when buf holds only the start of a sequence.
// A lone escape byte is incomplete: the caller decides, after a short wait,
// whether it is the escape key. Bytes that do not name a key decode to a
// KeyNone key so the caller can skip them.
func decodeKey(buf []byte) (Key, int, bool) {
	if len(buf) == 0 {
		return Key{}, 0, false
	}

	switch c := buf[0]; {
	case c == escape:
		return decodeEscape(buf)
	case c == '\r' || c == '\n':
		return Key{Code: KeyEnter}, 1, true
	case c == '\t':
		return Key{Code: KeyTab}, 1, true
	case c == 0x7f:
		return Key{Code: KeyBackspace}, 1, true
	case c >= 0x01 && c <= 0x1a:
		return CtrlKey(rune('a' + c - 1)), 1, true
	case c < 0x20:
		return Key{}, 1, true
	}

	if !utf8.FullRune(buf) {
		return Key{}, 0, false
	}
	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError && size == 1 {
		return Key{}, 1, true
	}
	return RuneKey(r), size, true
}

func decodeEscape(buf []byte) (Key, int, bool) {
	if len(buf) < 2 {
		return Key{}, 0, false
	}
	switch buf[1] {
	case '[':
		return decodeCSI(buf)
	case 'O':
		if len(buf) < 3 {
			return Key{}, 0, false
		}
		code, ok := finalKeys[buf[2]]
		if !ok {
			return Key{}, 3, true
		}
		return Key{Code: code}, 3, true
	case escape:
		return Key{Code: KeyEscape}, 1, true
	}

	k, n, ok := decodeKey(buf[1:])
	if !ok {
		return Key{}, 0, false
	}
	if k.Code == KeyNone {
		return k, n + 1, true
	}
	k.Mod |= ModifierAlt
	return k, n + 1, true
}

var finalKeys = map[byte]KeyCode{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

var tildeKeys = map[int]KeyCode{
	1: KeyHome,
	3: KeyDelete,
	4: KeyEnd,
	7: KeyHome,
	8: KeyEnd,
}

// decodeCSI reads ESC [ parameters intermediates final. The second parameter,
// when present, carries the xterm modifier mask plus one.
func decodeCSI(buf []byte) (Key, int, bool) {
	i := 2
	for i < len(buf) && buf[i] >= 0x30 && buf[i] <= 0x3f {
		i++
	}
	params := string(buf[2:i])
	for i < len(buf) && buf[i] >= 0x20 && buf[i] <= 0x2f {
		i++
	}
	if i == len(buf) {
		return Key{}, 0, false
	}
	final := buf[i]
	n := i + 1
	if final < 0x40 || final > 0x7e {
		return Key{}, n, true
	}

	var values []int
	for _, p := range strings.Split(params, ";") {
		v, err := strconv.Atoi(p)
		if err != nil {
			v = 0
		}
		values = append(values, v)
	}
	var param1, param2 int
	if len(values) > 0 {
		param1 = values[0]
	}
	if len(values) > 1 {
		param2 = values[1]
	}
	var mod Modifier
	if param2 > 1 {
		mod = Modifier(param2-1) & (ModifierShift | ModifierAlt | ModifierCtrl)
	}

	switch final {
	case 'Z':
		return Key{Code: KeyTab, Mod: ModifierShift}, n, true
	case '~':
		code, ok := tildeKeys[param1]
		if !ok {
			return Key{}, n, true
		}
		return Key{Code: code, Mod: mod}, n, true
	}
	code, ok := finalKeys[final]
	if !ok {
		return Key{}, n, true
	}
	return Key{Code: code, Mod: mod}, n, true
}
