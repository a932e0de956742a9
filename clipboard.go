package console

import "github.com/atotto/clipboard"

// Clipboard supplies text for the paste binding.
type Clipboard interface {
	ReadAll() (string, error)
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", errClipboardUnsupported
	}
	return clipboard.ReadAll()
}

// SystemClipboard reads the desktop clipboard.
var SystemClipboard Clipboard = systemClipboard{}
