package console

import (
	"os"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

var defaultLogger atomic.Pointer[log.Logger]

func init() {
	defaultLogger.Store(log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "console",
		Level:  log.WarnLevel,
	}))
}

// SetLogger replaces the package logger used by consoles created without
// WithLogger. A nil logger is ignored.
func SetLogger(l *log.Logger) {
	if l != nil {
		defaultLogger.Store(l)
	}
}

func Logger() *log.Logger {
	return defaultLogger.Load()
}
