//go:build linux || darwin

package console

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// fdInput reads key bytes from a file descriptor, using select for timed
// waits.
type fdInput struct {
	fd  int
	buf []byte
}

func (f *fdInput) read(timeout time.Duration) ([]byte, error) {
	for {
		fds := unix.FdSet{}
		fds.Set(f.fd)
		var tv *unix.Timeval
		if timeout >= 0 {
			t := unix.NsecToTimeval(timeout.Nanoseconds())
			tv = &t
		}
		n, err := unix.Select(f.fd+1, &fds, nil, nil, tv)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to wait for input: %w", err)
		}
		if n == 0 || !fds.IsSet(f.fd) {
			return nil, nil
		}

		nread, err := unix.Read(f.fd, f.buf)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		if nread == 0 {
			return nil, errors.New("input closed")
		}
		return append([]byte(nil), f.buf[:nread]...), nil
	}
}

// NewVTTerminal opens the process's terminal. Echo and line buffering are
// turned off until Close; output processing and signal keys are left alone.
// It fails with ErrNotTerminal when stdin is not a terminal.
func NewVTTerminal() (*VTTerminal, error) {
	in := int(os.Stdin.Fd())
	out := int(os.Stdout.Fd())
	if !term.IsTerminal(in) {
		return nil, ErrNotTerminal
	}

	saved, err := getTermios(in)
	if err != nil {
		return nil, fmt.Errorf("failed to read terminal mode: %w", err)
	}
	raw := *saved
	raw.Lflag &^= unix.ECHO | unix.ICANON
	if err := setTermios(in, &raw); err != nil {
		return nil, fmt.Errorf("failed to set terminal mode: %w", err)
	}

	size := func() (int, int) {
		w, h, err := term.GetSize(out)
		if err != nil {
			w, h, _ = term.GetSize(in)
		}
		return w, h
	}
	t := newVTTerminal(&fdInput{fd: in, buf: make([]byte, 64)}, os.Stdout, size)
	t.restore = func() error {
		return setTermios(in, saved)
	}

	if err := t.queryCursor(); err != nil {
		t.logger.Debug("cursor position unknown, assuming top left", "err", err)
	}
	return t, nil
}
