package console

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

// ErrQuit is returned by Wait when the user quits before starting.
var ErrQuit = errors.New("quit")

const ctrlC = 0x03

// KeyToggle reads single key presses from a terminal in raw mode. When the
// file is not a terminal it falls back to line-buffered reads.
type KeyToggle struct {
	*ReaderToggle
	fd       int
	oldState *term.State
}

// NewKeyToggle puts f into raw mode, if it is a terminal, and starts
// reading keys. Close must be called to restore the terminal.
func NewKeyToggle(f *os.File) (*KeyToggle, error) {
	k := &KeyToggle{fd: int(f.Fd())}
	if term.IsTerminal(k.fd) {
		oldState, err := term.MakeRaw(k.fd)
		if err != nil {
			return nil, fmt.Errorf("failed to set raw mode: %w", err)
		}
		k.oldState = oldState
	}
	k.ReaderToggle = NewReaderToggle(f)
	return k, nil
}

// Raw reports whether the terminal is in raw mode.
func (k *KeyToggle) Raw() bool {
	return k.oldState != nil
}

// Close restores the terminal state and signals quit.
func (k *KeyToggle) Close() error {
	k.ReaderToggle.Close()
	if k.oldState == nil {
		return nil
	}
	err := term.Restore(k.fd, k.oldState)
	k.oldState = nil
	return err
}
