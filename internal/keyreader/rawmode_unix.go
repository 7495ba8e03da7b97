//go:build !windows

package keyreader

import (
	"os"

	"golang.org/x/term"
)

// termiosMode toggles raw mode through terminal attributes.
type termiosMode struct {
	fd int
}

func newRawMode(f *os.File) RawMode {
	return termiosMode{fd: int(f.Fd())}
}

func (m termiosMode) Enter() (func() error, error) {
	state, err := term.MakeRaw(m.fd)
	if err != nil {
		return nil, err
	}
	return func() error { return term.Restore(m.fd, state) }, nil
}
