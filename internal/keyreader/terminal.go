package keyreader

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

const (
	ctrlC     = 0x03
	ctrlH     = 0x08
	tab       = '\t'
	lf        = '\n'
	cr        = '\r'
	esc       = 0x1b
	del       = 0x7f
	readChunk = 64
)

// Terminal reads key events from in, holding the terminal in raw mode only
// for the duration of each read.
type Terminal struct {
	in      io.Reader
	mode    RawMode
	buf     [readChunk]byte
	pending []byte
}

var _ Reader = (*Terminal)(nil)

// New returns a Terminal for the given console input using the platform backend.
func New(in *os.File) *Terminal {
	return NewWithMode(in, newRawMode(in))
}

// NewWithMode returns a Terminal reading from in and switching modes through mode.
func NewWithMode(in io.Reader, mode RawMode) *Terminal {
	return &Terminal{in: in, mode: mode}
}

// ReadKey returns the next key event. Keys left over from a previous read
// (pasted text) are returned without touching the terminal mode.
func (t *Terminal) ReadKey() (Key, error) {
	if len(t.pending) == 0 {
		if err := t.fill(); err != nil {
			return Key{}, err
		}
	}
	return t.next(), nil
}

func (t *Terminal) fill() (err error) {
	restore, err := t.mode.Enter()
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	defer func() {
		if rerr := restore(); rerr != nil && err == nil {
			err = fmt.Errorf("restore terminal: %w", rerr)
		}
	}()

	for {
		n, rerr := t.in.Read(t.buf[:])
		if n > 0 {
			t.pending = append(t.pending[:0], t.buf[:n]...)
			return nil
		}
		if rerr != nil {
			return rerr
		}
	}
}

// next decodes one event from pending. An escape byte consumes the rest of
// the chunk since terminals deliver a whole sequence in a single read.
func (t *Terminal) next() Key {
	b := t.pending[0]
	switch {
	case b == esc:
		t.pending = t.pending[:0]
		return Key{Kind: KindIgnore}
	case b == cr:
		t.consume(1)
		if len(t.pending) > 0 && t.pending[0] == lf {
			t.consume(1)
		}
		return Key{Kind: KindEnter}
	case b == lf:
		t.consume(1)
		return Key{Kind: KindEnter}
	case b == del || b == ctrlH:
		t.consume(1)
		return Key{Kind: KindBackspace}
	case b == tab:
		t.consume(1)
		return Key{Kind: KindTab}
	case b == ctrlC:
		t.consume(1)
		return Key{Kind: KindInterrupt}
	case b < 0x20:
		t.consume(1)
		return Key{Kind: KindIgnore}
	}

	r, size := utf8.DecodeRune(t.pending)
	t.consume(size)
	if r == utf8.RuneError && size <= 1 {
		return Key{Kind: KindIgnore}
	}
	return Rune(r)
}

func (t *Terminal) consume(n int) {
	t.pending = t.pending[n:]
}
