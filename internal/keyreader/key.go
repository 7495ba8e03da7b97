// Package keyreader reads single key events from a terminal in raw mode.
package keyreader

import "fmt"

// Kind classifies a key event.
type Kind int

const (
	// KindRune is a printable character, carried in Key.Rune.
	KindRune Kind = iota
	KindEnter
	KindBackspace
	KindTab
	KindInterrupt
	// KindIgnore covers escape sequences (arrows, function keys) and other
	// control bytes that have no meaning for the editor.
	KindIgnore
)

func (k Kind) String() string {
	switch k {
	case KindRune:
		return "rune"
	case KindEnter:
		return "enter"
	case KindBackspace:
		return "backspace"
	case KindTab:
		return "tab"
	case KindInterrupt:
		return "interrupt"
	case KindIgnore:
		return "ignore"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Key is one logical key event.
type Key struct {
	Kind Kind
	Rune rune
}

// Rune builds a printable key event.
func Rune(r rune) Key { return Key{Kind: KindRune, Rune: r} }

// Reader returns one key event per call. Implementations report end of input as io.EOF.
type Reader interface {
	ReadKey() (Key, error)
}

// RawMode switches a terminal into unbuffered, unechoed input. The returned
// restore function puts back the mode captured on entry.
type RawMode interface {
	Enter() (restore func() error, err error)
}
