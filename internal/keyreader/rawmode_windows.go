//go:build windows

package keyreader

import (
	"os"

	"golang.org/x/sys/windows"
)

// consoleMode toggles raw input through the Win32 console API. Virtual
// terminal input is enabled so special keys arrive as escape sequences, the
// same shape the termios backend sees.
type consoleMode struct {
	h windows.Handle
}

func newRawMode(f *os.File) RawMode {
	return consoleMode{h: windows.Handle(f.Fd())}
}

func (m consoleMode) Enter() (func() error, error) {
	var orig uint32
	if err := windows.GetConsoleMode(m.h, &orig); err != nil {
		return nil, err
	}

	raw := orig &^ (windows.ENABLE_ECHO_INPUT | windows.ENABLE_LINE_INPUT | windows.ENABLE_PROCESSED_INPUT)
	raw |= windows.ENABLE_VIRTUAL_TERMINAL_INPUT
	if err := windows.SetConsoleMode(m.h, raw); err != nil {
		return nil, err
	}

	return func() error { return windows.SetConsoleMode(m.h, orig) }, nil
}
