// Package editor runs the per-line prompt: it renders an entry, collects
// keystrokes into a replacement and turns them into a Decision.
package editor

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"line-translator/internal/keyreader"
	"line-translator/internal/parser"

	"github.com/mattn/go-runewidth"
)

// ErrInterrupted is returned when the operator cancels with Ctrl+C or input ends.
var ErrInterrupted = errors.New("editing interrupted")

const clearScreenSeq = "\x1b[H\x1b[2J"

// Prompt is what the editor shows for one line.
type Prompt struct {
	Entry parser.Entry
	// Position is 1-based.
	Position int
	Total    int
}

// Editor reads keys and echoes them to out.
type Editor struct {
	keys        keyreader.Reader
	out         io.Writer
	clearScreen bool
}

// New creates an editor. When clearScreen is set the display is wiped before each prompt.
func New(keys keyreader.Reader, out io.Writer, clearScreen bool) *Editor {
	return &Editor{keys: keys, out: out, clearScreen: clearScreen}
}

// Edit prompts for a replacement of the entry's quoted text.
// ENTER confirms (empty input keeps the line), TAB skips, Ctrl+C cancels.
func (ed *Editor) Edit(p Prompt) (Decision, error) {
	if p.Entry.PassThrough() {
		return Keep(), nil
	}
	ed.render(p)

	var buf []rune
	for {
		key, err := ed.keys.ReadKey()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(ed.out)
			return Decision{}, ErrInterrupted
		}
		if err != nil {
			return Decision{}, fmt.Errorf("read key: %w", err)
		}

		switch key.Kind {
		case keyreader.KindRune:
			buf = append(buf, key.Rune)
			fmt.Fprint(ed.out, string(key.Rune))

		case keyreader.KindBackspace:
			if len(buf) == 0 {
				continue
			}
			last := buf[len(buf)-1]
			buf = buf[:len(buf)-1]
			ed.erase(runewidth.RuneWidth(last))

		case keyreader.KindEnter:
			fmt.Fprintln(ed.out)
			if len(buf) == 0 {
				return Keep(), nil
			}
			return Replace(string(buf)), nil

		case keyreader.KindTab:
			fmt.Fprintln(ed.out, "(skipped)")
			return Skip(), nil

		case keyreader.KindInterrupt:
			fmt.Fprintln(ed.out)
			return Decision{}, ErrInterrupted
		}
	}
}

func (ed *Editor) render(p Prompt) {
	if ed.clearScreen {
		fmt.Fprint(ed.out, clearScreenSeq)
	}
	fmt.Fprintf(ed.out, "\n[%d/%d] %s\n", p.Position, p.Total, p.Entry.Raw)
	fmt.Fprintf(ed.out, "Current text: \"%s\"\n", p.Entry.Quote.Text)
	fmt.Fprint(ed.out, "New text (ENTER=keep/confirm, TAB=skip, Ctrl+C=quit): ")
}

// erase removes the last width columns of echoed input.
func (ed *Editor) erase(width int) {
	if width < 1 {
		width = 1
	}
	back := strings.Repeat("\b", width)
	fmt.Fprint(ed.out, back+strings.Repeat(" ", width)+back)
}
