package compare

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter shows a numbered list and reads choices line by line.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

var _ Chooser = (*Prompter)(nil)

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Choose re-prompts until a number between 1 and len(c.Options) is entered.
// It fails with io.ErrUnexpectedEOF if input ends first.
func (p *Prompter) Choose(c Conflict) (string, error) {
	fmt.Fprintln(p.out, "\n"+strings.Repeat("=", 60))
	fmt.Fprintln(p.out, "UNTRANSLATED TEXT:")
	fmt.Fprintf(p.out, "\"%s\"\n", c.Original)
	fmt.Fprintln(p.out, "\nConflicting translations:")
	fmt.Fprintln(p.out)
	for i, opt := range c.Options {
		fmt.Fprintf(p.out, " %d) \"%s\"\n", i+1, opt)
	}
	fmt.Fprintln(p.out, "\nChoose the translation to keep.")
	fmt.Fprintln(p.out, "Enter number and press ENTER.")

	for {
		fmt.Fprint(p.out, "> ")
		line, err := p.in.ReadString('\n')
		if n, convErr := strconv.Atoi(strings.TrimSpace(line)); convErr == nil && n >= 1 && n <= len(c.Options) {
			return c.Options[n-1], nil
		}
		if err != nil {
			if err == io.EOF {
				return "", io.ErrUnexpectedEOF
			}
			return "", err
		}
		fmt.Fprintln(p.out, "Invalid choice. Try again.")
	}
}
