package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
)

// quotePattern matches the first double-quoted literal. No escape support.
var quotePattern = regexp.MustCompile(`"(.*?)"`)

// idPattern captures the first argument of an add(...) call.
var idPattern = regexp.MustCompile(`add\(\s*([^,]+)\s*,`)

// ParseLine extracts the identifier and the first quoted span of a single line.
func ParseLine(index int, line string) Entry {
	e := Entry{Index: index, Raw: line}

	if id, ok := Identifier(line); ok {
		e.ID = id
		e.HasID = true
	}

	if loc := quotePattern.FindStringSubmatchIndex(line); loc != nil {
		e.Quote = &Span{
			Start: loc[0],
			End:   loc[1],
			Text:  line[loc[2]:loc[3]],
		}
	}

	return e
}

// Identifier returns the trimmed first argument of the first add(...) call on the line.
func Identifier(line string) (string, bool) {
	m := idPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// QuotedText returns the content of the first quoted literal on the line.
func QuotedText(line string) (string, bool) {
	m := quotePattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Substitute rewrites the first occurrence of the entry's quoted literal,
// quotes included, with newText in quotes. The rest of the line is untouched.
// Pass-through entries are returned unchanged.
func (e Entry) Substitute(newText string) string {
	if e.Quote == nil {
		return e.Raw
	}
	old := `"` + e.Quote.Text + `"`
	return strings.Replace(e.Raw, old, `"`+newText+`"`, 1)
}

// ReadLines loads a text file as lines without their terminators.
func ReadLines(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filePath, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 1024*1024), 4*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", filePath, err)
	}

	return lines, nil
}

// ReadLinesIfExists is ReadLines for optional files: a missing file yields no lines.
func ReadLinesIfExists(filePath string) ([]string, error) {
	lines, err := ReadLines(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return lines, err
}
