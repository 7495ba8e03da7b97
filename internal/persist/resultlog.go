// Package persist appends decided lines to the result log.
package persist

import (
	"fmt"
	"os"

	"line-translator/internal/editor"
	"line-translator/internal/parser"
)

// ResultLog is an append-only line file. Every write reaches stable storage
// before Commit returns.
type ResultLog struct {
	file    *os.File
	path    string
	written int
}

// Open opens path for appending, creating it if needed.
func Open(path string) (*ResultLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open result log: %w", err)
	}
	return &ResultLog{file: f, path: path}, nil
}

// Commit writes the line that d produces for e. Skip writes nothing and
// reports false.
func (l *ResultLog) Commit(e parser.Entry, d editor.Decision) (bool, error) {
	var line string
	switch {
	case e.PassThrough():
		line = e.Raw
	case d.Action == editor.ActionSkip:
		return false, nil
	case d.Action == editor.ActionReplace:
		line = e.Substitute(d.Text)
	default:
		line = e.Raw
	}

	if err := l.Append(line); err != nil {
		return false, err
	}
	return true, nil
}

// Append writes one line and syncs the file.
func (l *ResultLog) Append(line string) error {
	if _, err := l.file.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("append to %s: %w", l.path, err)
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", l.path, err)
	}
	l.written++
	return nil
}

// Written is the number of lines appended through this handle.
func (l *ResultLog) Written() int {
	return l.written
}

// Path returns the file path the log was opened with.
func (l *ResultLog) Path() string {
	return l.path
}

func (l *ResultLog) Close() error {
	return l.file.Close()
}
