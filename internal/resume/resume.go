// Package resume recovers run state from an existing result log.
package resume

import (
	"line-translator/internal/parser"
)

// LastIdentifier scans the log from its end and returns the first identifier found.
func LastIdentifier(logLines []string) (string, bool) {
	for i := len(logLines) - 1; i >= 0; i-- {
		if id, ok := parser.Identifier(logLines[i]); ok {
			return id, true
		}
	}
	return "", false
}

// StartIndex returns the index of the first source line still to be processed:
// one past the last line carrying marker, or 0 when there is no marker or it
// does not occur in lines.
func StartIndex(lines []string, marker string, hasMarker bool) int {
	if !hasMarker {
		return 0
	}
	found := -1
	for i, l := range lines {
		if id, ok := parser.Identifier(l); ok && id == marker {
			found = i
		}
	}
	return found + 1
}

// BuildMemo maps every quoted text in the log to itself. The log holds final
// text, so a later source line quoting the same text resolves to it.
func BuildMemo(logLines []string) map[string]string {
	memo := make(map[string]string)
	for _, l := range logLines {
		if text, ok := parser.QuotedText(l); ok {
			memo[text] = text
		}
	}
	return memo
}

// Pair is a source quoted text and the text the log recorded for the same identifier.
type Pair struct {
	ID     string
	Source string
	Target string
}

// Pairs joins source and log lines on identifier. The last log line for an
// identifier wins; lines without identifier or quote are ignored.
func Pairs(sourceLines, logLines []string) []Pair {
	final := make(map[string]string)
	for _, l := range logLines {
		e := parser.ParseLine(0, l)
		if !e.HasID || e.PassThrough() {
			continue
		}
		final[e.ID] = e.Quote.Text
	}

	var pairs []Pair
	seen := make(map[string]bool)
	for i, l := range sourceLines {
		e := parser.ParseLine(i, l)
		if !e.HasID || e.PassThrough() || seen[e.ID] {
			continue
		}
		target, ok := final[e.ID]
		if !ok {
			continue
		}
		seen[e.ID] = true
		pairs = append(pairs, Pair{ID: e.ID, Source: e.Quote.Text, Target: target})
	}
	return pairs
}
