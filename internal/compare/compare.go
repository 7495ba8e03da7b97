// Package compare finds source texts that were translated more than one way
// across two line-aligned files and records the operator's pick.
package compare

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"line-translator/internal/parser"

	"github.com/rs/zerolog/log"
)

// Conflict is an original text with two or more distinct translations.
type Conflict struct {
	Original string
	// Options are sorted and distinct.
	Options []string
}

// Resolution is the translation chosen for an original text.
type Resolution struct {
	Original string
	Chosen   string
}

// Chooser picks one of a conflict's options.
type Chooser interface {
	Choose(c Conflict) (string, error)
}

// ExtractTexts returns the first quoted text of every line; nil marks lines without one.
func ExtractTexts(lines []string) []*string {
	texts := make([]*string, len(lines))
	for i, l := range lines {
		if t, ok := parser.QuotedText(l); ok {
			texts[i] = &t
		}
	}
	return texts
}

// FindConflicts pairs texts by line index and keeps originals with more than
// one distinct translation, in order of first appearance.
func FindConflicts(untranslated, translated []*string) []Conflict {
	variants := make(map[string]map[string]struct{})
	var order []string

	for idx, u := range untranslated {
		if u == nil || idx >= len(translated) || translated[idx] == nil {
			continue
		}
		set, ok := variants[*u]
		if !ok {
			set = make(map[string]struct{})
			variants[*u] = set
			order = append(order, *u)
		}
		set[*translated[idx]] = struct{}{}
	}

	var conflicts []Conflict
	for _, original := range order {
		set := variants[original]
		if len(set) < 2 {
			continue
		}
		options := make([]string, 0, len(set))
		for t := range set {
			options = append(options, t)
		}
		sort.Strings(options)
		conflicts = append(conflicts, Conflict{Original: original, Options: options})
	}
	return conflicts
}

// Resolve asks the chooser about every conflict.
func Resolve(conflicts []Conflict, ch Chooser) ([]Resolution, error) {
	resolved := make([]Resolution, 0, len(conflicts))
	for _, c := range conflicts {
		chosen, err := ch.Choose(c)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", c.Original, err)
		}
		resolved = append(resolved, Resolution{Original: c.Original, Chosen: chosen})
	}
	return resolved, nil
}

// WriteReport writes one `"<original>" -> "<chosen>"` line per resolution.
func WriteReport(path string, resolved []Resolution) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, r := range resolved {
		fmt.Fprintf(w, "\"%s\" -> \"%s\"\n", r.Original, r.Chosen)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	log.Info().Str("path", path).Int("entries", len(resolved)).Msg("Wrote comparison report")
	return nil
}

var reportLine = regexp.MustCompile(`^"(.*)" -> "(.*)"$`)

// ReadReport parses a file written by WriteReport. Lines that do not match are skipped.
func ReadReport(path string) ([]Resolution, error) {
	lines, err := parser.ReadLines(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	var resolved []Resolution
	for _, l := range lines {
		m := reportLine.FindStringSubmatch(strings.TrimSpace(l))
		if m == nil {
			continue
		}
		resolved = append(resolved, Resolution{Original: m[1], Chosen: m[2]})
	}
	return resolved, nil
}
