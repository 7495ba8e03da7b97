package interpolation

import (
	"regexp"
	"sort"
)

// varMatch stores a detected interpolation variable position.
type varMatch struct {
	start, end int
	value      string
}

// patterns to detect interpolation variables in game strings.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\{[a-zA-Z_][a-zA-Z0-9_]*\}`),         // ${value}
	regexp.MustCompile(`\{[0-9]+\}`),                           // {0}, {1}
	regexp.MustCompile(`%[-+0-9]*\.?[0-9]*[dsfieEgGxXoubcpq]`), // %d, %s, %f, %2d, etc.
	regexp.MustCompile(`%%`),                                   // escaped percent literal
}

// Placeholders returns the interpolation variables of text in order of appearance.
// Overlapping matches keep the earliest, longest one.
func Placeholders(text string) []string {
	var all []varMatch
	for _, p := range patterns {
		for _, loc := range p.FindAllStringIndex(text, -1) {
			all = append(all, varMatch{start: loc[0], end: loc[1], value: text[loc[0]:loc[1]]})
		}
	}
	if len(all) == 0 {
		return nil
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].start != all[j].start {
			return all[i].start < all[j].start
		}
		return all[i].end-all[i].start > all[j].end-all[j].start
	})

	var out []string
	lastEnd := -1
	for _, m := range all {
		if m.start >= lastEnd {
			out = append(out, m.value)
			lastEnd = m.end
		}
	}
	return out
}

// Diff compares the placeholders of a source text and its translation as
// multisets. missing are in source but not in target, extra the reverse.
func Diff(source, target string) (missing, extra []string) {
	counts := make(map[string]int)
	for _, p := range Placeholders(source) {
		counts[p]++
	}
	for _, p := range Placeholders(target) {
		if counts[p] > 0 {
			counts[p]--
			continue
		}
		extra = append(extra, p)
	}
	for _, p := range Placeholders(source) {
		if counts[p] > 0 {
			missing = append(missing, p)
			counts[p]--
		}
	}
	return missing, extra
}
