package compare

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractTexts(t *testing.T) {
	texts := ExtractTexts([]string{`add(1, "a")`, `nothing`, `x = "b" .. "c"`})
	if texts[0] == nil || *texts[0] != "a" {
		t.Errorf("line 0: %v", texts[0])
	}
	if texts[1] != nil {
		t.Errorf("line 1 should have no text")
	}
	if texts[2] == nil || *texts[2] != "b" {
		t.Errorf("line 2: %v", texts[2])
	}
}

func TestFindConflicts(t *testing.T) {
	untranslated := ExtractTexts([]string{
		`add(1, "X")`,
		`add(2, "Same")`,
		`add(3, "X")`,
		`add(4, "Same")`,
		`add(5, "Lonely")`,
		`-- comment`,
		`add(7, "X")`,
	})
	translated := ExtractTexts([]string{
		`add(1, "Y1")`,
		`add(2, "Pareil")`,
		`add(3, "Y2")`,
		`add(4, "Pareil")`,
		`add(5, "Seul")`,
		`add(6, "stray")`,
	})

	conflicts := FindConflicts(untranslated, translated)
	if len(conflicts) != 1 {
		t.Fatalf("expected exactly 1 conflict, got %d: %+v", len(conflicts), conflicts)
	}
	c := conflicts[0]
	if c.Original != "X" {
		t.Errorf("original = %q", c.Original)
	}
	if strings.Join(c.Options, ",") != "Y1,Y2" {
		t.Errorf("options = %q", c.Options)
	}
}

func TestFindConflicts_OrderOfAppearance(t *testing.T) {
	untranslated := ExtractTexts([]string{`"b"`, `"a"`, `"b"`, `"a"`})
	translated := ExtractTexts([]string{`"b1"`, `"a1"`, `"b2"`, `"a2"`})

	conflicts := FindConflicts(untranslated, translated)
	if len(conflicts) != 2 || conflicts[0].Original != "b" || conflicts[1].Original != "a" {
		t.Errorf("unexpected order: %+v", conflicts)
	}
}

type fixedChooser map[string]string

func (f fixedChooser) Choose(c Conflict) (string, error) {
	v, ok := f[c.Original]
	if !ok {
		return "", errors.New("no choice")
	}
	return v, nil
}

func TestResolveAndReport(t *testing.T) {
	conflicts := []Conflict{{Original: "X", Options: []string{"Y1", "Y2"}}}
	resolved, err := Resolve(conflicts, fixedChooser{"X": "Y2"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	path := filepath.Join(t.TempDir(), "compared_output.txt")
	if err := WriteReport(path, resolved); err != nil {
		t.Fatalf("write: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "\"X\" -> \"Y2\"\n" {
		t.Errorf("report = %q", b)
	}

	back, err := ReadReport(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(back) != 1 || back[0] != (Resolution{Original: "X", Chosen: "Y2"}) {
		t.Errorf("read back %+v", back)
	}
}

func TestResolve_ChooserError(t *testing.T) {
	_, err := Resolve([]Conflict{{Original: "Q", Options: []string{"a", "b"}}}, fixedChooser{})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestPrompter_RetriesUntilValid(t *testing.T) {
	var out strings.Builder
	p := NewPrompter(strings.NewReader("zero\n0\n3\n2\n"), &out)

	got, err := p.Choose(Conflict{Original: "X", Options: []string{"Y1", "Y2"}})
	if err != nil {
		t.Fatalf("choose: %v", err)
	}
	if got != "Y2" {
		t.Errorf("got %q", got)
	}
	if n := strings.Count(out.String(), "Invalid choice"); n != 3 {
		t.Errorf("expected 3 invalid notices, got %d", n)
	}
	if !strings.Contains(out.String(), ` 1) "Y1"`) {
		t.Errorf("options not listed:\n%s", out.String())
	}
}

func TestPrompter_LastLineWithoutNewline(t *testing.T) {
	p := NewPrompter(strings.NewReader("1"), io.Discard)
	got, err := p.Choose(Conflict{Original: "X", Options: []string{"Y1", "Y2"}})
	if err != nil || got != "Y1" {
		t.Errorf("got (%q, %v)", got, err)
	}
}

func TestPrompter_EOF(t *testing.T) {
	p := NewPrompter(strings.NewReader("nope\n"), io.Discard)
	_, err := p.Choose(Conflict{Original: "X", Options: []string{"Y1", "Y2"}})
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected unexpected EOF, got %v", err)
	}
}
