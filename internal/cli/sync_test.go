package cli

import (
	"os"
	"path/filepath"
	"testing"

	"line-translator/internal/compare"
	"line-translator/internal/config"
	"line-translator/internal/graph"
	"line-translator/internal/resume"
)

func TestCollectTerms(t *testing.T) {
	pairs := []resume.Pair{
		{ID: "1", Source: "Hello", Target: "Bonjour"},
		{ID: "2", Source: "Kept", Target: "Kept"},
		{ID: "3", Source: "Sword", Target: "Épée"},
	}
	resolutions := []compare.Resolution{
		{Original: "Sword", Chosen: "Lame"},
		{Original: "Shield", Chosen: "Bouclier"},
	}

	got := collectTerms(pairs, resolutions)
	want := []graph.Term{
		{Source: "Hello", Target: "Bonjour", Origin: originEdit},
		{Source: "Sword", Target: "Lame", Origin: originCompare},
		{Source: "Shield", Target: "Bouclier", Origin: originCompare},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d terms, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("term %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCollectTerms_EditsDoNotOverrideComparison(t *testing.T) {
	pairs := []resume.Pair{
		{ID: "1", Source: "Sword", Target: "Épée"},
		{ID: "2", Source: "Sword", Target: "Glaive"},
	}
	got := collectTerms(pairs, []compare.Resolution{{Original: "Sword", Chosen: "Lame"}})
	if len(got) != 1 || got[0].Target != "Lame" {
		t.Errorf("unexpected terms: %+v", got)
	}

	got = collectTerms(pairs, nil)
	if len(got) != 1 || got[0].Target != "Glaive" {
		t.Errorf("later edit should win, got %+v", got)
	}
}

func TestLoadTerms(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	cfg := &config.Config{
		InputFile:     write("in.txt", "add(1, \"Hello\")\nadd(2, \"Bye\")\n"),
		ResultFile:    write("done.txt", "add(1, \"Salut\")\nadd(2, \"Bye\")\n"),
		CompareOutput: filepath.Join(dir, "missing_report.txt"),
	}

	terms, err := loadTerms(cfg)
	if err != nil {
		t.Fatalf("loadTerms: %v", err)
	}
	if len(terms) != 1 || terms[0].Source != "Hello" || terms[0].Target != "Salut" {
		t.Errorf("unexpected terms without report: %+v", terms)
	}

	cfg.CompareOutput = write("report.txt", "\"Hello\" -> \"Bonjour\"\n")
	terms, err = loadTerms(cfg)
	if err != nil {
		t.Fatalf("loadTerms: %v", err)
	}
	if len(terms) != 1 || terms[0].Target != "Bonjour" || terms[0].Origin != originCompare {
		t.Errorf("report choice should win: %+v", terms)
	}
}

func TestLoadTerms_MissingInput(t *testing.T) {
	cfg := &config.Config{InputFile: filepath.Join(t.TempDir(), "nope.txt")}
	if _, err := loadTerms(cfg); err == nil {
		t.Error("expected error for missing input file")
	}
}
