package cli

import (
	"os"
	"path/filepath"
	"testing"

	"line-translator/internal/config"
	"line-translator/internal/resume"
)

func TestFindMismatches(t *testing.T) {
	pairs := []resume.Pair{
		{ID: "1", Source: "Hello %s", Target: "Bonjour %s"},
		{ID: "2", Source: "You have %d coins", Target: "Vous avez des pièces"},
		{ID: "3", Source: "{0} wins", Target: "{1} gagne"},
		{ID: "4", Source: "Same %s", Target: "Same %s"},
	}

	got := findMismatches(pairs)
	if len(got) != 2 {
		t.Fatalf("expected 2 mismatches, got %d: %+v", len(got), got)
	}
	if got[0].Pair.ID != "2" || len(got[0].Missing) != 1 || got[0].Missing[0] != "%d" {
		t.Errorf("unexpected first mismatch: %+v", got[0])
	}
	if got[1].Pair.ID != "3" || got[1].Missing[0] != "{0}" || got[1].Extra[0] != "{1}" {
		t.Errorf("unexpected second mismatch: %+v", got[1])
	}
}

func TestRunCheck_Strict(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "done.txt")
	if err := os.WriteFile(in, []byte("add(1, \"Got %d\")\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(out, []byte("add(1, \"Reçu\")\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{InputFile: in, ResultFile: out}
	if err := runCheck(cfg, false); err != nil {
		t.Errorf("non-strict check should not fail: %v", err)
	}
	if err := runCheck(cfg, true); err == nil {
		t.Error("strict check should fail on mismatch")
	}
}
