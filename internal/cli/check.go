package cli

import (
	"fmt"
	"strings"

	"line-translator/internal/config"
	"line-translator/internal/interpolation"
	"line-translator/internal/parser"
	"line-translator/internal/resume"
	"line-translator/internal/textutil"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func checkCmd(cfg *config.Config) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report replacements that lost or gained placeholders",
		Long: `Pairs every line of the input file with the result log entry for the same
identifier and lists the ones whose replacement text does not carry the same
placeholders (${name}, {0}, %s, %%) as the original.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cfg, strict)
		},
	}

	cmd.Flags().StringVarP(&cfg.InputFile, "input", "i", cfg.InputFile, "Input file that was reviewed")
	cmd.Flags().StringVarP(&cfg.ResultFile, "output", "o", cfg.ResultFile, "Result log to check")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when any mismatch is found")

	return cmd
}

// Mismatch is a replacement whose placeholders differ from its source.
type Mismatch struct {
	Pair    resume.Pair
	Missing []string
	Extra   []string
}

// findMismatches returns the pairs whose placeholder sets differ.
func findMismatches(pairs []resume.Pair) []Mismatch {
	var out []Mismatch
	for _, p := range pairs {
		if p.Source == p.Target {
			continue
		}
		missing, extra := interpolation.Diff(p.Source, p.Target)
		if len(missing) == 0 && len(extra) == 0 {
			continue
		}
		out = append(out, Mismatch{Pair: p, Missing: missing, Extra: extra})
	}
	return out
}

// runCheck handles the `check` command.
func runCheck(cfg *config.Config, strict bool) error {
	source, err := parser.ReadLines(cfg.InputFile)
	if err != nil {
		return fmt.Errorf("read input file: %w", err)
	}
	logLines, err := parser.ReadLinesIfExists(cfg.ResultFile)
	if err != nil {
		return fmt.Errorf("read result log: %w", err)
	}

	pairs := resume.Pairs(source, logLines)
	mismatches := findMismatches(pairs)

	log.Info().
		Int("pairs", len(pairs)).
		Int("mismatches", len(mismatches)).
		Msg("Placeholder check finished")

	if len(mismatches) == 0 {
		fmt.Printf("Checked %d entries, placeholders all match.\n", len(pairs))
		return nil
	}

	for _, m := range mismatches {
		fmt.Printf("[%s] %q -> %q\n", m.Pair.ID, textutil.Truncate(m.Pair.Source, 60), textutil.Truncate(m.Pair.Target, 60))
		if len(m.Missing) > 0 {
			fmt.Printf("    missing: %s\n", strings.Join(m.Missing, " "))
		}
		if len(m.Extra) > 0 {
			fmt.Printf("    extra:   %s\n", strings.Join(m.Extra, " "))
		}
	}
	fmt.Printf("\n%d of %d entries have placeholder mismatches.\n", len(mismatches), len(pairs))

	if strict {
		return fmt.Errorf("%d placeholder mismatches", len(mismatches))
	}
	return nil
}
