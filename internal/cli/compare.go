package cli

import (
	"fmt"
	"os"
	"strings"

	"line-translator/internal/compare"
	"line-translator/internal/config"
	"line-translator/internal/parser"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func compareCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Find source texts translated more than one way and pick one",
		Long: `Matches the first quoted string of each line in the untranslated file with the
same line in the translated file. Every source text that ended up with two or
more different translations is shown with a numbered list of them; the chosen
ones are written as "<original>" -> "<chosen>" lines.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.UntranslatedFile, "untranslated", cfg.UntranslatedFile, "File with the original texts")
	cmd.Flags().StringVar(&cfg.TranslatedFile, "translated", cfg.TranslatedFile, "File with the translated texts, line-aligned")
	cmd.Flags().StringVarP(&cfg.CompareOutput, "output", "o", cfg.CompareOutput, "Report file for resolved conflicts")

	return cmd
}

// runCompare handles the `compare` command.
func runCompare(cfg *config.Config) error {
	untranslated, err := parser.ReadLines(cfg.UntranslatedFile)
	if err != nil {
		return fmt.Errorf("read untranslated file: %w", err)
	}
	translated, err := parser.ReadLines(cfg.TranslatedFile)
	if err != nil {
		return fmt.Errorf("read translated file: %w", err)
	}

	conflicts := compare.FindConflicts(compare.ExtractTexts(untranslated), compare.ExtractTexts(translated))
	if len(conflicts) == 0 {
		fmt.Println("No conflicting translations found.")
		return nil
	}

	log.Info().Int("conflicts", len(conflicts)).Msg("Found conflicting translations")

	resolved, err := compare.Resolve(conflicts, compare.NewPrompter(os.Stdin, os.Stdout))
	if err != nil {
		return err
	}

	if err := compare.WriteReport(cfg.CompareOutput, resolved); err != nil {
		return err
	}

	rule := strings.Repeat("=", 60)
	fmt.Println("\n" + rule)
	fmt.Println("Comparison complete.")
	fmt.Printf("Resolved entries written to %s\n", cfg.CompareOutput)
	fmt.Println("Only compared items were included.")
	fmt.Println(rule)
	return nil
}
