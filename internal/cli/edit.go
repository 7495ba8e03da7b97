package cli

import (
	"os"

	"line-translator/internal/config"
	"line-translator/internal/editor"
	"line-translator/internal/keyreader"
	"line-translator/internal/session"

	"github.com/spf13/cobra"
)

func editCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Review quoted strings line by line, resuming from the result log",
		Long: `Prompts for each quoted string in the input file. Type a replacement and press
ENTER, press ENTER alone to keep the text, TAB to skip the line, Ctrl+C to stop.
Texts already decided earlier are filled in automatically.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cfg)
		},
	}
	addEditFlags(cmd, cfg)
	return cmd
}

func addEditFlags(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().StringVarP(&cfg.InputFile, "input", "i", cfg.InputFile, "Input file to review")
	cmd.Flags().StringVarP(&cfg.ResultFile, "output", "o", cfg.ResultFile, "Result log to append decisions to")
	cmd.Flags().BoolVar(&cfg.ClearScreen, "clear", cfg.ClearScreen, "Clear the screen before each prompt")
}

// runEdit handles the `edit` command.
func runEdit(cfg *config.Config) error {
	ctx, cancel := setupContext()
	defer cancel()

	s, err := session.Open(session.Options{
		InputFile:  cfg.InputFile,
		ResultFile: cfg.ResultFile,
		Out:        os.Stdout,
	})
	if err != nil {
		return err
	}

	ed := editor.New(keyreader.New(os.Stdin), os.Stdout, cfg.ClearScreen)
	_, err = s.Run(ctx, ed)
	return err
}
