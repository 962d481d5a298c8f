package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/micromd/internal/markdown"
	"github.com/zjrosen/micromd/internal/presentation"
)

// errLiteralBrackets makes `check --strict` exit non-zero.
var errLiteralBrackets = errors.New("literal brackets found")

var (
	checkStrict bool
	checkJSON   bool
)

var checkCmd = &cobra.Command{
	Use:   "check FILE|-",
	Short: "Report brackets that did not become links or images",
	Long: `Report every [, ![ and ] in paragraph text that ended up as literal
text, for example a reference to an undefined label or a label that is never
closed. Escaped brackets are not reported.

Examples:
  micromd check README.md
  micromd check --strict docs/*.md   # exit 1 if anything is reported
  micromd check --json README.md | jq length`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var all []presentation.DiagnosticDTO
		for _, arg := range args {
			input, name, err := readInput(cmd, arg)
			if err != nil {
				return err
			}
			diags, err := markdown.Check(cmd.Context(), input, cfg.Parse)
			if err != nil {
				return err
			}
			all = append(all, presentation.FromDiagnostics(name, input, diags)...)
		}

		out := formatter(cmd)
		if checkJSON {
			if all == nil {
				all = []presentation.DiagnosticDTO{}
			}
			if err := out.FormatJSON(all); err != nil {
				return err
			}
		} else if err := out.WriteDiagnostics(all); err != nil {
			return err
		}

		if checkStrict && len(all) > 0 {
			return fmt.Errorf("%w: %d", errLiteralBrackets, len(all))
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Exit non-zero when anything is reported")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Print diagnostics as JSON")
	rootCmd.AddCommand(checkCmd)
}
