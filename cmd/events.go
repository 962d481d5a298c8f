package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/micromd/internal/log"
	"github.com/zjrosen/micromd/internal/markdown"
	"github.com/zjrosen/micromd/internal/presentation"
)

var eventsJSON bool

var eventsCmd = &cobra.Command{
	Use:   "events FILE|-",
	Short: "Print the event stream of a document",
	Long: `Print the Enter/Exit event stream of a document, one event per line,
indented by nesting depth. Linked events show their content type and chain.

Examples:
  micromd events README.md
  echo '[a](b)' | micromd events -

  # JSON for scripting
  micromd events --json README.md | jq '.[] | select(.kind == "enter") | .name'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, name, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		events, err := markdown.Events(cmd.Context(), input, cfg.Parse)
		if err != nil {
			return err
		}
		log.Debug(log.CatCLI, "Tokenized", "input", name, "events", len(events))

		out := formatter(cmd)
		dtos := presentation.FromEvents(events)
		if eventsJSON {
			return out.FormatJSON(dtos)
		}
		return out.WriteEvents(dtos)
	},
}

func init() {
	eventsCmd.Flags().BoolVar(&eventsJSON, "json", false, "Print events as JSON")
	rootCmd.AddCommand(eventsCmd)
}
