package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/micromd/internal/markdown"
)

var htmlDangerous bool

var htmlCmd = &cobra.Command{
	Use:   "html FILE|-",
	Short: "Compile a document to HTML",
	Long: `Compile a document to HTML.

URLs with protocols other than http, https, irc, ircs, mailto and xmpp (http
and https for images) are dropped unless --allow-dangerous-protocol is set or
compile.allow_dangerous_protocol is true in the config.

Examples:
  micromd html README.md > README.html
  printf '[a](b "c")' | micromd html -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		opts := options()
		if htmlDangerous {
			opts.Compile.AllowDangerousProtocol = true
		}
		out, err := markdown.ToHTMLWithOptions(cmd.Context(), input, opts)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	htmlCmd.Flags().BoolVar(&htmlDangerous, "allow-dangerous-protocol", false, "Keep URLs with any protocol")
	rootCmd.AddCommand(htmlCmd)
}
