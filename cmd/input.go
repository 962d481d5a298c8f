package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

const stdinName = "<stdin>"

// readInput reads the file named by arg, or stdin for "-". It returns the
// bytes and a display name.
func readInput(cmd *cobra.Command, arg string) ([]byte, string, error) {
	if arg == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", fmt.Errorf("reading stdin: %w", err)
		}
		return data, stdinName, nil
	}
	data, err := os.ReadFile(arg) //nolint:gosec // G304: path is the user's input file
	if err != nil {
		return nil, "", fmt.Errorf("reading input: %w", err)
	}
	return data, arg, nil
}
