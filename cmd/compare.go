package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/zjrosen/micromd/internal/markdown"
	"github.com/zjrosen/micromd/internal/presentation"
)

var errOutputsDiffer = errors.New("outputs differ")

var compareCmd = &cobra.Command{
	Use:   "compare FILE|-",
	Short: "Diff micromd HTML against goldmark",
	Long: `Compile a document with micromd and with goldmark, a CommonMark
reference implementation, and print a line diff of the two outputs.
Lines starting with - are goldmark's, lines starting with + are micromd's.

micromd only knows paragraphs, links, images, definitions, escapes,
character references and hard breaks, so documents using other syntax are
expected to differ.

Exits non-zero when the outputs differ.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}

		got, err := markdown.ToHTMLWithOptions(cmd.Context(), input, options())
		if err != nil {
			return err
		}
		var want bytes.Buffer
		md := goldmark.New(goldmark.WithRendererOptions(html.WithXHTML()))
		if err := md.Convert(input, &want); err != nil {
			return fmt.Errorf("goldmark: %w", err)
		}

		lines := presentation.LineDiff(normalizeHTML(want.String()), normalizeHTML(got))
		if lines == nil {
			return nil
		}
		if err := formatter(cmd).WriteDiff(lines); err != nil {
			return err
		}
		return errOutputsDiffer
	},
}

// normalizeHTML ends non-empty output with exactly one line feed. goldmark
// always ends blocks with one; micromd only when the input does.
func normalizeHTML(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return s
	}
	return s + "\n"
}

func init() {
	rootCmd.AddCommand(compareCmd)
}
