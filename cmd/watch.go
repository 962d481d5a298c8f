package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/micromd/internal/log"
	"github.com/zjrosen/micromd/internal/markdown"
	"github.com/zjrosen/micromd/internal/watcher"
)

var (
	watchOut      string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Re-render a document to HTML whenever it changes",
	Long: `Render a document to HTML, then render it again every time the file is
saved. Bursts of writes are coalesced (watch.debounce in the config, or
--debounce). Unchanged content is served from the render cache.

Examples:
  micromd watch README.md                    # print HTML to stdout
  micromd watch README.md -o README.html     # rewrite a file
  micromd watch --debounce 1s README.md`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "", "Write HTML to this file instead of stdout")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "Debounce interval (overrides config)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	renderer, err := markdown.NewRenderer(options(), cfg.Cache)
	if err != nil {
		return err
	}

	wcfg := watcher.DefaultConfig(path)
	if cfg.Watch.Debounce > 0 {
		wcfg.Debounce = cfg.Watch.Debounce
	}
	if watchDebounce > 0 {
		wcfg.Debounce = watchDebounce
	}
	w, err := watcher.New(wcfg)
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	changes, err := w.Start()
	if err != nil {
		return err
	}

	render := func() {
		input, err := os.ReadFile(path) //nolint:gosec // G304: path is the watched input file
		if err != nil {
			// A save by rename can leave the path missing for a moment; the
			// create that follows triggers another render.
			log.ErrorErr(log.CatWatcher, "Failed to read watched file", err, "path", path)
			return
		}
		out, err := renderer.Render(ctx, input)
		if err != nil {
			log.ErrorErr(log.CatWatcher, "Failed to render", err, "path", path)
			return
		}
		if err := writeRendered(cmd, out); err != nil {
			log.ErrorErr(log.CatWatcher, "Failed to write output", err, "out", watchOut)
		}
	}

	render()
	fmt.Fprintf(cmd.ErrOrStderr(), "watching %s (ctrl+c to stop)\n", path)
	for {
		select {
		case <-ctx.Done():
			log.Info(log.CatWatcher, "Stopped", "path", path, "cached", renderer.Cached())
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			render()
		}
	}
}

func writeRendered(cmd *cobra.Command, out string) error {
	if watchOut == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	}
	return os.WriteFile(watchOut, []byte(out), 0o600)
}
