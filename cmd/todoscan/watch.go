package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/steveyegge/todoscan/internal/config"
	"github.com/steveyegge/todoscan/internal/debug"
	"github.com/steveyegge/todoscan/internal/index"
	"github.com/steveyegge/todoscan/internal/output"
	"github.com/steveyegge/todoscan/internal/types"
	"github.com/steveyegge/todoscan/internal/ui"
	"github.com/steveyegge/todoscan/internal/watch"
)

var (
	watchTags     []string
	watchDebounce int
	watchMax      int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the tree and report annotation changes live",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, format, err := setup()
		if err != nil {
			return err
		}

		ix, err := index.New(root, cfg)
		if err != nil {
			return err
		}
		debug.PrintNormal("Watching %s (%d annotations)\n", root, ix.TotalCount())

		debounce := time.Duration(debounceMs(cfg)) * time.Millisecond
		watcher, err := watch.NewWatcher(root, debounce)
		if err != nil {
			return err
		}
		defer watcher.Close()

		sink := watch.SinkFunc(func(event types.WatchEvent) {
			if err := output.WatchEvent(os.Stdout, event, format); err != nil {
				debug.Logf("watch: render: %v\n", err)
				return
			}
			if format == output.FormatText && watchMax > 0 && event.Total >= watchMax {
				fmt.Printf("  %s\n", ui.RenderMuted(fmt.Sprintf(
					"Warning: total %d reached --max threshold %d", event.Total, watchMax)))
			}
		})

		opts := watch.Options{FilterTags: parseTagFilter(watchTags)}
		return watch.Run(cmd.Context(), ix, watcher.Batches(), sink, opts)
	},
}

func init() {
	watchCmd.Flags().StringSliceVar(&watchTags, "tag", nil, "Only report the given tags (repeatable)")
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 0, "Debounce window in milliseconds (overrides config)")
	watchCmd.Flags().IntVar(&watchMax, "max", 0, "Warn when the total reaches this threshold")
}

func debounceMs(cfg *config.Config) int {
	if watchDebounce > 0 {
		return watchDebounce
	}
	if cfg.Watch.DebounceMs > 0 {
		return cfg.Watch.DebounceMs
	}
	return config.DefaultDebounceMs
}
