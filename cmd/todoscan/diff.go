package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/steveyegge/todoscan/internal/diff"
	"github.com/steveyegge/todoscan/internal/gitcmd"
	"github.com/steveyegge/todoscan/internal/output"
	"github.com/steveyegge/todoscan/internal/scanner"
	"github.com/steveyegge/todoscan/internal/telemetry"
	"github.com/steveyegge/todoscan/internal/types"
)

var diffTags []string

var diffCmd = &cobra.Command{
	Use:   "diff <ref>",
	Short: "Show annotations added or removed since a git ref",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, format, err := setup()
		if err != nil {
			return err
		}

		current, err := scanner.ScanDirectory(root, cfg)
		if err != nil {
			return err
		}

		result, err := diff.Compute(cmd.Context(), current, args[0], root, cfg, gitcmd.CLI{})
		if err != nil {
			return err
		}

		if tags := parseTagFilter(diffTags); len(tags) > 0 {
			result = filterDiff(result, tags)
		}
		telemetry.CountDiff(cmd.Context(), result.AddedCount, result.RemovedCount)

		return output.Diff(os.Stdout, result, format)
	},
}

func init() {
	diffCmd.Flags().StringSliceVar(&diffTags, "tag", nil, "Only show the given tags (repeatable)")
}

// filterDiff restricts entries to the wanted tags and re-derives the
// counts from what is left.
func filterDiff(result *types.DiffResult, tags []types.Tag) *types.DiffResult {
	var entries []types.DiffEntry
	for _, entry := range result.Entries {
		for _, tag := range tags {
			if entry.Item.Tag == tag {
				entries = append(entries, entry)
				break
			}
		}
	}
	return diff.Result(entries, result.BaseRef)
}
