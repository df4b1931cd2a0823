package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/steveyegge/todoscan/internal/output"
	"github.com/steveyegge/todoscan/internal/scanner"
	"github.com/steveyegge/todoscan/internal/telemetry"
	"github.com/steveyegge/todoscan/internal/types"
)

var listTags []string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all annotations in the tree",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, format, err := setup()
		if err != nil {
			return err
		}

		scan, err := scanner.ScanDirectory(root, cfg)
		if err != nil {
			return err
		}
		telemetry.CountScan(cmd.Context(), len(scan.Items))

		if tags := parseTagFilter(listTags); len(tags) > 0 {
			scan.Items = filterItems(scan.Items, tags)
		}

		return output.List(os.Stdout, scan, format)
	},
}

func init() {
	listCmd.Flags().StringSliceVar(&listTags, "tag", nil, "Only show the given tags (repeatable)")
}

// parseTagFilter resolves flag values to known tags, dropping anything
// outside the vocabulary.
func parseTagFilter(names []string) []types.Tag {
	var tags []types.Tag
	for _, name := range names {
		if tag, ok := types.ParseTag(name); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

func filterItems(items []types.TodoItem, tags []types.Tag) []types.TodoItem {
	var out []types.TodoItem
	for _, item := range items {
		for _, tag := range tags {
			if item.Tag == tag {
				out = append(out, item)
				break
			}
		}
	}
	return out
}
