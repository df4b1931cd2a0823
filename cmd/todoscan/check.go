package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/steveyegge/todoscan/internal/check"
	"github.com/steveyegge/todoscan/internal/diff"
	"github.com/steveyegge/todoscan/internal/gitcmd"
	"github.com/steveyegge/todoscan/internal/output"
	"github.com/steveyegge/todoscan/internal/scanner"
	"github.com/steveyegge/todoscan/internal/types"
)

var (
	checkMax       int
	checkMaxNew    int
	checkBase      string
	checkBlockTags []string
)

// errCheckFailed signals a policy violation; main maps it to exit
// status 1 after the deferred cleanup runs.
var errCheckFailed = errors.New("check failed")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Enforce annotation policy (for CI)",
	Long:  "check scans the tree and fails (exit 1) when policy rules are violated:\na total cap, a cap on annotations added since --base, or blocked tags.",
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

		var diffResult *types.DiffResult
		if checkBase != "" {
			diffResult, err = diff.Compute(cmd.Context(), scan, checkBase, root, cfg, gitcmd.CLI{})
			if err != nil {
				return err
			}
		}

		overrides := check.Overrides{BlockTags: checkBlockTags}
		if cmd.Flags().Changed("max") {
			overrides.Max = &checkMax
		}
		if cmd.Flags().Changed("max-new") {
			overrides.MaxNew = &checkMaxNew
		}

		result := check.Run(scan, diffResult, cfg, overrides)
		if err := output.Check(os.Stdout, result, format); err != nil {
			return err
		}
		if !result.Passed {
			return errCheckFailed
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().IntVar(&checkMax, "max", 0, "Fail when the total exceeds this count")
	checkCmd.Flags().IntVar(&checkMaxNew, "max-new", 0, "Fail when more than this many annotations were added since --base")
	checkCmd.Flags().StringVar(&checkBase, "base", "", "Git ref to diff against for --max-new")
	checkCmd.Flags().StringSliceVar(&checkBlockTags, "block-tags", nil, "Tags that must not appear at all (repeatable)")
}
