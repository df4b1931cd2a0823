package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/steveyegge/todoscan/internal/diff"
	"github.com/steveyegge/todoscan/internal/gitcmd"
	"github.com/steveyegge/todoscan/internal/output"
	"github.com/steveyegge/todoscan/internal/report"
	"github.com/steveyegge/todoscan/internal/scanner"
	"github.com/steveyegge/todoscan/internal/telemetry"
	"github.com/steveyegge/todoscan/internal/types"
)

var (
	statsBrief bool
	statsBase  string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate annotation statistics",
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

		if statsBrief {
			// Only the brief renders the trend, so the full breakdown
			// never pays for a base-ref diff.
			var diffResult *types.DiffResult
			if statsBase != "" {
				diffResult, err = diff.Compute(cmd.Context(), scan, statsBase, root, cfg, gitcmd.CLI{})
				if err != nil {
					return err
				}
			}
			return output.Brief(os.Stdout, report.Brief(scan, diffResult), format)
		}
		return output.Stats(os.Stdout, report.Stats(scan), format)
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsBrief, "brief", false, "One-screen digest instead of the full breakdown")
	statsCmd.Flags().StringVar(&statsBase, "base", "", "Git ref to derive the trend from (brief only)")
}
