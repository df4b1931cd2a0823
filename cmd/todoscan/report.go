package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/steveyegge/todoscan/internal/gitcmd"
	"github.com/steveyegge/todoscan/internal/output"
	"github.com/steveyegge/todoscan/internal/report"
	"github.com/steveyegge/todoscan/internal/scanner"
	"github.com/steveyegge/todoscan/internal/telemetry"
)

var reportHistory int

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a full annotation report",
	Long:  "report combines statistics, hotspots, and a sampled per-commit history\ninto one document. Text output renders the report as styled markdown.",
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

		result := report.Full(cmd.Context(), scan, root, cfg, reportHistory, gitcmd.CLI{})
		return output.Report(os.Stdout, result, format)
	},
}

func init() {
	reportCmd.Flags().IntVar(&reportHistory, "history", 10, "Number of commits to sample for the trend (0 disables)")
}
