package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/steveyegge/todoscan/internal/config"
	"github.com/steveyegge/todoscan/internal/debug"
	"github.com/steveyegge/todoscan/internal/output"
	"github.com/steveyegge/todoscan/internal/telemetry"
	"github.com/steveyegge/todoscan/internal/ui"
)

var (
	rootDir     string
	formatFlag  string
	verboseFlag bool
	quietFlag   bool
	noColorFlag bool

	// Signal-aware context for graceful cancellation
	rootCtx    context.Context
	rootCancel context.CancelFunc
)

var rootCmd = &cobra.Command{
	Use:           "todoscan",
	Short:         "Track TODO/FIXME annotations across a source tree",
	Long:          "todoscan finds TODO/FIXME-style annotations, diffs them against git refs,\nand watches the tree for live changes.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verboseFlag {
			debug.SetVerbose(true)
		}
		if quietFlag {
			debug.SetQuiet(true)
		}
		if noColorFlag || !ui.ShouldUseColor() {
			ui.DisableColor()
		}
		if _, err := output.ParseFormat(formatFlag); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", ".", "Directory to scan")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "text", "Output format (text|json|yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-essential output (errors only)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveRoot makes the --root flag absolute and verifies it exists.
func resolveRoot() (string, error) {
	abs, err := filepath.Abs(rootDir)
	if err != nil {
		return "", fmt.Errorf("resolving root %q: %w", rootDir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("root %q: %w", rootDir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("root %q is not a directory", rootDir)
	}
	return abs, nil
}

// setup loads the shared per-command state: the resolved root, its
// configuration, and the parsed output format.
func setup() (string, *config.Config, output.Format, error) {
	root, err := resolveRoot()
	if err != nil {
		return "", nil, "", err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return "", nil, "", err
	}
	format, err := output.ParseFormat(formatFlag)
	if err != nil {
		return "", nil, "", err
	}
	return root, cfg, format, nil
}

func main() {
	os.Exit(run())
}

// run keeps os.Exit out of the deferred path so telemetry flushes and
// the signal context is released before the process dies.
func run() int {
	rootCtx, rootCancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer rootCancel()

	if err := telemetry.Init(rootCtx, "todoscan", Version); err != nil {
		debug.Logf("telemetry init failed: %v\n", err)
	}
	defer func() {
		if err := telemetry.Shutdown(context.Background()); err != nil {
			debug.Logf("telemetry shutdown failed: %v\n", err)
		}
	}()

	if err := rootCmd.ExecuteContext(rootCtx); err != nil {
		// Policy failures already rendered their verdict; anything
		// else gets the generic error line.
		if !errors.Is(err, errCheckFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}
