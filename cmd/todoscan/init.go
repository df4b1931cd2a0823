package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/steveyegge/todoscan/internal/config"
)

var initYes bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a .todoscan.toml config for this project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := resolveRoot()
		if err != nil {
			return err
		}

		path := filepath.Join(root, ".todoscan.toml")
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}

		cfg := config.Default()
		for _, dir := range detectBuildDirs(root) {
			if !contains(cfg.ExcludeDirs, dir) {
				cfg.ExcludeDirs = append(cfg.ExcludeDirs, dir)
			}
		}

		if !initYes {
			confirmed := false
			form := huh.NewForm(huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Write %s?", path)).
					Affirmative("Write").
					Negative("Cancel").
					Value(&confirmed),
			))
			if err := form.Run(); err != nil {
				if err == huh.ErrUserAborted {
					return nil
				}
				return err
			}
			if !confirmed {
				return nil
			}
		}

		if err := cfg.Save(root); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Write without prompting")
}

// detectBuildDirs reports the build output directories for whatever
// toolchains the project root declares.
func detectBuildDirs(root string) []string {
	var dirs []string
	markers := []struct {
		file string
		dir  string
	}{
		{"Cargo.toml", "target"},
		{"package.json", "node_modules"},
		{"go.mod", "vendor"},
		{"pyproject.toml", ".venv"},
		{"build.gradle", "build"},
	}
	for _, m := range markers {
		if _, err := os.Stat(filepath.Join(root, m.file)); err == nil {
			dirs = append(dirs, m.dir)
		}
	}
	return dirs
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
