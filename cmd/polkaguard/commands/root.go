package commands

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kingrea/polkaguard/internal/app"
	"github.com/kingrea/polkaguard/internal/tui"
)

var (
	projectDir string
	deps       *app.App
)

// Execute builds the command tree and runs it against os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "polkaguard",
		Short:         "Submit zero-knowledge audit proofs for community review",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			if projectDir == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("get working directory: %w", err)
				}
				projectDir = cwd
			}
			abs, err := filepath.Abs(projectDir)
			if err != nil {
				return err
			}
			deps, err = app.New(abs)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(
				tui.NewApp(deps),
				tea.WithAltScreen(), // Use alternate screen buffer (like vim does)
			)
			// Run blocks until the user quits
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run TUI: %w", err)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&projectDir, "project-dir", "C", "", "project directory holding .polkaguard (default: current directory)")

	root.AddCommand(replayCmd(), versionCmd())
	return root
}
