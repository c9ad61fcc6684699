package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/polkaguard/internal/script"
)

func replayCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "replay FILE",
		Short: "Run a recorded list of wizard events and print the resulting view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := script.Load(args[0])
			if err != nil {
				return err
			}
			if strict {
				sc.StopOnError = true
			}
			report, err := script.Run(cmd.Context(), deps.NewWizard(), sc)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(report)
			if err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			if sc.StopOnError && report.Failed() {
				return fmt.Errorf("replay stopped on error")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "stop at the first failing event and exit non-zero")
	return cmd
}
