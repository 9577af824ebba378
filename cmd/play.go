package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-routes/pkg/render"
	"github.com/mattsolo1/grove-routes/pkg/scenario"
	"github.com/mattsolo1/grove-routes/pkg/tree"
)

func NewPlayCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "play <scenario.yaml>",
		Short: "Play a scenario and report every step",
		Long: `Play a scenario file against the default project. Each step is reported as
accepted or rejected, followed by the resulting tree.

A step that names a missing node or fails an expectation stops playback and
makes the command exit non-zero.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, results, runErr := session(args[0])
			if svc == nil {
				return runErr
			}

			out := cmd.OutOrStdout()
			if wantJSON(jsonOutput) {
				if err := outputJSON(out, struct {
					Results []scenario.Result `json:"results"`
					Tree    []*tree.Node      `json:"tree"`
				}{results, svc.Structure()}); err != nil {
					return err
				}
				return runErr
			}

			if err := render.Results(out, results); err != nil {
				return err
			}
			fmt.Fprintln(out)
			if err := render.Tree(out, svc.Structure(), render.Options{}); err != nil {
				return err
			}
			return runErr
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
