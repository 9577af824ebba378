package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-routes/pkg/render"
)

func NewTreeCmd() *cobra.Command {
	var (
		scenarioPath string
		jsonOutput   bool
		showIDs      bool
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the project tree with derived endpoints",
		Long: `Print the project tree with the endpoint derived for every routable node.

Examples:
  routes tree                    # The default project
  routes tree -s blog.yaml       # The project after playing a scenario
  routes tree --json             # Full node data`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := session(scenarioPath)
			if err != nil {
				return err
			}

			roots := svc.Structure()
			if wantJSON(jsonOutput) {
				return outputJSON(cmd.OutOrStdout(), roots)
			}
			return render.Tree(cmd.OutOrStdout(), roots, render.Options{ShowIDs: showIDs})
		},
	}

	cmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "Scenario file to play before printing")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&showIDs, "ids", false, "Show node ids")

	return cmd
}
