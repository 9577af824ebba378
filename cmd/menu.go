package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewMenuCmd() *cobra.Command {
	var (
		scenarioPath string
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:   "menu <path>",
		Short: "Show the add and convert options offered for a folder",
		Long: `Show the context menu of a folder: which items can be added inside it and
which route types it can be converted to.

Examples:
  routes menu /app
  routes menu /app/blog -s blog.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := session(scenarioPath)
			if err != nil {
				return err
			}

			node, err := svc.FindByPath(args[0])
			if err != nil {
				return err
			}
			menu, err := svc.Menu(node.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if wantJSON(jsonOutput) {
				return outputJSON(out, menu)
			}
			if len(menu) == 0 {
				fmt.Fprintf(out, "No options for %s\n", args[0])
				return nil
			}
			for _, opt := range menu {
				fmt.Fprintf(out, "%-8s %s\n", opt.Action, opt.Label)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "Scenario file to play first")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
