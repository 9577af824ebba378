package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-routes/pkg/render"
	"github.com/mattsolo1/grove-routes/pkg/search"
	"github.com/mattsolo1/grove-routes/pkg/tree"
)

func NewListCmd() *cobra.Command {
	var (
		scenarioPath string
		grep         string
		kind         string
		routable     bool
		limit        int
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List nodes and their endpoints",
		Aliases: []string{"ls"},
		Long: `List the nodes of the project as a table of endpoints.

Examples:
  routes list                      # Every node
  routes list --routable           # Only nodes with an endpoint
  routes list --kind page          # Only pages
  routes list --grep :slug         # Paths or endpoints containing ":slug"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if kind != "" && !tree.Kind(kind).Valid() {
				return fmt.Errorf("unknown kind %q", kind)
			}

			svc, _, err := session(scenarioPath)
			if err != nil {
				return err
			}

			idx, err := search.NewIndex("")
			if err != nil {
				return fmt.Errorf("open route index: %w", err)
			}
			defer idx.Close()

			if err := idx.Rebuild(svc.Structure()); err != nil {
				return fmt.Errorf("build route index: %w", err)
			}

			entries, err := idx.Search(grep, &search.Options{
				Kind:         tree.Kind(kind),
				RoutableOnly: routable,
				Limit:        limit,
			})
			if err != nil {
				return err
			}

			if wantJSON(jsonOutput) {
				if entries == nil {
					entries = []*search.Entry{}
				}
				return outputJSON(cmd.OutOrStdout(), entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matching nodes")
				return nil
			}
			return render.Table(cmd.OutOrStdout(), entries)
		},
	}

	cmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "Scenario file to play before listing")
	cmd.Flags().StringVarP(&grep, "grep", "g", "", "Only nodes whose path or endpoint contains this text")
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Only nodes of this kind (directory, page, layout, route, file)")
	cmd.Flags().BoolVarP(&routable, "routable", "r", false, "Only nodes with an endpoint")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of rows (default 500)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
