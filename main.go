package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-routes/cmd"
	"github.com/mattsolo1/grove-routes/cmd/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "routes",
		Short: "Simulate App-Router file-system routing",
		Long: `routes keeps a virtual Next.js App-Router project in memory, derives the
endpoint of every page, layout and route handler, and enforces the rules that
decide which folders and files may be added, renamed or converted.

Sessions are scripted as YAML scenarios and played with "routes play".`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// This runs once before any subcommand
			config.InitConfig()
		},
	}
	config.AddGlobalFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(cmd.NewTreeCmd())
	rootCmd.AddCommand(cmd.NewPlayCmd())
	rootCmd.AddCommand(cmd.NewListCmd())
	rootCmd.AddCommand(cmd.NewMenuCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
