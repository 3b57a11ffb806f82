package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/nodegame/project"
)

var initCmd = &cobra.Command{
	Use:   "init <dir>",
	Short: "Create a project with a playable demo graph",
	Long: "Create a project directory containing a demo graph, default settings\n" +
		"and a starter sprite texture. The directory must not hold a graph yet.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := project.Init(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created project %s in %s\n", p.Name, p.Dir)
		fmt.Fprintf(cmd.OutOrStdout(), "Run it with: %s run %s\n", appName, args[0])
		return nil
	},
}
