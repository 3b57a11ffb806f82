package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build [dir]",
	Short: "Check that a project graph builds",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		p, res, err := buildProject(projectDir(args), out)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Built %s: %d nodes, %d values, %d components\n",
			p.Name, len(res.Program.Nodes), res.Store.Len(), res.Scene.Len())
		return nil
	},
}
