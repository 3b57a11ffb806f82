// Command nodegame builds and runs node-graph game projects in the terminal
package main

import (
	"fmt"
	"os"
)

const appName = "nodegame"

var (
	flagDebug    bool
	flagFPS      float64
	flagHitboxes bool
	flagMute     bool
	flagNoLoop   bool
)

func init() {
	rootCmd.AddCommand(initCmd, buildCmd, runCmd)

	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"write the process log to logs/"+logFileName)

	runCmd.Flags().Float64Var(&flagFPS, "fps", 0, "frame rate limit (overrides the project setting)")
	runCmd.Flags().BoolVar(&flagHitboxes, "hitboxes", false, "draw hitbox outlines")
	runCmd.Flags().BoolVar(&flagMute, "mute", false, "start with sound disabled")
	runCmd.Flags().BoolVar(&flagNoLoop, "no-loop-protection", false, "let long loops run to completion")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err.Error())
		os.Exit(1)
	}
}
