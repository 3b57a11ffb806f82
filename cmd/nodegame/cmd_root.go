package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/nodegame/core"
	"github.com/lixenwraith/nodegame/lower"
	"github.com/lixenwraith/nodegame/project"
)

var errBuildFailed = errors.New("build failed")

// logFile is the open debug log, if any
var logFile *os.File

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Build and run node-graph game projects",
	Long: "Build and run node-graph game projects in the terminal.\n\n" +
		"A project is a directory holding " + project.GraphFile + ", a <name>.yaml\n" +
		"settings file and the images and sounds the graph references.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logFile = setupLogging(flagDebug)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLog()
	},
}

func closeLog() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// projectDir returns the directory argument or the working directory
func projectDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// buildProject opens dir and lowers its graph, writing the build log to w.
// Builds with errors return errBuildFailed.
func buildProject(dir string, w io.Writer) (*project.Project, *lower.Result, error) {
	p, err := project.Open(dir)
	if err != nil {
		return nil, nil, err
	}
	if p.Settings.Engine.DebugLog && logFile == nil {
		logFile = setupLogging(true)
	}

	_, res, err := p.Build()
	if err != nil {
		return nil, nil, err
	}
	entries := res.Log.Drain()
	printLog(w, entries)
	if res.Failed {
		if path, err := core.WriteCrashReport(filepath.Join(p.Dir, "crash"), "fatal build failure", entries, nil); err == nil {
			fmt.Fprintf(w, "Crash report written to %s\n", path)
		}
	}
	if !res.Usable() {
		return p, res, fmt.Errorf("%w: %d errors", errBuildFailed, len(res.Errors))
	}
	return p, res, nil
}

func printLog(w io.Writer, entries []core.LogEntry) {
	for _, e := range entries {
		fmt.Fprintf(w, "[%s] %s\n", e.Level, e.Message)
	}
}
