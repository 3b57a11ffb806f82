package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/lixenwraith/nodegame/config"
	"github.com/lixenwraith/nodegame/graph"
	"github.com/lixenwraith/nodegame/project"
	"github.com/lixenwraith/nodegame/vmath"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestInitThenBuild(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "space")

	out, err := execute(t, "init", dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out, "Created project space") {
		t.Errorf("Expected init message, got %q", out)
	}

	out, err = execute(t, "build", dir)
	if err != nil {
		t.Fatalf("build: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Built space:") {
		t.Errorf("Expected build summary, got %q", out)
	}
}

func TestBuildReportsErrors(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "broken")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	// A sprite whose texture does not exist
	g := graph.New()
	id, err := g.AddNode(graph.KindCreateSprite, vmath.Vec2{})
	if err != nil {
		t.Fatal(err)
	}
	g.SetText(g.InputPin(id, 1).ID, "missing.png")
	if err := g.SaveFile(filepath.Join(dir, project.GraphFile)); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "build", dir)
	if !errors.Is(err, errBuildFailed) {
		t.Fatalf("Expected errBuildFailed, got %v\n%s", err, out)
	}
	if !strings.Contains(out, "[ERROR]") {
		t.Errorf("Expected error lines in output, got %q", out)
	}
}

func TestBuildMissingProject(t *testing.T) {
	if _, err := execute(t, "build", filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Expected error for missing project")
	}
}

func TestApplyRunFlags(t *testing.T) {
	t.Cleanup(func() {
		flagFPS, flagHitboxes, flagMute, flagNoLoop = 0, false, false, false
		runCmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	})

	s := config.Default()
	if err := runCmd.Flags().Parse([]string{"--fps", "30", "--mute", "--hitboxes"}); err != nil {
		t.Fatal(err)
	}
	applyRunFlags(runCmd, s)

	if s.Engine.FPSLimit != 30 {
		t.Errorf("Expected fps 30, got %v", s.Engine.FPSLimit)
	}
	if s.Engine.Sound {
		t.Error("Expected sound disabled by --mute")
	}
	if !s.Interpreter.ShowHitboxes {
		t.Error("Expected hitboxes enabled")
	}
	if !s.Interpreter.InfiniteLoopProtection {
		t.Error("Expected loop protection to keep its setting")
	}
}

func TestFatalBuildWritesCrashReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fatal")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	g := graph.New()
	g.Links = append(g.Links, graph.Link{Input: 999, Output: 998})
	if err := g.SaveFile(filepath.Join(dir, project.GraphFile)); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "build", dir)
	if !errors.Is(err, errBuildFailed) {
		t.Fatalf("Expected errBuildFailed, got %v", err)
	}
	if !strings.Contains(out, "Crash report written") {
		t.Errorf("Expected crash report notice, got %q", out)
	}
	reports, _ := filepath.Glob(filepath.Join(dir, "crash", "crash-*.txt"))
	if len(reports) != 1 {
		t.Errorf("Expected one crash report, got %v", reports)
	}
}
