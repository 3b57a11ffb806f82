package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/nodegame/audio"
	"github.com/lixenwraith/nodegame/config"
	"github.com/lixenwraith/nodegame/core"
	"github.com/lixenwraith/nodegame/host"
	"github.com/lixenwraith/nodegame/interp"
)

var runCmd = &cobra.Command{
	Use:   "run [dir]",
	Short: "Build a project and run it in the terminal",
	Long: "Build a project and run it in the terminal.\n\n" +
		"P pauses, Escape or Ctrl-C quits. Keys held in the terminal count as\n" +
		"down while the terminal repeats them.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, res, err := buildProject(projectDir(args), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		applyRunFlags(cmd, p.Settings)

		sound := audio.NewSoundManager(p.Loader, p.Settings.AudioConfig(), nil)
		if err := sound.Initialize(); err != nil {
			log.Printf("audio unavailable, continuing silent: %v", err)
		}
		defer sound.Cleanup()

		in, err := interp.New(res, interp.Options{
			Loader:         p.Loader,
			Sound:          sound,
			LoopProtection: p.Settings.Interpreter.InfiniteLoopProtection,
			ShowHitboxes:   p.Settings.Interpreter.ShowHitboxes,
			SoundOn:        p.Settings.Engine.Sound,
			FPS:            p.Settings.Engine.FPSLimit,
			Seed:           uint64(time.Now().UnixNano()),
		})
		if err != nil {
			return err
		}

		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("init screen: %w", err)
		}
		screen.EnableMouse()
		core.SetCrashTerminal(screen)
		core.SetCrashReportDir(filepath.Join(p.Dir, "crash"))
		defer core.SetCrashTerminal(nil)
		defer func() {
			if r := recover(); r != nil {
				core.HandleCrash(r)
			}
		}()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		h := host.New(screen, in, host.Options{
			Name:       p.Name,
			CellWidth:  p.Settings.Render.CellWidth,
			CellHeight: p.Settings.Render.CellHeight,
		})
		runErr := h.Run(ctx)
		screen.Fini()

		for _, line := range in.Metrics().Lines() {
			log.Print(line)
		}
		fmt.Fprintln(cmd.OutOrStdout(), in.Metrics().Summary())

		if errors.Is(runErr, context.Canceled) {
			return nil
		}
		return runErr
	},
}

// applyRunFlags overrides project settings with explicitly set flags
func applyRunFlags(cmd *cobra.Command, s *config.Settings) {
	flags := cmd.Flags()
	if flags.Changed("fps") && flagFPS > 0 {
		s.Engine.FPSLimit = flagFPS
	}
	if flags.Changed("hitboxes") {
		s.Interpreter.ShowHitboxes = flagHitboxes
	}
	if flags.Changed("mute") {
		s.Engine.Sound = !flagMute
	}
	if flags.Changed("no-loop-protection") {
		s.Interpreter.InfiniteLoopProtection = !flagNoLoop
	}
}
