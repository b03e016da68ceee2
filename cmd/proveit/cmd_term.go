package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"proveit/internal/audio"
	"proveit/internal/effects"
	"proveit/internal/render"
	"proveit/internal/term"
)

func newTermCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "term [effect]",
		Short: "Show an effect in the terminal",
		Long: `term draws an effect with half-block characters. Click to launch a
firework. Keys: space pause, n step, r reset, s reseed, q quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "fireworks"
			if len(args) == 1 {
				name = args[0]
			}
			fps, _ := cmd.Flags().GetInt("fps")
			mute, _ := cmd.Flags().GetBool("mute")
			logFile, _ := cmd.Flags().GetString("log-file")
			set, _ := cmd.Flags().GetStringToString("set")

			cfg, err := loadConfig(cmd, set)
			if err != nil {
				return err
			}
			e, err := effects.New(name, cfg)
			if err != nil {
				return err
			}

			// The screen owns stdout, so logs go to a file or nowhere.
			var w io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer f.Close()
				w = f
			}
			log := newLogger(cmd, w)

			popper := newPopper(mute, cfg.Seed, log)
			defer popper.Close()

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("failed to create screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("failed to initialize screen: %w", err)
			}
			defer screen.Fini()
			screen.EnableMouse()
			screen.HideCursor()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			host := term.New(screen, e, term.Options{
				FPS:        fps,
				Seed:       cfg.Seed,
				Background: render.NightSky,
				Logger:     log,
				Popper:     popper,
			})
			if err := host.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}
	cmd.Flags().Int("fps", 30, "Frames per second")
	cmd.Flags().Bool("mute", false, "Disable the launch sound")
	cmd.Flags().String("log-file", "", "Write logs to this file")
	cmd.Flags().StringToString("set", nil, "Override config values (e.g. --set birth_rate=5)")
	return cmd
}

// newPopper opens the audio device unless muted. Audio is optional: on
// failure the host runs silent with a nil popper.
func newPopper(mute bool, seed int64, log *slog.Logger) *audio.Popper {
	if mute {
		return nil
	}
	p := audio.NewPopper(0.5, seed)
	if err := p.Init(); err != nil {
		log.Warn("audio unavailable, running muted", "error", err)
		return nil
	}
	return p
}
