//go:build ebiten

package main

import (
	"errors"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"proveit/internal/app"
	"proveit/internal/effects"
	"proveit/internal/render"
)

func newFireworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fireworks [effect]",
		Short: "Open the fireworks window",
		Long: `fireworks opens a window running an effect. Click to launch a firework.
Keys: space pause, n step, r reset, s reseed, 1 anchors, q quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "fireworks"
			if len(args) == 1 {
				name = args[0]
			}
			mute, _ := cmd.Flags().GetBool("mute")
			hud, _ := cmd.Flags().GetBool("hud")
			tps, _ := cmd.Flags().GetInt("tps")
			set, _ := cmd.Flags().GetStringToString("set")

			cfg, err := loadConfig(cmd, set)
			if err != nil {
				return err
			}
			e, err := effects.New(name, cfg)
			if err != nil {
				return err
			}
			log := newLogger(cmd, os.Stderr)
			popper := newPopper(mute, cfg.Seed, log)
			defer popper.Close()

			hudWidth := 0
			if hud {
				hudWidth = app.DefaultHUDWidth
			}
			game := app.New(e, app.Options{
				Seed:       cfg.Seed,
				HUDWidth:   hudWidth,
				Background: render.NightSky,
				Logger:     log,
				Popper:     popper,
			})

			size := e.Size()
			ebiten.SetWindowTitle("Prove It! - " + e.Name())
			ebiten.SetTPS(tps)
			ebiten.SetWindowSize(size.W+hudWidth, size.H)
			if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().Bool("mute", false, "Disable the launch sound")
	cmd.Flags().Bool("hud", true, "Show the parameter panel")
	cmd.Flags().Int("tps", 60, "Updates per second")
	cmd.Flags().StringToString("set", nil, "Override config values (e.g. --set birth_rate=5)")
	return cmd
}
