package app

import (
	"image/color"
	"log/slog"

	"proveit/internal/audio"
)

// Options configure a Game.
type Options struct {
	Seed       int64
	HUDWidth   int
	Background color.RGBA
	Logger     *slog.Logger
	Popper     *audio.Popper
}

// DefaultHUDWidth is the parameter panel width used by the fireworks window.
const DefaultHUDWidth = 260
