package core

import (
	"image/color"
	"sort"
)

// Size describes the dimensions of a drawing canvas in points.
type Size struct {
	W int
	H int
}

// Vec2 is a 2D point or vector.
type Vec2 struct {
	X float64
	Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }

// Sprite is everything a host needs to paint one visible particle as a
// faded circle.
type Sprite struct {
	Center  Vec2
	Radius  float64
	Opacity float64
	Color   color.RGBA
}

// TickStats summarises what a single Tick did to the top-level emitter.
type TickStats struct {
	Delta   float64
	Spawned int
	Pruned  int
	Live    int
}

// Effect defines the contract every particle effect exposes to its hosts.
type Effect interface {
	Name() string
	Size() Size
	Resize(s Size)
	Reset(seed int64)
	Tick(now float64) TickStats
	Draw(visit func(Sprite))
}

// Burster is implemented by effects that can launch an emitter on demand,
// for example at a mouse click.
type Burster interface {
	Burst(pos Vec2) bool
}

// Factory constructs an Effect using an optional configuration map.
type Factory func(cfg map[string]string) Effect

var effects = map[string]Factory{}

// Register adds an effect factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	effects[name] = f
}

// Effects exposes the registry of available effect factories.
func Effects() map[string]Factory {
	return effects
}

// Names returns the registered effect names in sorted order.
func Names() []string {
	names := make([]string, 0, len(effects))
	for name := range effects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
