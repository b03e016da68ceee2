package render

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"proveit/internal/core"
)

var black = color.RGBA{A: 0xff}

type fixedEffect struct {
	sprites []core.Sprite
}

func (f *fixedEffect) Name() string { return "fixed" }
func (f *fixedEffect) Size() core.Size { return core.Size{W: 100, H: 100} }
func (f *fixedEffect) Resize(core.Size) {}
func (f *fixedEffect) Reset(int64) {}
func (f *fixedEffect) Tick(float64) core.TickStats { return core.TickStats{} }
func (f *fixedEffect) Draw(visit func(core.Sprite)) {
	for _, s := range f.sprites {
		visit(s)
	}
}

func TestDrawSpriteFillsCircle(t *testing.T) {
	c := NewCanvas(20, 20, black)
	c.DrawSprite(core.Sprite{Center: core.Vec2{X: 10, Y: 10}, Radius: 4, Opacity: 1, Color: color.RGBA{R: 255, A: 255}})
	if got := c.At(10, 10); got.R != 255 || got.G != 0 {
		t.Fatalf("centre = %+v, want pure red", got)
	}
	if got := c.At(0, 0); got != black {
		t.Fatalf("corner = %+v, want background", got)
	}
	if got := c.At(10, 16); got != black {
		t.Fatalf("outside radius = %+v, want background", got)
	}
}

func TestScreenBlendNeverDarkens(t *testing.T) {
	bg := color.RGBA{R: 40, G: 40, B: 40, A: 255}
	c := NewCanvas(8, 8, bg)
	s := core.Sprite{Center: core.Vec2{X: 4, Y: 4}, Radius: 2, Opacity: 0.5, Color: color.RGBA{B: 200, A: 255}}
	c.DrawSprite(s)
	first := c.At(4, 4)
	if first.R < bg.R || first.B <= bg.B {
		t.Fatalf("blend darkened or missed: %+v", first)
	}
	c.DrawSprite(s)
	if second := c.At(4, 4); second.B <= first.B {
		t.Fatalf("overlap did not brighten: %+v then %+v", first, second)
	}
}

func TestInvisibleSpritesSkipped(t *testing.T) {
	c := NewCanvas(8, 8, black)
	c.DrawSprite(core.Sprite{Center: core.Vec2{X: 4, Y: 4}, Radius: 0, Opacity: 1, Color: color.RGBA{R: 255, A: 255}})
	c.DrawSprite(core.Sprite{Center: core.Vec2{X: 4, Y: 4}, Radius: 3, Opacity: 0, Color: color.RGBA{R: 255, A: 255}})
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if c.At(x, y) != black {
				t.Fatalf("pixel %d,%d painted", x, y)
			}
		}
	}
}

func TestTinySpriteStillLightsAPixel(t *testing.T) {
	c := NewCanvas(10, 10, black)
	c.DrawSprite(core.Sprite{Center: core.Vec2{X: 5.5, Y: 5.5}, Radius: 0.3, Opacity: 1, Color: color.RGBA{G: 255, A: 255}})
	if c.At(5, 5).G == 0 {
		t.Fatal("sub-pixel sprite vanished")
	}
}

func TestFitScalesEffectPoints(t *testing.T) {
	c := NewCanvas(50, 50, black)
	c.Fit(core.Size{W: 100, H: 100})
	c.DrawSprite(core.Sprite{Center: core.Vec2{X: 90, Y: 90}, Radius: 4, Opacity: 1, Color: color.RGBA{R: 255, A: 255}})
	if c.At(45, 45).R == 0 {
		t.Fatal("scaled sprite missing at 45,45")
	}
	if c.At(10, 10) != black {
		t.Fatal("unexpected paint at 10,10")
	}
}

func TestDrawClearsAndCells(t *testing.T) {
	c := NewCanvas(4, 4, black)
	c.DrawSprite(core.Sprite{Center: core.Vec2{X: 0.5, Y: 3.5}, Radius: 1, Opacity: 1, Color: color.RGBA{R: 255, A: 255}})
	c.Draw(&fixedEffect{sprites: []core.Sprite{
		{Center: core.Vec2{X: 2.5, Y: 0.5}, Radius: 0.5, Opacity: 1, Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	}})
	if c.At(0, 3) != black {
		t.Fatal("Draw did not clear the previous frame")
	}
	top, bottom := c.Cell(2, 0)
	if top.R == 0 || bottom != black {
		t.Fatalf("cell halves = %+v / %+v", top, bottom)
	}
}

func TestEncodePNG(t *testing.T) {
	c := NewCanvas(6, 3, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 3 {
		t.Fatalf("bounds = %v", b)
	}
	r, g, b, a := img.At(5, 2).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 || a>>8 != 255 {
		t.Fatalf("pixel = %d %d %d %d", r>>8, g>>8, b>>8, a>>8)
	}
}
