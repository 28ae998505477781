package raster

import (
	"image/color"
	"testing"

	"github.com/olivierh59500/particles-background/backdrop"
)

var white = color.NRGBA{255, 255, 255, 255}

func alphaAt(c *Canvas, x, y int) uint8 {
	return c.Image().RGBAAt(x, y).A
}

func TestNewScalesPixels(t *testing.T) {
	c := New(800, 600, 0.125)
	if b := c.Image().Bounds(); b.Dx() != 100 || b.Dy() != 75 {
		t.Errorf("Expected 100x75 pixels, got %v", b)
	}
	if New(10, 10, 0).Scale() != 1 {
		t.Error("Expected non-positive scale to default to 1")
	}
}

func TestFillRectAndClear(t *testing.T) {
	c := New(20, 20, 1)
	c.FillRect(5, 5, 10, 10, backdrop.Solid(white))

	if alphaAt(c, 10, 10) != 255 {
		t.Error("Expected the rect interior filled")
	}
	if alphaAt(c, 2, 2) != 0 || alphaAt(c, 16, 16) != 0 {
		t.Error("Expected pixels outside the rect untouched")
	}

	c.Clear()
	if alphaAt(c, 10, 10) != 0 {
		t.Error("Expected Clear to reset every pixel")
	}
}

func TestFillRectClipsToBounds(t *testing.T) {
	c := New(10, 10, 1)
	c.FillRect(-50, -50, 200, 200, backdrop.Solid(white))
	if alphaAt(c, 0, 0) != 255 || alphaAt(c, 9, 9) != 255 {
		t.Error("Expected an oversized rect to cover the canvas")
	}
}

func TestBlendIsSourceOver(t *testing.T) {
	c := New(4, 4, 1)
	half := color.NRGBA{255, 0, 0, 128}
	c.FillRect(0, 0, 4, 4, backdrop.Solid(half))
	c.FillRect(0, 0, 4, 4, backdrop.Solid(half))
	a := alphaAt(c, 1, 1)
	if a < 190 || a > 193 {
		t.Errorf("Expected ~75%% coverage after two half layers, got %d", a)
	}
}

func TestFillCircle(t *testing.T) {
	c := New(40, 40, 1)
	c.FillCircle(20, 20, 10, backdrop.Solid(white))
	if alphaAt(c, 20, 20) != 255 {
		t.Error("Expected centre filled")
	}
	if alphaAt(c, 12, 12) != 0 {
		t.Error("Expected bounding-box corner outside the circle")
	}
}

func TestFillCircleRadialGradient(t *testing.T) {
	c := New(40, 40, 1)
	p := backdrop.RadialGradient(20, 20, 15,
		backdrop.Stop{Offset: 0, Color: white},
		backdrop.Stop{Offset: 1, Color: backdrop.Transparent},
	)
	c.FillCircle(20, 20, 15, p)
	inner, outer := alphaAt(c, 20, 20), alphaAt(c, 31, 20)
	if inner <= outer {
		t.Errorf("Expected alpha to fall off outward, got %d then %d", inner, outer)
	}
}

func TestTinyCircleVisibleAtCoarseScale(t *testing.T) {
	c := New(80, 80, 0.125)
	c.FillCircle(40, 40, 0.5, backdrop.Solid(white))
	if alphaAt(c, 5, 5) == 0 {
		t.Error("Expected a sub-pixel star to still light its pixel")
	}
}

func TestStrokeLine(t *testing.T) {
	c := New(50, 50, 1)
	c.StrokeLine(5, 25, 45, 25, 3, backdrop.Solid(white))
	if alphaAt(c, 25, 25) != 255 {
		t.Error("Expected the midpoint stroked")
	}
	if alphaAt(c, 25, 30) != 0 {
		t.Error("Expected pixels beyond the half width untouched")
	}
}

func TestFillAreaBelowCrest(t *testing.T) {
	c := New(100, 100, 1)
	pts := []backdrop.Vec{{X: 0, Y: 60}, {X: 50, Y: 40}, {X: 100, Y: 60}}
	c.FillArea(pts, 100, backdrop.Solid(white))

	if alphaAt(c, 50, 45) != 255 || alphaAt(c, 50, 99) != 255 {
		t.Error("Expected the area under the crest filled")
	}
	if alphaAt(c, 50, 35) != 0 || alphaAt(c, 5, 50) != 0 {
		t.Error("Expected the area above the crest untouched")
	}
}

func TestDrawTextMarksPixels(t *testing.T) {
	c := New(120, 40, 1)
	c.DrawText("Go", 10, 25, backdrop.TextStyle{Size: 12, Color: white, Alpha: 1, Bold: true, Glow: 15})

	lit := 0
	b := c.Image().Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if alphaAt(c, x, y) > 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("Expected text to mark pixels")
	}
}

func TestFlatten(t *testing.T) {
	c := New(4, 4, 1)
	c.FillRect(0, 0, 2, 4, backdrop.Solid(white))
	bg := color.NRGBA{0, 0, 0, 255}

	out := c.Flatten(bg, 0.5)
	lit, dark := out.RGBAAt(0, 0), out.RGBAAt(3, 0)
	if lit.A != 255 || dark.A != 255 {
		t.Error("Expected an opaque result")
	}
	if lit.R < 126 || lit.R > 129 {
		t.Errorf("Expected white at half opacity over black, got %v", lit)
	}
	if dark.R != 0 {
		t.Errorf("Expected background where nothing was drawn, got %v", dark)
	}
	if got := c.FlatAt(100, 100, bg, 1); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("Expected background outside bounds, got %v", got)
	}
}

func TestScenesRenderOnCanvas(t *testing.T) {
	for _, theme := range []backdrop.Theme{backdrop.ThemeNight, backdrop.ThemeGlyphs} {
		c := New(640, 480, 1)
		s := backdrop.NewScene(theme, 640, 480, backdrop.NewRand(1))
		f := backdrop.Frame{Time: 1, Width: 640, Height: 480}
		for i := 0; i < 30; i++ {
			c.Clear()
			s.Step(f)
			s.Render(c, f)
		}
		lit := false
		for _, v := range c.Image().Pix {
			if v != 0 {
				lit = true
				break
			}
		}
		if !lit {
			t.Errorf("%s: expected the scene to draw something", theme)
		}
	}
}
