package backdrop

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Transparent is the zero colour, matching a CSS "transparent" stop.
var Transparent = color.NRGBA{}

// RGBA builds a straight-alpha colour from 8-bit channels and a [0,1] alpha.
func RGBA(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{r, g, b, alpha8(a)}
}

// WithAlpha replaces the alpha of c.
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = alpha8(a)
	return c
}

func alpha8(a float64) uint8 {
	return uint8(math.Round(clamp01(a) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// mustHex parses a palette entry. Palettes are compiled in, so a bad entry
// is a programming error.
func mustHex(s string) color.NRGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{r, g, b, 255}
}

type GradientKind int

const (
	Linear GradientKind = iota
	Radial
)

// Stop is a colour at an offset in [0,1] along a gradient.
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// Gradient is a linear gradient from (X0,Y0) to (X1,Y1), or a radial one
// centred on (X0,Y0) reaching its last stop at radius R.
type Gradient struct {
	Kind           GradientKind
	X0, Y0, X1, Y1 float64
	R              float64
	Stops          []Stop
}

// Paint is a solid colour unless Gradient is set.
type Paint struct {
	Color    color.NRGBA
	Gradient *Gradient
}

func Solid(c color.NRGBA) Paint {
	return Paint{Color: c}
}

func LinearGradient(x0, y0, x1, y1 float64, stops ...Stop) Paint {
	return Paint{Gradient: &Gradient{Kind: Linear, X0: x0, Y0: y0, X1: x1, Y1: y1, Stops: stops}}
}

func RadialGradient(cx, cy, r float64, stops ...Stop) Paint {
	return Paint{Gradient: &Gradient{Kind: Radial, X0: cx, Y0: cy, R: r, Stops: stops}}
}

// At returns the paint colour at a point.
func (p Paint) At(x, y float64) color.NRGBA {
	if p.Gradient == nil {
		return p.Color
	}
	return p.Gradient.ColorAt(p.Gradient.Offset(x, y))
}

// Offset projects a point onto the gradient, clamped to [0,1].
func (g *Gradient) Offset(x, y float64) float64 {
	switch g.Kind {
	case Radial:
		if g.R <= 0 {
			return 1
		}
		return clamp01(math.Hypot(x-g.X0, y-g.Y0) / g.R)
	default:
		dx, dy := g.X1-g.X0, g.Y1-g.Y0
		l2 := dx*dx + dy*dy
		if l2 == 0 {
			return 0
		}
		return clamp01(((x-g.X0)*dx + (y-g.Y0)*dy) / l2)
	}
}

// ColorAt interpolates between the stops around t. A fully transparent stop
// takes the hue of its neighbour so fades do not darken, as on a 2D canvas.
func (g *Gradient) ColorAt(t float64) color.NRGBA {
	n := len(g.Stops)
	if n == 0 {
		return Transparent
	}
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Color
	}
	for i := 1; i < n; i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return mix(a.Color, b.Color, (t-a.Offset)/span)
	}
	return g.Stops[n-1].Color
}

func mix(a, b color.NRGBA, t float64) color.NRGBA {
	switch {
	case a.A == 0:
		a = color.NRGBA{b.R, b.G, b.B, 0}
	case b.A == 0:
		b = color.NRGBA{a.R, a.G, a.B, 0}
	}
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendRgb(cb, t).Clamped().RGB255()
	al := float64(a.A) + (float64(b.A)-float64(a.A))*t
	return color.NRGBA{r, g, bl, uint8(math.Round(al))}
}
