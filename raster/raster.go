// Package raster is a software backdrop.Surface over an image.RGBA. It backs
// the terminal front-end, PNG snapshots and the frame server.
package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/olivierh59500/particles-background/backdrop"
)

var _ backdrop.Surface = (*Canvas)(nil)

// Canvas draws in surface coordinates and samples them into pixels at
// scale pixels per unit.
type Canvas struct {
	img   *image.RGBA
	scale float64
	face  font.Face
}

// New returns a cleared canvas for a width x height surface.
func New(width, height int, scale float64) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	pw := int(math.Ceil(float64(max(width, 0)) * scale))
	ph := int(math.Ceil(float64(max(height, 0)) * scale))
	return &Canvas{
		img:   image.NewRGBA(image.Rect(0, 0, pw, ph)),
		scale: scale,
		face:  basicfont.Face7x13,
	}
}

// Image exposes the premultiplied pixels.
func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Scale() float64 { return c.scale }

func (c *Canvas) Clear() {
	clear(c.img.Pix)
}

// blend composites col over the pixel (source-over).
func (c *Canvas) blend(px, py int, col color.NRGBA) {
	if col.A == 0 {
		return
	}
	i := c.img.PixOffset(px, py)
	p := c.img.Pix[i : i+4 : i+4]
	a := uint32(col.A)
	inv := 255 - a
	p[0] = uint8((uint32(col.R)*a + uint32(p[0])*inv) / 255)
	p[1] = uint8((uint32(col.G)*a + uint32(p[1])*inv) / 255)
	p[2] = uint8((uint32(col.B)*a + uint32(p[2])*inv) / 255)
	p[3] = uint8((a*255 + uint32(p[3])*inv) / 255)
}

// center is the surface coordinate sampled for a pixel.
func (c *Canvas) center(px, py int) (float64, float64) {
	return (float64(px) + 0.5) / c.scale, (float64(py) + 0.5) / c.scale
}

// span converts a surface-space box to clipped pixel bounds [x0,x1)x[y0,y1).
func (c *Canvas) span(x0, y0, x1, y1 float64) (int, int, int, int) {
	b := c.img.Bounds()
	px0 := max(int(math.Floor(x0*c.scale)), b.Min.X)
	py0 := max(int(math.Floor(y0*c.scale)), b.Min.Y)
	px1 := min(int(math.Ceil(x1*c.scale)), b.Max.X)
	py1 := min(int(math.Ceil(y1*c.scale)), b.Max.Y)
	return px0, py0, px1, py1
}

// minReach keeps sub-pixel shapes visible at coarse scales.
func (c *Canvas) minReach() float64 {
	return 0.75 / c.scale
}

func (c *Canvas) FillRect(x, y, w, h float64, p backdrop.Paint) {
	px0, py0, px1, py1 := c.span(x, y, x+w, y+h)
	for py := py0; py < py1; py++ {
		for px := px0; px < px1; px++ {
			lx, ly := c.center(px, py)
			if lx < x || lx > x+w || ly < y || ly > y+h {
				continue
			}
			c.blend(px, py, p.At(lx, ly))
		}
	}
}

func (c *Canvas) FillCircle(cx, cy, r float64, p backdrop.Paint) {
	if r <= 0 {
		return
	}
	reach := math.Max(r, c.minReach())
	px0, py0, px1, py1 := c.span(cx-reach, cy-reach, cx+reach, cy+reach)
	r2 := reach * reach
	for py := py0; py < py1; py++ {
		for px := px0; px < px1; px++ {
			lx, ly := c.center(px, py)
			dx, dy := lx-cx, ly-cy
			if dx*dx+dy*dy > r2 {
				continue
			}
			c.blend(px, py, p.At(lx, ly))
		}
	}
}

func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, p backdrop.Paint) {
	half := math.Max(width/2, c.minReach())
	px0, py0, px1, py1 := c.span(math.Min(x0, x1)-half, math.Min(y0, y1)-half,
		math.Max(x0, x1)+half, math.Max(y0, y1)+half)
	for py := py0; py < py1; py++ {
		for px := px0; px < px1; px++ {
			lx, ly := c.center(px, py)
			if segmentDistance(lx, ly, x0, y0, x1, y1) > half {
				continue
			}
			c.blend(px, py, p.At(lx, ly))
		}
	}
}

func (c *Canvas) StrokePolyline(pts []backdrop.Vec, width float64, p backdrop.Paint) {
	for i := 1; i < len(pts); i++ {
		c.StrokeLine(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, width, p)
	}
}

func (c *Canvas) FillArea(pts []backdrop.Vec, base float64, p backdrop.Paint) {
	if len(pts) < 2 {
		return
	}
	b := c.img.Bounds()
	px0, _, px1, _ := c.span(pts[0].X, 0, pts[len(pts)-1].X, 0)
	seg := 0
	for px := px0; px < px1; px++ {
		lx, _ := c.center(px, 0)
		for seg < len(pts)-2 && pts[seg+1].X < lx {
			seg++
		}
		a, z := pts[seg], pts[seg+1]
		top := a.Y
		if z.X != a.X {
			top = a.Y + (z.Y-a.Y)*(lx-a.X)/(z.X-a.X)
		}
		lo, hi := math.Min(top, base), math.Max(top, base)
		py0 := max(int(math.Floor(lo*c.scale)), b.Min.Y)
		py1 := min(int(math.Ceil(hi*c.scale)), b.Max.Y)
		for py := py0; py < py1; py++ {
			_, ly := c.center(px, py)
			if ly < lo || ly > hi {
				continue
			}
			c.blend(px, py, p.At(lx, ly))
		}
	}
}

// DrawText uses the fixed 7x13 bitmap face; st.Size is not honoured.
func (c *Canvas) DrawText(s string, x, y float64, st backdrop.TextStyle) {
	px, py := int(math.Round(x*c.scale)), int(math.Round(y*c.scale))
	if st.Glow > 0 {
		halo := backdrop.WithAlpha(st.Color, st.Alpha*math.Min(st.Glow/15, 1)*0.25)
		for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			c.text(s, px+d[0], py+d[1], halo)
		}
	}
	col := backdrop.WithAlpha(st.Color, st.Alpha)
	c.text(s, px, py, col)
	if st.Bold {
		c.text(s, px+1, py, col)
	}
}

func (c *Canvas) text(s string, px, py int, col color.NRGBA) {
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot:  fixed.P(px, py),
	}
	d.DrawString(s)
}

// Flatten composites the canvas at opacity over an opaque background.
func (c *Canvas) Flatten(bg color.NRGBA, opacity float64) *image.RGBA {
	b := c.img.Bounds()
	out := image.NewRGBA(b)
	for py := b.Min.Y; py < b.Max.Y; py++ {
		for px := b.Min.X; px < b.Max.X; px++ {
			out.SetRGBA(px, py, c.FlatAt(px, py, bg, opacity))
		}
	}
	return out
}

// FlatAt is one pixel of Flatten.
func (c *Canvas) FlatAt(px, py int, bg color.NRGBA, opacity float64) color.RGBA {
	if !(image.Point{px, py}.In(c.img.Bounds())) {
		return color.RGBA{bg.R, bg.G, bg.B, 255}
	}
	i := c.img.PixOffset(px, py)
	p := c.img.Pix[i : i+4 : i+4]
	op := math.Max(0, math.Min(1, opacity))
	a := float64(p[3]) / 255 * op
	ch := func(src, back uint8) uint8 {
		return uint8(math.Round(float64(src)*op + float64(back)*(1-a)))
	}
	return color.RGBA{ch(p[0], bg.R), ch(p[1], bg.G), ch(p[2], bg.B), 255}
}

// segmentDistance is the distance from (px,py) to the segment a-b.
func segmentDistance(px, py, ax, ay, bx, by float64) float64 {
	dx, dy := bx-ax, by-ay
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(px-ax, py-ay)
	}
	t := ((px-ax)*dx + (py-ay)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(ax+t*dx), py-(ay+t*dy))
}
