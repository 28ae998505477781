// Package ebitencanvas implements backdrop.Surface on an offscreen
// ebiten image.
package ebitencanvas

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/olivierh59500/particles-background/backdrop"
)

var _ backdrop.Surface = (*Canvas)(nil)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Fonts are the faces used for glyph labels.
type Fonts struct {
	Regular *text.GoTextFaceSource
	Bold    *text.GoTextFaceSource
}

func LoadFonts() (*Fonts, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}
	return &Fonts{Regular: regular, Bold: bold}, nil
}

// Canvas is an offscreen image the size of the container.
type Canvas struct {
	img   *ebiten.Image
	fonts *Fonts
	w, h  int
}

func New(width, height int, fonts *Fonts) *Canvas {
	return &Canvas{
		img:   ebiten.NewImage(width, height),
		fonts: fonts,
		w:     width,
		h:     height,
	}
}

func (c *Canvas) Image() *ebiten.Image { return c.img }

func (c *Canvas) Size() (int, int) { return c.w, c.h }

// Deallocate releases the GPU image; the canvas must not be drawn afterwards.
func (c *Canvas) Deallocate() {
	c.img.Deallocate()
}

func (c *Canvas) Clear() {
	c.img.Clear()
}

func (c *Canvas) draw(m *mesh) {
	if len(m.is) == 0 {
		return
	}
	c.img.DrawTriangles(m.vs, m.is, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (c *Canvas) FillRect(x, y, w, h float64, p backdrop.Paint) {
	if p.Gradient == nil {
		vector.DrawFilledRect(c.img, float32(x), float32(y), float32(w), float32(h), p.Color, false)
		return
	}
	c.draw(rectMesh(x, y, w, h, p))
}

func (c *Canvas) FillCircle(cx, cy, r float64, p backdrop.Paint) {
	if r <= 0 {
		return
	}
	if p.Gradient == nil {
		vector.DrawFilledCircle(c.img, float32(cx), float32(cy), float32(r), p.Color, true)
		return
	}
	c.draw(circleMesh(cx, cy, r, p))
}

func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, p backdrop.Paint) {
	if p.Gradient == nil {
		vector.StrokeLine(c.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), p.Color, true)
		return
	}
	c.draw(lineMesh(x0, y0, x1, y1, width, p))
}

func (c *Canvas) StrokePolyline(pts []backdrop.Vec, width float64, p backdrop.Paint) {
	for i := 1; i < len(pts); i++ {
		c.StrokeLine(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, width, p)
	}
}

func (c *Canvas) FillArea(pts []backdrop.Vec, base float64, p backdrop.Paint) {
	c.draw(areaMesh(pts, base, p))
}

// DrawText places s with its baseline at y. Glow is approximated by four
// offset copies at reduced alpha.
func (c *Canvas) DrawText(s string, x, y float64, st backdrop.TextStyle) {
	if c.fonts == nil {
		return
	}
	src := c.fonts.Regular
	if st.Bold {
		src = c.fonts.Bold
	}
	face := &text.GoTextFace{Source: src, Size: st.Size}
	top := y - face.Metrics().HAscent

	if st.Glow > 0 {
		spread := st.Glow / 5
		halo := st.Alpha * 0.25
		for _, d := range [][2]float64{{-spread, 0}, {spread, 0}, {0, -spread}, {0, spread}} {
			c.text(s, face, x+d[0], top+d[1], st.Color, halo)
		}
	}
	c.text(s, face, x, top, st.Color, st.Alpha)
}

func (c *Canvas) text(s string, face *text.GoTextFace, x, y float64, col color.NRGBA, alpha float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.NRGBA{col.R, col.G, col.B, 255})
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(c.img, s, face, op)
}
