package ebitencanvas

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/particles-background/backdrop"
)

// Tessellation density. Gradients are evaluated per vertex and interpolated
// by the GPU, so shapes are split finely enough to follow their stops.
const (
	circleRings    = 8
	circleSegments = 48
	rectDivisions  = 8
	lineDivisions  = 12
)

// mesh collects coloured triangles sampling the white source pixel.
type mesh struct {
	vs []ebiten.Vertex
	is []uint16
}

func (m *mesh) vertex(x, y float64, c color.NRGBA) uint16 {
	m.vs = append(m.vs, ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(c.R) / 255,
		ColorG: float32(c.G) / 255,
		ColorB: float32(c.B) / 255,
		ColorA: float32(c.A) / 255,
	})
	return uint16(len(m.vs) - 1)
}

func (m *mesh) tri(a, b, c uint16) {
	m.is = append(m.is, a, b, c)
}

func (m *mesh) quad(a, b, c, d uint16) {
	m.is = append(m.is, a, b, c, a, c, d)
}

func (m *mesh) paintVertex(x, y float64, p backdrop.Paint) uint16 {
	return m.vertex(x, y, p.At(x, y))
}

func circleMesh(cx, cy, r float64, p backdrop.Paint) *mesh {
	m := &mesh{}
	centre := m.paintVertex(cx, cy, p)
	prev := make([]uint16, circleSegments)
	ring := make([]uint16, circleSegments)
	for k := 1; k <= circleRings; k++ {
		rr := r * float64(k) / circleRings
		for s := 0; s < circleSegments; s++ {
			a := 2 * math.Pi * float64(s) / circleSegments
			ring[s] = m.paintVertex(cx+math.Cos(a)*rr, cy+math.Sin(a)*rr, p)
		}
		for s := 0; s < circleSegments; s++ {
			n := (s + 1) % circleSegments
			if k == 1 {
				m.tri(centre, ring[s], ring[n])
			} else {
				m.quad(prev[s], ring[s], ring[n], prev[n])
			}
		}
		prev, ring = ring, prev
	}
	return m
}

func rectMesh(x, y, w, h float64, p backdrop.Paint) *mesh {
	m := &mesh{}
	const n = rectDivisions
	var grid [n + 1][n + 1]uint16
	for j := 0; j <= n; j++ {
		for i := 0; i <= n; i++ {
			grid[j][i] = m.paintVertex(x+w*float64(i)/n, y+h*float64(j)/n, p)
		}
	}
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			m.quad(grid[j][i], grid[j][i+1], grid[j+1][i+1], grid[j+1][i])
		}
	}
	return m
}

func lineMesh(x0, y0, x1, y1, width float64, p backdrop.Paint) *mesh {
	m := &mesh{}
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return m
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	var left, right uint16
	for i := 0; i <= lineDivisions; i++ {
		t := float64(i) / lineDivisions
		px, py := x0+dx*t, y0+dy*t
		c := p.At(px, py)
		a, b := m.vertex(px+nx, py+ny, c), m.vertex(px-nx, py-ny, c)
		if i > 0 {
			m.quad(left, a, b, right)
		}
		left, right = a, b
	}
	return m
}

func areaMesh(pts []backdrop.Vec, base float64, p backdrop.Paint) *mesh {
	m := &mesh{}
	if len(pts) < 2 {
		return m
	}
	top := m.paintVertex(pts[0].X, pts[0].Y, p)
	bottom := m.paintVertex(pts[0].X, base, p)
	for _, pt := range pts[1:] {
		t := m.paintVertex(pt.X, pt.Y, p)
		b := m.paintVertex(pt.X, base, p)
		m.quad(top, t, b, bottom)
		top, bottom = t, b
	}
	return m
}
