package backdrop

import "math/rand"

type call struct {
	op         string
	x, y, w, h float64
	text       string
	paint      Paint
	style      TextStyle
}

// recorder is a Surface that keeps every draw call.
type recorder struct {
	calls  []call
	clears int
}

func (r *recorder) Clear() { r.clears++ }

func (r *recorder) FillRect(x, y, w, h float64, p Paint) {
	r.calls = append(r.calls, call{op: "rect", x: x, y: y, w: w, h: h, paint: p})
}

func (r *recorder) FillCircle(cx, cy, rad float64, p Paint) {
	r.calls = append(r.calls, call{op: "circle", x: cx, y: cy, w: rad, paint: p})
}

func (r *recorder) StrokeLine(x0, y0, x1, y1, width float64, p Paint) {
	r.calls = append(r.calls, call{op: "line", x: x0, y: y0, w: x1, h: y1, paint: p})
}

func (r *recorder) StrokePolyline(pts []Vec, width float64, p Paint) {
	r.calls = append(r.calls, call{op: "polyline", w: width, paint: p})
}

func (r *recorder) FillArea(pts []Vec, base float64, p Paint) {
	r.calls = append(r.calls, call{op: "area", h: base, paint: p})
}

func (r *recorder) DrawText(s string, x, y float64, st TextStyle) {
	r.calls = append(r.calls, call{op: "text", x: x, y: y, text: s, style: st})
}

func (r *recorder) count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

func (r *recorder) reset() {
	r.calls = r.calls[:0]
	r.clears = 0
}

// constRand always returns the same draw.
type constRand struct{ f float64 }

func (r constRand) Float64() float64 { return r.f }

func (r constRand) Intn(n int) int { return int(r.f * float64(n)) }

func seeded() *rand.Rand {
	return rand.New(rand.NewSource(42))
}
