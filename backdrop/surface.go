package backdrop

import "image/color"

// Vec is a point in surface coordinates (pixels, origin top-left).
type Vec struct {
	X, Y float64
}

// TextStyle describes one glyph label. Glow is a shadow blur radius in pixels.
type TextStyle struct {
	Size  float64
	Bold  bool
	Color color.NRGBA
	Alpha float64
	Glow  float64
}

// Surface is the drawing target of a scene. Text is positioned by its
// left edge and alphabetic baseline.
type Surface interface {
	Clear()
	FillRect(x, y, w, h float64, p Paint)
	FillCircle(cx, cy, r float64, p Paint)
	StrokeLine(x0, y0, x1, y1, width float64, p Paint)
	StrokePolyline(pts []Vec, width float64, p Paint)
	// FillArea fills between the polyline pts (ascending x) and the
	// horizontal line y = base.
	FillArea(pts []Vec, base float64, p Paint)
	DrawText(s string, x, y float64, st TextStyle)
}

// SurfaceProvider hands out a surface sized to the container. It reports
// false when no drawing context can be obtained.
type SurfaceProvider func(width, height int) (Surface, bool)
