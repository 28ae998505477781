package backdrop

import (
	"image/color"
	"math"
)

// Glyph rain tuning
const (
	ColumnPitch     = 120.0 // px between column slots
	GlyphSpacing    = 30.0  // px between glyphs in a column
	GlyphExtra      = 5     // glyphs beyond floor(height/GlyphSpacing)
	GlyphSwapChance = 0.005 // per visible glyph per tick

	minFallSpeed = 1.2
	maxFallSpeed = 1.8
	minFontSize  = 12.0
	maxFontSize  = 14.0

	headGlow  = 15.0
	trailGlow = 8.0
)

// Vocabulary is the label set columns are filled from.
var Vocabulary = []string{
	"JavaScript", "TypeScript", "Python", "React", "Node.js",
	"Java", "C++", "Rust", "Go", "Swift",
	"PHP", "Ruby", "HTML", "CSS", "SQL",
	"Docker", "Git", "AWS", "Vue", "Angular",
}

// swapVocabulary feeds the random in-place glyph swaps.
var swapVocabulary = []string{
	"JavaScript", "TypeScript", "Python", "React", "Node.js",
	"Java", "C++", "Go", "Swift", "PHP",
	"Ruby", "HTML", "CSS", "Vue",
}

var columnPalette = []color.NRGBA{
	mustHex("#2563EB"), // blue
	mustHex("#DC2626"), // red
	mustHex("#16A34A"), // green
	mustHex("#9333EA"), // purple
	mustHex("#EA580C"), // orange
	mustHex("#0891B2"), // cyan
	mustHex("#C026D3"), // magenta
	mustHex("#0D9488"), // teal
	mustHex("#4F46E5"), // indigo
}

var bracketColors = [4]color.NRGBA{
	{30, 64, 175, 0},  // top-left
	{14, 116, 144, 0}, // top-right
	{4, 120, 87, 0},   // bottom-right
	{30, 64, 175, 0},  // bottom-left
}

// GlyphColumn is one falling column of labels. Index 0 is the oldest, dimmest
// glyph; the last glyph is the head.
type GlyphColumn struct {
	X, Y     float64
	Speed    float64
	Glyphs   []string
	Index    int
	Opacity  float64
	FontSize float64
	Color    color.NRGBA
}

// PixelHeight is the rendered length of the column.
func (c *GlyphColumn) PixelHeight() float64 {
	return float64(len(c.Glyphs)) * GlyphSpacing
}

// GlyphY is the baseline of glyph i.
func (c *GlyphColumn) GlyphY(i int) float64 {
	return c.Y + float64(i)*GlyphSpacing
}

// Style returns the emphasis of glyph i: the head is solid with a strong
// glow, the two before it bold with a soft glow, the rest faded.
func (c *GlyphColumn) Style(i int) TextStyle {
	st := TextStyle{Size: c.FontSize, Color: c.Color}
	n := len(c.Glyphs)
	switch {
	case i == n-1:
		st.Alpha, st.Bold, st.Glow = 1, true, headGlow
	case i >= n-3:
		st.Alpha, st.Bold, st.Glow = 0.9, true, trailGlow
	default:
		st.Alpha = c.Opacity * 0.7
	}
	return st
}

func (c *GlyphColumn) relabel(words []string, rng Rand) {
	for i := range c.Glyphs {
		c.Glyphs[i] = words[rng.Intn(len(words))]
	}
}

func (c *GlyphColumn) step(f Frame, rng Rand) {
	c.Y += c.Speed
	if c.Y > f.Height+c.PixelHeight() {
		c.Y = -c.PixelHeight()
		c.Speed = between(rng, minFallSpeed, maxFallSpeed)
		c.relabel(Vocabulary, rng)
	}
	for i := range c.Glyphs {
		if !glyphVisible(c.GlyphY(i), f.Height) {
			continue
		}
		if rng.Float64() < GlyphSwapChance {
			c.Glyphs[i] = swapVocabulary[rng.Intn(len(swapVocabulary))]
		}
	}
}

func glyphVisible(y, height float64) bool {
	return y > -GlyphSpacing && y < height+GlyphSpacing
}

// GlyphRain is the light theme scene.
type GlyphRain struct {
	Columns []GlyphColumn

	rng Rand
}

// ColumnCount is floor(width/ColumnPitch).
func ColumnCount(width int) int {
	return int(math.Floor(float64(width) / ColumnPitch))
}

// GlyphsPerColumn is floor(height/GlyphSpacing)+GlyphExtra.
func GlyphsPerColumn(height int) int {
	return int(math.Floor(float64(height)/GlyphSpacing)) + GlyphExtra
}

// NewGlyphRain populates the columns for the given size. It returns nil
// while either dimension is zero.
func NewGlyphRain(width, height int, rng Rand) *GlyphRain {
	if width <= 0 || height <= 0 {
		return nil
	}
	h := float64(height)
	fontSize := math.Max(minFontSize, math.Min(maxFontSize, float64(width)*0.01))
	perColumn := GlyphsPerColumn(height)

	g := &GlyphRain{
		Columns: make([]GlyphColumn, ColumnCount(width)),
		rng:     rng,
	}
	for i := range g.Columns {
		col := GlyphColumn{
			X:        float64(i)*ColumnPitch + ColumnPitch/2,
			Y:        -rng.Float64() * h,
			Speed:    between(rng, minFallSpeed, maxFallSpeed),
			Glyphs:   make([]string, perColumn),
			Opacity:  between(rng, 0.85, 1.0),
			FontSize: fontSize,
			Color:    columnPalette[i%len(columnPalette)],
		}
		col.relabel(Vocabulary, rng)
		g.Columns[i] = col
	}
	return g
}

func (g *GlyphRain) Theme() Theme { return ThemeGlyphs }

func (g *GlyphRain) scene() {}

func (g *GlyphRain) Step(f Frame) {
	for i := range g.Columns {
		g.Columns[i].step(f, g.rng)
	}
}

func (g *GlyphRain) Render(s Surface, f Frame) {
	w, h := f.Width, f.Height

	// Wash
	s.FillRect(0, 0, w, h, Solid(RGBA(255, 255, 255, 0.1)))

	for i := range g.Columns {
		col := &g.Columns[i]
		for j, word := range col.Glyphs {
			y := col.GlyphY(j)
			if !glyphVisible(y, h) {
				continue
			}
			s.DrawText(word, col.X, y, col.Style(j))
		}
	}

	s.FillRect(0, 0, w, edgeFade, LinearGradient(0, 0, 0, edgeFade,
		Stop{0, RGBA(255, 255, 255, 0.6)},
		Stop{1, Transparent},
	))
	s.FillRect(0, h-edgeFade, w, edgeFade, LinearGradient(0, h-edgeFade, 0, h,
		Stop{0, Transparent},
		Stop{1, RGBA(255, 255, 255, 0.6)},
	))

	renderBrackets(s, f)

	scan := ScanLineY(f.Time, h)
	s.FillRect(0, scan-scanBand/2, w, scanBand, LinearGradient(0, scan-scanBand/2, 0, scan+scanBand/2,
		Stop{0, Transparent},
		Stop{0.5, RGBA(59, 130, 246, 0.15)},
		Stop{1, Transparent},
	))
}

// Brackets returns the four corner polylines, clockwise from top-left.
func Brackets(t, width, height float64) [4][]Vec {
	b, in := BracketSize(t), bracketInset
	r, btm := width-in, height-in
	return [4][]Vec{
		{{in, in + b}, {in, in}, {in + b, in}},
		{{r - b, in}, {r, in}, {r, in + b}},
		{{r, btm - b}, {r, btm}, {r - b, btm}},
		{{in + b, btm}, {in, btm}, {in, btm - b}},
	}
}

func renderBrackets(s Surface, f Frame) {
	for i, pts := range Brackets(f.Time, f.Width, f.Height) {
		c := bracketColors[i]
		s.StrokePolyline(pts, 6, Solid(WithAlpha(c, 0.15)))
		s.StrokePolyline(pts, 2, Solid(WithAlpha(c, 0.4)))
	}
}
