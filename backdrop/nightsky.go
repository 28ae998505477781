package backdrop

import (
	"image/color"
	"math"

	"github.com/aquilax/go-perlin"
)

// Night sky tuning
const (
	StarCap           = 100
	StarDensity       = 8000.0 // px² per star
	StreakPoolSize    = 5
	StreakChance      = 0.004 // per inactive slot per tick
	StreakDecay       = 0.012 // opacity lost per tick
	GlowCount         = 6
	GlowAttractRadius = 300.0
	GlowAttractPull   = 0.001
	GlowPulse         = 0.2

	streakCoreWidth = 3.0
	streakGlowWidth = 8.0
	streakHeadGlow  = 12.0
	streakHeadCore  = 3.0
	starHaloScale   = 3.0
)

// MaxWaveTurbulence bounds the optional Perlin offset of the wave crest in px.
const MaxWaveTurbulence = 4.0

var glowPalette = []color.NRGBA{
	RGBA(59, 130, 246, 0.35),
	RGBA(245, 158, 11, 0.3),
	RGBA(139, 92, 246, 0.25),
	RGBA(6, 182, 212, 0.25),
	RGBA(236, 72, 153, 0.2),
}

// Star is a fixed point whose size and opacity oscillate with its phase.
type Star struct {
	X, Y         float64
	Size         float64
	Opacity      float64
	TwinkleSpeed float64
	TwinklePhase float64
}

// Twinkle maps the phase onto [0,1].
func (s *Star) Twinkle() float64 {
	return (math.Sin(s.TwinklePhase) + 1) / 2
}

func (s *Star) RenderedOpacity() float64 {
	return s.Opacity * (0.3 + s.Twinkle()*0.7)
}

func (s *Star) RenderedSize() float64 {
	return s.Size * (0.8 + s.Twinkle()*0.4)
}

// Streak is one slot of the shooting star pool.
type Streak struct {
	X, Y    float64
	Length  float64
	Speed   float64
	Opacity float64
	Angle   float64
	Active  bool
}

// Tail is the far end of the visible trail.
func (s *Streak) Tail() Vec {
	return Vec{s.X - math.Cos(s.Angle)*s.Length, s.Y - math.Sin(s.Angle)*s.Length}
}

func (s *Streak) activate(width, height float64, rng Rand) {
	s.Active = true
	s.X = rng.Float64() * width * 0.7
	s.Y = rng.Float64() * height * 0.4
	s.Length = between(rng, 80, 200)
	s.Speed = between(rng, 8, 20)
	s.Opacity = 1
	s.Angle = math.Pi/4 + (rng.Float64()-0.5)*0.3
}

func (s *Streak) step(f Frame, rng Rand) {
	if !s.Active && rng.Float64() < StreakChance {
		s.activate(f.Width, f.Height, rng)
	}
	if !s.Active {
		return
	}
	s.X += math.Cos(s.Angle) * s.Speed
	s.Y += math.Sin(s.Angle) * s.Speed
	s.Opacity -= StreakDecay
	if s.Opacity <= 0 {
		s.Active = false
	}
}

// GlowRegion is a drifting, pulsing aurora blob.
type GlowRegion struct {
	X, Y       float64
	Radius     float64
	Color      color.NRGBA
	VX, VY     float64
	PulsePhase float64
	PulseSpeed float64
}

// RenderedRadius applies the pulse to the base radius.
func (g *GlowRegion) RenderedRadius() float64 {
	return g.Radius * (1 + math.Sin(g.PulsePhase)*GlowPulse)
}

// Attraction is the displacement this tick toward the pointer, zero
// outside the attraction radius.
func (g *GlowRegion) Attraction(pointer Vec) Vec {
	dx, dy := pointer.X-g.X, pointer.Y-g.Y
	if math.Hypot(dx, dy) >= GlowAttractRadius {
		return Vec{}
	}
	return Vec{dx * GlowAttractPull, dy * GlowAttractPull}
}

func (g *GlowRegion) step(f Frame) {
	g.X += g.VX
	g.Y += g.VY
	pull := g.Attraction(f.Pointer)
	g.X += pull.X
	g.Y += pull.Y

	// Toroidal wrap once fully off screen
	if g.X < -g.Radius {
		g.X = f.Width + g.Radius
	}
	if g.X > f.Width+g.Radius {
		g.X = -g.Radius
	}
	if g.Y < -g.Radius {
		g.Y = f.Height + g.Radius
	}
	if g.Y > f.Height+g.Radius {
		g.Y = -g.Radius
	}

	g.PulsePhase += g.PulseSpeed
}

// NightSky is the dark theme scene.
type NightSky struct {
	Stars   []Star
	Streaks []Streak
	Glows   []GlowRegion

	rng   Rand
	// Turbulence is the Perlin amplitude added to the wave crest, 0 for the
	// plain analytic wave.
	Turbulence float64

	noise *perlin.Perlin
}

// StarCount is min(StarCap, floor(area/StarDensity)).
func StarCount(width, height int) int {
	return min(StarCap, int(math.Floor(float64(width)*float64(height)/StarDensity)))
}

// NewNightSky populates a night sky for the given size. It returns nil
// while either dimension is zero.
func NewNightSky(width, height int, rng Rand) *NightSky {
	if width <= 0 || height <= 0 {
		return nil
	}
	w, h := float64(width), float64(height)
	n := &NightSky{
		Stars:   make([]Star, StarCount(width, height)),
		Streaks: make([]Streak, StreakPoolSize),
		Glows:   make([]GlowRegion, GlowCount),
		rng:     rng,
	}
	for i := range n.Stars {
		n.Stars[i] = Star{
			X:            rng.Float64() * w,
			Y:            rng.Float64() * h,
			Size:         between(rng, 0.5, 2.5),
			Opacity:      between(rng, 0.2, 1.0),
			TwinkleSpeed: between(rng, 0.01, 0.03),
			TwinklePhase: rng.Float64() * 2 * math.Pi,
		}
	}
	for i := range n.Glows {
		n.Glows[i] = GlowRegion{
			X:          rng.Float64() * w,
			Y:          rng.Float64() * h,
			Radius:     between(rng, 150, 350),
			Color:      glowPalette[i%len(glowPalette)],
			VX:         between(rng, -0.25, 0.25),
			VY:         between(rng, -0.25, 0.25),
			PulsePhase: rng.Float64() * 2 * math.Pi,
			PulseSpeed: between(rng, 0.008, 0.023),
		}
	}
	n.noise = perlin.NewPerlin(2, 2, 3, int64(rng.Intn(math.MaxInt32)))
	return n
}

func (n *NightSky) Theme() Theme { return ThemeNight }

func (n *NightSky) scene() {}

// ActiveStreaks counts the streaks currently in flight
func (n *NightSky) ActiveStreaks() int {
	c := 0
	for i := range n.Streaks {
		if n.Streaks[i].Active {
			c++
		}
	}
	return c
}

func (n *NightSky) Step(f Frame) {
	for i := range n.Glows {
		n.Glows[i].step(f)
	}
	for i := range n.Stars {
		n.Stars[i].TwinklePhase += n.Stars[i].TwinkleSpeed
	}
	for i := range n.Streaks {
		n.Streaks[i].step(f, n.rng)
	}
}

func (n *NightSky) Render(s Surface, f Frame) {
	for i := range n.Glows {
		g := &n.Glows[i]
		r := g.RenderedRadius()
		s.FillCircle(g.X, g.Y, r, RadialGradient(g.X, g.Y, r,
			Stop{0, g.Color},
			Stop{1, Transparent},
		))
	}

	for i := range n.Stars {
		st := &n.Stars[i]
		a := st.RenderedOpacity()
		size := st.RenderedSize()
		halo := size * starHaloScale
		s.FillCircle(st.X, st.Y, halo, RadialGradient(st.X, st.Y, halo,
			Stop{0, RGBA(255, 255, 255, a)},
			Stop{0.5, RGBA(200, 220, 255, a*0.3)},
			Stop{1, Transparent},
		))
		s.FillCircle(st.X, st.Y, size, Solid(RGBA(255, 255, 255, a)))
	}

	for i := range n.Streaks {
		if n.Streaks[i].Active {
			n.renderStreak(s, &n.Streaks[i])
		}
	}

	n.renderWave(s, f)
}

func (n *NightSky) renderStreak(s Surface, st *Streak) {
	a := st.Opacity
	tail := st.Tail()
	s.StrokeLine(tail.X, tail.Y, st.X, st.Y, streakCoreWidth, LinearGradient(tail.X, tail.Y, st.X, st.Y,
		Stop{0, Transparent},
		Stop{0.5, RGBA(255, 255, 255, a*0.4)},
		Stop{0.8, RGBA(200, 220, 255, a*0.8)},
		Stop{1, RGBA(255, 255, 255, a)},
	))
	s.StrokeLine(tail.X, tail.Y, st.X, st.Y, streakGlowWidth, LinearGradient(tail.X, tail.Y, st.X, st.Y,
		Stop{0, Transparent},
		Stop{0.7, RGBA(100, 150, 255, a*0.2)},
		Stop{1, RGBA(150, 200, 255, a*0.5)},
	))
	s.FillCircle(st.X, st.Y, streakHeadGlow, RadialGradient(st.X, st.Y, streakHeadGlow,
		Stop{0, RGBA(255, 255, 255, a)},
		Stop{0.3, RGBA(200, 220, 255, a*0.8)},
		Stop{1, Transparent},
	))
	s.FillCircle(st.X, st.Y, streakHeadCore, Solid(RGBA(255, 255, 255, a)))
}

// waveCrest is the analytic wave plus optional Perlin turbulence.
func (n *NightSky) waveCrest(x float64, f Frame) float64 {
	y := WaveY(x, f.Time, f.Height)
	if n.noise != nil && n.Turbulence != 0 {
		y += n.noise.Noise2D(x*0.004, f.Time*0.25) * n.Turbulence
	}
	return y
}

func (n *NightSky) renderWave(s Surface, f Frame) {
	pts := make([]Vec, 0, int(f.Width/waveStep)+1)
	for x := 0.0; x <= f.Width; x += waveStep {
		pts = append(pts, Vec{x, n.waveCrest(x, f)})
	}
	s.FillArea(pts, f.Height, LinearGradient(0, f.Height-waveFadeTop, 0, f.Height,
		Stop{0, Transparent},
		Stop{1, RGBA(59, 130, 246, 0.05)},
	))
}
