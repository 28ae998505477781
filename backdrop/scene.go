package backdrop

// Frame is the per-tick input shared by every entity of a scene.
type Frame struct {
	Time          float64 // seconds of animation clock
	Width, Height float64
	Pointer       Vec
}

// Scene is the live entity set of one theme. Only *NightSky and *GlyphRain
// implement it.
type Scene interface {
	Theme() Theme
	// Step advances every entity by one tick.
	Step(f Frame)
	// Render draws the current state back to front.
	Render(s Surface, f Frame)
	scene()
}

// NewScene builds a fresh entity set for theme, or nil while the size is not valid.
func NewScene(theme Theme, width, height int, rng Rand) Scene {
	switch theme {
	case ThemeNight:
		if s := NewNightSky(width, height, rng); s != nil {
			return s
		}
	case ThemeGlyphs:
		if s := NewGlyphRain(width, height, rng); s != nil {
			return s
		}
	}
	return nil
}
