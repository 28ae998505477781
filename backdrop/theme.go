package backdrop

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// Theme selects which of the two scenes is live
type Theme int

const (
	ThemeNight  Theme = iota // night sky: stars, streaks, glow regions
	ThemeGlyphs              // falling glyph columns
	themeCount
)

var ErrUnknownTheme = errors.New("unknown theme")

func (t Theme) String() string {
	switch t {
	case ThemeNight:
		return "night"
	case ThemeGlyphs:
		return "glyphs"
	}
	return fmt.Sprintf("Theme(%d)", int(t))
}

// Toggle returns the other theme
func (t Theme) Toggle() Theme {
	if t == ThemeNight {
		return ThemeGlyphs
	}
	return ThemeNight
}

// Background is the page colour the scene is composited over
func (t Theme) Background() color.NRGBA {
	if t == ThemeNight {
		return color.NRGBA{3, 7, 18, 255}
	}
	return color.NRGBA{255, 255, 255, 255}
}

// ParseTheme accepts "night"/"dark" and "glyphs"/"light"/"matrix"
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "night", "dark":
		return ThemeNight, nil
	case "glyphs", "light", "matrix":
		return ThemeGlyphs, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTheme, s)
}
