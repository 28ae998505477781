package backdrop

import "math"

// Decorative overlays are pure functions of the animation clock.
const (
	TickSeconds = 0.016

	waveBaseline = 50.0
	waveStep     = 5.0
	waveFadeTop  = 80.0

	bracketBase  = 35.0
	bracketSwing = 5.0
	bracketInset = 15.0

	scanSpeed  = 80.0
	scanMargin = 200.0
	scanBand   = 4.0

	edgeFade = 50.0
)

// WaveY is the crest of the bottom wave at x.
func WaveY(x, t, height float64) float64 {
	return height - waveBaseline +
		math.Sin(x*0.01+t)*15 +
		math.Sin(x*0.02+t*1.5)*10
}

// BracketSize is the arm length of the corner brackets.
func BracketSize(t float64) float64 {
	return bracketBase + math.Sin(t*2)*bracketSwing
}

// ScanLineY is the centre of the scanning band. It sweeps from 100px above
// the top to 100px below the bottom and repeats.
func ScanLineY(t, height float64) float64 {
	return math.Mod(t*scanSpeed, height+scanMargin) - scanMargin/2
}
