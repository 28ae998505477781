package backdrop

import (
	"math"
	"testing"
)

func TestBracketSizeOscillates(t *testing.T) {
	for i := 0; i < 500; i++ {
		s := BracketSize(float64(i) * TickSeconds)
		if s < 30 || s > 40 {
			t.Fatalf("Bracket size %v outside [30,40]", s)
		}
	}
	if s := BracketSize(math.Pi / 4); math.Abs(s-40) > 1e-9 {
		t.Errorf("Expected peak 40, got %v", s)
	}
}

func TestScanLineSweep(t *testing.T) {
	const h = 600.0
	if y := ScanLineY(0, h); y != -100 {
		t.Errorf("Expected start 100px above the top, got %v", y)
	}
	for i := 0; i < 2000; i++ {
		y := ScanLineY(float64(i)*TickSeconds, h)
		if y < -100 || y >= h+100 {
			t.Fatalf("Scan line %v outside [-100,%v)", y, h+100)
		}
	}
	// One full sweep takes (h+200)/80 seconds
	period := (h + 200) / 80
	if a, b := ScanLineY(1, h), ScanLineY(1+period, h); math.Abs(a-b) > 1e-6 {
		t.Errorf("Expected periodic sweep, got %v and %v", a, b)
	}
}

func TestWaveStaysNearBottom(t *testing.T) {
	const h = 600.0
	for x := 0.0; x <= 800; x += 5 {
		y := WaveY(x, 3.7, h)
		if y < h-75 || y > h-25 {
			t.Fatalf("Wave crest %v at x=%v outside the bottom band", y, x)
		}
	}
}

func TestBracketsAnchorCorners(t *testing.T) {
	b := Brackets(0, 800, 600)
	if b[0][1] != (Vec{15, 15}) || b[1][1] != (Vec{785, 15}) ||
		b[2][1] != (Vec{785, 585}) || b[3][1] != (Vec{15, 585}) {
		t.Errorf("Unexpected bracket corners %v", b)
	}
	if b[0][0] != (Vec{15, 50}) {
		t.Errorf("Expected 35px arm at t=0, got %v", b[0][0])
	}
}
