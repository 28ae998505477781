package main

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/olivierh59500/particles-background/backdrop"
	"github.com/olivierh59500/particles-background/raster"
)

// Each terminal cell stands for a cellWidth x cellHeight patch of the
// surface and shows two vertically stacked raster pixels as a half block.
const (
	cellWidth   = 8
	cellHeight  = 16
	terminalFPS = 60
	halfBlock   = '▀'
)

// cellSink is the part of tcell.Screen the painter needs.
type cellSink interface {
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
}

type label struct {
	text  string
	x, y  float64
	style backdrop.TextStyle
}

// termSurface rasterises shapes and keeps glyph labels as real characters.
type termSurface struct {
	*raster.Canvas
	cols, rows int
	labels     []label
}

func newTermSurface(width, height int) *termSurface {
	cols, rows := width/cellWidth, height/cellHeight
	return &termSurface{
		Canvas: raster.New(cols*cellWidth, rows*cellHeight, 1.0/cellWidth),
		cols:   cols,
		rows:   rows,
	}
}

func (s *termSurface) Clear() {
	s.Canvas.Clear()
	s.labels = s.labels[:0]
}

func (s *termSurface) DrawText(text string, x, y float64, st backdrop.TextStyle) {
	s.labels = append(s.labels, label{text, x, y, st})
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func over(fg color.NRGBA, alpha float64, bg color.RGBA) color.RGBA {
	a := math.Max(0, math.Min(1, alpha))
	ch := func(f, b uint8) uint8 {
		return uint8(math.Round(float64(f)*a + float64(b)*(1-a)))
	}
	return color.RGBA{ch(fg.R, bg.R), ch(fg.G, bg.G), ch(fg.B, bg.B), 255}
}

func average(a, b color.RGBA) color.RGBA {
	return color.RGBA{
		uint8((uint16(a.R) + uint16(b.R)) / 2),
		uint8((uint16(a.G) + uint16(b.G)) / 2),
		uint8((uint16(a.B) + uint16(b.B)) / 2),
		255,
	}
}

// paint writes the current frame into the cells.
func (s *termSurface) paint(dst cellSink, bg color.NRGBA, opacity float64) {
	for cy := 0; cy < s.rows; cy++ {
		for cx := 0; cx < s.cols; cx++ {
			top := s.FlatAt(cx, 2*cy, bg, opacity)
			bottom := s.FlatAt(cx, 2*cy+1, bg, opacity)
			dst.SetContent(cx, cy, halfBlock, nil, tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom)))
		}
	}

	// One raster pixel per column, two per row.
	scale := s.Scale()
	for _, l := range s.labels {
		row := int(math.Floor((l.y - 1) * scale / 2))
		if row < 0 || row >= s.rows {
			continue
		}
		col := int(math.Floor(l.x * scale))
		for i, r := range []rune(l.text) {
			cx := col + i
			if cx < 0 || cx >= s.cols {
				continue
			}
			back := average(s.FlatAt(cx, 2*row, bg, opacity), s.FlatAt(cx, 2*row+1, bg, opacity))
			fore := over(l.style.Color, l.style.Alpha*opacity, back)
			style := tcell.StyleDefault.Foreground(rgb(fore)).Background(rgb(back)).Bold(l.style.Bold)
			dst.SetContent(cx, row, r, nil, style)
		}
	}
}

// pointerFromCell maps a mouse cell to the centre of its surface patch.
func pointerFromCell(x, y int) (float64, float64) {
	return float64(x*cellWidth + cellWidth/2), float64(y*cellHeight + cellHeight/2)
}

func runTerminal(cfg Config, configPath string) error {
	theme, err := cfg.ThemeValue()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	queue := backdrop.NewFrameQueue()
	var surface *termSurface
	logger := newLogger("terminal")
	ctrl := backdrop.NewController(backdrop.Options{
		Theme:     theme,
		Scheduler: queue,
		Surface: func(w, h int) (backdrop.Surface, bool) {
			surface = newTermSurface(w, h)
			return surface, true
		},
		Rand:       backdrop.NewRand(cfg.Seed),
		Logger:     logger,
		Turbulence: cfg.Turbulence,
	})
	sess := &session{ctrl: ctrl, cfg: &cfg, path: configPath, logger: logger}

	cols, rows := screen.Size()
	ctrl.Resize(cols*cellWidth, rows*cellHeight)
	ctrl.Mount()
	defer ctrl.Unmount()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / terminalFPS)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				c, r := ev.Size()
				ctrl.Resize(c*cellWidth, r*cellHeight)
			case *tcell.EventMouse:
				ctrl.PointerMove(pointerFromCell(ev.Position()))
			case *tcell.EventKey:
				switch ev.Key() {
				case tcell.KeyEscape, tcell.KeyCtrlC:
					return nil
				case tcell.KeyRune:
					if sess.apply(runeAction(ev.Rune())) {
						return nil
					}
				}
			}
		case <-ticker.C:
			if queue.Flush() > 0 && surface != nil {
				surface.paint(screen, ctrl.Theme().Background(), cfg.Opacity)
				screen.Show()
			}
		}
	}
}
