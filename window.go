package main

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/olivierh59500/particles-background/backdrop"
	"github.com/olivierh59500/particles-background/ebitencanvas"
)

// Window is the ebiten front-end. The controller draws into an offscreen
// canvas during Update; Draw composites it at the configured opacity.
type Window struct {
	session
	queue  *backdrop.FrameQueue
	fonts  *ebitencanvas.Fonts
	canvas *ebitencanvas.Canvas
}

func NewWindow(cfg *Config, configPath string) (*Window, error) {
	theme, err := cfg.ThemeValue()
	if err != nil {
		return nil, err
	}
	fonts, err := ebitencanvas.LoadFonts()
	if err != nil {
		return nil, err
	}

	w := &Window{
		queue: backdrop.NewFrameQueue(),
		fonts: fonts,
	}
	logger := newLogger("window")
	w.session = session{
		ctrl: backdrop.NewController(backdrop.Options{
			Theme:      theme,
			Scheduler:  w.queue,
			Surface:    w.surface,
			Rand:       backdrop.NewRand(cfg.Seed),
			Logger:     logger,
			Turbulence: cfg.Turbulence,
		}),
		cfg:    cfg,
		path:   configPath,
		logger: logger,
	}
	w.ctrl.Mount()
	return w, nil
}

// surface hands the controller a canvas matching the window size, reusing
// the current one when the size is unchanged.
func (w *Window) surface(width, height int) (backdrop.Surface, bool) {
	if width > maxDimension || height > maxDimension {
		return nil, false
	}
	if w.canvas != nil {
		if cw, ch := w.canvas.Size(); cw == width && ch == height {
			return w.canvas, true
		}
		w.canvas.Deallocate()
	}
	w.canvas = ebitencanvas.New(width, height, w.fonts)
	return w.canvas, true
}

// Update is called each tick by Ebitengine
func (w *Window) Update() error {
	if w.handleInput() {
		w.ctrl.Unmount()
		return ebiten.Termination
	}
	mx, my := ebiten.CursorPosition()
	w.ctrl.PointerMove(float64(mx), float64(my))
	w.queue.Flush()
	return nil
}

// Draw is called each frame by Ebitengine
func (w *Window) Draw(screen *ebiten.Image) {
	if !w.cfg.Overlay {
		screen.Fill(w.ctrl.Theme().Background())
	}
	if w.canvas != nil && w.ctrl.Running() {
		op := &ebiten.DrawImageOptions{}
		op.ColorScale.ScaleAlpha(float32(w.cfg.Opacity))
		screen.DrawImage(w.canvas.Image(), op)
	}
	if w.ctrl.Paused() {
		ebitenutil.DebugPrint(screen, "paused")
	}
}

// Layout tracks the window size; a change rebuilds the scene.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	w.ctrl.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// handleInput processes keyboard input and reports a quit request
func (w *Window) handleInput() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return true
	}
	keys := []struct {
		key ebiten.Key
		act action
	}{
		{ebiten.KeyT, actionToggleTheme},
		{ebiten.KeySpace, actionPause},
		{ebiten.KeyS, actionSave},
		{ebiten.KeyL, actionLoad},
	}
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k.key) && w.apply(k.act) {
			return true
		}
	}
	return false
}

func runWindow(cfg Config, configPath string) error {
	win, err := NewWindow(&cfg, configPath)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Particles Background")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	opts := &ebiten.RunGameOptions{}
	if cfg.Overlay {
		// Decorative overlay: never take pointer input from what is underneath
		ebiten.SetWindowDecorated(false)
		ebiten.SetWindowFloating(true)
		ebiten.SetWindowMousePassthrough(true)
		opts.ScreenTransparent = true
	}

	if err := ebiten.RunGameWithOptions(win, opts); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
