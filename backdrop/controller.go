package backdrop

import (
	"io"
	"log"
)

// Options configures a Controller. Scheduler and Surface are required.
type Options struct {
	Theme     Theme
	Scheduler Scheduler
	Surface   SurfaceProvider
	Rand      Rand
	Logger    *log.Logger

	// Turbulence sets NightSky.Turbulence, clamped to MaxWaveTurbulence.
	Turbulence float64
}

// Controller owns the lifecycle of the background: it rebuilds the live
// scene when the theme or container size changes and runs at most one
// animation loop per mount.
type Controller struct {
	sched    Scheduler
	provider SurfaceProvider
	rng      Rand
	logger   *log.Logger
	turb     float64

	tracker Tracker
	theme   Theme
	stores  [themeCount]Scene
	live    Scene
	surface Surface

	handle  FrameHandle
	clock   float64
	ticks   uint64
	mounted bool
	paused  bool
}

func NewController(opts Options) *Controller {
	c := &Controller{
		sched:    opts.Scheduler,
		provider: opts.Surface,
		rng:      opts.Rand,
		logger:   opts.Logger,
		theme:    opts.Theme,
		turb:     min(max(opts.Turbulence, 0), MaxWaveTurbulence),
	}
	if c.rng == nil {
		c.rng = NewRand(0)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard, "", 0)
	}
	return c
}

// Mount attaches the controller; the loop starts once the size is valid.
func (c *Controller) Mount() {
	if c.mounted {
		return
	}
	c.mounted = true
	c.logger.Printf("mount theme=%s", c.theme)
	c.restart()
}

// Unmount cancels any scheduled frame and releases the surface. No draw
// call reaches the old surface afterwards.
func (c *Controller) Unmount() {
	if !c.mounted {
		return
	}
	c.stop()
	c.mounted = false
	c.surface = nil
	c.live = nil
	c.logger.Printf("unmount after %d ticks", c.ticks)
}

// SetTheme switches the live scene, rebuilding it from scratch.
func (c *Controller) SetTheme(t Theme) {
	if t == c.theme {
		return
	}
	c.theme = t
	c.restart()
}

func (c *Controller) ToggleTheme() {
	c.SetTheme(c.theme.Toggle())
}

// Resize feeds a container or viewport size change. Only an actual change
// rebuilds the scene.
func (c *Controller) Resize(width, height int) {
	if c.tracker.Resize(width, height) {
		c.restart()
	}
}

func (c *Controller) PointerMove(x, y float64) {
	c.tracker.PointerMove(x, y)
}

// SetPaused freezes the simulation while keeping the loop scheduled.
func (c *Controller) SetPaused(p bool) {
	c.paused = p
}

func (c *Controller) Paused() bool { return c.paused }

func (c *Controller) Theme() Theme { return c.theme }

func (c *Controller) Size() (int, int) { return c.tracker.Size() }

// Scene is the live entity set, nil while not running.
func (c *Controller) Scene() Scene { return c.live }

// Stored returns the last entity set built for theme, live or not.
func (c *Controller) Stored(t Theme) Scene {
	if t < 0 || t >= themeCount {
		return nil
	}
	return c.stores[t]
}

// Running reports whether a frame is scheduled.
func (c *Controller) Running() bool { return c.handle != 0 }

func (c *Controller) Clock() float64 { return c.clock }

func (c *Controller) Ticks() uint64 { return c.ticks }

func (c *Controller) stop() {
	if c.handle != 0 {
		c.sched.CancelFrame(c.handle)
		c.handle = 0
	}
}

// restart tears down the running loop, then rebuilds and reschedules when
// every input is ready.
func (c *Controller) restart() {
	c.stop()
	c.live = nil
	if !c.mounted {
		return
	}
	w, h := c.tracker.Size()
	if !c.tracker.Ready() {
		c.logger.Printf("waiting for layout (%dx%d)", w, h)
		return
	}

	c.stores[c.theme] = NewScene(c.theme, w, h, c.rng)
	if sky, ok := c.stores[c.theme].(*NightSky); ok {
		sky.Turbulence = c.turb
	}
	surface, ok := c.provider(w, h)
	if !ok || surface == nil {
		c.logger.Printf("no drawing surface for %dx%d, background disabled", w, h)
		c.surface = nil
		return
	}
	c.surface = surface
	c.live = c.stores[c.theme]
	c.logger.Printf("rebuilt %s scene for %dx%d", c.theme, w, h)
	c.handle = c.sched.RequestFrame(c.tick)
}

func (c *Controller) tick() {
	c.handle = 0
	if !c.tracker.Ready() || c.live == nil || c.surface == nil {
		c.logger.Printf("loop stopped: invalid bounds")
		return
	}
	if !c.paused {
		w, h := c.tracker.Size()
		c.clock += TickSeconds
		f := Frame{
			Time:    c.clock,
			Width:   float64(w),
			Height:  float64(h),
			Pointer: c.tracker.Pointer(),
		}
		c.surface.Clear()
		c.live.Step(f)
		c.live.Render(c.surface, f)
		c.ticks++
	}
	c.handle = c.sched.RequestFrame(c.tick)
}
