package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"

	"github.com/olivierh59500/particles-background/backdrop"
	"github.com/olivierh59500/particles-background/raster"
)

// frameRequest describes one headless render.
type frameRequest struct {
	Theme         backdrop.Theme
	Width, Height int
	Ticks         int
	Seed          int64
	Opacity       float64
	Turbulence    float64
}

// work is the pixel-ticks a render costs. A render always runs one tick.
func (r frameRequest) work() int64 {
	return int64(r.Width) * int64(r.Height) * int64(max(r.Ticks, 1))
}

// renderFrame runs the background headless for req.Ticks ticks and returns
// the last frame composited over the theme background. It stops early with
// ctx.Err() once ctx is done.
func renderFrame(ctx context.Context, req frameRequest) (*image.RGBA, error) {
	if err := checkSize(req.Width, req.Height); err != nil {
		return nil, err
	}

	queue := backdrop.NewFrameQueue()
	var canvas *raster.Canvas
	ctrl := backdrop.NewController(backdrop.Options{
		Theme:     req.Theme,
		Scheduler: queue,
		Surface: func(w, h int) (backdrop.Surface, bool) {
			canvas = raster.New(w, h, 1)
			return canvas, true
		},
		Rand:       backdrop.NewRand(req.Seed),
		Logger:     newLogger("snapshot"),
		Turbulence: req.Turbulence,
	})
	ctrl.Resize(req.Width, req.Height)
	ctrl.Mount()
	defer ctrl.Unmount()

	for i := 0; i < max(req.Ticks, 1); i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("render stopped after %d ticks: %w", i, err)
		}
		queue.Flush()
	}
	if canvas == nil {
		return nil, fmt.Errorf("no surface for %dx%d", req.Width, req.Height)
	}
	return canvas.Flatten(req.Theme.Background(), req.Opacity), nil
}

func encodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func runSnapshot(cfg Config) error {
	theme, err := cfg.ThemeValue()
	if err != nil {
		return err
	}
	img, err := renderFrame(context.Background(), frameRequest{
		Theme:      theme,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Ticks:      cfg.Ticks,
		Seed:       cfg.Seed,
		Opacity:    cfg.Opacity,
		Turbulence: cfg.Turbulence,
	})
	if err != nil {
		return err
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := encodePNG(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	log.Printf("wrote %s (%s %dx%d, %d ticks)", cfg.Output, theme, cfg.Width, cfg.Height, cfg.Ticks)
	return nil
}
