package main

import (
	"io"
	"log"
	"path/filepath"
	"testing"

	"github.com/olivierh59500/particles-background/backdrop"
	"github.com/olivierh59500/particles-background/raster"
)

func TestRuneAction(t *testing.T) {
	tests := []struct {
		r    rune
		want action
	}{
		{'t', actionToggleTheme},
		{'T', actionToggleTheme},
		{' ', actionPause},
		{'s', actionSave},
		{'l', actionLoad},
		{'q', actionQuit},
		{'x', actionNone},
	}
	for _, tt := range tests {
		if got := runeAction(tt.r); got != tt.want {
			t.Errorf("runeAction(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func newTestSession(t *testing.T) (*session, *backdrop.FrameQueue) {
	t.Helper()
	queue := backdrop.NewFrameQueue()
	ctrl := backdrop.NewController(backdrop.Options{
		Theme:     backdrop.ThemeNight,
		Scheduler: queue,
		Surface: func(w, h int) (backdrop.Surface, bool) {
			return raster.New(w, h, 0.25), true
		},
		Rand: backdrop.NewRand(5),
	})
	ctrl.Resize(320, 240)
	ctrl.Mount()
	cfg := DefaultConfig()
	return &session{
		ctrl:   ctrl,
		cfg:    &cfg,
		path:   filepath.Join(t.TempDir(), "backdrop.json"),
		logger: log.New(io.Discard, "", 0),
	}, queue
}

func TestSessionToggleAndPause(t *testing.T) {
	s, queue := newTestSession(t)

	if s.apply(actionToggleTheme) {
		t.Fatal("Toggle should not quit")
	}
	if s.ctrl.Theme() != backdrop.ThemeGlyphs || s.cfg.Theme != "glyphs" {
		t.Errorf("Expected glyph theme in controller and config, got %s / %s", s.ctrl.Theme(), s.cfg.Theme)
	}

	s.apply(actionPause)
	if !s.ctrl.Paused() {
		t.Error("Expected pause")
	}
	queue.Flush()
	if s.ctrl.Clock() != 0 {
		t.Error("Paused session advanced the clock")
	}
	s.apply(actionPause)
	if s.ctrl.Paused() {
		t.Error("Expected resume")
	}
	if !s.apply(actionQuit) {
		t.Error("Expected quit to be reported")
	}
}

func TestSessionSaveLoad(t *testing.T) {
	s, _ := newTestSession(t)
	s.apply(actionToggleTheme)
	s.cfg.Opacity = 0.4
	s.apply(actionSave)

	s.apply(actionToggleTheme)
	s.cfg.Opacity = 0.9
	if s.ctrl.Theme() != backdrop.ThemeNight {
		t.Fatal("Expected night theme before load")
	}

	s.apply(actionLoad)
	if s.ctrl.Theme() != backdrop.ThemeGlyphs {
		t.Errorf("Expected the saved theme restored, got %s", s.ctrl.Theme())
	}
	if s.cfg.Opacity != 0.4 {
		t.Errorf("Expected saved opacity restored, got %v", s.cfg.Opacity)
	}
}

func TestSessionLoadMissingKeepsState(t *testing.T) {
	s, _ := newTestSession(t)
	s.apply(actionLoad)
	if s.ctrl.Theme() != backdrop.ThemeNight || !s.ctrl.Running() {
		t.Error("A failed load must leave the background untouched")
	}
}
