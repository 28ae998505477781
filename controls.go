package main

import (
	"log"
	"unicode"

	"github.com/olivierh59500/particles-background/backdrop"
)

type action int

const (
	actionNone action = iota
	actionToggleTheme
	actionPause
	actionSave
	actionLoad
	actionQuit
)

// runeAction maps the shared key bindings of the interactive front-ends.
func runeAction(r rune) action {
	switch unicode.ToLower(r) {
	case 't':
		return actionToggleTheme
	case ' ':
		return actionPause
	case 's':
		return actionSave
	case 'l':
		return actionLoad
	case 'q':
		return actionQuit
	}
	return actionNone
}

// session is the state an interactive front-end shares with its key bindings.
type session struct {
	ctrl   *backdrop.Controller
	cfg    *Config
	path   string
	logger *log.Logger
}

// apply runs an action and reports whether the front-end should exit.
func (s *session) apply(a action) bool {
	switch a {
	case actionToggleTheme:
		s.ctrl.ToggleTheme()
		s.cfg.Theme = s.ctrl.Theme().String()
	case actionPause:
		s.ctrl.SetPaused(!s.ctrl.Paused())
	case actionSave:
		if err := SaveConfig(s.path, *s.cfg); err != nil {
			s.logger.Printf("save: %v", err)
			return false
		}
		s.logger.Printf("saved %s", s.path)
	case actionLoad:
		next := *s.cfg
		if err := LoadConfig(s.path, &next); err != nil {
			s.logger.Printf("load: %v", err)
			return false
		}
		theme, err := next.ThemeValue()
		if err != nil || next.Opacity < 0 || next.Opacity > 1 {
			s.logger.Printf("load: rejected %s: theme=%q opacity=%.2f", s.path, next.Theme, next.Opacity)
			return false
		}
		s.cfg.Theme, s.cfg.Opacity = next.Theme, next.Opacity
		s.ctrl.SetTheme(theme)
		s.logger.Printf("loaded %s", s.path)
	case actionQuit:
		return true
	}
	return false
}
