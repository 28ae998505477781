package main

import (
	"errors"
	"flag"
	"log"
	"os"
)

func main() {
	fatal := log.New(os.Stderr, "particles-background: ", 0)

	cfg, configPath, err := parseConfig(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fatal.Fatal(err)
	}

	if f := setupLogging(cfg.Debug); f != nil {
		defer f.Close()
	}
	log.Printf("starting mode=%s theme=%s", cfg.Mode, cfg.Theme)

	switch cfg.Mode {
	case ModeTerminal:
		err = runTerminal(cfg, configPath)
	case ModeSnapshot:
		err = runSnapshot(cfg)
	case ModeServe:
		err = runServer(cfg)
	default:
		err = runWindow(cfg, configPath)
	}
	if err != nil {
		fatal.Fatal(err)
	}
}
