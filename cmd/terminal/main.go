package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Pong/internal/config"
	"github.com/Garsondee/Pong/internal/sound"
	"github.com/Garsondee/Pong/internal/term"
)

func main() {
	configPath := flag.String("config", config.DefaultFile, "TOML config file")
	seed := flag.Uint64("seed", 0, "serve RNG seed (0 uses the config value or the clock)")
	logPath := flag.String("log", "", "write logs to this file (the screen is taken by the game)")
	flag.Parse()

	if err := run(*configPath, *seed, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, seed uint64, logPath string) error {
	cfg, found, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	var logOut io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(cfg.LogLevel, logOut)
	if !found {
		logger.Info("no config file, using defaults", "path", configPath)
	}

	opts := term.Options{
		Rules: cfg.ToRules(),
		Seed:  cfg.Seed,
		Keys:  cfg.Keys,
		Log:   logger,
	}
	if cfg.Audio.Enabled {
		beeper, err := sound.NewBeeper(cfg.Audio.Volume)
		if err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer beeper.Close()
			opts.Cues = beeper
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return term.New(screen, opts).Run(ctx)
}
