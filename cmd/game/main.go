package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Pong/internal/config"
	"github.com/Garsondee/Pong/internal/game"
)

func main() {
	configPath := flag.String("config", config.DefaultFile, "TOML config file")
	seed := flag.Uint64("seed", 0, "serve RNG seed (0 uses the config value or the clock)")
	writeConfig := flag.Bool("write-config", false, "write the effective config to -config and exit")
	flag.Parse()

	cfg, found, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *writeConfig {
		if err := config.Save(*configPath, cfg); err != nil {
			log.Fatal(err)
		}
		return
	}

	logger := config.NewLogger(cfg.LogLevel, os.Stderr)
	if !found {
		logger.Info("no config file, using defaults", "path", *configPath)
	}

	g := game.New(cfg, logger)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(g.WindowSize(cfg.Window.Scale))
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
