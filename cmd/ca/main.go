//go:build ebiten

package main

import (
	"errors"
	"flag"
	"os"

	"github.com/MindsEye69/information-ontology-site-sub000/internal/app"
	"github.com/MindsEye69/information-ontology-site-sub000/internal/engine"
	"github.com/MindsEye69/information-ontology-site-sub000/internal/logs"
	_ "github.com/MindsEye69/information-ontology-site-sub000/internal/sims/homeostasis"
	_ "github.com/MindsEye69/information-ontology-site-sub000/internal/sims/majority"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	if !logs.ParseLevel(cfg.LogLevel) {
		logs.ParseLevel("info")
	}
	logger := logs.New(logs.Options{})

	var game *app.Game
	sim, err := cfg.Build(engine.WithLogger(logger))
	if err != nil {
		logger.Error("sim not started", "sim", cfg.Sim, "error", err)
		game = app.NewFailed(cfg.Sim, err)
		ebiten.SetWindowTitle("ontology-ca")
	} else {
		logger.Info("starting", "sim", sim.Name(), "overrides", cfg.Overrides(), "files", cfg.Files)
		game = app.New(sim, cfg.HUD, cfg.Seed, logger)
		ebiten.SetWindowTitle("ontology-ca - " + sim.Name())
	}

	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("run", "error", err)
		os.Exit(1)
	}
}
