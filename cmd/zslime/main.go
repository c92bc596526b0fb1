//go:build ebiten

package main

import (
	"errors"
	"flag"

	"github.com/nikkolaka/z-slime/internal/app"
	"github.com/nikkolaka/z-slime/internal/core"
	"github.com/nikkolaka/z-slime/internal/sims/zslime"
	"github.com/nikkolaka/z-slime/pkg/logger"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	logger.Init()

	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		logger.Log.Fatalf("unknown sim %q", cfg.Sim)
	}
	sim, err := factory(cfg.SimConfig())
	if err != nil {
		logger.Log.WithError(err).Fatal("invalid world configuration")
	}
	world, ok := sim.(*zslime.World)
	if !ok {
		logger.Log.Fatalf("sim %q has no command surface", cfg.Sim)
	}

	game := app.New(world, cfg)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("Z Life — " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	logger.Log.WithField("seed", world.Config().Seed).Info("starting")
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Log.Fatal(err)
	}
}
