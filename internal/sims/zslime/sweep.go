package zslime

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SweepResult summarises one (density, seed) run.
type SweepResult struct {
	Density float64
	Seed    int64

	// WallFraction[i] is the wall share after i smoothing passes.
	WallFraction []float64
	Populated    int
	Alive        int
}

// Sweep runs every density against seeds base..base+seeds-1. Each run
// regenerates, records the wall fraction across passes smoothing passes,
// populates life and advances generations steps. Runs execute on up to
// workers goroutines; results are ordered by density then seed.
func Sweep(ctx context.Context, base Config, densities []float64, seeds, passes, generations, workers int) ([]SweepResult, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	seeds = max(seeds, 1)
	passes = max(passes, 0)
	generations = max(generations, 0)
	results := make([]SweepResult, len(densities)*seeds)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for di, density := range densities {
		for s := 0; s < seeds; s++ {
			idx := di*seeds + s
			cfg := base
			cfg.Workers = 1
			cfg.Seed = base.Seed + int64(s)
			cfg.Params.Density = density
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				res, err := runSweep(cfg, passes, generations)
				if err != nil {
					return err
				}
				results[idx] = res
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runSweep(cfg Config, passes, generations int) (SweepResult, error) {
	w, err := NewWithConfig(cfg)
	if err != nil {
		return SweepResult{}, err
	}
	total := float64(w.w * w.h)
	res := SweepResult{Density: cfg.Params.Density, Seed: cfg.Seed}
	res.WallFraction = append(res.WallFraction, float64(w.Walls())/total)
	for i := 0; i < passes; i++ {
		w.Smooth()
		res.WallFraction = append(res.WallFraction, float64(w.Walls())/total)
	}
	res.Populated = w.Populate(cfg.Params.PopulateFraction)
	for i := 0; i < generations; i++ {
		w.Step()
	}
	res.Alive = w.Alive()
	return res, nil
}
