package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/nikkolaka/z-slime/internal/sims/zslime"
	"github.com/nikkolaka/z-slime/pkg/logger"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	logger.Init()

	width := flag.Int("width", 100, "map width")
	height := flag.Int("height", 100, "map height")
	seed := flag.Int64("seed", 42, "first seed; runs use seed..seed+seeds-1")
	seeds := flag.Int("seeds", 4, "seeds evaluated per density")
	densityList := flag.String("densities", "0.40,0.45,0.50,0.55", "comma-separated wall densities")
	passes := flag.Int("passes", 5, "smoothing passes per run")
	generations := flag.Int("generations", 100, "life generations after populating")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel runs")
	script := flag.String("script", "", "comma-separated commands to run on a single world instead of sweeping (e.g. smooth,smooth,populate,tick)")
	var overrides kvList
	flag.Var(&overrides, "set", "parameter override in key=value form (repeatable)")
	flag.Parse()
	*seeds = max(*seeds, 1)
	*passes = max(*passes, 0)
	*generations = max(*generations, 0)

	cfg := zslime.DefaultConfig()
	cfg.Width = *width
	cfg.Height = *height
	cfg.Seed = *seed
	for _, kv := range overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !cfg.Apply(key, value) {
			logger.Log.WithField("override", kv).Warn("ignoring override")
		}
	}

	if *script != "" {
		if err := runScript(cfg, *script); err != nil {
			logger.Log.WithError(err).Fatal("script failed")
		}
		return
	}

	densities, err := parseDensities(*densityList)
	if err != nil {
		logger.Log.WithError(err).Fatal("invalid -densities")
	}
	results, err := zslime.Sweep(context.Background(), cfg, densities, *seeds, *passes, *generations, *workers)
	if err != nil {
		logger.Log.WithError(err).Fatal("sweep failed")
	}
	printSummary(os.Stdout, results, *seeds, *generations)
}

func runScript(cfg zslime.Config, script string) error {
	world, err := zslime.NewWithConfig(cfg)
	if err != nil {
		return err
	}
	for _, name := range strings.Split(script, ",") {
		cmd, err := zslime.ParseCommand(strings.TrimSpace(name))
		if err != nil {
			return err
		}
		if err := world.Apply(cmd); err != nil {
			return fmt.Errorf("%s: %w", cmd, err)
		}
	}
	snap := world.Snapshot()
	fmt.Print(snap.String())
	fmt.Printf("seed %d, density %.2f, zoom %d, generation %d, walls %d, alive %d\n",
		snap.Seed, snap.Density, snap.Zoom, snap.Generation, world.Walls(), world.Alive())
	return nil
}

func parseDensities(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, err
		}
		if d < 0 || d > 1 {
			return nil, fmt.Errorf("density %g outside [0,1]", d)
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no densities given")
	}
	return out, nil
}

// printSummary writes one row per density with the wall fraction after each
// smoothing pass averaged over seeds.
func printSummary(out io.Writer, results []zslime.SweepResult, seeds, generations int) {
	if len(results) == 0 {
		return
	}
	seeds = max(seeds, 1)
	passes := len(results[0].WallFraction) - 1
	fmt.Fprintf(out, "%-8s", "density")
	for p := 0; p <= passes; p++ {
		fmt.Fprintf(out, " %7s", fmt.Sprintf("walls@%d", p))
	}
	fmt.Fprintf(out, " %9s %9s\n", "populated", fmt.Sprintf("alive@%d", generations))

	for i := 0; i < len(results); i += seeds {
		group := results[i:min(i+seeds, len(results))]
		fractions := make([]float64, max(passes+1, 0))
		populated, alive := 0.0, 0.0
		for _, r := range group {
			for p, f := range r.WallFraction {
				if p < len(fractions) {
					fractions[p] += f / float64(len(group))
				}
			}
			populated += float64(r.Populated) / float64(len(group))
			alive += float64(r.Alive) / float64(len(group))
		}
		fmt.Fprintf(out, "%-8.2f", group[0].Density)
		for _, f := range fractions {
			fmt.Fprintf(out, " %7.3f", f)
		}
		fmt.Fprintf(out, " %9.1f %9.1f\n", populated, alive)
	}
}
