// Package zslime is the cave-and-slime world: a noise-generated terrain layer
// smoothed into caves, with a mutating life layer living on the open cells.
package zslime

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/nikkolaka/z-slime/internal/core"
	"github.com/nikkolaka/z-slime/internal/life"
	"github.com/nikkolaka/z-slime/internal/noise"
	"github.com/nikkolaka/z-slime/internal/terrain"
	"github.com/nikkolaka/z-slime/pkg/logger"
)

// populateSalt separates population draws from life-step draws.
const populateSalt = 0x706f70

// World owns both layers and all parameters. It is driven synchronously by a
// single caller.
type World struct {
	cfg Config

	w, h int

	sampler noise.Sampler
	rule    life.Rule
	policy  life.MutationPolicy

	customPolicy bool

	terrainCurr *terrain.Grid
	terrainNext *terrain.Grid
	lifeCurr    *life.Grid
	lifeNext    *life.Grid
	display     []uint8

	generation  uint64
	populations uint64
	seeds       *core.RNG

	log *logrus.Entry
}

// New returns a world with the provided dimensions using defaults.
func New(w, h int) (*World, error) {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig validates cfg and returns a world with freshly generated
// terrain and no life.
func NewWithConfig(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sampler, err := noise.ByName(cfg.Params.Sampler, cfg.Params.NoiseFrequency)
	if err != nil {
		return nil, fmt.Errorf("zslime: %w", err)
	}
	rule, err := life.ParseRule(cfg.Params.Rule)
	if err != nil {
		return nil, fmt.Errorf("zslime: %w", err)
	}

	w := &World{
		cfg:         cfg,
		w:           cfg.Width,
		h:           cfg.Height,
		sampler:     sampler,
		rule:        rule,
		terrainCurr: terrain.NewGrid(cfg.Width, cfg.Height),
		terrainNext: terrain.NewGrid(cfg.Width, cfg.Height),
		lifeCurr:    life.NewGrid(cfg.Width, cfg.Height),
		lifeNext:    life.NewGrid(cfg.Width, cfg.Height),
		display:     make([]uint8, cfg.Width*cfg.Height),
		seeds:       core.NewRNG(cfg.Seed),
		log:         logger.Log.WithField("sim", "zslime"),
	}
	w.policy = w.defaultPolicy()
	w.Regenerate()
	return w, nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "zslime" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.w, H: w.h} }

// Cells exposes the palette-indexed display buffer. It is rewritten by every
// mutating command; use Snapshot for a stable copy.
func (w *World) Cells() []uint8 { return w.display }

// Generation reports how many life steps have run.
func (w *World) Generation() uint64 { return w.generation }

// Config returns the current configuration, including runtime changes.
func (w *World) Config() Config { return w.cfg }

// SetPolicy replaces the mutation policy. A nil policy restores the default.
func (w *World) SetPolicy(p life.MutationPolicy) {
	w.customPolicy = p != nil
	if p == nil {
		p = w.defaultPolicy()
	}
	w.policy = p
}

func (w *World) defaultPolicy() life.MutationPolicy {
	return life.MajorityPolicy{MutationChance: w.cfg.Params.MutationChance, Traits: w.cfg.Params.Traits}
}

// Apply dispatches a driver command. CmdQuit returns ErrTerminate without
// touching state.
func (w *World) Apply(cmd Command) error {
	w.log.WithFields(logrus.Fields{"command": cmd.String(), "generation": w.generation}).Debug("apply")
	switch cmd {
	case CmdNone:
	case CmdNewSeed:
		w.NewSeed()
	case CmdIncreaseDensity:
		w.IncreaseDensity(w.cfg.Params.DensityStep)
	case CmdDecreaseDensity:
		w.DecreaseDensity(w.cfg.Params.DensityStep)
	case CmdSmooth:
		w.Smooth()
	case CmdZoomIn:
		w.SetZoom(w.cfg.Params.Zoom + 1)
	case CmdZoomOut:
		w.SetZoom(w.cfg.Params.Zoom - 1)
	case CmdTick:
		w.Step()
	case CmdPopulate:
		w.Populate(w.cfg.Params.PopulateFraction)
	case CmdClearLife:
		w.ClearLife()
	case CmdQuit:
		return ErrTerminate
	default:
		return fmt.Errorf("%w: %d", ErrUnknownCommand, int(cmd))
	}
	return nil
}

// Reset regenerates the terrain from seed. A zero seed reuses the configured one.
func (w *World) Reset(seed int64) {
	if seed != 0 {
		w.cfg.Seed = seed
	}
	w.Regenerate()
}

// NewSeed draws the next seed from the world's seed stream and regenerates.
func (w *World) NewSeed() {
	w.cfg.Seed = w.seeds.Int63()
	w.Regenerate()
}

// Regenerate replaces the terrain with fresh noise at the current seed,
// density and zoom, and kills every life cell.
func (w *World) Regenerate() {
	p := terrain.Params{Seed: w.cfg.Seed, Density: w.cfg.Params.Density, Zoom: w.cfg.Params.Zoom}
	terrain.Generate(w.terrainCurr, w.sampler, p, w.cfg.Workers)
	w.lifeCurr.Fill(life.Dead)
	w.rebuildDisplay()
	w.log.WithFields(logrus.Fields{
		"seed":    p.Seed,
		"density": p.Density,
		"zoom":    p.Zoom,
		"walls":   terrain.CountWalls(w.terrainCurr),
	}).Debug("terrain regenerated")
}

// IncreaseDensity raises the wall density by delta (clamped to [0, 1]) and
// regenerates.
func (w *World) IncreaseDensity(delta float64) {
	w.SetDensity(w.cfg.Params.Density + delta)
}

// DecreaseDensity lowers the wall density by delta (clamped to [0, 1]) and
// regenerates.
func (w *World) DecreaseDensity(delta float64) {
	w.SetDensity(w.cfg.Params.Density - delta)
}

// SetDensity clamps d to [0, 1], stores it and regenerates.
func (w *World) SetDensity(d float64) {
	w.cfg.Params.Density = clampFloat(d, 0, 1)
	w.Regenerate()
}

// SetZoom clamps z to [1, MaxZoom]. The new zoom applies to the next
// regeneration only.
func (w *World) SetZoom(z int) {
	w.cfg.Params.Zoom = clampInt(z, 1, w.cfg.Params.MaxZoom)
}

// Smooth applies one majority pass to the terrain and kills life on cells
// that became walls.
func (w *World) Smooth() {
	before := terrain.CountWalls(w.terrainCurr)
	terrain.Smooth(w.terrainCurr, w.terrainNext, w.cfg.Params.SmoothThreshold, w.cfg.Workers)
	w.terrainCurr, w.terrainNext = w.terrainNext, w.terrainCurr
	killed := life.KillWalls(w.lifeCurr, w.terrainCurr)
	w.rebuildDisplay()
	w.log.WithFields(logrus.Fields{
		"walls_before": before,
		"walls_after":  terrain.CountWalls(w.terrainCurr),
		"killed":       killed,
	}).Debug("terrain smoothed")
}

// Step advances the life layer by one synchronous generation.
func (w *World) Step() {
	life.Step(life.StepInput{
		Terrain:         w.terrainCurr,
		Src:             w.lifeCurr,
		Dst:             w.lifeNext,
		Rule:            w.rule,
		Policy:          w.policy,
		MutateSurvivors: w.cfg.Params.MutateSurvivors,
		Seed:            w.cfg.Seed,
		Generation:      w.generation,
		Workers:         w.cfg.Workers,
	})
	w.lifeCurr, w.lifeNext = w.lifeNext, w.lifeCurr
	w.generation++
	w.rebuildDisplay()
}

// Populate brings roughly fraction of the dead open cells to life with
// random traits and returns how many were born.
func (w *World) Populate(fraction float64) int {
	seed := int64(core.Hash(w.cfg.Seed, populateSalt, w.populations))
	w.populations++
	born := life.Populate(w.lifeCurr, w.terrainCurr, clampFloat(fraction, 0, 1), w.cfg.Params.Traits, seed, w.generation)
	w.rebuildDisplay()
	w.log.WithField("born", born).Debug("life populated")
	return born
}

// ClearLife kills every life cell without touching the terrain.
func (w *World) ClearLife() {
	w.lifeCurr.Fill(life.Dead)
	w.rebuildDisplay()
}

// SetLife places a live cell with trait t at (x, y). Walls and coordinates
// outside the world are refused.
func (w *World) SetLife(x, y int, t life.Trait) error {
	if !w.terrainCurr.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
	}
	if w.terrainCurr.At(x, y) == terrain.Wall {
		return fmt.Errorf("%w: (%d,%d)", ErrWallCell, x, y)
	}
	if int(t) >= w.cfg.Params.Traits {
		t = life.Trait(w.cfg.Params.Traits - 1)
	}
	w.lifeCurr.Set(x, y, life.Alive(t))
	w.rebuildDisplay()
	return nil
}

// Alive reports the number of live cells.
func (w *World) Alive() int { return life.CountAlive(w.lifeCurr) }

// Walls reports the number of wall cells.
func (w *World) Walls() int { return terrain.CountWalls(w.terrainCurr) }

func clampFloat(v, lo, hi float64) float64 {
	if v < lo || math.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func init() {
	core.Register("zslime", func(cfg map[string]string) (core.Sim, error) {
		w, err := NewWithConfig(FromMap(cfg))
		if err != nil {
			return nil, err
		}
		return w, nil
	})
}
