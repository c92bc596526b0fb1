package zslime

import (
	"errors"
	"slices"
	"testing"

	"github.com/nikkolaka/z-slime/internal/core"
	"github.com/nikkolaka/z-slime/internal/life"
	"github.com/nikkolaka/z-slime/internal/terrain"
)

func newTestWorld(t *testing.T, mutate func(*Config)) *World {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width = 32
	cfg.Height = 24
	cfg.Workers = 1
	if mutate != nil {
		mutate(&cfg)
	}
	w, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	return w
}

func assertNoLifeOnWalls(t *testing.T, w *World) {
	t.Helper()
	snap := w.Snapshot()
	for i, c := range snap.Life {
		if c.Alive && snap.Terrain[i] == terrain.Wall {
			t.Fatalf("live cell on wall at index %d", i)
		}
	}
}

func TestRegenerateDeterministic(t *testing.T) {
	a := newTestWorld(t, nil)
	b := newTestWorld(t, nil)
	if !slices.Equal(a.Snapshot().Terrain, b.Snapshot().Terrain) {
		t.Fatal("fresh worlds with equal config must have equal terrain")
	}

	initial := a.Snapshot().Terrain
	a.Smooth()
	a.Regenerate()
	if !slices.Equal(initial, a.Snapshot().Terrain) {
		t.Fatal("regenerating with the same parameters must reproduce the terrain")
	}
}

func TestRegenerationWipesLife(t *testing.T) {
	for _, cmd := range []Command{CmdNewSeed, CmdIncreaseDensity, CmdDecreaseDensity} {
		w := newTestWorld(t, func(c *Config) { c.Params.Density = 0.3 })
		if w.Populate(0.5) == 0 {
			t.Fatal("populate should bring cells to life")
		}
		if err := w.Apply(cmd); err != nil {
			t.Fatalf("%s: %v", cmd, err)
		}
		if w.Alive() != 0 {
			t.Fatalf("%s should wipe the life grid, %d cells alive", cmd, w.Alive())
		}
		if !cmd.Destructive() {
			t.Fatalf("%s should be reported as destructive", cmd)
		}
	}
}

func TestDensityCommands(t *testing.T) {
	w := newTestWorld(t, func(c *Config) {
		c.Params.Density = 0.5
		c.Params.DensityStep = 0.1
	})
	wallsBefore := w.Walls()

	if err := w.Apply(CmdIncreaseDensity); err != nil {
		t.Fatal(err)
	}
	if got := w.Config().Params.Density; got < 0.6-1e-9 || got > 0.6+1e-9 {
		t.Fatalf("expected density 0.6, got %f", got)
	}
	if w.Walls() < wallsBefore {
		t.Fatal("raising density must not reduce wall count for a fixed seed")
	}

	_ = w.Apply(CmdDecreaseDensity)
	_ = w.Apply(CmdDecreaseDensity)
	if got := w.Config().Params.Density; got < 0.4-1e-9 || got > 0.4+1e-9 {
		t.Fatalf("expected density 0.4 after two decreases, got %f", got)
	}

	w.SetDensity(5)
	if w.Config().Params.Density != 1 {
		t.Fatalf("density should clamp to 1, got %f", w.Config().Params.Density)
	}
	if w.Walls() != 32*24 {
		t.Fatalf("density 1 should wall every cell, got %d walls", w.Walls())
	}
	w.SetDensity(-1)
	if w.Config().Params.Density != 0 || w.Walls() != 0 {
		t.Fatalf("density should clamp to 0 with no walls, got %f / %d", w.Config().Params.Density, w.Walls())
	}
}

func TestZoomDoesNotRegenerate(t *testing.T) {
	w := newTestWorld(t, func(c *Config) { c.Params.MaxZoom = 3 })
	before := w.Snapshot().Terrain
	w.Populate(0.3)
	alive := w.Alive()

	for i := 0; i < 5; i++ {
		_ = w.Apply(CmdZoomIn)
	}
	if got := w.Config().Params.Zoom; got != 3 {
		t.Fatalf("zoom should clamp at max 3, got %d", got)
	}
	if !slices.Equal(before, w.Snapshot().Terrain) || w.Alive() != alive {
		t.Fatal("zoom must not change the current grids")
	}
	for i := 0; i < 5; i++ {
		_ = w.Apply(CmdZoomOut)
	}
	if got := w.Config().Params.Zoom; got != 1 {
		t.Fatalf("zoom should clamp at 1, got %d", got)
	}

	w.SetZoom(2)
	w.Regenerate()
	snap := w.Snapshot()
	for y := 0; y < snap.Size.H; y++ {
		for x := 0; x < snap.Size.W; x++ {
			if snap.TerrainAt(x, y) != snap.TerrainAt(x-x%2, y-y%2) {
				t.Fatalf("zoom 2 block containing (%d,%d) is not uniform", x, y)
			}
		}
	}
}

func TestSmoothKillsLifeOnNewWalls(t *testing.T) {
	w := newTestWorld(t, func(c *Config) { c.Params.Density = 0.55 })
	w.Populate(1)
	for i := 0; i < 4; i++ {
		w.Smooth()
		assertNoLifeOnWalls(t, w)
	}
	if w.Alive() == 0 {
		t.Fatal("smoothing should keep life on cells that stay open")
	}
}

func TestTickAdvancesGeneration(t *testing.T) {
	w := newTestWorld(t, func(c *Config) { c.Params.Density = 0.2 })
	w.Populate(0.4)
	for i := 1; i <= 5; i++ {
		if err := w.Apply(CmdTick); err != nil {
			t.Fatal(err)
		}
		if w.Generation() != uint64(i) {
			t.Fatalf("expected generation %d, got %d", i, w.Generation())
		}
		assertNoLifeOnWalls(t, w)
	}
}

func TestLifeStepReproducible(t *testing.T) {
	run := func(workers int) []life.Cell {
		w := newTestWorld(t, func(c *Config) {
			c.Params.Density = 0.35
			c.Params.MutationChance = 0.3
			c.Workers = workers
		})
		w.Smooth()
		w.Populate(0.5)
		for i := 0; i < 10; i++ {
			w.Step()
		}
		return w.Snapshot().Life
	}
	if !slices.Equal(run(1), run(4)) {
		t.Fatal("life evolution must not depend on worker count")
	}
}

func TestQuitAndUnknownCommands(t *testing.T) {
	w := newTestWorld(t, nil)
	before := w.Snapshot()
	if err := w.Apply(CmdQuit); !errors.Is(err, ErrTerminate) {
		t.Fatalf("quit should return ErrTerminate, got %v", err)
	}
	if err := w.Apply(Command(99)); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
	after := w.Snapshot()
	if !slices.Equal(before.Terrain, after.Terrain) || after.Generation != before.Generation {
		t.Fatal("quit must not change state")
	}
}

func TestParseCommandRoundTrip(t *testing.T) {
	for cmd := CmdNone; cmd <= CmdQuit; cmd++ {
		got, err := ParseCommand(cmd.String())
		if err != nil || got != cmd {
			t.Fatalf("ParseCommand(%q) = %v, %v", cmd.String(), got, err)
		}
	}
	if _, err := ParseCommand("explode"); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	w := newTestWorld(t, func(c *Config) { c.Params.Density = 0.3 })
	w.Populate(0.5)
	snap := w.Snapshot()
	terrainCopy := slices.Clone(snap.Terrain)
	lifeCopy := slices.Clone(snap.Life)

	w.Smooth()
	w.Step()
	w.Regenerate()

	if !slices.Equal(terrainCopy, snap.Terrain) || !slices.Equal(lifeCopy, snap.Life) {
		t.Fatal("snapshot changed after world mutation")
	}

	fresh := w.Snapshot()
	want := slices.Clone(fresh.Terrain)
	if fresh.Terrain[0] == terrain.Wall {
		fresh.Terrain[0] = terrain.Open
	} else {
		fresh.Terrain[0] = terrain.Wall
	}
	if !slices.Equal(want, w.Snapshot().Terrain) {
		t.Fatal("writing into a snapshot leaked into the world")
	}
}

func TestSetLife(t *testing.T) {
	w := newTestWorld(t, nil)
	if err := w.SetLife(-1, 0, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}

	w.SetDensity(1)
	if err := w.SetLife(1, 1, 0); !errors.Is(err, ErrWallCell) {
		t.Fatalf("expected ErrWallCell, got %v", err)
	}

	w.SetDensity(0)
	if err := w.SetLife(1, 1, 200); err != nil {
		t.Fatal(err)
	}
	got := w.Snapshot().LifeAt(1, 1)
	if !got.Alive || int(got.Trait) != w.Config().Params.Traits-1 {
		t.Fatalf("expected trait clamped to %d, got %+v", w.Config().Params.Traits-1, got)
	}
}

func TestCustomPolicy(t *testing.T) {
	w := newTestWorld(t, func(c *Config) { c.Params.Density = 0 })
	w.SetPolicy(life.PolicyFunc(func([]life.Trait, *core.Dice) life.Trait { return 6 }))
	// Three cells in an L shape give birth at (11,11).
	for _, xy := range [][2]int{{10, 10}, {11, 10}, {10, 11}} {
		if err := w.SetLife(xy[0], xy[1], 1); err != nil {
			t.Fatal(err)
		}
	}
	w.Step()
	if got := w.Snapshot().LifeAt(11, 11); !got.Alive || got.Trait != 6 {
		t.Fatalf("expected custom policy trait 6 at (11,11), got %+v", got)
	}

	// Parameter changes do not replace a custom policy.
	w.SetFloatParameter("mutation_chance", 0.5)
	if _, ok := w.policy.(life.PolicyFunc); !ok {
		t.Fatal("custom policy replaced by parameter change")
	}
	w.SetPolicy(nil)
	if _, ok := w.policy.(life.MajorityPolicy); !ok {
		t.Fatal("nil policy should restore the default")
	}
}

func TestDisplayBuffer(t *testing.T) {
	w := newTestWorld(t, func(c *Config) { c.Params.Density = 0 })
	if err := w.SetLife(2, 3, 4); err != nil {
		t.Fatal(err)
	}
	cells := w.Cells()
	if got := cells[3*32+2]; got != displayLifeBase+4 {
		t.Fatalf("expected display value %d, got %d", displayLifeBase+4, got)
	}
	if got := cells[0]; got != displayOpen {
		t.Fatalf("expected open display value, got %d", got)
	}
	w.SetDensity(1)
	for i, v := range w.Cells() {
		if v != displayWall {
			t.Fatalf("expected wall display value at %d, got %d", i, v)
		}
	}
	if len(w.Palette()) != displayLifeBase+w.Config().Params.Traits {
		t.Fatalf("unexpected palette length %d", len(w.Palette()))
	}
}

func TestSimRegistry(t *testing.T) {
	factory, ok := core.Sims()["zslime"]
	if !ok {
		t.Fatal("zslime should register itself")
	}
	sim, err := factory(map[string]string{"w": "12", "h": "8"})
	if err != nil {
		t.Fatal(err)
	}
	if sim.Size() != (core.Size{W: 12, H: 8}) {
		t.Fatalf("unexpected size %+v", sim.Size())
	}
	if len(sim.Cells()) != 96 {
		t.Fatalf("unexpected display length %d", len(sim.Cells()))
	}
	sim.Reset(7)
	sim.Step()
}

// End-to-end: 10x10, seed 42, density 0.3, zoom 1.
func TestEndToEndScenario(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 10, 10
	cfg.Seed = 42
	cfg.Workers = 1
	cfg.Params.Density = 0.3
	cfg.Params.Zoom = 1
	w, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}

	w.Regenerate()
	before := w.Walls()
	w.Smooth()
	if w.Walls() == before {
		t.Fatalf("smoothing should change the wall count (still %d)\n%s", before, w.Snapshot())
	}
	assertNoLifeOnWalls(t, w)

	x, y := 5, 5
	if w.Snapshot().TerrainAt(x, y) == terrain.Wall {
		x, y = firstOpen(t, w.Snapshot())
	}
	if err := w.SetLife(x, y, 0); err != nil {
		t.Fatal(err)
	}
	w.Step()
	if w.Snapshot().LifeAt(x, y).Alive {
		t.Fatalf("isolated cell at (%d,%d) should die with zero neighbours", x, y)
	}
	if w.Alive() != 0 {
		t.Fatalf("no births expected from a single cell, %d alive", w.Alive())
	}
	if w.Generation() != 1 {
		t.Fatalf("expected generation 1, got %d", w.Generation())
	}
}

func firstOpen(t *testing.T, s Snapshot) (int, int) {
	t.Helper()
	for y := 0; y < s.Size.H; y++ {
		for x := 0; x < s.Size.W; x++ {
			if s.TerrainAt(x, y) == terrain.Open {
				return x, y
			}
		}
	}
	t.Fatal("no open cell")
	return 0, 0
}
