package zslime

import (
	"errors"
	"math"
	"testing"

	"github.com/nikkolaka/z-slime/internal/core"
)

func TestFromMapOverrides(t *testing.T) {
	c := FromMap(map[string]string{
		"w":                   "64",
		"h":                   "48",
		"seed":                "-9",
		"density":             "0.35",
		"zoom":                "4",
		"sampler":             "simplex",
		"rule":                "s23/b36",
		"traits":              "12",
		"mutate_survivors":    "true",
		"legacy_density_keys": "1",
		"workers":             "3",
	})
	if c.Width != 64 || c.Height != 48 || c.Seed != -9 || c.Workers != 3 {
		t.Fatalf("unexpected world settings %+v", c)
	}
	p := c.Params
	if p.Density != 0.35 || p.Zoom != 4 || p.Sampler != "simplex" || p.Traits != 12 {
		t.Fatalf("unexpected params %+v", p)
	}
	if p.Rule != "B36/S23" {
		t.Fatalf("rule should be normalised, got %q", p.Rule)
	}
	if !p.MutateSurvivors || !p.LegacyDensityKeys {
		t.Fatal("boolean overrides not applied")
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestFromMapIgnoresInvalidValues(t *testing.T) {
	def := DefaultConfig()
	c := FromMap(map[string]string{
		"w":       "-3",
		"density": "1.5",
		"zoom":    "0",
		"rule":    "B9/S1",
		"sampler": "worley",
		"traits":  "300",
		"bogus":   "1",
	})
	if c.Width != def.Width || c.Params.Density != def.Params.Density || c.Params.Zoom != def.Params.Zoom {
		t.Fatalf("invalid overrides should leave defaults, got %+v", c)
	}
	if c.Params.Rule != def.Params.Rule || c.Params.Sampler != def.Params.Sampler || c.Params.Traits != def.Params.Traits {
		t.Fatalf("invalid overrides should leave defaults, got %+v", c.Params)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, ErrInvalidSize},
		{"negative height", func(c *Config) { c.Height = -1 }, ErrInvalidSize},
		{"density above one", func(c *Config) { c.Params.Density = 1.01 }, ErrInvalidDensity},
		{"zoom below one", func(c *Config) { c.Params.Zoom = 0 }, ErrInvalidZoom},
		{"zoom above max", func(c *Config) { c.Params.Zoom = c.Params.MaxZoom + 1 }, ErrInvalidZoom},
		{"too many traits", func(c *Config) { c.Params.Traits = maxDisplayTraits + 1 }, ErrInvalidTraits},
		{"NaN density", func(c *Config) { c.Params.Density = math.NaN() }, ErrInvalidDensity},
		{"negative density step", func(c *Config) { c.Params.DensityStep = -0.05 }, ErrInvalidRate},
		{"mutation chance above one", func(c *Config) { c.Params.MutationChance = 1.5 }, ErrInvalidRate},
		{"negative populate fraction", func(c *Config) { c.Params.PopulateFraction = -0.1 }, ErrInvalidRate},
		{"negative workers", func(c *Config) { c.Workers = -2 }, ErrInvalidWorkers},
	}
	for _, tc := range cases {
		c := DefaultConfig()
		tc.mutate(&c)
		err := c.Validate()
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
		if _, err := NewWithConfig(c); err == nil {
			t.Fatalf("%s: NewWithConfig should refuse invalid config", tc.name)
		}
	}

	c := DefaultConfig()
	c.Params.Rule = "nonsense"
	if err := c.Validate(); err == nil {
		t.Fatal("expected rule error")
	}
}

func TestSetFloatParameter(t *testing.T) {
	w := newTestWorld(t, nil)

	if !w.SetFloatParameter("mutation_chance", 2) {
		t.Fatal("expected mutation chance to be adjustable")
	}
	if got := w.cfg.Params.MutationChance; math.Abs(got-1) > 1e-9 {
		t.Fatalf("expected mutation chance to clamp to 1, got %f", got)
	}

	w.Populate(0.5)
	if !w.SetFloatParameter("density", 0.2) {
		t.Fatal("expected density to be adjustable")
	}
	if w.Alive() != 0 {
		t.Fatal("density change should regenerate and wipe life")
	}
	if w.SetFloatParameter("gravity", 1) {
		t.Fatal("unknown key should be rejected")
	}
}

func TestSetIntParameter(t *testing.T) {
	w := newTestWorld(t, nil)

	if !w.SetIntParameter("zoom", 1000) {
		t.Fatal("expected zoom to be adjustable")
	}
	if got := w.cfg.Params.Zoom; got != w.cfg.Params.MaxZoom {
		t.Fatalf("expected zoom clamped to %d, got %d", w.cfg.Params.MaxZoom, got)
	}
	if !w.SetIntParameter("traits", 0) || w.cfg.Params.Traits != 1 {
		t.Fatalf("traits should clamp to 1, got %d", w.cfg.Params.Traits)
	}
	if !w.SetIntParameter("seed", 1234) || w.cfg.Seed != 1234 {
		t.Fatal("seed should be settable")
	}
	if w.SetIntParameter("depth", 3) {
		t.Fatal("unknown key should be rejected")
	}
}

func TestParametersSnapshot(t *testing.T) {
	w := newTestWorld(t, nil)
	w.Step()
	snap := w.Parameters()

	gen, ok := snap.Lookup("generation")
	if !ok || gen.Value != "1" {
		t.Fatalf("expected generation 1, got %+v", gen)
	}
	rule, ok := snap.Lookup("rule")
	if !ok || rule.Value != "B3/S23" || rule.Type != core.ParamTypeString {
		t.Fatalf("unexpected rule parameter %+v", rule)
	}
	if _, ok := snap.Lookup("walls"); !ok {
		t.Fatal("expected wall counter in snapshot")
	}
}

func TestShrinkingTraitsFoldsLiveCells(t *testing.T) {
	w := newTestWorld(t, func(c *Config) { c.Params.Density = 0 })
	if err := w.SetLife(4, 4, 7); err != nil {
		t.Fatal(err)
	}
	if err := w.SetLife(5, 4, 0); err != nil {
		t.Fatal(err)
	}
	if !w.SetIntParameter("traits", 2) {
		t.Fatal("expected traits to be adjustable")
	}
	snap := w.Snapshot()
	if got := snap.LifeAt(4, 4); !got.Alive || got.Trait != 1 {
		t.Fatalf("expected trait folded to 1, got %+v", got)
	}
	if got := snap.LifeAt(5, 4); !got.Alive || got.Trait != 0 {
		t.Fatalf("in-range trait changed: %+v", got)
	}
	palette := w.Palette()
	for i, v := range w.Cells() {
		if int(v) >= len(palette) {
			t.Fatalf("display value %d at %d outside palette of %d colours", v, i, len(palette))
		}
	}
}

func TestParameterControlsAreSettable(t *testing.T) {
	w := newTestWorld(t, nil)
	controls := w.ParameterControls()
	want := []string{"density", "density_step", "zoom", "smooth_threshold", "mutation_chance", "traits", "populate_fraction"}
	if len(controls) != len(want) {
		t.Fatalf("expected %d controls, got %d", len(want), len(controls))
	}
	snap := w.Parameters()
	for i, ctrl := range controls {
		if ctrl.Key != want[i] {
			t.Fatalf("control %d: expected %q, got %q", i, want[i], ctrl.Key)
		}
		if _, ok := snap.Lookup(ctrl.Key); !ok {
			t.Fatalf("control %q missing from parameter snapshot", ctrl.Key)
		}
		var ok bool
		switch ctrl.Type {
		case core.ParamTypeInt:
			ok = w.SetIntParameter(ctrl.Key, int(ctrl.Min))
		case core.ParamTypeFloat:
			ok = w.SetFloatParameter(ctrl.Key, ctrl.Min)
		}
		if !ok {
			t.Fatalf("control %q rejected by its setter", ctrl.Key)
		}
	}
}
