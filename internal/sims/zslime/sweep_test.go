package zslime

import (
	"context"
	"testing"
)

func TestSweepDeterministicAndOrdered(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 24, 24
	densities := []float64{0.3, 0.5}

	a, err := Sweep(context.Background(), cfg, densities, 3, 2, 5, 4)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Sweep(context.Background(), cfg, densities, 3, 2, 5, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 6 {
		t.Fatalf("expected 6 results, got %d", len(a))
	}
	for i := range a {
		if a[i].Density != densities[i/3] || a[i].Seed != cfg.Seed+int64(i%3) {
			t.Fatalf("result %d out of order: %+v", i, a[i])
		}
		if len(a[i].WallFraction) != 3 {
			t.Fatalf("expected 3 wall fractions, got %d", len(a[i].WallFraction))
		}
		if a[i].Alive != b[i].Alive || a[i].WallFraction[2] != b[i].WallFraction[2] {
			t.Fatalf("result %d depends on worker count: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSweepRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 0
	if _, err := Sweep(context.Background(), cfg, []float64{0.5}, 1, 1, 1, 1); err == nil {
		t.Fatal("expected configuration error")
	}
}

func TestSweepClampsNegativeCounts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 12, 12
	res, err := Sweep(context.Background(), cfg, []float64{0.4}, -3, -2, -1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 {
		t.Fatalf("expected a single seed run, got %d", len(res))
	}
	if len(res[0].WallFraction) != 1 {
		t.Fatalf("negative passes should mean no smoothing, got %d fractions", len(res[0].WallFraction))
	}
}
