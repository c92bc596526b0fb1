// Package noise produces deterministic wall/open samples for terrain
// generation. Every sample is a pure function of its inputs.
package noise

import (
	"fmt"
	"math"
	"strings"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"

	"github.com/nikkolaka/z-slime/internal/core"
)

// Field evaluates noise for one seed at block coordinates. Values lie in
// [0, 1]. Fields are read-only after construction and safe for concurrent use.
type Field interface {
	Value(bx, by int) float64
}

// Sampler builds the Field for a seed.
type Sampler interface {
	Name() string
	Field(seed int64) Field
}

// DefaultFrequency scales block coordinates for the coherent samplers.
const DefaultFrequency = 0.15

// Uniform draws independent values per block (white noise).
type Uniform struct{}

// Name identifies the sampler.
func (Uniform) Name() string { return "uniform" }

// Field returns the hash-backed field for seed.
func (Uniform) Field(seed int64) Field { return uniformField(seed) }

type uniformField int64

func (f uniformField) Value(bx, by int) float64 {
	return core.UnitFloat(core.Hash(int64(f), uint64(bx), uint64(by)))
}

// Simplex samples OpenSimplex noise, producing blobby coherent terrain.
type Simplex struct {
	Frequency float64
}

// Name identifies the sampler.
func (Simplex) Name() string { return "simplex" }

// Field returns a normalized simplex field for seed.
func (s Simplex) Field(seed int64) Field {
	return simplexField{n: opensimplex.NewNormalized(seed), freq: frequency(s.Frequency)}
}

type simplexField struct {
	n    opensimplex.Noise
	freq float64
}

func (f simplexField) Value(bx, by int) float64 {
	return clamp01(f.n.Eval2(float64(bx)*f.freq, float64(by)*f.freq))
}

// Perlin samples classic Perlin noise.
type Perlin struct {
	Frequency float64
}

// Name identifies the sampler.
func (Perlin) Name() string { return "perlin" }

// Field returns a perlin field for seed.
func (p Perlin) Field(seed int64) Field {
	return perlinField{p: perlin.NewPerlin(2, 2, 3, seed), freq: frequency(p.Frequency)}
}

type perlinField struct {
	p    *perlin.Perlin
	freq float64
}

func (f perlinField) Value(bx, by int) float64 {
	// Offset by half a block so samples never land on lattice points, where
	// Perlin noise is always zero.
	v := f.p.Noise2D((float64(bx)+0.5)*f.freq, (float64(by)+0.5)*f.freq)
	return clamp01((v + 1) / 2)
}

// ByName resolves a sampler from configuration.
func ByName(name string, freq float64) (Sampler, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "uniform":
		return Uniform{}, nil
	case "simplex":
		return Simplex{Frequency: freq}, nil
	case "perlin":
		return Perlin{Frequency: freq}, nil
	default:
		return nil, fmt.Errorf("noise: unknown sampler %q", name)
	}
}

// Wall reports whether the block containing (x, y) is a wall in field f.
// zoom is the block side length; values below 1 are treated as 1.
func Wall(f Field, x, y int, density float64, zoom int) bool {
	if zoom < 1 {
		zoom = 1
	}
	return f.Value(x/zoom, y/zoom) < density
}

// Sample is the one-shot form of Wall: it builds the field for seed and
// samples (x, y).
func Sample(s Sampler, seed int64, x, y int, density float64, zoom int) bool {
	return Wall(s.Field(seed), x, y, density, zoom)
}

func frequency(f float64) float64 {
	if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return DefaultFrequency
	}
	return f
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
