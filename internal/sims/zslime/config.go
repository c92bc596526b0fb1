package zslime

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nikkolaka/z-slime/internal/life"
	"github.com/nikkolaka/z-slime/internal/noise"
	"github.com/nikkolaka/z-slime/internal/terrain"
	"github.com/nikkolaka/z-slime/pkg/logger"
)

var (
	// ErrInvalidSize reports non-positive world dimensions.
	ErrInvalidSize = errors.New("zslime: width and height must be positive")
	// ErrInvalidDensity reports a wall density outside [0, 1].
	ErrInvalidDensity = errors.New("zslime: density must be within [0, 1]")
	// ErrInvalidZoom reports a zoom below 1 or above the configured maximum.
	ErrInvalidZoom = errors.New("zslime: zoom must be within [1, max_zoom]")
	// ErrInvalidTraits reports a trait count the display cannot encode.
	ErrInvalidTraits = errors.New("zslime: traits out of range")
	// ErrInvalidRate reports a step, chance or fraction outside [0, 1].
	ErrInvalidRate = errors.New("zslime: rate must be within [0, 1]")
	// ErrInvalidWorkers reports a negative worker count.
	ErrInvalidWorkers = errors.New("zslime: workers must not be negative")
)

// Params holds tunable thresholds and probabilities for the world.
type Params struct {
	Density     float64
	DensityStep float64
	Zoom        int
	MaxZoom     int

	Sampler        string
	NoiseFrequency float64

	SmoothThreshold int

	Rule             string
	Traits           int
	MutationChance   float64
	MutateSurvivors  bool
	PopulateFraction float64

	// LegacyDensityKeys binds both density keys to an increase, matching the
	// original key map.
	LegacyDensityKeys bool
}

// Config controls the world dimensions and initial parameters.
type Config struct {
	Width  int
	Height int

	Seed    int64
	Workers int

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  100,
		Height: 100,
		Seed:   42,
		Params: Params{
			Density:          0.5,
			DensityStep:      0.05,
			Zoom:             1,
			MaxZoom:          32,
			Sampler:          "uniform",
			NoiseFrequency:   noise.DefaultFrequency,
			SmoothThreshold:  terrain.DefaultSmoothThreshold,
			Rule:             life.Conway.String(),
			Traits:           8,
			MutationChance:   0.02,
			PopulateFraction: 0.25,
		},
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, c.Workers)
	}
	p := c.Params
	if !unitRange(p.Density) {
		return fmt.Errorf("%w: got %g", ErrInvalidDensity, p.Density)
	}
	for _, r := range []struct {
		key string
		v   float64
	}{
		{"density_step", p.DensityStep},
		{"mutation_chance", p.MutationChance},
		{"populate_fraction", p.PopulateFraction},
	} {
		if !unitRange(r.v) {
			return fmt.Errorf("%w: %s %g", ErrInvalidRate, r.key, r.v)
		}
	}
	if p.MaxZoom < 1 || p.Zoom < 1 || p.Zoom > p.MaxZoom {
		return fmt.Errorf("%w: zoom %d, max %d", ErrInvalidZoom, p.Zoom, p.MaxZoom)
	}
	if p.Traits < 1 || p.Traits > maxDisplayTraits {
		return fmt.Errorf("%w: got %d, want 1..%d", ErrInvalidTraits, p.Traits, maxDisplayTraits)
	}
	if p.SmoothThreshold < 0 || p.SmoothThreshold > 8 {
		return fmt.Errorf("zslime: smooth threshold %d outside [0, 8]", p.SmoothThreshold)
	}
	if _, err := life.ParseRule(p.Rule); err != nil {
		return fmt.Errorf("zslime: %w", err)
	}
	if _, err := noise.ByName(p.Sampler, p.NoiseFrequency); err != nil {
		return fmt.Errorf("zslime: %w", err)
	}
	return nil
}

func unitRange(v float64) bool { return v >= 0 && v <= 1 }

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable values are logged and ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	for key, v := range cfg {
		if !c.apply(key, v) {
			logger.Log.WithField("key", key).WithField("value", v).Warn("ignoring config override")
		}
	}
	return c
}

// Apply sets a single key from its string form. It reports whether the key
// was known and the value parsed.
func (c *Config) Apply(key, value string) bool {
	return c.apply(key, value)
}

func (c *Config) apply(key, v string) bool {
	v = strings.TrimSpace(v)
	p := &c.Params
	switch key {
	case "w":
		return setPositiveInt(&c.Width, v)
	case "h":
		return setPositiveInt(&c.Height, v)
	case "seed":
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return false
		}
		c.Seed = parsed
	case "workers":
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			return false
		}
		c.Workers = parsed
	case "density":
		return setUnitFloat(&p.Density, v)
	case "density_step":
		return setUnitFloat(&p.DensityStep, v)
	case "zoom":
		return setPositiveInt(&p.Zoom, v)
	case "max_zoom":
		return setPositiveInt(&p.MaxZoom, v)
	case "sampler":
		if _, err := noise.ByName(v, 0); err != nil {
			return false
		}
		p.Sampler = v
	case "noise_frequency":
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 {
			return false
		}
		p.NoiseFrequency = parsed
	case "smooth_threshold":
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 || parsed > 8 {
			return false
		}
		p.SmoothThreshold = parsed
	case "rule":
		r, err := life.ParseRule(v)
		if err != nil {
			return false
		}
		p.Rule = r.String()
	case "traits":
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > maxDisplayTraits {
			return false
		}
		p.Traits = parsed
	case "mutation_chance":
		return setUnitFloat(&p.MutationChance, v)
	case "mutate_survivors":
		return setBool(&p.MutateSurvivors, v)
	case "populate_fraction":
		return setUnitFloat(&p.PopulateFraction, v)
	case "legacy_density_keys":
		return setBool(&p.LegacyDensityKeys, v)
	default:
		return false
	}
	return true
}

func setPositiveInt(dst *int, v string) bool {
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed <= 0 {
		return false
	}
	*dst = parsed
	return true
}

func setUnitFloat(dst *float64, v string) bool {
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil || !unitRange(parsed) {
		return false
	}
	*dst = parsed
	return true
}

func setBool(dst *bool, v string) bool {
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	*dst = parsed
	return true
}
