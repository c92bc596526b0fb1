package zslime

import (
	"strconv"

	"github.com/nikkolaka/z-slime/internal/core"
	"github.com/nikkolaka/z-slime/internal/life"
)

// Parameters reports the current tunables and a few live counters for the HUD.
func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.w),
				intParam("h", "Height", w.h),
				int64Param("seed", "Seed", w.cfg.Seed),
				uint64Param("generation", "Generation", w.generation),
			},
		},
		{
			Name: "Terrain",
			Params: []core.Parameter{
				floatParam("density", "Wall density", params.Density),
				floatParam("density_step", "Density step", params.DensityStep),
				intParam("zoom", "Zoom", params.Zoom),
				stringParam("sampler", "Noise sampler", w.sampler.Name()),
				floatParam("noise_frequency", "Noise frequency", params.NoiseFrequency),
				intParam("smooth_threshold", "Smooth threshold", params.SmoothThreshold),
				intParam("walls", "Walls", w.Walls()),
			},
		},
		{
			Name: "Life",
			Params: []core.Parameter{
				stringParam("rule", "Rule", w.rule.String()),
				intParam("traits", "Traits", params.Traits),
				floatParam("mutation_chance", "Mutation chance", params.MutationChance),
				boolParam("mutate_survivors", "Mutate survivors", params.MutateSurvivors),
				floatParam("populate_fraction", "Populate fraction", params.PopulateFraction),
				intParam("alive", "Alive", w.Alive()),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// SetFloatParameter updates a floating point tunable. Values are clamped to
// their valid range. Changing density regenerates the terrain.
func (w *World) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "density":
		w.SetDensity(value)
	case "density_step":
		w.cfg.Params.DensityStep = clampFloat(value, 0, 1)
	case "mutation_chance":
		w.cfg.Params.MutationChance = clampFloat(value, 0, 1)
		w.refreshDefaultPolicy()
	case "populate_fraction":
		w.cfg.Params.PopulateFraction = clampFloat(value, 0, 1)
	default:
		return false
	}
	return true
}

// SetIntParameter updates an integer tunable. Values are clamped to their
// valid range. Seed changes regenerate the terrain; zoom applies on the next
// regeneration.
func (w *World) SetIntParameter(key string, value int) bool {
	switch key {
	case "seed":
		w.cfg.Seed = int64(value)
		w.Regenerate()
	case "zoom":
		w.SetZoom(value)
	case "smooth_threshold":
		w.cfg.Params.SmoothThreshold = clampInt(value, 0, 8)
	case "traits":
		w.cfg.Params.Traits = clampInt(value, 1, maxDisplayTraits)
		w.refreshDefaultPolicy()
		if n := life.ClampTraits(w.lifeCurr, w.cfg.Params.Traits); n > 0 {
			w.log.WithField("remapped", n).Debug("live traits folded into range")
		}
		w.rebuildDisplay()
	default:
		return false
	}
	return true
}

// ParameterControls lists the tunables adjustable from the HUD.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "density", Label: "Wall density", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "density_step", Label: "Density step", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "zoom", Label: "Zoom", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: float64(w.cfg.Params.MaxZoom), HasMin: true, HasMax: true},
		{Key: "smooth_threshold", Label: "Smooth threshold", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 8, HasMin: true, HasMax: true},
		{Key: "mutation_chance", Label: "Mutation chance", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "traits", Label: "Traits", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: maxDisplayTraits, HasMin: true, HasMax: true},
		{Key: "populate_fraction", Label: "Populate fraction", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
	}
}

// refreshDefaultPolicy rebuilds the policy from params unless a custom one
// was installed with SetPolicy.
func (w *World) refreshDefaultPolicy() {
	if !w.customPolicy {
		w.policy = w.defaultPolicy()
	}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func uint64Param(key, label string, value uint64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatUint(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
