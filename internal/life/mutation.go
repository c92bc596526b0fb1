package life

import "github.com/nikkolaka/z-slime/internal/core"

// MutationPolicy picks the trait of a newly born (or mutating) cell from the
// traits of its live neighbours. neighbors is only valid for the duration of
// the call. Implementations must draw randomness from dice alone so results
// stay independent of evaluation order.
type MutationPolicy interface {
	Decide(neighbors []Trait, dice *core.Dice) Trait
}

// PolicyFunc adapts a function to MutationPolicy.
type PolicyFunc func(neighbors []Trait, dice *core.Dice) Trait

// Decide calls f.
func (f PolicyFunc) Decide(neighbors []Trait, dice *core.Dice) Trait { return f(neighbors, dice) }

// MaxTraits bounds the number of distinct trait values.
const MaxTraits = 256

// MajorityPolicy inherits the most common neighbour trait, breaking ties
// toward the lowest value. With probability MutationChance the result is
// replaced by a uniformly random trait in [0, Traits).
type MajorityPolicy struct {
	MutationChance float64
	Traits         int
}

// Decide implements MutationPolicy.
func (p MajorityPolicy) Decide(neighbors []Trait, dice *core.Dice) Trait {
	traits := p.Traits
	if traits > MaxTraits {
		traits = MaxTraits
	}
	roll := dice.Float64()
	if traits > 0 && (roll < p.MutationChance || len(neighbors) == 0) {
		return Trait(dice.IntN(traits))
	}
	return Majority(neighbors)
}

// Majority returns the most frequent trait in traits, preferring the lowest
// value on ties. It returns 0 for an empty slice.
func Majority(traits []Trait) Trait {
	var best Trait
	bestCount := 0
	for _, t := range traits {
		count := 0
		for _, o := range traits {
			if o == t {
				count++
			}
		}
		if count > bestCount || (count == bestCount && t < best) {
			best, bestCount = t, count
		}
	}
	return best
}
