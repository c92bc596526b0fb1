// Package life implements the life layer: cells that are born, survive, die
// and mutate each generation on open terrain.
package life

import (
	"github.com/nikkolaka/z-slime/internal/core"
	"github.com/nikkolaka/z-slime/internal/terrain"
)

// Trait is a small inheritable attribute of a live cell, rendered as a colour.
type Trait uint8

// Cell is a life layer value. The zero value is dead.
type Cell struct {
	Alive bool
	Trait Trait
}

// Dead is the empty cell.
var Dead = Cell{}

// Alive returns a live cell carrying trait t.
func Alive(t Trait) Cell { return Cell{Alive: true, Trait: t} }

// Grid is a life layer.
type Grid = core.Grid[Cell]

// NewGrid allocates an all-dead life grid.
func NewGrid(w, h int) *Grid {
	return core.NewGrid[Cell](w, h)
}

// StepInput bundles everything one generation depends on. Src and Terrain
// are only read; Dst is fully overwritten.
type StepInput struct {
	Terrain *terrain.Grid
	Src     *Grid
	Dst     *Grid

	Rule            Rule
	Policy          MutationPolicy
	MutateSurvivors bool

	Seed       int64
	Generation uint64
	Workers    int
}

// Step computes the next generation of in.Src into in.Dst.
func Step(in StepInput) {
	if in.Src == in.Dst {
		panic("life: step requires separate read and write buffers")
	}
	if in.Src.W != in.Dst.W || in.Src.H != in.Dst.H || in.Terrain.W != in.Src.W || in.Terrain.H != in.Src.H {
		panic("life: step buffers differ in size")
	}
	out := in.Dst.Cells()
	w := in.Src.W
	core.ParallelRows(in.Src.H, in.Workers, func(y0, y1 int) {
		scratch := make([]Trait, 0, 9)
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				out[y*w+x] = stepCell(&in, x, y, scratch)
			}
		}
	})
}

// stepCell derives the next state of (x, y) from the previous generation only.
func stepCell(in *StepInput, x, y int, scratch []Trait) Cell {
	idx := in.Src.Index(x, y)
	if in.Terrain.Cells()[idx] == terrain.Wall {
		return Dead
	}

	src := in.Src.Cells()
	neighbors := scratch[:0]
	in.Src.Neighbors(x, y, func(n int) {
		if src[n].Alive {
			neighbors = append(neighbors, src[n].Trait)
		}
	})
	count := len(neighbors)

	cur := src[idx]
	switch {
	case cur.Alive && in.Rule.Survives(count):
		if !in.MutateSurvivors || in.Policy == nil {
			return cur
		}
		dice := core.NewDice(in.Seed, in.Generation, x, y)
		return Alive(in.Policy.Decide(append(neighbors, cur.Trait), &dice))
	case !cur.Alive && in.Rule.Born(count):
		if in.Policy == nil {
			return Alive(Majority(neighbors))
		}
		dice := core.NewDice(in.Seed, in.Generation, x, y)
		return Alive(in.Policy.Decide(neighbors, &dice))
	default:
		return Dead
	}
}

// KillWalls clears every live cell sitting on a wall and returns how many
// were removed.
func KillWalls(g *Grid, t *terrain.Grid) int {
	cells := g.Cells()
	ground := t.Cells()
	killed := 0
	for i := range cells {
		if ground[i] == terrain.Wall && cells[i].Alive {
			cells[i] = Dead
			killed++
		}
	}
	return killed
}

// ClampTraits folds live cells carrying a trait outside [0, traits) onto the
// last valid trait and returns how many cells changed.
func ClampTraits(g *Grid, traits int) int {
	if traits <= 0 || traits > MaxTraits {
		return 0
	}
	top := Trait(traits - 1)
	cells := g.Cells()
	changed := 0
	for i := range cells {
		if cells[i].Alive && cells[i].Trait > top {
			cells[i].Trait = top
			changed++
		}
	}
	return changed
}

// Populate brings a fraction of the dead open cells to life with random
// traits in [0, traits). Draws are keyed on (seed, generation, x, y).
func Populate(g *Grid, t *terrain.Grid, fraction float64, traits int, seed int64, generation uint64) int {
	if traits > MaxTraits {
		traits = MaxTraits
	}
	cells := g.Cells()
	ground := t.Cells()
	born := 0
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			i := y*g.W + x
			if ground[i] == terrain.Wall || cells[i].Alive {
				continue
			}
			dice := core.NewDice(seed, generation, x, y)
			if dice.Float64() >= fraction {
				continue
			}
			cells[i] = Alive(Trait(dice.IntN(traits)))
			born++
		}
	}
	return born
}

// CountAlive returns the number of live cells.
func CountAlive(g *Grid) int {
	n := 0
	for _, c := range g.Cells() {
		if c.Alive {
			n++
		}
	}
	return n
}
