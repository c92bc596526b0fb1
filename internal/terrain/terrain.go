// Package terrain holds the wall/open cave layer: noise generation and the
// majority smoothing pass.
package terrain

import (
	"github.com/nikkolaka/z-slime/internal/core"
	"github.com/nikkolaka/z-slime/internal/noise"
)

// Cell is a terrain layer value.
type Cell uint8

const (
	Open Cell = iota
	Wall
)

// String returns a single-character rendering of the cell.
func (c Cell) String() string {
	if c == Wall {
		return "#"
	}
	return "."
}

// Grid is a terrain layer.
type Grid = core.Grid[Cell]

// DefaultSmoothThreshold turns a cell into a wall when more than half of its
// eight neighbours are walls.
const DefaultSmoothThreshold = 4

// Params selects the noise used to fill a terrain grid.
type Params struct {
	Seed    int64
	Density float64
	Zoom    int
}

// NewGrid allocates an all-open terrain grid.
func NewGrid(w, h int) *Grid {
	return core.NewGrid[Cell](w, h)
}

// Generate overwrites every cell of g with noise sampled at p.
func Generate(g *Grid, s noise.Sampler, p Params, workers int) {
	field := s.Field(p.Seed)
	cells := g.Cells()
	core.ParallelRows(g.H, workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := y * g.W
			for x := 0; x < g.W; x++ {
				if noise.Wall(field, x, y, p.Density, p.Zoom) {
					cells[row+x] = Wall
				} else {
					cells[row+x] = Open
				}
			}
		}
	})
}

// WallNeighbors counts walls among the in-bounds Moore neighbours of (x, y).
func WallNeighbors(g *Grid, x, y int) int {
	cells := g.Cells()
	count := 0
	g.Neighbors(x, y, func(idx int) {
		if cells[idx] == Wall {
			count++
		}
	})
	return count
}

// SmoothCell computes the post-smoothing value of (x, y) from src.
func SmoothCell(src *Grid, x, y, threshold int) Cell {
	if WallNeighbors(src, x, y) > threshold {
		return Wall
	}
	return Open
}

// Smooth applies one majority pass, reading only src and writing every cell
// of dst. src and dst must be distinct grids of the same size.
func Smooth(src, dst *Grid, threshold, workers int) {
	if src == dst {
		panic("terrain: smoothing requires separate read and write buffers")
	}
	if src.W != dst.W || src.H != dst.H {
		panic("terrain: smoothing buffers differ in size")
	}
	out := dst.Cells()
	core.ParallelRows(src.H, workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < src.W; x++ {
				out[y*src.W+x] = SmoothCell(src, x, y, threshold)
			}
		}
	})
}

// CountWalls returns the number of wall cells in g.
func CountWalls(g *Grid) int {
	n := 0
	for _, c := range g.Cells() {
		if c == Wall {
			n++
		}
	}
	return n
}
