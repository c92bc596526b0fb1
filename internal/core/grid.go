package core

import "fmt"

// Coord addresses a single cell by column (X) and row (Y).
type Coord struct {
	X, Y int
}

// Grid stores a fixed-size 2D field of cells in row-major order.
type Grid[T any] struct {
	W, H int
	data []T
}

// NewGrid allocates a grid with the given dimensions. Non-positive dimensions
// are a programming error and panic.
func NewGrid[T any](w, h int) *Grid[T] {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("core: invalid grid size %dx%d", w, h))
	}
	return &Grid[T]{W: w, H: h, data: make([]T, w*h)}
}

// Size reports the grid dimensions.
func (g *Grid[T]) Size() Size { return Size{W: g.W, H: g.H} }

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid[T]) Cells() []T { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the cell at (x, y) and panics when the coordinate is outside the grid.
func (g *Grid[T]) At(x, y int) T {
	g.mustContain(x, y)
	return g.data[y*g.W+x]
}

// Set stores v at (x, y) and panics when the coordinate is outside the grid.
func (g *Grid[T]) Set(x, y int, v T) {
	g.mustContain(x, y)
	g.data[y*g.W+x] = v
}

// Fill assigns v to every cell.
func (g *Grid[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}

// CopyFrom overwrites the grid contents with src. Both grids must share dimensions.
func (g *Grid[T]) CopyFrom(src *Grid[T]) {
	if src.W != g.W || src.H != g.H {
		panic(fmt.Sprintf("core: copy between %dx%d and %dx%d grids", src.W, src.H, g.W, g.H))
	}
	copy(g.data, src.data)
}

// Clone returns a deep copy of the grid.
func (g *Grid[T]) Clone() *Grid[T] {
	out := &Grid[T]{W: g.W, H: g.H, data: make([]T, len(g.data))}
	copy(out.data, g.data)
	return out
}

// Neighbors calls fn with the linear index of every in-bounds cell of the
// Moore neighbourhood around (x, y). Neighbours past the edge are skipped.
func (g *Grid[T]) Neighbors(x, y int, fn func(idx int)) {
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= g.H {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := x + dx
			if nx < 0 || nx >= g.W {
				continue
			}
			fn(ny*g.W + nx)
		}
	}
}

func (g *Grid[T]) mustContain(x, y int) {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("core: coordinate (%d,%d) outside %dx%d grid", x, y, g.W, g.H))
	}
}
