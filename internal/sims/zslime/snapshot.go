package zslime

import (
	"slices"

	"github.com/nikkolaka/z-slime/internal/core"
	"github.com/nikkolaka/z-slime/internal/life"
	"github.com/nikkolaka/z-slime/internal/terrain"
)

// Snapshot is a read-only copy of the world for renderers. It shares no
// storage with the World that produced it.
type Snapshot struct {
	Size       core.Size
	Generation uint64

	Seed    int64
	Density float64
	Zoom    int

	Terrain []terrain.Cell
	Life    []life.Cell
}

// Snapshot copies both layers and the current parameters.
func (w *World) Snapshot() Snapshot {
	return Snapshot{
		Size:       w.Size(),
		Generation: w.generation,
		Seed:       w.cfg.Seed,
		Density:    w.cfg.Params.Density,
		Zoom:       w.cfg.Params.Zoom,
		Terrain:    slices.Clone(w.terrainCurr.Cells()),
		Life:       slices.Clone(w.lifeCurr.Cells()),
	}
}

// TerrainAt returns the terrain cell at (x, y).
func (s Snapshot) TerrainAt(x, y int) terrain.Cell { return s.Terrain[s.index(x, y)] }

// LifeAt returns the life cell at (x, y).
func (s Snapshot) LifeAt(x, y int) life.Cell { return s.Life[s.index(x, y)] }

func (s Snapshot) index(x, y int) int {
	if x < 0 || x >= s.Size.W || y < 0 || y >= s.Size.H {
		panic("zslime: snapshot coordinate out of bounds")
	}
	return y*s.Size.W + x
}

// String renders the snapshot as text rows: '#' wall, '.' open, 'o' alive.
func (s Snapshot) String() string {
	buf := make([]byte, 0, (s.Size.W+1)*s.Size.H)
	for y := 0; y < s.Size.H; y++ {
		for x := 0; x < s.Size.W; x++ {
			i := y*s.Size.W + x
			switch {
			case s.Life[i].Alive:
				buf = append(buf, 'o')
			case s.Terrain[i] == terrain.Wall:
				buf = append(buf, '#')
			default:
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
