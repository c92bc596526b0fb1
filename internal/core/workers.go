package core

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParallelRows splits rows [0, h) into contiguous bands and runs fn on each
// band. With workers <= 1 the bands collapse into one call on the current
// goroutine. fn must only write to rows inside its band.
func ParallelRows(h, workers int, fn func(y0, y1 int)) {
	if h <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > h {
		workers = h
	}
	if workers <= 1 {
		fn(0, h)
		return
	}

	var g errgroup.Group
	band := (h + workers - 1) / workers
	for y0 := 0; y0 < h; y0 += band {
		y0 := y0
		y1 := min(y0+band, h)
		g.Go(func() error {
			fn(y0, y1)
			return nil
		})
	}
	_ = g.Wait()
}
