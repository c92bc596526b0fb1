package zslime

import (
	"image/color"
	"math"

	"github.com/nikkolaka/z-slime/internal/life"
	"github.com/nikkolaka/z-slime/internal/terrain"
)

const (
	displayOpen      = 0
	displayWall      = 1
	displayLifeBase  = 2
	maxDisplayTraits = 256 - displayLifeBase
)

var (
	openColor = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	wallColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// Palette exposes the colour palette used for rendering the display buffer.
func (w *World) Palette() []color.RGBA {
	return buildPalette(w.cfg.Params.Traits)
}

func buildPalette(traits int) []color.RGBA {
	palette := make([]color.RGBA, displayLifeBase+traits)
	palette[displayOpen] = toRGBA(openColor)
	palette[displayWall] = toRGBA(wallColor)
	for t := 0; t < traits; t++ {
		palette[displayLifeBase+t] = toRGBA(blendColors(openColor, traitColor(t, traits), 0.9))
	}
	return palette
}

func toRGBA(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// traitColor spreads traits evenly around the hue wheel.
func traitColor(t, traits int) color.NRGBA {
	if traits <= 0 {
		traits = 1
	}
	h := float64(t) / float64(traits) * 6
	x := 1 - math.Abs(math.Mod(h, 2)-1)
	var r, g, b float64
	switch int(h) {
	case 0:
		r, g, b = 1, x, 0
	case 1:
		r, g, b = x, 1, 0
	case 2:
		r, g, b = 0, 1, x
	case 3:
		r, g, b = 0, x, 1
	case 4:
		r, g, b = x, 0, 1
	default:
		r, g, b = 1, 0, x
	}
	return color.NRGBA{R: uint8(r*255 + 0.5), G: uint8(g*255 + 0.5), B: uint8(b*255 + 0.5), A: 255}
}

func blendColors(base, overlay color.NRGBA, overlayWeight float64) color.NRGBA {
	if overlayWeight <= 0 {
		return base
	}
	if overlayWeight >= 1 {
		return overlay
	}
	br, bg, bb, ba := float64(base.R), float64(base.G), float64(base.B), float64(base.A)
	or, og, ob, oa := float64(overlay.R), float64(overlay.G), float64(overlay.B), float64(overlay.A)
	w := overlayWeight
	inv := 1 - w
	return color.NRGBA{
		R: uint8(br*inv + or*w + 0.5),
		G: uint8(bg*inv + og*w + 0.5),
		B: uint8(bb*inv + ob*w + 0.5),
		A: uint8(ba*inv + oa*w + 0.5),
	}
}

func encodeDisplayValue(ground terrain.Cell, cell life.Cell) uint8 {
	if ground == terrain.Wall {
		return displayWall
	}
	if cell.Alive {
		t := min(int(cell.Trait), maxDisplayTraits-1)
		return uint8(displayLifeBase + t)
	}
	return displayOpen
}

func (w *World) rebuildDisplay() {
	ground := w.terrainCurr.Cells()
	cells := w.lifeCurr.Cells()
	for i := range w.display {
		w.display[i] = encodeDisplayValue(ground[i], cells[i])
	}
}
