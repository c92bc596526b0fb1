//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws the key binding help on top of the simulation view. H toggles it.
type Overlay struct {
	lines []string
	show  bool
	box   *ebiten.Image
}

// NewOverlay constructs an overlay listing the given help lines.
func NewOverlay(lines []string) *Overlay {
	return &Overlay{lines: lines, show: true}
}

// Update toggles visibility.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.show = !o.show
	}
}

// Draw renders the help box in the top-left corner.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show || len(o.lines) == 0 {
		return
	}
	width := 0
	for _, l := range o.lines {
		width = max(width, len(l))
	}
	w, h := width*7+16, len(o.lines)*lineHeight+10
	if o.box == nil || o.box.Bounds().Dx() != w || o.box.Bounds().Dy() != h {
		o.box = ebiten.NewImage(w, h)
	}
	o.box.Fill(color.RGBA{R: 0, G: 40, B: 40, A: 200})
	for i, line := range o.lines {
		text.Draw(o.box, line, basicfont.Face7x13, 8, (i+1)*lineHeight, color.RGBA{R: 0, G: 255, B: 255, A: 255})
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(4, 4)
	screen.DrawImage(o.box, op)
}
