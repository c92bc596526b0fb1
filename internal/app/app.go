//go:build ebiten

package app

import (
	"errors"
	"image/color"

	"github.com/nikkolaka/z-slime/internal/core"
	"github.com/nikkolaka/z-slime/internal/life"
	"github.com/nikkolaka/z-slime/internal/render"
	"github.com/nikkolaka/z-slime/internal/sims/zslime"
	"github.com/nikkolaka/z-slime/internal/ui"
	"github.com/nikkolaka/z-slime/pkg/logger"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var keyCodes = map[string]ebiten.Key{
	"R":      ebiten.KeyR,
	"Up":     ebiten.KeyArrowUp,
	"Down":   ebiten.KeyArrowDown,
	"Right":  ebiten.KeyArrowRight,
	"Equal":  ebiten.KeyEqual,
	"Minus":  ebiten.KeyMinus,
	"L":      ebiten.KeyL,
	"C":      ebiten.KeyC,
	"N":      ebiten.KeyN,
	"Q":      ebiten.KeyQ,
	"Escape": ebiten.KeyEscape,
}

type keyBinding struct {
	key ebiten.Key
	cmd zslime.Command
}

// Game adapts the world to the ebiten.Game interface.
type Game struct {
	world   *zslime.World
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	keys    []keyBinding
	pacer   *core.FixedStep
	palette []color.RGBA
	traits  int

	scale     int
	paused    bool
	nextTrait int
}

// New constructs a Game for the provided world.
func New(world *zslime.World, cfg *Config) *Game {
	size := world.Size()
	bindings := Bindings(world.Config().Params.LegacyDensityKeys)
	keys := make([]keyBinding, 0, len(bindings))
	for _, b := range bindings {
		if k, ok := keyCodes[b.Key]; ok {
			keys = append(keys, keyBinding{key: k, cmd: b.Command})
		}
	}
	return &Game{
		world:   world,
		painter: render.NewGridPainter(size.W, size.H),
		hud:     ui.NewHUD(world, cfg.HUDWidth),
		overlay: ui.NewOverlay(HelpLines(bindings)),
		keys:    keys,
		pacer:   core.NewFixedStep(cfg.GPS),
		palette: world.Palette(),
		traits:  world.Config().Params.Traits,
		scale:   cfg.Scale,
		paused:  cfg.Paused,
	}
}

// Update handles per-frame input and advances the life layer at the
// configured generation rate.
func (g *Game) Update() error {
	for _, kb := range g.keys {
		if !inpututil.IsKeyJustPressed(kb.key) {
			continue
		}
		if err := g.world.Apply(kb.cmd); err != nil {
			if errors.Is(err, zslime.ErrTerminate) {
				return ebiten.Termination
			}
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.placeCell()
	}

	if !g.paused && g.pacer.ShouldStep() {
		if err := g.world.Apply(zslime.CmdTick); err != nil {
			return err
		}
	}

	if g.hud.Update(g.world.Size().W * g.scale) {
		g.refreshPalette()
	}
	g.overlay.Update()
	return nil
}

// refreshPalette rebuilds the palette when the trait count has changed.
func (g *Game) refreshPalette() {
	traits := g.world.Config().Params.Traits
	if traits == g.traits {
		return
	}
	g.traits = traits
	g.palette = g.world.Palette()
}

func (g *Game) placeCell() {
	cx, cy := ebiten.CursorPosition()
	if g.scale <= 0 || cx >= g.world.Size().W*g.scale {
		return
	}
	traits := g.world.Config().Params.Traits
	err := g.world.SetLife(cx/g.scale, cy/g.scale, life.Trait(g.nextTrait%traits))
	if err != nil {
		logger.Log.WithError(err).Debug("cell not placed")
		return
	}
	g.nextTrait++
}

// Draw renders the current world state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.world.Cells(), g.palette, g.scale)
	g.hud.Draw(screen, g.world.Size().W*g.scale, g.scale)
	g.overlay.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.world.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
