//go:build ebiten

package app

import (
	"errors"
	"image/color"

	"citygrowth/internal/core"
	"citygrowth/internal/render"
	"citygrowth/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var keyBindings = []struct {
	keys   []ebiten.Key
	action Action
}{
	{[]ebiten.Key{ebiten.KeyQ, ebiten.KeyEscape}, ActionQuit},
	{[]ebiten.Key{ebiten.KeySpace}, ActionToggleRun},
	{[]ebiten.Key{ebiten.KeyN}, ActionStep},
	{[]ebiten.Key{ebiten.KeyEnter}, ActionRunBatch},
	{[]ebiten.Key{ebiten.KeyR}, ActionReset},
	{[]ebiten.Key{ebiten.KeyS}, ActionReseed},
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	ctrl    *Controller
	timer   *core.FixedStep
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	palette []color.RGBA

	scale int
}

// New constructs a Game for the provided simulation. Continuous stepping runs
// at tps steps per second.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	g := &Game{
		sim:     sim,
		ctrl:    NewController(sim, cfg.Seed),
		timer:   core.NewFixedStep(cfg.TPS),
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(sim, cfg.Scale),
		hud:     ui.NewHUD(sim, cfg.HUDWidth),
		scale:   cfg.Scale,
	}
	if provider, ok := sim.(core.PaletteProvider); ok {
		g.palette = provider.Palette()
	} else {
		g.palette = []color.RGBA{{A: 255}, {R: 255, G: 255, B: 255, A: 255}}
	}
	return g
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	wasRunning := g.ctrl.Running()
	for _, b := range keyBindings {
		for _, k := range b.keys {
			if !inpututil.IsKeyJustPressed(k) {
				continue
			}
			if err := g.ctrl.Apply(b.action); err != nil {
				if errors.Is(err, ErrQuit) {
					return ebiten.Termination
				}
				return err
			}
		}
	}
	if g.ctrl.Running() && !wasRunning {
		g.timer.Restart()
	}

	g.overlay.Update()
	g.hud.Update(g.gridWidth())

	if g.ctrl.Running() {
		g.ctrl.Tick(g.timer.ShouldStep())
	}
	g.hud.SetStatus(g.ctrl.Status() + " | " + g.overlay.Toggles().Label())
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	g.painter.BlitPalette(screen, g.sim.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.gridWidth(), g.scale)
}

func (g *Game) gridWidth() int { return g.sim.Size().W * g.scale }

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowSize(g.sim.Size(), g.scale, g.hud.Width(), g.hud.MinHeight())
}
