//go:build ebiten

package ui

import (
	"image/color"

	"citygrowth/internal/core"
	"citygrowth/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type bonusMaskProvider interface {
	BonusMask() []bool
}

type heightProvider interface {
	HeightLayer() []int
	MaxHeight() int
}

type exhaustionReporter interface {
	Exhausted() bool
}

var bonusTint = color.RGBA{R: 255, G: 210, B: 60, A: 110}

// Overlay draws optional views on top of the zone map: key 1 highlights the
// cells that get the near-road bonus, key 2 replaces the map with heights only.
type Overlay struct {
	sim     core.Sim
	scale   int
	toggles Toggles
	heights *render.GridPainter
	mask    *render.GridPainter
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale}
	o.allocate(sim.Size())
	return o
}

func (o *Overlay) allocate(size core.Size) {
	o.heights = render.NewGridPainter(size.W, size.H)
	o.mask = render.NewGridPainter(size.W, size.H)
}

// Toggles reports which views are enabled.
func (o *Overlay) Toggles() Toggles { return o.toggles }

// Update reads the toggle keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.toggles.Toggle(ViewBonus)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.toggles.Toggle(ViewHeights)
	}
}

// Draw renders the enabled views onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	if w, h := o.heights.Size(); w != size.W || h != size.H {
		o.allocate(size)
	}

	if o.toggles.HeightsOnly {
		if provider, ok := o.sim.(heightProvider); ok {
			o.heights.BlitHeights(screen, provider.HeightLayer(), provider.MaxHeight(), o.scale)
		}
	}
	if o.toggles.Bonus {
		if provider, ok := o.sim.(bonusMaskProvider); ok {
			o.mask.BlitMask(screen, provider.BonusMask(), bonusTint, o.scale)
		}
	}
	if reporter, ok := o.sim.(exhaustionReporter); ok && reporter.Exhausted() {
		o.drawBanner(screen, "Materials exhausted")
	}
}

func (o *Overlay) drawBanner(screen *ebiten.Image, msg string) {
	face := basicfont.Face7x13
	bounds := text.BoundString(face, msg)
	x := 6
	y := 6 + bounds.Dy()
	text.Draw(screen, msg, face, x+1, y+1, color.Black)
	text.Draw(screen, msg, face, x, y, color.RGBA{R: 255, G: 90, B: 70, A: 255})
}
