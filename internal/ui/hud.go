//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strings"

	"citygrowth/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD is the panel to the right of the grid: one +/- row per dial, then the
// read-only readouts and a status line.
type HUD struct {
	sim   core.Sim
	dials tunable
	width int

	panel *ebiten.Image
	pixel *ebiten.Image

	title    string
	rows     []dialRow
	readouts []readout
	status   string
	offsetX  int
}

type dialRow struct {
	ctrl    core.ParameterControl
	current float64
	value   string
	ok      bool
	top     int
	minus   image.Rectangle
	plus    image.Rectangle
}

// NewHUD builds the panel for sim. A sim without tunable dials gets a panel
// with readouts only.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width, title: "Controls"}
	if name := sim.Name(); name != "" {
		h.title = strings.ToUpper(name[:1]) + name[1:] + " controls"
	}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if t, ok := sim.(tunable); ok {
		h.dials = t
		for i, ctrl := range t.ParameterControls() {
			top := controlsTop + i*rowHeight
			y := top + (rowHeight-buttonSize)/2
			plus := image.Rect(width-padding-buttonSize, y, width-padding, y+buttonSize)
			minus := plus.Sub(image.Pt(buttonSize+buttonGap, 0))
			h.rows = append(h.rows, dialRow{ctrl: ctrl, value: "--", top: top, minus: minus, plus: plus})
		}
	}
	return h
}

// Width reports the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// SetStatus sets the line drawn at the bottom of the panel.
func (h *HUD) SetStatus(status string) {
	if h != nil {
		h.status = status
	}
}

// Update reads the dials and readouts from the sim and applies a click on a
// +/- button. panelOffsetX is the screen x of the panel's left edge.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil || h.dials == nil {
		return
	}
	h.offsetX = panelOffsetX
	snap := h.dials.Parameters()
	controls := make([]core.ParameterControl, len(h.rows))
	for i := range h.rows {
		r := &h.rows[i]
		controls[i] = r.ctrl
		r.current, r.value, r.ok = controlValue(snap, r.ctrl)
	}
	h.readouts = readouts(snap, controls)

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	pt := image.Pt(mx-h.offsetX, my)
	for i := range h.rows {
		r := &h.rows[i]
		switch {
		case !r.ok:
		case pt.In(r.minus):
			h.adjust(r, -1)
			return
		case pt.In(r.plus):
			h.adjust(r, 1)
			return
		}
	}
}

func (h *HUD) adjust(r *dialRow, dir int) {
	target, changed := nudge(r.ctrl, r.current, dir)
	if changed && setControl(h.dials, r.ctrl, target) {
		r.current = target
		r.value = formatFloat(r.ctrl, target)
		if r.ctrl.Type == core.ParamTypeInt {
			r.value = formatInt(target)
		}
	}
}

// MinHeight is the panel height needed to show every row.
func (h *HUD) MinHeight() int {
	if h == nil || h.width <= 0 {
		return 0
	}
	return h.readoutsTop() + (len(h.readouts)+3)*lineHeight + padding
}

func (h *HUD) readoutsTop() int {
	return controlsTop + len(h.rows)*rowHeight + lineHeight
}

// Draw paints the panel at offsetX, at least as tall as the scaled grid.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.sim.Size().H * max(scale, 1)
	height = max(height, h.MinHeight())
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, padding, padding+titleBaseline, titleColor)
	for i := range h.rows {
		r := &h.rows[i]
		y := r.top + labelBaseline
		text.Draw(h.panel, r.ctrl.Label, face, padding, y, textColor)
		valueColor := textColor
		if !r.ok {
			valueColor = dimColor
		}
		w := text.BoundString(face, r.value).Dx()
		text.Draw(h.panel, r.value, face, r.minus.Min.X-buttonGap-w, y, valueColor)
		h.drawButton(r.minus, "-", r.canMove(-1))
		h.drawButton(r.plus, "+", r.canMove(1))
	}

	y := h.readoutsTop()
	group := ""
	for _, ro := range h.readouts {
		if ro.group != group {
			group = ro.group
			text.Draw(h.panel, group, face, padding, y, groupColor)
			y += lineHeight
		}
		text.Draw(h.panel, ro.label, face, padding, y, dimColor)
		w := text.BoundString(face, ro.value).Dx()
		text.Draw(h.panel, ro.value, face, h.width-padding-w, y, textColor)
		y += lineHeight
	}
	if h.status != "" {
		text.Draw(h.panel, h.status, face, padding, height-padding, titleColor)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (r *dialRow) canMove(dir int) bool {
	if !r.ok {
		return false
	}
	_, changed := nudge(r.ctrl, r.current, dir)
	return changed
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg, fg := buttonColor, textColor
	if !enabled {
		bg, fg = buttonOffColor, dimColor
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	b := text.BoundString(basicfont.Face7x13, label)
	x := rect.Min.X + (rect.Dx()-b.Dx())/2
	y := rect.Min.Y + (rect.Dy()+b.Dy())/2
	text.Draw(h.panel, label, basicfont.Face7x13, x, y, fg)
}

var (
	panelColor     = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor     = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	textColor      = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor       = color.RGBA{R: 140, G: 140, B: 150, A: 255}
	groupColor     = color.RGBA{R: 140, G: 180, B: 220, A: 255}
	buttonColor    = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	buttonOffColor = color.RGBA{R: 32, G: 34, B: 40, A: 255}
)

const (
	padding       = 12
	rowHeight     = 36
	lineHeight    = 18
	buttonSize    = 24
	buttonGap     = 6
	titleBaseline = 18
	labelBaseline = 24
	controlsTop   = padding + titleBaseline + 14
)
