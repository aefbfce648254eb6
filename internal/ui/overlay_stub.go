//go:build !ebiten

package ui

import "citygrowth/internal/core"

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct {
	toggles Toggles
}

// NewOverlay constructs a stub overlay.
func NewOverlay(core.Sim, int) *Overlay { return &Overlay{} }

// Toggles reports which views are enabled.
func (o *Overlay) Toggles() Toggles { return o.toggles }

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
