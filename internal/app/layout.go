package app

import "citygrowth/internal/core"

// WindowSize is the screen needed for the scaled grid plus a side panel of the
// given width and minimum height.
func WindowSize(size core.Size, scale, panelWidth, panelHeight int) (int, int) {
	if scale <= 0 {
		scale = 1
	}
	w := size.W*scale + panelWidth
	h := size.H * scale
	if panelHeight > h {
		h = panelHeight
	}
	return w, h
}
