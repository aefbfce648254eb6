package render

import (
	"image/color"

	"gonum.org/v1/plot/palette"
)

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		putRGBA(buf, i, palette[idx])
	}
}

// fillMaskRGBA paints tint where mask is set and leaves other cells
// transparent.
func fillMaskRGBA(buf []byte, mask []bool, tint color.RGBA) {
	for i, on := range mask {
		if on {
			putRGBA(buf, i, tint)
			continue
		}
		putRGBA(buf, i, color.RGBA{})
	}
}

// fillHeightRGBA maps heights in [0,maxHeight] onto ramp. Heights above the cap
// take the last ramp colour.
func fillHeightRGBA(buf []byte, heights []int, maxHeight int, ramp []color.RGBA) {
	if len(ramp) == 0 {
		clear(buf[:4*len(heights)])
		return
	}
	if maxHeight < 1 {
		maxHeight = 1
	}
	last := len(ramp) - 1
	for i, h := range heights {
		idx := 0
		if h > 0 {
			idx = h * last / maxHeight
		}
		if idx > last {
			idx = last
		}
		putRGBA(buf, i, ramp[idx])
	}
}

func putRGBA(buf []byte, i int, c color.RGBA) {
	base := i * 4
	buf[base+0] = c.R
	buf[base+1] = c.G
	buf[base+2] = c.B
	buf[base+3] = c.A
}

// HeightRamp returns n opaque colours from low to high using the same heat
// palette as the PNG heat map.
func HeightRamp(n int) []color.RGBA {
	if n < 2 {
		n = 2
	}
	colors := palette.Heat(n, 1).Colors()
	ramp := make([]color.RGBA, len(colors))
	for i, c := range colors {
		r, g, b, _ := c.RGBA()
		ramp[i] = color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255}
	}
	return ramp
}
