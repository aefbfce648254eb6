package render

import (
	"image/color"
	"testing"
)

func pixel(buf []byte, i int) color.RGBA {
	base := i * 4
	return color.RGBA{R: buf[base], G: buf[base+1], B: buf[base+2], A: buf[base+3]}
}

func TestFillPaletteRGBAClampsIndex(t *testing.T) {
	pal := []color.RGBA{{R: 1, A: 255}, {G: 2, A: 255}}
	cells := []uint8{0, 1, 9}
	buf := make([]byte, 4*len(cells))
	fillPaletteRGBA(buf, cells, pal)

	if got := pixel(buf, 0); got != pal[0] {
		t.Fatalf("cell 0: expected %v, got %v", pal[0], got)
	}
	if got := pixel(buf, 2); got != pal[1] {
		t.Fatalf("out of range index should use last colour, got %v", got)
	}
}

func TestFillPaletteRGBAEmptyPaletteClears(t *testing.T) {
	buf := []byte{9, 9, 9, 9, 9, 9, 9, 9}
	fillPaletteRGBA(buf, []uint8{3, 4}, nil)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d not cleared: %d", i, b)
		}
	}
}

func TestFillMaskRGBA(t *testing.T) {
	tint := color.RGBA{R: 255, G: 200, A: 120}
	buf := make([]byte, 8)
	fillMaskRGBA(buf, []bool{true, false}, tint)
	if got := pixel(buf, 0); got != tint {
		t.Fatalf("masked cell: expected %v, got %v", tint, got)
	}
	if got := pixel(buf, 1); got != (color.RGBA{}) {
		t.Fatalf("unmasked cell should be transparent, got %v", got)
	}
}

func TestFillHeightRGBAUsesRampEnds(t *testing.T) {
	ramp := HeightRamp(8)
	heights := []int{0, 10, 25}
	buf := make([]byte, 4*len(heights))
	fillHeightRGBA(buf, heights, 10, ramp)

	if got := pixel(buf, 0); got != ramp[0] {
		t.Fatalf("height 0: expected %v, got %v", ramp[0], got)
	}
	if got := pixel(buf, 1); got != ramp[len(ramp)-1] {
		t.Fatalf("height at cap: expected %v, got %v", ramp[len(ramp)-1], got)
	}
	if got := pixel(buf, 2); got != ramp[len(ramp)-1] {
		t.Fatalf("height above cap: expected %v, got %v", ramp[len(ramp)-1], got)
	}
}

func TestHeightRampIsOpaque(t *testing.T) {
	ramp := HeightRamp(1)
	if len(ramp) != 2 {
		t.Fatalf("expected ramp of at least two colours, got %d", len(ramp))
	}
	for i, c := range ramp {
		if c.A != 255 {
			t.Fatalf("colour %d not opaque: %v", i, c)
		}
	}
}
