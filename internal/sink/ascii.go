package sink

import (
	"bufio"
	"io"
)

const heightGlyphs = "0123456789abcdefghijklmnopqrstuvwxyz"

// ASCII prints the title followed by one glyph per cell. Heights above 35 are
// printed as '+'.
type ASCII struct {
	W io.Writer
}

// Render writes the grid to a.W.
func (a *ASCII) Render(title string, heights [][]int) error {
	bw := bufio.NewWriter(a.W)
	bw.WriteString(title)
	bw.WriteByte('\n')
	for _, row := range heights {
		for _, h := range row {
			bw.WriteByte(glyph(h))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func glyph(h int) byte {
	if h < 0 {
		return '-'
	}
	if h >= len(heightGlyphs) {
		return '+'
	}
	return heightGlyphs[h]
}
