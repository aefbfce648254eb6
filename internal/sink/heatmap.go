package sink

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// heightGrid adapts a height grid to plotter.GridXYZ. Row 0 is drawn at the
// top, matching the text renderer.
type heightGrid [][]int

func (g heightGrid) Dims() (c, r int) { return dims(g) }

func (g heightGrid) Z(c, r int) float64 { return float64(g[len(g)-1-r][c]) }

func (g heightGrid) X(c int) float64 { return float64(c) }

func (g heightGrid) Y(r int) float64 { return float64(r) }

// Heatmap writes the height grid as a PNG heat map.
type Heatmap struct {
	Path      string
	MaxHeight int
}

// Render writes the image to h.Path, replacing the previous one.
func (h *Heatmap) Render(title string, heights [][]int) error {
	f, err := createFile(h.Path)
	if err != nil {
		return err
	}
	if err := WriteHeatmap(f, title, heights, h.MaxHeight); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteHeatmap renders heights as a PNG to w.
func WriteHeatmap(w io.Writer, title string, heights [][]int, maxHeight int) error {
	cols, rows := dims(heights)
	if cols == 0 || rows == 0 {
		return fmt.Errorf("heatmap: empty grid")
	}
	if maxHeight <= 0 {
		maxHeight = maxOf(heights)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	hm := plotter.NewHeatMap(heightGrid(heights), palette.Heat(maxHeight+1, 1))
	// Fixed bounds keep colours comparable between runs and avoid a zero-width
	// range on flat grids.
	hm.Min = 0
	hm.Max = float64(maxHeight)
	p.Add(hm)

	wt, err := p.WriterTo(6*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("heatmap: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("heatmap: write: %w", err)
	}
	return nil
}
