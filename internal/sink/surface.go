package sink

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var viridis = []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}

// Surface writes the height grid as an interactive 3D surface HTML page.
type Surface struct {
	Path string
	// MaxHeight fixes the colour scale; zero scales to the tallest cell.
	MaxHeight int
}

// Render writes the page to s.Path, replacing the previous one.
func (s *Surface) Render(title string, heights [][]int) error {
	f, err := createFile(s.Path)
	if err != nil {
		return err
	}
	if err := WriteSurface(f, title, heights, s.MaxHeight); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteSurface renders the surface chart for heights to w.
func WriteSurface(w io.Writer, title string, heights [][]int, maxHeight int) error {
	cols, rows := dims(heights)
	if maxHeight <= 0 {
		maxHeight = maxOf(heights)
	}

	data := make([]opts.Chart3DData, 0, cols*rows)
	for y, row := range heights {
		for x, h := range row {
			data = append(data, opts.Chart3DData{Value: []interface{}{x, y, h}})
		}
	}

	surface := charts.NewSurface3D()
	surface.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "City growth", Width: "900px", Height: "700px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("%dx%d cells", cols, rows)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "X"}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "Y"}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "Height"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxHeight),
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	)
	surface.AddSeries("height", data)

	if err := surface.Render(w); err != nil {
		return fmt.Errorf("render surface: %w", err)
	}
	return nil
}
