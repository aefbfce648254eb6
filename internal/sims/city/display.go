package city

import "image/color"

const (
	displayZoneMask   = 0x07
	displayLevelShift = 3
	displayLevels     = 32
)

var cityPalette = buildCityPalette()

// Palette exposes the colour palette used for rendering the city.
func (s *Sim) Palette() []color.RGBA {
	return cityPalette
}

func buildCityPalette() []color.RGBA {
	palette := make([]color.RGBA, 256)
	for i := range palette {
		zone := Zone(i & displayZoneMask)
		level := i >> displayLevelShift
		palette[i] = toRGBA(paletteColorFor(zone, level))
	}
	return palette
}

func toRGBA(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// paletteColorFor lightens the zone colour as buildings get taller.
func paletteColorFor(zone Zone, level int) color.NRGBA {
	base := zoneColor(zone)
	if zone == ZoneRoad || zone == ZonePark {
		return base
	}
	w := 0.65 * float64(level) / float64(displayLevels-1)
	return blendColors(base, color.NRGBA{R: 250, G: 250, B: 245, A: 255}, w)
}

// ZoneColor is the unshaded colour of a zone.
func ZoneColor(z Zone) color.RGBA { return toRGBA(zoneColor(z)) }

func zoneColor(z Zone) color.NRGBA {
	switch z {
	case ZoneResidential:
		return color.NRGBA{R: 70, G: 120, B: 200, A: 255}
	case ZoneCommercial:
		return color.NRGBA{R: 220, G: 170, B: 40, A: 255}
	case ZoneIndustrial:
		return color.NRGBA{R: 160, G: 70, B: 60, A: 255}
	case ZoneRoad:
		return color.NRGBA{R: 45, G: 45, B: 50, A: 255}
	case ZonePark:
		return color.NRGBA{R: 60, G: 150, B: 70, A: 255}
	default:
		return color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	}
}

func blendColors(base, overlay color.NRGBA, overlayWeight float64) color.NRGBA {
	if overlayWeight <= 0 {
		return base
	}
	if overlayWeight >= 1 {
		return overlay
	}
	inv := 1 - overlayWeight
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*inv + float64(b)*overlayWeight + 0.5)
	}
	return color.NRGBA{
		R: mix(base.R, overlay.R),
		G: mix(base.G, overlay.G),
		B: mix(base.B, overlay.B),
		A: mix(base.A, overlay.A),
	}
}

// encodeDisplayValue packs the zone into the low bits and the relative height
// into the high bits.
func encodeDisplayValue(zone Zone, height, maxHeight int) uint8 {
	level := 0
	if maxHeight > 0 && height > 0 {
		level = height * (displayLevels - 1) / maxHeight
		if level >= displayLevels {
			level = displayLevels - 1
		}
	}
	return uint8(zone)&displayZoneMask | uint8(level)<<displayLevelShift
}

func (s *Sim) rebuildDisplay() {
	g := s.session.Grid()
	if g == nil {
		s.display = make([]uint8, s.cfg.Size*s.cfg.Size)
		return
	}
	heights := g.HeightCells()
	zones := g.ZoneCells()
	if len(s.display) != len(heights) {
		s.display = make([]uint8, len(heights))
	}
	maxHeight := s.session.Config().Params.MaxHeight
	for i := range heights {
		s.display[i] = encodeDisplayValue(zones[i], heights[i], maxHeight)
	}
}
