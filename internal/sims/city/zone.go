package city

import (
	"fmt"
	"strings"
)

// Zone enumerates the land use of a cell.
type Zone uint8

const (
	ZoneResidential Zone = iota
	ZoneCommercial
	ZoneIndustrial
	ZoneRoad
	ZonePark

	zoneCount
)

// seedZones are the zones drawn uniformly when a grid is initialized.
var seedZones = [...]Zone{ZoneResidential, ZoneCommercial, ZoneIndustrial}

var zoneNames = [...]string{
	ZoneResidential: "residential",
	ZoneCommercial:  "commercial",
	ZoneIndustrial:  "industrial",
	ZoneRoad:        "road",
	ZonePark:        "park",
}

// Zones lists every known zone in declaration order.
func Zones() []Zone {
	out := make([]Zone, zoneCount)
	for i := range out {
		out[i] = Zone(i)
	}
	return out
}

// Valid reports whether z is one of the declared zones.
func (z Zone) Valid() bool { return z < zoneCount }

func (z Zone) String() string {
	if !z.Valid() {
		return fmt.Sprintf("zone(%d)", uint8(z))
	}
	return zoneNames[z]
}

// Glyph returns a single character used by text renderers.
func (z Zone) Glyph() byte {
	switch z {
	case ZoneResidential:
		return 'R'
	case ZoneCommercial:
		return 'C'
	case ZoneIndustrial:
		return 'I'
	case ZoneRoad:
		return '#'
	case ZonePark:
		return '.'
	default:
		return '?'
	}
}

// ParseZone resolves a zone from its name, ignoring case.
func ParseZone(s string) (Zone, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range zoneNames {
		if n == name {
			return Zone(i), nil
		}
	}
	return 0, fmt.Errorf("unknown zone %q", s)
}

// MarshalText encodes the zone by name.
func (z Zone) MarshalText() ([]byte, error) {
	if !z.Valid() {
		return nil, fmt.Errorf("cannot marshal %s", z)
	}
	return []byte(z.String()), nil
}

// UnmarshalText decodes a zone name.
func (z *Zone) UnmarshalText(b []byte) error {
	parsed, err := ParseZone(string(b))
	if err != nil {
		return err
	}
	*z = parsed
	return nil
}
