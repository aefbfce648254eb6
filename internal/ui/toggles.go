package ui

// View names an optional overlay view.
type View int

const (
	ViewBonus View = iota + 1
	ViewHeights
)

// Toggles is the on/off state of the overlay views.
type Toggles struct {
	Bonus       bool
	HeightsOnly bool
}

// Toggle flips v.
func (t *Toggles) Toggle(v View) {
	switch v {
	case ViewBonus:
		t.Bonus = !t.Bonus
	case ViewHeights:
		t.HeightsOnly = !t.HeightsOnly
	}
}

// Label summarises the enabled views for the status line.
func (t Toggles) Label() string {
	switch {
	case t.Bonus && t.HeightsOnly:
		return "heights+bonus"
	case t.Bonus:
		return "bonus"
	case t.HeightsOnly:
		return "heights"
	default:
		return "zones"
	}
}
