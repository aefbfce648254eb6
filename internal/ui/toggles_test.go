package ui

import "testing"

func TestTogglesFlipIndependently(t *testing.T) {
	var tg Toggles
	if tg.Label() != "zones" {
		t.Fatalf("expected zones view by default, got %s", tg.Label())
	}
	tg.Toggle(ViewBonus)
	if !tg.Bonus || tg.HeightsOnly {
		t.Fatalf("unexpected state %+v", tg)
	}
	tg.Toggle(ViewHeights)
	if tg.Label() != "heights+bonus" {
		t.Fatalf("expected both views, got %s", tg.Label())
	}
	tg.Toggle(ViewBonus)
	if tg.Label() != "heights" {
		t.Fatalf("expected heights view, got %s", tg.Label())
	}
	tg.Toggle(View(99))
	if tg.Label() != "heights" {
		t.Fatalf("unknown view changed state: %+v", tg)
	}
}
