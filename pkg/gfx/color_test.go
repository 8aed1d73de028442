package gfx_test

import (
	"image/color"
	"testing"

	"github.com/kjkrol/quadcolor/pkg/gfx"
)

func TestTriggerIDsRoundTrip(t *testing.T) {
	ids := map[gfx.Trigger]string{
		gfx.TriggerGreen:  "set-green",
		gfx.TriggerBlue:   "set-blue",
		gfx.TriggerYellow: "set-yellow",
		gfx.TriggerReset:  "reset-to-red",
	}
	if len(gfx.Triggers()) != len(ids) {
		t.Fatalf("Triggers() has %d entries, want %d", len(gfx.Triggers()), len(ids))
	}
	for tr, id := range ids {
		if got := tr.ID(); got != id {
			t.Errorf("%d.ID() = %q, want %q", tr, got, id)
		}
		parsed, ok := gfx.ParseTrigger(id)
		if !ok || parsed != tr {
			t.Errorf("ParseTrigger(%q) = %v, %v", id, parsed, ok)
		}
	}
	if _, ok := gfx.ParseTrigger("set-purple"); ok {
		t.Error("ParseTrigger accepted an unknown id")
	}
}

func TestColorFor(t *testing.T) {
	want := map[gfx.Trigger]gfx.Color{
		gfx.TriggerGreen:  {0, 1, 0, 1},
		gfx.TriggerBlue:   {0, 0, 1, 1},
		gfx.TriggerYellow: {1, 1, 0, 1},
		gfx.TriggerReset:  {1, 0, 0, 1},
	}
	for tr, c := range want {
		got, ok := gfx.ColorFor(tr)
		if !ok || got != c {
			t.Errorf("ColorFor(%v) = %v, %v; want %v", tr, got, ok, c)
		}
	}
	if _, ok := gfx.ColorFor(gfx.Trigger(-1)); ok {
		t.Error("ColorFor accepted an invalid trigger")
	}
}

func TestColorConversions(t *testing.T) {
	if got := gfx.ToRGBA(gfx.Yellow); got != (color.RGBA{255, 255, 0, 255}) {
		t.Errorf("ToRGBA(yellow) = %v", got)
	}
	if got := gfx.ToRGBA(gfx.Color{2, -1, 0.5, 1}); got != (color.RGBA{255, 0, 128, 255}) {
		t.Errorf("ToRGBA clamps to %v", got)
	}
}
