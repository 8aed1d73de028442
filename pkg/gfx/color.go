package gfx

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Color is an RGBA value with components in [0,1].
type Color = mgl32.Vec4

var (
	Red    = Color{1, 0, 0, 1}
	Green  = Color{0, 1, 0, 1}
	Blue   = Color{0, 0, 1, 1}
	Yellow = Color{1, 1, 0, 1}

	// Background is the clear color of every frame.
	Background = Color{0, 0, 0, 1}
)

// Trigger is a discrete user action understood by the Controller.
type Trigger int

const (
	TriggerGreen Trigger = iota
	TriggerBlue
	TriggerYellow
	TriggerReset
)

var triggers = [...]struct {
	id    string
	color Color
}{
	TriggerGreen:  {"set-green", Green},
	TriggerBlue:   {"set-blue", Blue},
	TriggerYellow: {"set-yellow", Yellow},
	TriggerReset:  {"reset-to-red", Red},
}

// Triggers lists every trigger in declaration order.
func Triggers() []Trigger {
	return []Trigger{TriggerGreen, TriggerBlue, TriggerYellow, TriggerReset}
}

func (t Trigger) valid() bool {
	return t >= 0 && int(t) < len(triggers)
}

// ID is the host control identifier bound to t.
func (t Trigger) ID() string {
	if !t.valid() {
		return ""
	}
	return triggers[t].id
}

func (t Trigger) String() string {
	if !t.valid() {
		return "Trigger(?)"
	}
	return triggers[t].id
}

// ParseTrigger resolves a host control identifier.
func ParseTrigger(id string) (Trigger, bool) {
	for i, tr := range triggers {
		if tr.id == id {
			return Trigger(i), true
		}
	}
	return -1, false
}

// ColorFor returns the color a trigger selects.
func ColorFor(t Trigger) (Color, bool) {
	if !t.valid() {
		return Color{}, false
	}
	return triggers[t].color, true
}

// ToRGBA converts c to an 8-bit color, clamping out-of-range components.
func ToRGBA(c Color) color.RGBA {
	conv := func(v float32) uint8 {
		v = mgl32.Clamp(v, 0, 1)
		return uint8(v*255 + 0.5)
	}
	return color.RGBA{R: conv(c[0]), G: conv(c[1]), B: conv(c[2]), A: conv(c[3])}
}
