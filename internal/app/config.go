package app

import (
	"time"

	"github.com/kjkrol/quadcolor/internal/platform"
	"github.com/kjkrol/quadcolor/pkg/gfx"
)

type Config struct {
	Host     platform.HostConfig
	Renderer gfx.RendererConfig
	// PollInterval bounds how long Run waits for an event before it
	// checks its context again.
	PollInterval time.Duration
}

const (
	DefaultTitle    = "quadcolor"
	DefaultWidth    = 640
	DefaultHeight   = 480
	DefaultCanvasID = "gl-canvas"
)

// DefaultConfig binds the four triggers to their control ids and to the
// keys G, B, Y and R.
func DefaultConfig(sources gfx.Sources) Config {
	controls := make([]string, 0, len(gfx.Triggers()))
	for _, t := range gfx.Triggers() {
		controls = append(controls, t.ID())
	}
	return Config{
		Host: platform.HostConfig{
			Title:    DefaultTitle,
			Width:    DefaultWidth,
			Height:   DefaultHeight,
			CanvasID: DefaultCanvasID,
			Controls: controls,
			Keys: map[string]string{
				"G": gfx.TriggerGreen.ID(),
				"B": gfx.TriggerBlue.ID(),
				"Y": gfx.TriggerYellow.ID(),
				"R": gfx.TriggerReset.ID(),
			},
		},
		Renderer: gfx.RendererConfig{
			Sources:        sources,
			PositionAttrib: gfx.DefaultPositionAttrib,
			ColorUniform:   gfx.DefaultColorUniform,
		},
		PollInterval: 50 * time.Millisecond,
	}
}
