package gfx

// RendererConfig describes GPU shader inputs provided by the caller.
// Sources must declare:
// - a vec2/vec4 position attribute named PositionAttrib (vertex stage)
// - a vec4 uniform named ColorUniform written to the fragment output
type RendererConfig struct {
	Sources        Sources
	PositionAttrib string
	ColorUniform   string
}

const (
	DefaultPositionAttrib = "aVertexPosition"
	DefaultColorUniform   = "uColor"
)

func (c RendererConfig) withDefaults() RendererConfig {
	if c.PositionAttrib == "" {
		c.PositionAttrib = DefaultPositionAttrib
	}
	if c.ColorUniform == "" {
		c.ColorUniform = DefaultColorUniform
	}
	return c
}
