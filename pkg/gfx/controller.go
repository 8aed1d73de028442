package gfx

import "fmt"

// Controller holds the current color and applies triggers to it.
type Controller struct {
	dev   Device
	state State
}

// Setup compiles and links the shaders, uploads the rectangle, and draws the
// initial red frame. Nothing is linked when a compile fails and nothing is
// drawn when any step fails.
func Setup(dev Device, conf RendererConfig) (*Controller, error) {
	conf = conf.withDefaults()

	vs, err := CompileShader(dev, VertexStage, conf.Sources.Vertex)
	if err != nil {
		return nil, err
	}
	fs, err := CompileShader(dev, FragmentStage, conf.Sources.Fragment)
	if err != nil {
		vs.Release()
		return nil, err
	}
	program, err := LinkProgram(dev, vs, fs)
	if err != nil {
		vs.Release()
		fs.Release()
		return nil, err
	}

	uniform, err := program.UniformLocation(conf.ColorUniform)
	if err != nil {
		program.Release()
		return nil, err
	}
	geometry, err := UploadQuad(dev, program, conf.PositionAttrib, Rect)
	if err != nil {
		program.Release()
		return nil, err
	}

	c := &Controller{
		dev: dev,
		state: State{
			Program:  program,
			Geometry: geometry,
			Uniform:  uniform,
			Color:    Red,
		},
	}
	c.apply()
	return c, nil
}

// Current returns the color applied to the last frame.
func (c *Controller) Current() Color {
	return c.state.Color
}

// Geometry returns the uploaded rectangle.
func (c *Controller) Geometry() *Geometry {
	return c.state.Geometry
}

// Dispatch switches to the color bound to t and redraws.
func (c *Controller) Dispatch(t Trigger) (Color, error) {
	if c.state.Program == nil {
		return Color{}, ErrClosed
	}
	col, ok := ColorFor(t)
	if !ok {
		return c.state.Color, fmt.Errorf("%w: %d", ErrUnknownTrigger, int(t))
	}
	c.state.Color = col
	c.apply()
	return col, nil
}

// Redraw repeats the last frame without touching state.
func (c *Controller) Redraw() {
	if c.state.Program == nil {
		return
	}
	c.apply()
}

// The uniform write and the draw always go out together, after one bind.
func (c *Controller) apply() {
	c.state.Program.Use()
	c.dev.Uniform4f(c.state.Uniform, c.state.Color)
	RenderPass(c.dev, &c.state)
}

// Close releases the program and the vertex buffer.
func (c *Controller) Close() {
	c.state.Geometry.Release()
	c.state.Program.Release()
	c.state.Program = nil
	c.state.Geometry = nil
	c.state.Uniform = nil
}
