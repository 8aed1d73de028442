package gfx

// Handle is an opaque reference to an object owned by a Device.
// A nil Handle never refers to a live object.
type Handle any

// Stage selects the programmable pipeline stage a shader is compiled for.
type Stage int

const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return "unknown"
	}
}

// Device is the subset of a WebGL/OpenGL context the renderer needs.
// Implementations live in internal/renderer.
type Device interface {
	CreateShader(stage Stage) Handle
	ShaderSource(shader Handle, src string)
	CompileShader(shader Handle)
	ShaderCompiled(shader Handle) bool
	ShaderInfoLog(shader Handle) string
	DeleteShader(shader Handle)

	CreateProgram() Handle
	AttachShader(program, shader Handle)
	DetachShader(program, shader Handle)
	LinkProgram(program Handle)
	ProgramLinked(program Handle) bool
	ProgramInfoLog(program Handle) string
	DeleteProgram(program Handle)
	UseProgram(program Handle)

	// AttribLocation returns -1 when name is not an active attribute.
	AttribLocation(program Handle, name string) int
	// UniformLocation returns nil when name is not an active uniform.
	UniformLocation(program Handle, name string) Handle

	CreateBuffer() Handle
	// StaticBufferData binds buffer as the array buffer and uploads data
	// with static usage.
	StaticBufferData(buffer Handle, data []float32)
	// VertexAttribPointer reads size floats per vertex from the bound array
	// buffer, unnormalized, tightly packed, starting at offset 0.
	VertexAttribPointer(index, size int)
	EnableVertexAttribArray(index int)
	DeleteBuffer(buffer Handle)

	Uniform4f(location Handle, c Color)
	ClearColor(c Color)
	Clear()
	DrawTriangleStrip(first, count int)
}
