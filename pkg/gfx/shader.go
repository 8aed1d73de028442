package gfx

// Sources holds the source text of both pipeline stages.
type Sources struct {
	Vertex   string
	Fragment string
}

// Shader is a successfully compiled unit. It stays owned by the device
// until Release or until LinkProgram consumes it.
type Shader struct {
	dev    Device
	handle Handle
	stage  Stage
}

func (s *Shader) Stage() Stage { return s.stage }

// Release deletes the device shader. It is safe to call more than once.
func (s *Shader) Release() {
	if s == nil || s.handle == nil {
		return
	}
	s.dev.DeleteShader(s.handle)
	s.handle = nil
}

// CompileShader compiles src for stage. On failure the device shader is
// deleted and a *CompileError with the device log is returned.
func CompileShader(dev Device, stage Stage, src string) (*Shader, error) {
	handle := dev.CreateShader(stage)
	if handle == nil {
		return nil, &CompileError{Stage: stage, Log: "device refused to create shader"}
	}
	dev.ShaderSource(handle, src)
	dev.CompileShader(handle)
	if !dev.ShaderCompiled(handle) {
		log := dev.ShaderInfoLog(handle)
		dev.DeleteShader(handle)
		return nil, &CompileError{Stage: stage, Log: log}
	}
	return &Shader{dev: dev, handle: handle, stage: stage}, nil
}
