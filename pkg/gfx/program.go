package gfx

import "fmt"

// Program is a linked vertex/fragment pair.
type Program struct {
	dev    Device
	handle Handle
}

// LinkProgram links vs and fs into a program. Both units are detached and
// deleted once the link succeeds; on failure they are left to the caller.
func LinkProgram(dev Device, vs, fs *Shader) (*Program, error) {
	if vs == nil || fs == nil || vs.handle == nil || fs.handle == nil {
		return nil, ErrStageMismatch
	}
	if vs.Stage() != VertexStage || fs.Stage() != FragmentStage {
		return nil, fmt.Errorf("%w: got %s and %s", ErrStageMismatch, vs.Stage(), fs.Stage())
	}

	handle := dev.CreateProgram()
	if handle == nil {
		return nil, &LinkError{Log: "device refused to create program"}
	}
	dev.AttachShader(handle, vs.handle)
	dev.AttachShader(handle, fs.handle)
	dev.LinkProgram(handle)

	if !dev.ProgramLinked(handle) {
		log := dev.ProgramInfoLog(handle)
		dev.DeleteProgram(handle)
		return nil, &LinkError{Log: log}
	}

	// No longer need shader objects with a fully built program.
	for _, s := range []*Shader{vs, fs} {
		dev.DetachShader(handle, s.handle)
		s.Release()
	}
	return &Program{dev: dev, handle: handle}, nil
}

func (p *Program) AttribLocation(name string) (int, error) {
	loc := p.dev.AttribLocation(p.handle, name)
	if loc < 0 {
		return -1, &BindingError{Kind: "attribute", Name: name}
	}
	return loc, nil
}

func (p *Program) UniformLocation(name string) (Handle, error) {
	loc := p.dev.UniformLocation(p.handle, name)
	if loc == nil {
		return nil, &BindingError{Kind: "uniform", Name: name}
	}
	return loc, nil
}

func (p *Program) Use() {
	p.dev.UseProgram(p.handle)
}

// Release deletes the device program. It is safe to call more than once.
func (p *Program) Release() {
	if p == nil || p.handle == nil {
		return
	}
	p.dev.DeleteProgram(p.handle)
	p.handle = nil
}
