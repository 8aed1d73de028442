//go:build !js

package opengl

import (
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/kjkrol/quadcolor/pkg/gfx"
)

// Device drives the OpenGL 3.3 core context current on the calling thread.
type Device struct {
	vao uint32
}

type uniformLoc int32

type currenter interface {
	MakeContextCurrent()
}

// NewDevice makes ctx current when it knows how to, loads the GL entry
// points and binds the single vertex array object core profiles require.
func NewDevice(ctx any) (gfx.Device, error) {
	if c, ok := ctx.(currenter); ok {
		c.MakeContextCurrent()
	}
	if err := gl.Init(); err != nil {
		return nil, &gfx.CapabilityError{API: "OpenGL", Reason: err.Error()}
	}
	d := &Device{}
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	return d, nil
}

func object(h gfx.Handle) uint32 {
	id, _ := h.(uint32)
	return id
}

func handle(id uint32) gfx.Handle {
	if id == 0 {
		return nil
	}
	return id
}

func (d *Device) CreateShader(stage gfx.Stage) gfx.Handle {
	typ := uint32(gl.VERTEX_SHADER)
	if stage == gfx.FragmentStage {
		typ = gl.FRAGMENT_SHADER
	}
	return handle(gl.CreateShader(typ))
}

func (d *Device) ShaderSource(s gfx.Handle, src string) {
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(object(s), 1, csources, nil)
	free()
}

func (d *Device) CompileShader(s gfx.Handle) {
	gl.CompileShader(object(s))
}

func (d *Device) ShaderCompiled(s gfx.Handle) bool {
	var status int32
	gl.GetShaderiv(object(s), gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (d *Device) ShaderInfoLog(s gfx.Handle) string {
	var logLength int32
	gl.GetShaderiv(object(s), gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(object(s), logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *Device) DeleteShader(s gfx.Handle) {
	gl.DeleteShader(object(s))
}

func (d *Device) CreateProgram() gfx.Handle {
	return handle(gl.CreateProgram())
}

func (d *Device) AttachShader(p, s gfx.Handle) {
	gl.AttachShader(object(p), object(s))
}

func (d *Device) DetachShader(p, s gfx.Handle) {
	gl.DetachShader(object(p), object(s))
}

func (d *Device) LinkProgram(p gfx.Handle) {
	gl.LinkProgram(object(p))
}

func (d *Device) ProgramLinked(p gfx.Handle) bool {
	var status int32
	gl.GetProgramiv(object(p), gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (d *Device) ProgramInfoLog(p gfx.Handle) string {
	var logLength int32
	gl.GetProgramiv(object(p), gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(object(p), logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *Device) DeleteProgram(p gfx.Handle) {
	gl.DeleteProgram(object(p))
}

func (d *Device) UseProgram(p gfx.Handle) {
	gl.UseProgram(object(p))
}

func (d *Device) AttribLocation(p gfx.Handle, name string) int {
	return int(gl.GetAttribLocation(object(p), gl.Str(name+"\x00")))
}

func (d *Device) UniformLocation(p gfx.Handle, name string) gfx.Handle {
	loc := gl.GetUniformLocation(object(p), gl.Str(name+"\x00"))
	if loc < 0 {
		return nil
	}
	return uniformLoc(loc)
}

func (d *Device) CreateBuffer() gfx.Handle {
	var id uint32
	gl.GenBuffers(1, &id)
	return handle(id)
}

func (d *Device) StaticBufferData(b gfx.Handle, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, object(b))
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (d *Device) VertexAttribPointer(index, size int) {
	gl.VertexAttribPointerWithOffset(uint32(index), int32(size), gl.FLOAT, false, 0, 0)
}

func (d *Device) EnableVertexAttribArray(index int) {
	gl.EnableVertexAttribArray(uint32(index))
}

func (d *Device) DeleteBuffer(b gfx.Handle) {
	id := object(b)
	gl.DeleteBuffers(1, &id)
}

func (d *Device) Uniform4f(u gfx.Handle, c gfx.Color) {
	loc, ok := u.(uniformLoc)
	if !ok {
		return
	}
	gl.Uniform4f(int32(loc), c[0], c[1], c[2], c[3])
}

func (d *Device) ClearColor(c gfx.Color) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
}

func (d *Device) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (d *Device) DrawTriangleStrip(first, count int) {
	gl.DrawArrays(gl.TRIANGLE_STRIP, int32(first), int32(count))
}

// Close deletes the vertex array object created by NewDevice.
func (d *Device) Close() {
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}
