//go:build js && wasm

package webgl

import (
	"syscall/js"
	"unsafe"

	"github.com/kjkrol/quadcolor/pkg/gfx"
)

// Device drives a WebGL 1 rendering context.
type Device struct {
	gl     js.Value
	consts glConsts
}

type glConsts struct {
	arrayBuffer    int
	staticDraw     int
	floatType      int
	triangleStrip  int
	colorBufferBit int
	compileStatus  int
	linkStatus     int
	vertexShader   int
	fragmentShader int
}

// NewDevice wraps ctx, which must be the value returned by
// canvas.getContext("webgl").
func NewDevice(ctx any) (gfx.Device, error) {
	gl, ok := ctx.(js.Value)
	if !ok || !gl.Truthy() {
		return nil, &gfx.CapabilityError{API: "WebGL", Reason: "not a rendering context"}
	}
	d := &Device{gl: gl}
	d.initConsts()
	return d, nil
}

func (d *Device) initConsts() {
	d.consts = glConsts{
		arrayBuffer:    d.gl.Get("ARRAY_BUFFER").Int(),
		staticDraw:     d.gl.Get("STATIC_DRAW").Int(),
		floatType:      d.gl.Get("FLOAT").Int(),
		triangleStrip:  d.gl.Get("TRIANGLE_STRIP").Int(),
		colorBufferBit: d.gl.Get("COLOR_BUFFER_BIT").Int(),
		compileStatus:  d.gl.Get("COMPILE_STATUS").Int(),
		linkStatus:     d.gl.Get("LINK_STATUS").Int(),
		vertexShader:   d.gl.Get("VERTEX_SHADER").Int(),
		fragmentShader: d.gl.Get("FRAGMENT_SHADER").Int(),
	}
}

// handle turns a null WebGL object into a nil gfx.Handle.
func handle(v js.Value) gfx.Handle {
	if !v.Truthy() {
		return nil
	}
	return v
}

func value(h gfx.Handle) js.Value {
	if v, ok := h.(js.Value); ok {
		return v
	}
	return js.Null()
}

func (d *Device) CreateShader(stage gfx.Stage) gfx.Handle {
	typ := d.consts.vertexShader
	if stage == gfx.FragmentStage {
		typ = d.consts.fragmentShader
	}
	return handle(d.gl.Call("createShader", typ))
}

func (d *Device) ShaderSource(s gfx.Handle, src string) {
	d.gl.Call("shaderSource", value(s), src)
}

func (d *Device) CompileShader(s gfx.Handle) {
	d.gl.Call("compileShader", value(s))
}

func (d *Device) ShaderCompiled(s gfx.Handle) bool {
	return d.gl.Call("getShaderParameter", value(s), d.consts.compileStatus).Bool()
}

func (d *Device) ShaderInfoLog(s gfx.Handle) string {
	return d.gl.Call("getShaderInfoLog", value(s)).String()
}

func (d *Device) DeleteShader(s gfx.Handle) {
	d.gl.Call("deleteShader", value(s))
}

func (d *Device) CreateProgram() gfx.Handle {
	return handle(d.gl.Call("createProgram"))
}

func (d *Device) AttachShader(p, s gfx.Handle) {
	d.gl.Call("attachShader", value(p), value(s))
}

func (d *Device) DetachShader(p, s gfx.Handle) {
	d.gl.Call("detachShader", value(p), value(s))
}

func (d *Device) LinkProgram(p gfx.Handle) {
	d.gl.Call("linkProgram", value(p))
}

func (d *Device) ProgramLinked(p gfx.Handle) bool {
	return d.gl.Call("getProgramParameter", value(p), d.consts.linkStatus).Bool()
}

func (d *Device) ProgramInfoLog(p gfx.Handle) string {
	return d.gl.Call("getProgramInfoLog", value(p)).String()
}

func (d *Device) DeleteProgram(p gfx.Handle) {
	d.gl.Call("deleteProgram", value(p))
}

func (d *Device) UseProgram(p gfx.Handle) {
	d.gl.Call("useProgram", value(p))
}

func (d *Device) AttribLocation(p gfx.Handle, name string) int {
	return d.gl.Call("getAttribLocation", value(p), name).Int()
}

func (d *Device) UniformLocation(p gfx.Handle, name string) gfx.Handle {
	return handle(d.gl.Call("getUniformLocation", value(p), name))
}

func (d *Device) CreateBuffer() gfx.Handle {
	return handle(d.gl.Call("createBuffer"))
}

func (d *Device) StaticBufferData(b gfx.Handle, data []float32) {
	d.gl.Call("bindBuffer", d.consts.arrayBuffer, value(b))
	d.gl.Call("bufferData", d.consts.arrayBuffer, float32Array(data), d.consts.staticDraw)
}

func (d *Device) VertexAttribPointer(index, size int) {
	d.gl.Call("vertexAttribPointer", index, size, d.consts.floatType, false, 0, 0)
}

func (d *Device) EnableVertexAttribArray(index int) {
	d.gl.Call("enableVertexAttribArray", index)
}

func (d *Device) DeleteBuffer(b gfx.Handle) {
	d.gl.Call("deleteBuffer", value(b))
}

func (d *Device) Uniform4f(u gfx.Handle, c gfx.Color) {
	d.gl.Call("uniform4f", value(u), c[0], c[1], c[2], c[3])
}

func (d *Device) ClearColor(c gfx.Color) {
	d.gl.Call("clearColor", c[0], c[1], c[2], c[3])
}

func (d *Device) Clear() {
	d.gl.Call("clear", d.consts.colorBufferBit)
}

func (d *Device) DrawTriangleStrip(first, count int) {
	d.gl.Call("drawArrays", d.consts.triangleStrip, first, count)
}

// float32Array copies data into a new JS Float32Array through its byte view.
func float32Array(data []float32) js.Value {
	arr := js.Global().Get("Float32Array").New(len(data))
	if len(data) == 0 {
		return arr
	}
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4)
	bytes := js.Global().Get("Uint8Array").New(arr.Get("buffer"), arr.Get("byteOffset"), arr.Get("byteLength"))
	js.CopyBytesToJS(bytes, raw)
	return arr
}
