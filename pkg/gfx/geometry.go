package gfx

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/kjkrol/gokg/pkg/geometry"
)

// Quad is a rectangle in normalized device coordinates, wound for a
// triangle strip: top-left, top-right, bottom-left, bottom-right.
type Quad [4]mgl32.Vec2

// Rect is the rectangle drawn by the demo.
var Rect = Quad{
	{-0.7, 0.5},
	{0.7, 0.5},
	{-0.7, -0.5},
	{0.7, -0.5},
}

// Floats flattens the quad into x, y pairs.
func (q Quad) Floats() []float32 {
	out := make([]float32, 0, len(q)*2)
	for _, v := range q {
		out = append(out, v.X(), v.Y())
	}
	return out
}

// PixelRect is a box of framebuffer pixels, origin top-left. Max is
// exclusive.
type PixelRect struct {
	Min, Max geometry.Vec[int]
}

func (r PixelRect) Size() geometry.Vec[int] { return r.Max.Sub(r.Min) }
func (r PixelRect) String() string          { return r.Min.String() + "-" + r.Max.String() }

// PixelBounds maps the quad extent onto a width x height framebuffer.
// Pixels whose centers fall inside the quad are inside the returned box.
func (q Quad) PixelBounds(width, height int) PixelRect {
	minX, minY := float32(math.MaxFloat32), float32(math.MaxFloat32)
	maxX, maxY := -minX, -minY
	for _, v := range q {
		minX = min(minX, v.X())
		maxX = max(maxX, v.X())
		minY = min(minY, v.Y())
		maxY = max(maxY, v.Y())
	}
	// NDC y grows upwards, pixel rows grow downwards.
	return PixelRect{
		Min: geometry.Vec[int]{X: ndcToPixel(minX, width), Y: ndcToPixel(-maxY, height)},
		Max: geometry.Vec[int]{X: ndcToPixel(maxX, width), Y: ndcToPixel(-minY, height)},
	}
}

func ndcToPixel(v float32, size int) int {
	p := (float64(v) + 1) / 2 * float64(size)
	// first pixel whose center is at or right of p
	c := math.Ceil(p - 0.5)
	return int(max(0, min(c, float64(size))))
}

// Geometry is the quad uploaded to device memory.
type Geometry struct {
	dev    Device
	buffer Handle
	quad   Quad
}

// UploadQuad uploads q into a static buffer and points the program's
// attrib at it.
func UploadQuad(dev Device, p *Program, attrib string, q Quad) (*Geometry, error) {
	loc, err := p.AttribLocation(attrib)
	if err != nil {
		return nil, err
	}
	buffer := dev.CreateBuffer()
	dev.StaticBufferData(buffer, q.Floats())
	dev.VertexAttribPointer(loc, 2)
	dev.EnableVertexAttribArray(loc)
	return &Geometry{dev: dev, buffer: buffer, quad: q}, nil
}

func (g *Geometry) Quad() Quad     { return g.quad }
func (g *Geometry) Count() int     { return len(g.quad) }
func (g *Geometry) Buffer() Handle { return g.buffer }

func (g *Geometry) Release() {
	if g == nil || g.buffer == nil {
		return
	}
	g.dev.DeleteBuffer(g.buffer)
	g.buffer = nil
}
