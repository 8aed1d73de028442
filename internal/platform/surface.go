package platform

import (
	"image"
	"image/color"
)

// Surface is an offscreen drawable backed by an RGBA buffer. Software
// rendering writes into it; tests and snapshots read it back.
type Surface interface {
	ColorModel() color.Model
	Bounds() image.Rectangle
	At(x, y int) color.Color
	Set(x, y int, c color.Color)
	RGBA() *image.RGBA
}

// NewRGBASurface creates a width x height Surface.
func NewRGBASurface(width, height int) Surface {
	return &rgbaSurface{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// WrapRGBASurface exposes an existing *image.RGBA as a Surface.
func WrapRGBASurface(img *image.RGBA) Surface {
	if img == nil {
		return nil
	}
	return &rgbaSurface{img: img}
}

type rgbaSurface struct {
	img *image.RGBA
}

func (s *rgbaSurface) ColorModel() color.Model     { return s.img.ColorModel() }
func (s *rgbaSurface) Bounds() image.Rectangle     { return s.img.Bounds() }
func (s *rgbaSurface) At(x, y int) color.Color     { return s.img.At(x, y) }
func (s *rgbaSurface) Set(x, y int, c color.Color) { s.img.Set(x, y, c) }
func (s *rgbaSurface) RGBA() *image.RGBA           { return s.img }
