package renderer

import (
	"image"

	"github.com/kjkrol/quadcolor/internal/platform"
	"github.com/kjkrol/quadcolor/pkg/gfx"
)

// DeviceFactory builds a gfx.Device from the context a platform.Host hands out.
type DeviceFactory func(ctx any) (gfx.Device, error)

// SoftFactory returns a factory that ignores ctx and renders into target.
// The last device built is kept in *last when last is non-nil.
func SoftFactory(target *image.RGBA, last **SoftDevice) DeviceFactory {
	return func(any) (gfx.Device, error) {
		surface := platform.WrapRGBASurface(target)
		if surface == nil {
			return nil, &gfx.CapabilityError{API: "software", Reason: "no target image"}
		}
		d := NewSoftDevice(surface)
		if last != nil {
			*last = d
		}
		return d, nil
	}
}
