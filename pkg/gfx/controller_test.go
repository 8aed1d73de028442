package gfx_test

import (
	"bytes"
	"errors"
	"image/color"
	"testing"

	"github.com/kjkrol/quadcolor/internal/platform"
	"github.com/kjkrol/quadcolor/internal/renderer"
	"github.com/kjkrol/quadcolor/pkg/gfx"
)

const frameSize = 100

func newController(t *testing.T, src gfx.Sources) (*gfx.Controller, *renderer.SoftDevice) {
	t.Helper()
	dev := renderer.NewSoftDevice(platform.NewRGBASurface(frameSize, frameSize))
	ctrl, err := gfx.Setup(dev, gfx.RendererConfig{Sources: src})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	t.Cleanup(ctrl.Close)
	return ctrl, dev
}

func rgba(c gfx.Color) color.RGBA { return gfx.ToRGBA(c) }

// assertFrame checks pixels well inside and well outside the rectangle,
// which spans x in [15,85) and y in [25,75) on a 100x100 frame.
func assertFrame(t *testing.T, dev *renderer.SoftDevice, fill gfx.Color) {
	t.Helper()
	img := dev.Frame()
	inside := [][2]int{{50, 50}, {15, 25}, {84, 25}, {15, 74}, {84, 74}, {30, 60}, {70, 30}}
	outside := [][2]int{{0, 0}, {14, 50}, {85, 50}, {50, 24}, {50, 75}, {99, 99}, {10, 10}}
	for _, p := range inside {
		if got := img.RGBAAt(p[0], p[1]); got != rgba(fill) {
			t.Errorf("pixel %v = %v, want fill %v", p, got, rgba(fill))
		}
	}
	for _, p := range outside {
		if got := img.RGBAAt(p[0], p[1]); got != rgba(gfx.Background) {
			t.Errorf("pixel %v = %v, want background", p, got)
		}
	}
}

func TestSetup_InitialFrameIsRed(t *testing.T) {
	for name, src := range map[string]gfx.Sources{
		"webgl": gfx.WebGLSources,
		"core":  gfx.CoreSources,
	} {
		t.Run(name, func(t *testing.T) {
			ctrl, dev := newController(t, src)

			if got := ctrl.Current(); got != gfx.Red {
				t.Fatalf("initial color = %v, want %v", got, gfx.Red)
			}
			assertFrame(t, dev, gfx.Red)

			stats := dev.Stats()
			if stats.Compiles != 2 || stats.Links != 1 || stats.Uploads != 1 || stats.Draws != 1 {
				t.Errorf("unexpected setup calls: %+v", stats)
			}
			if stats.Invalid != 0 {
				t.Errorf("setup issued %d invalid calls", stats.Invalid)
			}
		})
	}
}

func TestSetup_ReleasesCompiledUnitsAfterLink(t *testing.T) {
	_, dev := newController(t, gfx.WebGLSources)
	shaders, programs := dev.Live()
	if shaders != 0 || programs != 1 {
		t.Errorf("live shaders=%d programs=%d, want 0 and 1", shaders, programs)
	}
}

func TestDispatch_SetsLiteralColor(t *testing.T) {
	tests := []struct {
		trigger gfx.Trigger
		want    gfx.Color
	}{
		{gfx.TriggerGreen, gfx.Color{0, 1, 0, 1}},
		{gfx.TriggerBlue, gfx.Color{0, 0, 1, 1}},
		{gfx.TriggerYellow, gfx.Color{1, 1, 0, 1}},
		{gfx.TriggerReset, gfx.Color{1, 0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.trigger.String(), func(t *testing.T) {
			ctrl, dev := newController(t, gfx.WebGLSources)
			got, err := ctrl.Dispatch(tt.trigger)
			if err != nil {
				t.Fatalf("dispatch: %v", err)
			}
			if got != tt.want || ctrl.Current() != tt.want {
				t.Fatalf("color = %v (current %v), want %v", got, ctrl.Current(), tt.want)
			}
			assertFrame(t, dev, tt.want)
			s := dev.Stats()
			if s.Invalid != 0 {
				t.Errorf("dispatch issued %d invalid calls", s.Invalid)
			}
			// one bind for setup, one for the transition
			if s.Uses != 2 {
				t.Errorf("program bound %d times, want 2", s.Uses)
			}
		})
	}
}

func TestDispatch_Idempotent(t *testing.T) {
	for _, trigger := range gfx.Triggers() {
		t.Run(trigger.String(), func(t *testing.T) {
			ctrl, dev := newController(t, gfx.WebGLSources)

			first, _ := ctrl.Dispatch(trigger)
			frame := bytes.Clone(dev.Frame().Pix)
			second, _ := ctrl.Dispatch(trigger)

			if first != second {
				t.Fatalf("second dispatch changed color: %v -> %v", first, second)
			}
			if !bytes.Equal(frame, dev.Frame().Pix) {
				t.Fatal("second dispatch changed the frame")
			}
		})
	}
}

func TestDispatch_LastTriggerWins(t *testing.T) {
	sequences := [][]gfx.Trigger{
		{gfx.TriggerGreen, gfx.TriggerBlue, gfx.TriggerYellow},
		{gfx.TriggerYellow},
		{gfx.TriggerReset, gfx.TriggerBlue, gfx.TriggerGreen, gfx.TriggerBlue, gfx.TriggerYellow},
	}
	for _, seq := range sequences {
		ctrl, dev := newController(t, gfx.WebGLSources)
		for _, tr := range seq {
			if _, err := ctrl.Dispatch(tr); err != nil {
				t.Fatalf("dispatch %v: %v", tr, err)
			}
		}
		if got := ctrl.Current(); got != gfx.Yellow {
			t.Errorf("after %v color = %v, want yellow", seq, got)
		}
		assertFrame(t, dev, gfx.Yellow)
	}
}

func TestDispatch_GeometryUnchanged(t *testing.T) {
	ctrl, dev := newController(t, gfx.WebGLSources)
	want := []float32{-0.7, 0.5, 0.7, 0.5, -0.7, -0.5, 0.7, -0.5}

	check := func() {
		t.Helper()
		got := dev.BufferContents(ctrl.Geometry().Buffer())
		if len(got) != len(want) {
			t.Fatalf("buffer holds %d floats, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("buffer[%d] = %v, want %v", i, got[i], want[i])
			}
		}
	}
	check()
	for _, tr := range gfx.Triggers() {
		ctrl.Dispatch(tr)
		check()
	}
	if dev.Stats().Uploads != 1 {
		t.Errorf("geometry uploaded %d times, want once", dev.Stats().Uploads)
	}
}

func TestDispatch_UnknownTrigger(t *testing.T) {
	ctrl, dev := newController(t, gfx.WebGLSources)
	draws := dev.Stats().Draws

	got, err := ctrl.Dispatch(gfx.Trigger(42))
	if !errors.Is(err, gfx.ErrUnknownTrigger) {
		t.Fatalf("err = %v, want ErrUnknownTrigger", err)
	}
	if got != gfx.Red || ctrl.Current() != gfx.Red {
		t.Errorf("unknown trigger changed color to %v", ctrl.Current())
	}
	if dev.Stats().Draws != draws {
		t.Error("unknown trigger redrew the frame")
	}
}

func TestRedraw_KeepsColor(t *testing.T) {
	ctrl, dev := newController(t, gfx.WebGLSources)
	ctrl.Dispatch(gfx.TriggerBlue)
	ctrl.Redraw()
	if ctrl.Current() != gfx.Blue {
		t.Fatalf("redraw changed color to %v", ctrl.Current())
	}
	assertFrame(t, dev, gfx.Blue)
	if dev.Stats().Draws != 3 {
		t.Errorf("draws = %d, want 3", dev.Stats().Draws)
	}
}

func TestClose_ReleasesDeviceObjects(t *testing.T) {
	dev := renderer.NewSoftDevice(platform.NewRGBASurface(frameSize, frameSize))
	ctrl, err := gfx.Setup(dev, gfx.RendererConfig{Sources: gfx.WebGLSources})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	ctrl.Close()
	ctrl.Close()

	if n := dev.Buffers(); n != 0 {
		t.Errorf("%d buffers left after close", n)
	}
	if _, programs := dev.Live(); programs != 0 {
		t.Errorf("%d programs left after close", programs)
	}
	if _, err := ctrl.Dispatch(gfx.TriggerGreen); !errors.Is(err, gfx.ErrClosed) {
		t.Errorf("dispatch after close: err = %v, want ErrClosed", err)
	}
}

func TestSetup_CompileFailureStopsBeforeLink(t *testing.T) {
	tests := []struct {
		name  string
		src   gfx.Sources
		stage gfx.Stage
	}{
		{
			name:  "vertex",
			src:   gfx.Sources{Vertex: "void main() { gl_Position = ", Fragment: gfx.WebGLSources.Fragment},
			stage: gfx.VertexStage,
		},
		{
			name:  "fragment",
			src:   gfx.Sources{Vertex: gfx.WebGLSources.Vertex, Fragment: "uniform vec4 uColor;"},
			stage: gfx.FragmentStage,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := renderer.NewSoftDevice(platform.NewRGBASurface(frameSize, frameSize))
			ctrl, err := gfx.Setup(dev, gfx.RendererConfig{Sources: tt.src})
			if ctrl != nil {
				t.Fatal("setup returned a controller for invalid source")
			}
			var compileErr *gfx.CompileError
			if !errors.As(err, &compileErr) {
				t.Fatalf("err = %v, want *CompileError", err)
			}
			if compileErr.Stage != tt.stage {
				t.Errorf("stage = %v, want %v", compileErr.Stage, tt.stage)
			}
			if compileErr.Log == "" {
				t.Error("compile error carries no diagnostic")
			}

			stats := dev.Stats()
			if stats.Links != 0 || stats.Draws != 0 || stats.Clears != 0 {
				t.Errorf("setup went past the failed compile: %+v", stats)
			}
			if shaders, programs := dev.Live(); shaders != 0 || programs != 0 {
				t.Errorf("leaked shaders=%d programs=%d", shaders, programs)
			}
		})
	}
}

func TestSetup_LinkFailure(t *testing.T) {
	src := gfx.Sources{
		Vertex: gfx.WebGLSources.Vertex,
		Fragment: `precision mediump float;
varying vec4 vTint;
uniform vec4 uColor;
void main() {
	gl_FragColor = uColor;
}
`,
	}
	dev := renderer.NewSoftDevice(platform.NewRGBASurface(frameSize, frameSize))
	_, err := gfx.Setup(dev, gfx.RendererConfig{Sources: src})

	var linkErr *gfx.LinkError
	if !errors.As(err, &linkErr) {
		t.Fatalf("err = %v, want *LinkError", err)
	}
	if linkErr.Log == "" {
		t.Error("link error carries no diagnostic")
	}
	if dev.Stats().Draws != 0 {
		t.Error("draw issued after failed link")
	}
	if shaders, programs := dev.Live(); shaders != 0 || programs != 0 {
		t.Errorf("leaked shaders=%d programs=%d", shaders, programs)
	}
}

func TestSetup_MissingUniform(t *testing.T) {
	dev := renderer.NewSoftDevice(platform.NewRGBASurface(frameSize, frameSize))
	_, err := gfx.Setup(dev, gfx.RendererConfig{Sources: gfx.WebGLSources, ColorUniform: "uTint"})

	var bindErr *gfx.BindingError
	if !errors.As(err, &bindErr) {
		t.Fatalf("err = %v, want *BindingError", err)
	}
	if bindErr.Kind != "uniform" || bindErr.Name != "uTint" {
		t.Errorf("binding error = %+v", bindErr)
	}
	if _, programs := dev.Live(); programs != 0 {
		t.Errorf("%d programs leaked", programs)
	}
	if dev.Stats().Draws != 0 {
		t.Error("draw issued after failed setup")
	}
}

func TestSetup_PositionAttributeAfterAnotherInput(t *testing.T) {
	src := gfx.Sources{
		Vertex: `attribute vec4 aTint;
attribute vec4 aVertexPosition;
varying vec4 vTint;
void main() {
	vTint = aTint;
	gl_Position = aVertexPosition;
}
`,
		Fragment: gfx.WebGLSources.Fragment,
	}
	ctrl, dev := newController(t, src)

	assertFrame(t, dev, gfx.Red)
	if _, err := ctrl.Dispatch(gfx.TriggerBlue); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	assertFrame(t, dev, gfx.Blue)
	if s := dev.Stats(); s.Draws != 2 || s.Invalid != 0 {
		t.Errorf("stats = %+v", s)
	}
}
