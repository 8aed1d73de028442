package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kjkrol/quadcolor/internal/platform"
	"github.com/kjkrol/quadcolor/internal/renderer"
	"github.com/kjkrol/quadcolor/pkg/gfx"
)

// App ties a host, a device and the color controller to one event loop.
type App struct {
	host platform.Host
	dev  gfx.Device
	ctrl *gfx.Controller
	log  *slog.Logger
	conf Config
}

// New acquires the rendering context, runs the setup sequence and shows the
// first frame. Any failure is reported through host.Notify and returned;
// the host stays open so the caller decides when to close it.
func New(host platform.Host, newDevice renderer.DeviceFactory, conf Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if conf.PollInterval <= 0 {
		conf.PollInterval = DefaultConfig(conf.Renderer.Sources).PollInterval
	}
	a := &App{host: host, log: logger, conf: conf}

	ctx, err := host.GLContext()
	if err != nil {
		return nil, a.fail(err)
	}
	a.dev, err = newDevice(ctx)
	if err != nil {
		return nil, a.fail(err)
	}
	logger.Debug("rendering context acquired", "device", fmt.Sprintf("%T", a.dev))

	a.ctrl, err = gfx.Setup(a.dev, conf.Renderer)
	if err != nil {
		return nil, a.fail(err)
	}
	host.Present()

	w, h := host.DrawableSize()
	logger.Info("scene ready",
		"color", a.ctrl.Current(),
		"size", fmt.Sprintf("%dx%d", w, h),
		"bounds", a.ctrl.Geometry().Quad().PixelBounds(w, h),
	)
	return a, nil
}

func (a *App) fail(err error) error {
	a.log.Error("setup failed", "err", err)
	a.host.Notify(UserMessage(err))
	return fmt.Errorf("app: setup: %w", err)
}

// Controller exposes the color controller, mainly for tests.
func (a *App) Controller() *gfx.Controller {
	return a.ctrl
}

// Run handles events one at a time until the host is destroyed or ctx is
// cancelled.
func (a *App) Run(ctx context.Context) error {
	timeoutMs := int(a.conf.PollInterval.Milliseconds())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !a.Handle(a.host.NextEventTimeout(timeoutMs)) {
			return nil
		}
	}
}

// Handle applies one event and reports whether the loop should continue.
func (a *App) Handle(event platform.Event) bool {
	switch e := event.(type) {
	case platform.TriggerPress:
		t, ok := gfx.ParseTrigger(e.ID)
		if !ok {
			a.log.Warn("unbound control", "id", e.ID)
			return true
		}
		color, err := a.ctrl.Dispatch(t)
		if err != nil {
			a.log.Error("dispatch failed", "trigger", t, "err", err)
			return !errors.Is(err, gfx.ErrClosed)
		}
		a.host.Present()
		a.log.Info("color changed", "trigger", t, "color", color)
	case platform.Expose:
		a.ctrl.Redraw()
		a.host.Present()
	case platform.TimeoutEvent:
	case platform.DestroyNotify:
		a.log.Debug("host destroyed")
		return false
	default:
		a.log.Debug("unhandled event", "type", fmt.Sprintf("%T", e))
	}
	return true
}

// Close releases device resources, then the host.
func (a *App) Close() {
	if a.ctrl != nil {
		a.ctrl.Close()
	}
	if c, ok := a.dev.(interface{ Close() }); ok {
		c.Close()
	}
	a.host.Close()
}

// UserMessage turns a setup error into the text shown to the user.
func UserMessage(err error) string {
	var (
		capErr     *gfx.CapabilityError
		compileErr *gfx.CompileError
		linkErr    *gfx.LinkError
		bindErr    *gfx.BindingError
	)
	switch {
	case errors.As(err, &capErr):
		if capErr.API == "WebGL" {
			return "Unable to initialize WebGL. Your browser may not support it."
		}
		return fmt.Sprintf("Unable to initialize %s. Your system may not support it.", capErr.API)
	case errors.As(err, &compileErr):
		return "An error occurred compiling the shaders: " + compileErr.Log
	case errors.As(err, &linkErr):
		return "Unable to initialize the shader program: " + linkErr.Log
	case errors.As(err, &bindErr):
		return fmt.Sprintf("Unable to initialize the shader program: %s %s is not active", bindErr.Kind, bindErr.Name)
	default:
		return err.Error()
	}
}
