//go:build !js

package glfwhost

import (
	"fmt"
	"os"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/kjkrol/quadcolor/internal/platform"
	"github.com/kjkrol/quadcolor/pkg/gfx"
)

type glfwHost struct {
	window *glfw.Window
	keys   map[glfw.Key]string
	queue  []platform.Event
	closed bool
}

// NewHost opens a fixed-size window with an OpenGL 3.3 core context.
// It must be called from the main thread, locked with runtime.LockOSThread.
func NewHost(conf platform.HostConfig) (platform.Host, error) {
	if err := glfw.Init(); err != nil {
		return nil, &gfx.CapabilityError{API: "OpenGL", Reason: err.Error()}
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(conf.Width, conf.Height, conf.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, &gfx.CapabilityError{API: "OpenGL", Reason: err.Error()}
	}

	h := &glfwHost{
		window: window,
		keys:   make(map[glfw.Key]string, len(conf.Keys)),
	}
	for label, id := range conf.Keys {
		key, ok := keyByLabel(label)
		if !ok {
			h.Close()
			return nil, fmt.Errorf("platform: unsupported key label %q", label)
		}
		h.keys[key] = id
	}

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		if key == glfw.KeyEscape {
			w.SetShouldClose(true)
			return
		}
		if id, ok := h.keys[key]; ok {
			h.queue = append(h.queue, platform.TriggerPress{ID: id})
		}
	})
	window.SetRefreshCallback(func(*glfw.Window) {
		h.queue = append(h.queue, platform.Expose{})
	})
	return h, nil
}

func keyByLabel(label string) (glfw.Key, bool) {
	c, ok := platform.ParseKeyLabel(label)
	switch {
	case !ok:
		return glfw.KeyUnknown, false
	case c >= 'A' && c <= 'Z':
		return glfw.KeyA + glfw.Key(c-'A'), true
	default:
		return glfw.Key0 + glfw.Key(c-'0'), true
	}
}

func (h *glfwHost) GLContext() (any, error) {
	h.window.MakeContextCurrent()
	return h.window, nil
}

func (h *glfwHost) DrawableSize() (int, int) {
	return h.window.GetFramebufferSize()
}

func (h *glfwHost) Notify(msg string) {
	fmt.Fprintln(os.Stderr, msg)
}

func (h *glfwHost) NextEventTimeout(timeoutMs int) platform.Event {
	if e, ok := h.pop(); ok {
		return e
	}
	glfw.WaitEventsTimeout(float64(timeoutMs) / 1000)
	if e, ok := h.pop(); ok {
		return e
	}
	return platform.TimeoutEvent{}
}

func (h *glfwHost) pop() (platform.Event, bool) {
	if h.closed || h.window.ShouldClose() {
		return platform.DestroyNotify{}, true
	}
	if len(h.queue) == 0 {
		return nil, false
	}
	e := h.queue[0]
	h.queue = h.queue[1:]
	return e, true
}

func (h *glfwHost) Present() {
	h.window.SwapBuffers()
}

func (h *glfwHost) Close() {
	if h.closed {
		return
	}
	h.closed = true
	h.window.Destroy()
	glfw.Terminate()
}
