//go:build js && wasm

package domhost

import (
	"fmt"
	"syscall/js"
	"time"

	"github.com/kjkrol/quadcolor/internal/platform"
	"github.com/kjkrol/quadcolor/pkg/gfx"
	"honnef.co/go/js/dom/v2"
)

type wasmHost struct {
	window dom.Window
	canvas dom.Element
	events chan platform.Event
	closed bool

	listeners []listener
}

type listener struct {
	target dom.Element
	typ    string
	fn     js.Func
}

// NewHost binds to the page's canvas and trigger controls. Every id in
// conf.Controls must resolve to an element.
func NewHost(conf platform.HostConfig) (platform.Host, error) {
	window := dom.GetWindow()
	doc := window.Document()
	if conf.Title != "" {
		doc.Underlying().Set("title", conf.Title)
	}

	canvas := doc.GetElementByID(conf.CanvasID)
	if canvas == nil {
		return nil, fmt.Errorf("platform: no element with id %q", conf.CanvasID)
	}
	if conf.Width > 0 && conf.Height > 0 {
		canvas.Underlying().Set("width", conf.Width)
		canvas.Underlying().Set("height", conf.Height)
	}

	h := &wasmHost{
		window: window,
		canvas: canvas,
		events: make(chan platform.Event, 64),
	}
	for _, id := range conf.Controls {
		el := doc.GetElementByID(id)
		if el == nil {
			h.Close()
			return nil, fmt.Errorf("platform: no element with id %q", id)
		}
		h.listen(el, "click", func(dom.Event) {
			h.events <- platform.TriggerPress{ID: id}
		})
	}
	return h, nil
}

func (h *wasmHost) listen(target dom.Element, typ string, f func(dom.Event)) {
	fn := target.AddEventListener(typ, false, func(e dom.Event) {
		e.PreventDefault()
		f(e)
	})
	h.listeners = append(h.listeners, listener{target: target, typ: typ, fn: fn})
}

func (h *wasmHost) GLContext() (any, error) {
	for _, name := range []string{"webgl", "experimental-webgl"} {
		ctx := h.canvas.Underlying().Call("getContext", name)
		if ctx.Truthy() {
			return ctx, nil
		}
	}
	return nil, &gfx.CapabilityError{API: "WebGL", Reason: "canvas returned no webgl context"}
}

func (h *wasmHost) DrawableSize() (int, int) {
	c := h.canvas.Underlying()
	return c.Get("width").Int(), c.Get("height").Int()
}

func (h *wasmHost) Notify(msg string) {
	h.window.Alert(msg)
}

func (h *wasmHost) NextEventTimeout(timeoutMs int) platform.Event {
	select {
	case e := <-h.events:
		return e
	case <-time.After(time.Duration(timeoutMs) * time.Millisecond):
		return platform.TimeoutEvent{}
	}
}

// Present is a no-op: the browser composites the canvas after each task.
func (h *wasmHost) Present() {}

func (h *wasmHost) Close() {
	if h.closed {
		return
	}
	h.closed = true

	for _, l := range h.listeners {
		l.target.RemoveEventListener(l.typ, false, l.fn)
		l.fn.Release()
	}
	h.listeners = nil

	select {
	case h.events <- platform.DestroyNotify{}:
	default:
	}
}
