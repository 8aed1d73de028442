package platform

// HostConfig names the surface and the controls a host binds.
type HostConfig struct {
	Title  string
	Width  int
	Height int

	// CanvasID is the id of the drawing surface element (browser).
	CanvasID string
	// Controls are the ids of the trigger elements (browser).
	Controls []string
	// Keys maps keyboard labels to control ids (desktop).
	Keys map[string]string
}

// Host is the environment the demo runs in: a drawable surface, a way to
// tell the user about fatal errors, and a stream of input events.
type Host interface {
	// GLContext returns the rendering context of the drawing surface,
	// or an error when the surface cannot provide one.
	GLContext() (any, error)
	// DrawableSize reports the drawing buffer size in pixels, which may
	// differ from the configured size.
	DrawableSize() (width, height int)
	// Notify shows a blocking message to the user.
	Notify(msg string)
	// NextEventTimeout waits up to timeoutMs for an event and returns
	// TimeoutEvent when none arrived.
	NextEventTimeout(timeoutMs int) Event
	// Present makes the last drawn frame visible.
	Present()
	Close()
}
