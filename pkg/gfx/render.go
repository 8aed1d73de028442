package gfx

// State is everything a frame depends on. The Controller owns it; nothing
// else mutates it.
type State struct {
	Program  *Program
	Geometry *Geometry
	Uniform  Handle
	Color    Color
}

// RenderPass clears to Background and draws the geometry as a triangle
// strip with whichever program and uniform values are bound; it binds
// nothing itself. Calling it again with the same state yields the same
// frame.
func RenderPass(dev Device, st *State) {
	dev.ClearColor(Background)
	dev.Clear()
	dev.DrawTriangleStrip(0, st.Geometry.Count())
}
