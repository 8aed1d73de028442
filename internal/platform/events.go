package platform

type Event interface{}

// TriggerPress is emitted when the control with the given id is activated.
type TriggerPress struct {
	ID string
}

// Expose asks for the current frame to be drawn again.
type Expose struct{}
type DestroyNotify struct{}
type TimeoutEvent struct{}
