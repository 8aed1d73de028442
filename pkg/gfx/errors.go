package gfx

import (
	"errors"
	"fmt"
)

var (
	ErrStageMismatch  = errors.New("gfx: shader stages do not form a vertex/fragment pair")
	ErrUnknownTrigger = errors.New("gfx: unknown trigger")
	ErrClosed         = errors.New("gfx: controller closed")
)

// CapabilityError reports that the host could not provide a rendering
// context with programmable shading.
type CapabilityError struct {
	API    string
	Reason string
}

func (e *CapabilityError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("gfx: %s context unavailable", e.API)
	}
	return fmt.Sprintf("gfx: %s context unavailable: %s", e.API, e.Reason)
}

// CompileError carries the device log of a failed shader compilation.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("gfx: compile %s shader: %s", e.Stage, e.Log)
}

// LinkError carries the device log of a failed program link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "gfx: link program: " + e.Log
}

// BindingError reports a shader input that is not active in the linked program.
type BindingError struct {
	Kind string // "attribute" or "uniform"
	Name string
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("gfx: %s %q is not active in program", e.Kind, e.Name)
}
