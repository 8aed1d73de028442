//go:build js && wasm

package main

import (
	"context"

	"github.com/kjkrol/quadcolor/internal/platform/domhost"
	"github.com/kjkrol/quadcolor/internal/renderer/webgl"
	"github.com/kjkrol/quadcolor/pkg/gfx"
)

var (
	sources   = gfx.WebGLSources
	newHost   = domhost.NewHost
	newDevice = webgl.NewDevice
)

// The page owns the lifetime; the loop runs until it is unloaded.
func rootContext() (context.Context, context.CancelFunc) {
	return context.WithCancel(context.Background())
}
