//go:build !js

package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/kjkrol/quadcolor/internal/platform/glfwhost"
	"github.com/kjkrol/quadcolor/internal/renderer/opengl"
	"github.com/kjkrol/quadcolor/pkg/gfx"
)

// GLFW and the GL context must stay on the main thread.
func init() { runtime.LockOSThread() }

var (
	sources   = gfx.CoreSources
	newHost   = glfwhost.NewHost
	newDevice = opengl.NewDevice
)

func rootContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
