package renderer

import (
	"errors"
	"fmt"
	"log"

	"github.com/richinsley/shader2video/glfwcontext"
	"github.com/richinsley/shader2video/graphics"
	"github.com/richinsley/shader2video/headless"
	"github.com/richinsley/shader2video/options"
)

// DeviceFactory creates the Device for a run. It is called exactly once,
// after the configuration has been validated.
type DeviceFactory func(width, height int) (Device, error)

// OpenContext creates an off-screen graphics context. BackendAuto tries EGL
// first, then a hidden GLFW window.
func OpenContext(backend string, width, height int) (graphics.Context, error) {
	switch backend {
	case options.BackendEGL:
		return headless.NewHeadless()
	case options.BackendGLFW:
		ctx, err := glfwcontext.New(width, height)
		if err != nil {
			return nil, err
		}
		return ctx, nil
	case options.BackendAuto, "":
		ctx, eglErr := headless.NewHeadless()
		if eglErr == nil {
			return ctx, nil
		}
		log.Printf("EGL unavailable (%v), falling back to GLFW", eglErr)
		gctx, glfwErr := glfwcontext.New(width, height)
		if glfwErr != nil {
			return nil, errors.Join(eglErr, glfwErr)
		}
		return gctx, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

// NewGLDeviceFactory returns a factory producing an OpenGL Renderer on the
// named backend.
func NewGLDeviceFactory(backend string) DeviceFactory {
	return func(width, height int) (Device, error) {
		ctx, err := OpenContext(backend, width, height)
		if err != nil {
			return nil, &ContextCreationError{Backend: backend, Err: err}
		}
		r, err := NewRenderer(ctx, width, height)
		if err != nil {
			ctx.Shutdown()
			return nil, &ContextCreationError{Backend: backend, Err: err}
		}
		return r, nil
	}
}
