package renderer

import (
	"errors"
	"fmt"
)

// ErrInterrupted is returned by Loop.Run when its context is cancelled
// between frames.
var ErrInterrupted = errors.New("render interrupted")

// ContextCreationError reports that no usable rendering backend could be
// set up. Nothing has been rendered when it is returned.
type ContextCreationError struct {
	Backend string
	Err     error
}

func (e *ContextCreationError) Error() string {
	return fmt.Sprintf("failed to create %s rendering context: %v", e.Backend, e.Err)
}

func (e *ContextCreationError) Unwrap() error { return e.Err }

// CompileError carries the native compiler diagnostic of one shader stage.
type CompileError struct {
	Stage string // "vertex" or "fragment"
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, e.Log)
}

// LinkError carries the program info log of a failed link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program: %s", e.Log)
}

// RenderError reports a GPU fault while producing a frame.
type RenderError struct {
	Frame int
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render failed at frame %d: %v", e.Frame, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// IOError reports that a frame could not be written to the output stream.
type IOError struct {
	Frame int
	Err   error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("write failed at frame %d: %v", e.Frame, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// glError is a non-zero glGetError code observed after an operation.
type glError struct {
	Op   string
	Code uint32
}

func (e *glError) Error() string {
	return fmt.Sprintf("%s: OpenGL error 0x%04X", e.Op, e.Code)
}
