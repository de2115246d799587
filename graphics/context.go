package graphics

// Context is an owned OpenGL context on a surface that is never presented;
// frames are drawn into an FBO. The renderer holds exactly one for the
// lifetime of a run.
type Context interface {
	MakeCurrent()
	Shutdown()
	// IsGLES reports whether the context speaks OpenGL ES (ESSL shaders).
	IsGLES() bool
}
