package renderer

import (
	"fmt"
	"log"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/shader2video/graphics"
)

// glInitOnce guards gl.Init; function pointers are resolved once per process.
var glInitOnce sync.Once

// Renderer is the OpenGL Device. It owns the graphics context, the quad
// VAO and the offscreen framebuffer.
type Renderer struct {
	context           graphics.Context
	quadVAO           uint32
	quadVBO           uint32
	offscreenRenderer *OffscreenRenderer
	width             int
	height            int
}

var quadVertices = []float32{
	-1.0, 1.0, -1.0, -1.0, 1.0, -1.0,
	-1.0, 1.0, 1.0, -1.0, 1.0, 1.0,
}

// NewRenderer takes ownership of ctx. On error ctx is left to the caller.
func NewRenderer(ctx graphics.Context, width, height int) (*Renderer, error) {
	r := &Renderer{
		context: ctx,
		width:   width,
		height:  height,
	}

	// Make the context current BEFORE initializing OpenGL.
	r.context.MakeCurrent()

	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	log.Printf("OpenGL %s (%s)", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))

	var maxTexture int32
	var maxViewport [2]int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &maxTexture)
	gl.GetIntegerv(gl.MAX_VIEWPORT_DIMS, &maxViewport[0])
	if err := checkFramebufferLimits(width, height, maxTexture, maxViewport); err != nil {
		return nil, err
	}

	var err error
	r.offscreenRenderer, err = NewOffscreenRenderer(width, height)
	if err != nil {
		return nil, fmt.Errorf("failed to create offscreen renderer: %w", err)
	}

	gl.GenVertexArrays(1, &r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		r.releaseGL()
		return nil, &glError{Op: "renderer setup", Code: code}
	}
	return r, nil
}

func (r *Renderer) IsGLES() bool { return r.context.IsGLES() }

func (r *Renderer) Size() (int, int) { return r.width, r.height }

func (r *Renderer) CompileProgram(src *ProgramSource) (Program, error) {
	return newGLProgram(src)
}

func (r *Renderer) Draw(p Program) error {
	prog, ok := p.(*glProgram)
	if !ok {
		return fmt.Errorf("program %T was not created by this renderer", p)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, r.offscreenRenderer.fbo)
	gl.Viewport(0, 0, int32(r.width), int32(r.height))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(prog.id)
	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Finish()

	if code := gl.GetError(); code != gl.NO_ERROR {
		return &glError{Op: "draw", Code: code}
	}
	return nil
}

func (r *Renderer) ReadPixels(dst []byte) error {
	return r.offscreenRenderer.readRGB24(dst)
}

// Destroy releases GL objects and shuts the context down.
func (r *Renderer) Destroy() {
	r.releaseGL()
	if r.context != nil {
		r.context.Shutdown()
		r.context = nil
	}
}

func (r *Renderer) releaseGL() {
	if r.offscreenRenderer != nil {
		r.offscreenRenderer.Destroy()
		r.offscreenRenderer = nil
	}
	if r.quadVBO != 0 {
		gl.DeleteBuffers(1, &r.quadVBO)
		r.quadVBO = 0
	}
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
		r.quadVAO = 0
	}
}
