package renderer

import (
	"fmt"

	"github.com/richinsley/shader2video/inputs"
	"github.com/richinsley/shader2video/shader"
	xlate "github.com/richinsley/shader2video/translator"
)

// Device is the render target the loop drives: an off-screen framebuffer of
// fixed size plus the means to compile programs and draw into it. A Device
// is owned by a single goroutine.
type Device interface {
	IsGLES() bool
	Size() (width, height int)
	CompileProgram(src *ProgramSource) (Program, error)
	// Draw clears the framebuffer and covers it with one full-viewport quad
	// using p. The frame is complete when Draw returns.
	Draw(p Program) error
	// ReadPixels fills dst, which must hold width*height*3 bytes, with the
	// framebuffer as RGB24, top row first.
	ReadPixels(dst []byte) error
	Destroy()
}

// Program is a linked vertex+fragment pair.
type Program interface {
	// UniformLocation returns -1 when the shader does not use name.
	UniformLocation(name string) int32
	// SetUniforms binds u. Uniforms the shader does not use are skipped.
	SetUniforms(u *inputs.Uniforms)
	Destroy()
}

// ProgramSource is what a Device compiles.
type ProgramSource struct {
	Vertex   string
	Fragment string
	// Uniforms maps uniform names to the identifiers used in Fragment.
	// A nil map means names are used verbatim.
	Uniforms map[string]string
}

// MappedName resolves a uniform name through Uniforms. ok is false when the
// translated shader dropped the uniform.
func (s *ProgramSource) MappedName(name string) (mapped string, ok bool) {
	if s.Uniforms == nil {
		return name, true
	}
	mapped, ok = s.Uniforms[name]
	return mapped, ok
}

// PrepareSource pairs the pass-through vertex stage with fragment. A
// Shadertoy snippet (mainImage without main) is wrapped and translated to
// the device dialect; anything else is used verbatim.
func PrepareSource(fragment string, gles bool) (*ProgramSource, error) {
	src := &ProgramSource{
		Vertex:   shader.GenerateVertexShader(gles),
		Fragment: fragment,
	}
	if !shader.IsShadertoySnippet(fragment) {
		return src, nil
	}

	res, err := xlate.TranslateFragment(shader.GetFragmentShader(fragment), gles)
	if err != nil {
		return nil, &CompileError{Stage: "fragment", Log: fmt.Sprintf("translation failed: %v", err)}
	}
	src.Fragment = res.Code
	src.Uniforms = res.Uniforms
	return src, nil
}
