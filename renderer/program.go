package renderer

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/shader2video/inputs"
)

// glProgram is a linked GL program and its resolved uniform locations.
type glProgram struct {
	id   uint32
	locs map[string]int32
}

func newGLProgram(src *ProgramSource) (*glProgram, error) {
	id, err := newProgram(src.Vertex, src.Fragment)
	if err != nil {
		return nil, err
	}

	p := &glProgram{id: id, locs: make(map[string]int32, len(inputs.Names))}
	gl.UseProgram(id)
	for _, name := range inputs.Names {
		p.locs[name] = -1
		mapped, ok := src.MappedName(name)
		if !ok {
			continue
		}
		p.locs[name] = gl.GetUniformLocation(id, gl.Str(mapped+"\x00"))
	}
	gl.UseProgram(0)
	return p, nil
}

func (p *glProgram) UniformLocation(name string) int32 {
	if loc, ok := p.locs[name]; ok {
		return loc
	}
	return -1
}

func (p *glProgram) SetUniforms(u *inputs.Uniforms) {
	gl.UseProgram(p.id)
	if loc := p.locs[inputs.ResolutionName]; loc != -1 {
		gl.Uniform3f(loc, u.Resolution[0], u.Resolution[1], u.Resolution[2])
	}
	if loc := p.locs[inputs.TimeName]; loc != -1 {
		gl.Uniform1f(loc, u.Time)
	}
	if loc := p.locs[inputs.TimeDeltaName]; loc != -1 {
		gl.Uniform1f(loc, u.TimeDelta)
	}
	if loc := p.locs[inputs.FrameRateName]; loc != -1 {
		gl.Uniform1f(loc, u.FrameRate)
	}
	if loc := p.locs[inputs.FrameName]; loc != -1 {
		gl.Uniform1i(loc, u.Frame)
	}
	if loc := p.locs[inputs.MouseName]; loc != -1 {
		gl.Uniform4f(loc, u.Mouse[0], u.Mouse[1], u.Mouse[2], u.Mouse[3])
	}
}

func (p *glProgram) Destroy() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	// The program keeps the compiled stages alive while attached.
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, &LinkError{Log: trimInfoLog(log)}
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, &CompileError{Stage: stageName(shaderType), Log: trimInfoLog(logText)}
	}
	return shader, nil
}

func stageName(shaderType uint32) string {
	switch shaderType {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	default:
		return "unknown"
	}
}

func trimInfoLog(log string) string {
	return strings.TrimSpace(strings.TrimRight(log, "\x00"))
}
