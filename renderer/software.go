package renderer

import (
	"fmt"

	"github.com/gogpu/gg"
	"github.com/richinsley/shader2video/inputs"
)

// FragmentFunc is a fragment stage written in Go. fragCoord follows
// gl_FragCoord: pixel centres, origin at the bottom-left.
type FragmentFunc func(fragCoord [2]float32, u *inputs.Uniforms) gg.RGBA

// SoftwareCompiler turns a ProgramSource into a FragmentFunc. It stands in
// for the driver's GLSL compiler and may return CompileError or LinkError.
type SoftwareCompiler func(src *ProgramSource) (FragmentFunc, error)

// SoftwareShader is a SoftwareCompiler that ignores the source and always
// yields fn.
func SoftwareShader(fn FragmentFunc) SoftwareCompiler {
	return func(*ProgramSource) (FragmentFunc, error) { return fn, nil }
}

// SoftwareDevice is a CPU Device that rasterises a FragmentFunc into a
// gg.Pixmap. Output is deterministic for a deterministic FragmentFunc.
type SoftwareDevice struct {
	// GLES makes the device request ESSL sources, as an OpenGL ES context
	// does.
	GLES bool

	width   int
	height  int
	pixmap  *gg.Pixmap
	compile SoftwareCompiler
}

func NewSoftwareDevice(width, height int, compile SoftwareCompiler) *SoftwareDevice {
	return &SoftwareDevice{
		width:   width,
		height:  height,
		pixmap:  gg.NewPixmap(width, height),
		compile: compile,
	}
}

// SoftwareDeviceFactory adapts NewSoftwareDevice to DeviceFactory.
func SoftwareDeviceFactory(compile SoftwareCompiler) DeviceFactory {
	return func(width, height int) (Device, error) {
		return NewSoftwareDevice(width, height, compile), nil
	}
}

func (d *SoftwareDevice) IsGLES() bool { return d.GLES }

func (d *SoftwareDevice) Size() (int, int) { return d.width, d.height }

func (d *SoftwareDevice) CompileProgram(src *ProgramSource) (Program, error) {
	fn, err := d.compile(src)
	if err != nil {
		return nil, err
	}
	p := &softwareProgram{fn: fn, locs: make(map[string]int32, len(inputs.Names))}
	for i, name := range inputs.Names {
		p.locs[name] = -1
		if _, ok := src.MappedName(name); ok {
			p.locs[name] = int32(i)
		}
	}
	return p, nil
}

func (d *SoftwareDevice) Draw(p Program) error {
	prog, ok := p.(*softwareProgram)
	if !ok {
		return fmt.Errorf("program %T was not created by this device", p)
	}

	d.pixmap.Clear(gg.Black)
	for y := 0; y < d.height; y++ {
		// Pixmap rows are stored top-down; fragCoord.y grows upwards.
		row := d.height - 1 - y
		for x := 0; x < d.width; x++ {
			c := prog.fn([2]float32{float32(x) + 0.5, float32(y) + 0.5}, &prog.uniforms)
			d.pixmap.SetPixel(x, row, c)
		}
	}
	return nil
}

func (d *SoftwareDevice) ReadPixels(dst []byte) error {
	return packRGB24(dst, d.pixmap.Data(), d.width, d.height, false)
}

func (d *SoftwareDevice) Destroy() {
	d.pixmap = nil
}

type softwareProgram struct {
	fn       FragmentFunc
	locs     map[string]int32
	uniforms inputs.Uniforms
}

func (p *softwareProgram) UniformLocation(name string) int32 {
	if loc, ok := p.locs[name]; ok {
		return loc
	}
	return -1
}

func (p *softwareProgram) SetUniforms(u *inputs.Uniforms) {
	// Unused uniforms keep their zero value, as in GL.
	var bound inputs.Uniforms
	if p.locs[inputs.ResolutionName] != -1 {
		bound.Resolution = u.Resolution
	}
	if p.locs[inputs.TimeName] != -1 {
		bound.Time = u.Time
	}
	if p.locs[inputs.TimeDeltaName] != -1 {
		bound.TimeDelta = u.TimeDelta
	}
	if p.locs[inputs.FrameRateName] != -1 {
		bound.FrameRate = u.FrameRate
	}
	if p.locs[inputs.FrameName] != -1 {
		bound.Frame = u.Frame
	}
	if p.locs[inputs.MouseName] != -1 {
		bound.Mouse = u.Mouse
	}
	p.uniforms = bound
}

func (p *softwareProgram) Destroy() {}
