package renderer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gogpu/gg"
	"github.com/richinsley/shader2video/encoder"
	"github.com/richinsley/shader2video/inputs"
	"github.com/richinsley/shader2video/options"
)

const redShader = `#version 410 core
out vec4 fragColor;
void main() { fragColor = vec4(1.0, 0.0, 0.0, 1.0); }
`

const brokenShader = `#version 410 core
void main() { syntax error }
`

func newOptions(width, height, fps int, duration float64) *options.RenderOptions {
	o := &options.RenderOptions{ShaderPath: "test.frag", Width: width, Height: height, FPS: fps, Duration: duration}
	if err := o.Validate(); err != nil {
		panic(err)
	}
	return o
}

// testCompiler rejects sources containing "syntax error" and otherwise
// returns fn.
func testCompiler(fn FragmentFunc) SoftwareCompiler {
	return func(src *ProgramSource) (FragmentFunc, error) {
		if strings.Contains(src.Fragment, "syntax error") {
			return nil, &CompileError{Stage: "fragment", Log: "0:2(15): error: syntax error, unexpected IDENTIFIER"}
		}
		return fn, nil
	}
}

func solid(c gg.RGBA) FragmentFunc {
	return func([2]float32, *inputs.Uniforms) gg.RGBA { return c }
}

// frameIndexShader encodes iFrame in the red channel of every pixel.
func frameIndexShader(_ [2]float32, u *inputs.Uniforms) gg.RGBA {
	return gg.RGB((float64(u.Frame)+0.5)/255, 0, 0)
}

// gradientShader varies with position and time.
func gradientShader(p [2]float32, u *inputs.Uniforms) gg.RGBA {
	return gg.RGB(
		float64(p[0]/u.Resolution[0]),
		float64(p[1]/u.Resolution[1]),
		float64(u.Time)/2,
	)
}

// recordSink keeps a copy of every frame it receives.
type recordSink struct {
	frames  [][]byte
	pts     []int64
	onFrame func(n int)
	closed  bool
}

func (s *recordSink) WriteFrame(f *encoder.Frame) error {
	s.frames = append(s.frames, bytes.Clone(f.Pixels))
	s.pts = append(s.pts, f.PTS)
	if s.onFrame != nil {
		s.onFrame(len(s.frames))
	}
	return nil
}

func (s *recordSink) Close() error {
	s.closed = true
	return nil
}

// closingWriter behaves like a pipe whose reader goes away once allow
// bytes have been consumed.
type closingWriter struct {
	buf   bytes.Buffer
	allow int
}

func (w *closingWriter) Write(p []byte) (int, error) {
	if w.buf.Len()+len(p) > w.allow {
		return 0, io.ErrClosedPipe
	}
	return w.buf.Write(p)
}

// failingDevice fails the draw call with index failOn.
type failingDevice struct {
	*SoftwareDevice
	draws  int
	failOn int
}

func (d *failingDevice) Draw(p Program) error {
	n := d.draws
	d.draws++
	if n == d.failOn {
		return &glError{Op: "draw", Code: 0x0505}
	}
	return d.SoftwareDevice.Draw(p)
}

func runLoop(opts *options.RenderOptions, sink encoder.Sink, factory DeviceFactory, fragment string) (*Loop, error) {
	l := NewLoop(opts, sink)
	defer l.Close()
	if err := l.Open(factory); err != nil {
		return l, err
	}
	if err := l.Compile(fragment); err != nil {
		return l, err
	}
	return l, l.Run(context.Background())
}

var errFactory = errors.New("no GPU")

func brokenFactory(int, int) (Device, error) {
	return nil, fmt.Errorf("eglInitialize: %w", errFactory)
}
