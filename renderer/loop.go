package renderer

import (
	"context"
	"fmt"
	"log"

	"github.com/richinsley/shader2video/encoder"
	"github.com/richinsley/shader2video/inputs"
	"github.com/richinsley/shader2video/options"
)

// State is a RenderLoop lifecycle state.
type State int

const (
	Uninitialized State = iota
	ContextReady
	ProgramReady
	Rendering
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case ContextReady:
		return "ContextReady"
	case ProgramReady:
		return "ProgramReady"
	case Rendering:
		return "Rendering"
	case Done:
		return "Done"
	case Failed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Loop renders frames 0..TotalFrames-1 strictly in order, one at a time,
// and writes each to the sink before starting the next. Any error moves it
// to Failed and no further frame is produced.
type Loop struct {
	opts *options.RenderOptions
	sink encoder.Sink

	device   Device
	program  Program
	renderer *FrameRenderer
	encoder  *FrameEncoder

	state State
	frame int
	total int
	err   error
}

// NewLoop expects opts to be validated already. sink may be nil if it is
// attached with SetSink before Run.
func NewLoop(opts *options.RenderOptions, sink encoder.Sink) *Loop {
	return &Loop{
		opts:  opts,
		sink:  sink,
		total: TotalFrames(opts.FPS, opts.Duration),
	}
}

// SetSink replaces the sink frames are written to. It lets a caller defer
// opening the output until the program has compiled.
func (l *Loop) SetSink(sink encoder.Sink) { l.sink = sink }

func (l *Loop) State() State { return l.state }

// Frame is the index of the frame being (or last) rendered.
func (l *Loop) Frame() int { return l.frame }

// TotalFrames is the number of frames a complete run emits.
func (l *Loop) TotalFrames() int { return l.total }

// Err is the error that moved the loop to Failed.
func (l *Loop) Err() error { return l.err }

func (l *Loop) fail(err error) error {
	l.state = Failed
	l.err = err
	return err
}

func (l *Loop) expect(s State, op string) error {
	if l.state != s {
		return fmt.Errorf("%s: loop is %s, want %s", op, l.state, s)
	}
	return nil
}

// Open creates the device. Uninitialized → ContextReady.
func (l *Loop) Open(factory DeviceFactory) error {
	if err := l.expect(Uninitialized, "open"); err != nil {
		return l.fail(err)
	}
	device, err := factory(l.opts.Width, l.opts.Height)
	if err != nil {
		if _, ok := err.(*ContextCreationError); !ok {
			err = &ContextCreationError{Backend: l.opts.Backend, Err: err}
		}
		return l.fail(err)
	}
	l.device = device

	if w, h := device.Size(); w != l.opts.Width || h != l.opts.Height {
		return l.fail(&ContextCreationError{
			Backend: l.opts.Backend,
			Err:     fmt.Errorf("device is %dx%d, want %dx%d", w, h, l.opts.Width, l.opts.Height),
		})
	}
	l.state = ContextReady
	return nil
}

// Compile builds the program from fragment source. ContextReady →
// ProgramReady.
func (l *Loop) Compile(fragment string) error {
	if err := l.expect(ContextReady, "compile"); err != nil {
		return l.fail(err)
	}
	src, err := PrepareSource(fragment, l.device.IsGLES())
	if err != nil {
		return l.fail(err)
	}
	program, err := l.device.CompileProgram(src)
	if err != nil {
		return l.fail(err)
	}
	l.program = program

	for _, name := range []string{inputs.ResolutionName, inputs.TimeName} {
		if program.UniformLocation(name) == -1 {
			log.Printf("Shader does not use %s", name)
		}
	}

	l.renderer = NewFrameRenderer(l.device, l.program, l.opts.FPS)
	l.state = ProgramReady
	return nil
}

// Run renders every frame. ProgramReady → Rendering(0) → … → Done.
// ctx is checked between frames only; a frame in progress always finishes.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.expect(ProgramReady, "run"); err != nil {
		return l.fail(err)
	}
	if l.sink == nil {
		return l.fail(fmt.Errorf("run: no sink"))
	}
	l.encoder = NewFrameEncoder(l.device, l.sink)

	l.state = Rendering
	for i := 0; i < l.total; i++ {
		if err := ctx.Err(); err != nil {
			return l.fail(fmt.Errorf("%w before frame %d: %v", ErrInterrupted, i, err))
		}
		l.frame = i

		if err := l.renderer.Render(i); err != nil {
			return l.fail(err)
		}
		if err := l.encoder.Emit(i); err != nil {
			return l.fail(err)
		}

		if l.opts.Verbose && (i+1)%l.opts.FPS == 0 {
			log.Printf("Rendered %d/%d frames (%.2fs)", i+1, l.total, TimeFor(i+1, l.opts.FPS))
		}
	}

	l.state = Done
	return nil
}

// Close releases the program and the device. The sink belongs to the
// caller and is left open.
func (l *Loop) Close() {
	if l.program != nil {
		l.program.Destroy()
		l.program = nil
	}
	if l.device != nil {
		l.device.Destroy()
		l.device = nil
	}
}
