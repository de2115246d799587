package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	encoder "github.com/richinsley/shader2video/encoder"
	options "github.com/richinsley/shader2video/options"
	renderer "github.com/richinsley/shader2video/renderer"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitInterrupted = 130
)

// factoryFunc picks the device factory for a backend name.
type factoryFunc func(backend string) renderer.DeviceFactory

func init() {
	// OpenGL contexts are bound to the thread that made them current.
	runtime.LockOSThread()
}

func main() {
	log.SetFlags(0)

	// A closed consumer must surface as a write error, not kill the process.
	signal.Ignore(syscall.SIGPIPE)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, renderer.NewGLDeviceFactory)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout io.Writer, newFactory factoryFunc) int {
	opts, err := parseArgs(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return report(err)
	}

	fragment, err := os.ReadFile(opts.ShaderPath)
	if err != nil {
		return report(&options.ConfigError{Field: "shader", Value: opts.ShaderPath, Reason: err.Error()})
	}

	if err := render(ctx, opts, string(fragment), stdout, newFactory(opts.Backend)); err != nil {
		return report(err)
	}
	return exitOK
}

// openSink picks the raw stream or ffmpeg. ffmpeg is started with -y, so it
// is only opened once the shader has compiled.
func openSink(opts *options.RenderOptions, stdout io.Writer) (encoder.Sink, error) {
	if opts.ToStdout() {
		return encoder.NewStreamSink(stdout, opts.FrameSize()), nil
	}
	fs, err := encoder.NewFFmpegSink(opts)
	if err != nil {
		return nil, err
	}
	return fs, nil
}

func render(ctx context.Context, opts *options.RenderOptions, fragment string, stdout io.Writer, factory renderer.DeviceFactory) (err error) {
	loop := renderer.NewLoop(opts, nil)
	defer loop.Close()

	if err := loop.Open(factory); err != nil {
		return err
	}
	if err := loop.Compile(fragment); err != nil {
		return err
	}

	sink, err := openSink(opts, stdout)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	loop.SetSink(sink)

	log.Printf("Rendering %d frames at %dx%d, %d fps", loop.TotalFrames(), opts.Width, opts.Height, opts.FPS)
	if err := loop.Run(ctx); err != nil {
		return err
	}
	log.Printf("Rendered %d frames", loop.TotalFrames())
	return nil
}

func parseArgs(args []string) (*options.RenderOptions, error) {
	opts := &options.RenderOptions{}

	fs := flag.NewFlagSet("shader2video", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.StringVar(&opts.Output, "output", options.StdoutOutput, "Output: '-' streams raw RGB24 to stdout, anything else is encoded by ffmpeg")
	fs.StringVar(&opts.FFMPEGPath, "ffmpeg", "", "Path to ffmpeg executable")
	fs.StringVar(&opts.Codec, "codec", "h264", "Codec used with -output: h264 or hevc")
	fs.StringVar(&opts.Backend, "backend", options.BackendAuto, "Rendering backend: auto, egl or glfw")
	fs.BoolVar(&opts.Verbose, "v", false, "Log progress once per second of video")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: shader2video [flags] <shader> <width> <height> <fps> <duration>")
		fmt.Fprintln(fs.Output(), "Renders a fragment shader to raw rgb24 video.")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, &options.ConfigError{Field: "flags", Reason: err.Error()}
	}
	if err := opts.ParsePositional(fs.Args()); err != nil {
		return nil, err
	}
	return opts, nil
}

// report logs the single diagnostic line for err and maps it to an exit code.
func report(err error) int {
	var (
		cfgErr   *options.ConfigError
		ctxErr   *renderer.ContextCreationError
		compErr  *renderer.CompileError
		linkErr  *renderer.LinkError
		rendErr  *renderer.RenderError
		ioErr    *renderer.IOError
		phase    = "error"
		exitCode = exitFailure
	)
	switch {
	case errors.As(err, &cfgErr):
		phase, exitCode = "config", exitUsage
	case errors.As(err, &ctxErr):
		phase = "context"
	case errors.As(err, &compErr):
		phase = "compile"
	case errors.As(err, &linkErr):
		phase = "link"
	case errors.As(err, &rendErr):
		phase = "render"
	case errors.As(err, &ioErr):
		phase = "output"
	case errors.Is(err, renderer.ErrInterrupted):
		phase, exitCode = "interrupted", exitInterrupted
	}
	log.Printf("%s: %v", phase, err)
	return exitCode
}
