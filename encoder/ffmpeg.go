package encoder

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/richinsley/shader2video/options"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// FFmpegSink pipes the raw RGB24 stream into an ffmpeg child process that
// encodes it to opts.Output. The stream contract is the same as for stdout;
// ffmpeg is just the consumer.
type FFmpegSink struct {
	*StreamSink
	pipeWriter *io.PipeWriter
	errc       chan error
	closed     bool
}

// getArgs builds the ffmpeg input and output arguments for opts.
func getArgs(opts *options.RenderOptions) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgb24",
		"s":         fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"framerate": opts.FPS,
	}

	outputArgs = ffmpeg.KwArgs{
		"pix_fmt": "yuv420p",
	}
	if opts.Codec == "hevc" {
		outputArgs["c:v"] = "libx265"
		if strings.HasSuffix(opts.Output, ".mp4") {
			outputArgs["tag:v"] = "hvc1"
		}
	} else {
		outputArgs["c:v"] = "libx264"
	}
	return
}

// buildCommand assembles the ffmpeg invocation without starting it.
func buildCommand(opts *options.RenderOptions, stdin io.Reader) *ffmpeg.Stream {
	inputArgs, outputArgs := getArgs(opts)
	cmd := ffmpeg.Input("pipe:", inputArgs).
		Output(opts.Output, outputArgs).
		OverWriteOutput().
		WithInput(stdin).
		WithErrorOutput(os.Stderr)
	if opts.FFMPEGPath != "" {
		cmd = cmd.SetFfmpegPath(opts.FFMPEGPath)
	}
	return cmd
}

// NewFFmpegSink starts ffmpeg. Frames written after ffmpeg has exited fail
// instead of blocking.
func NewFFmpegSink(opts *options.RenderOptions) (*FFmpegSink, error) {
	if opts.ToStdout() {
		return nil, fmt.Errorf("ffmpeg sink needs an output file")
	}

	pipeReader, pipeWriter := io.Pipe()
	cmd := buildCommand(opts, pipeReader)
	log.Printf("Starting ffmpeg: %s", strings.Join(cmd.GetArgs(), " "))

	s := &FFmpegSink{
		StreamSink: NewStreamSink(pipeWriter, opts.FrameSize()),
		pipeWriter: pipeWriter,
		errc:       make(chan error, 1),
	}
	go func() {
		err := cmd.Run()
		exitErr := err
		if exitErr == nil {
			exitErr = errors.New("ffmpeg exited")
		}
		pipeReader.CloseWithError(exitErr)
		s.errc <- err
	}()
	return s, nil
}

// Close signals end of stream and waits for ffmpeg to finish writing the
// output file.
func (s *FFmpegSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.pipeWriter.Close()
	if err := <-s.errc; err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	return nil
}
