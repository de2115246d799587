package options

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Backend names accepted by -backend.
const (
	BackendAuto = "auto"
	BackendEGL  = "egl"
	BackendGLFW = "glfw"
)

// StdoutOutput selects the raw stream on standard output.
const StdoutOutput = "-"

// MaxDimension and MaxFrames bound what the GL API and iFrame can address.
const (
	MaxDimension = math.MaxInt32
	MaxFrames    = math.MaxInt32
)

// RenderOptions is the validated render configuration. Fields are not
// modified after Validate succeeds.
type RenderOptions struct {
	ShaderPath string
	Width      int
	Height     int
	FPS        int
	Duration   float64

	Output     string // "-" for raw RGB24 on stdout, otherwise a file handed to ffmpeg
	FFMPEGPath string
	Codec      string
	Backend    string
	Verbose    bool
}

// ConfigError reports an invalid command line or configuration value.
type ConfigError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// ParsePositional fills ShaderPath, Width, Height, FPS and Duration from the
// five positional arguments <shader> <width> <height> <fps> <duration>.
func (o *RenderOptions) ParsePositional(args []string) error {
	if len(args) != 5 {
		return &ConfigError{
			Field:  "arguments",
			Reason: fmt.Sprintf("expected <shader> <width> <height> <fps> <duration>, got %d values", len(args)),
		}
	}

	o.ShaderPath = args[0]

	var err error
	if o.Width, err = parsePositiveInt("width", args[1]); err != nil {
		return err
	}
	if o.Height, err = parsePositiveInt("height", args[2]); err != nil {
		return err
	}
	if o.FPS, err = parsePositiveInt("fps", args[3]); err != nil {
		return err
	}

	d, err := strconv.ParseFloat(args[4], 64)
	if err != nil {
		return &ConfigError{Field: "duration", Value: args[4], Reason: "not a number"}
	}
	o.Duration = d
	return o.Validate()
}

// Validate checks every field. It must succeed before any GPU resource is
// created.
func (o *RenderOptions) Validate() error {
	if strings.TrimSpace(o.ShaderPath) == "" {
		return &ConfigError{Field: "shader", Reason: "path is empty"}
	}
	if err := checkRange("width", o.Width, MaxDimension); err != nil {
		return err
	}
	if err := checkRange("height", o.Height, MaxDimension); err != nil {
		return err
	}
	if err := checkRange("fps", o.FPS, MaxFrames); err != nil {
		return err
	}
	// The readback buffer holds RGBA, four bytes per pixel.
	if o.Width > math.MaxInt/4/o.Height {
		return &ConfigError{
			Field:  "size",
			Value:  fmt.Sprintf("%dx%d", o.Width, o.Height),
			Reason: "frame does not fit in memory",
		}
	}

	duration := strconv.FormatFloat(o.Duration, 'g', -1, 64)
	// NaN fails this comparison as well.
	if !(o.Duration > 0) || math.IsInf(o.Duration, 1) {
		return &ConfigError{Field: "duration", Value: duration, Reason: "must be positive and finite"}
	}
	frames := math.Floor(float64(o.FPS)*o.Duration + 0.5)
	if frames < 1 {
		return &ConfigError{Field: "duration", Value: duration, Reason: fmt.Sprintf("shorter than one frame at %d fps", o.FPS)}
	}
	if frames > MaxFrames {
		return &ConfigError{Field: "duration", Value: duration, Reason: fmt.Sprintf("more than %d frames at %d fps", MaxFrames, o.FPS)}
	}

	if o.Output == "" {
		o.Output = StdoutOutput
	}
	if o.Backend == "" {
		o.Backend = BackendAuto
	}
	switch o.Backend {
	case BackendAuto, BackendEGL, BackendGLFW:
	default:
		return &ConfigError{Field: "backend", Value: o.Backend, Reason: "must be one of auto, egl, glfw"}
	}
	if o.Codec == "" {
		o.Codec = "h264"
	}
	switch o.Codec {
	case "h264", "hevc":
	default:
		return &ConfigError{Field: "codec", Value: o.Codec, Reason: "must be h264 or hevc"}
	}
	return nil
}

// FrameSize is the byte length of one RGB24 frame.
func (o *RenderOptions) FrameSize() int {
	return o.Width * o.Height * 3
}

// ToStdout reports whether frames go to standard output as a raw stream.
func (o *RenderOptions) ToStdout() bool {
	return o.Output == "" || o.Output == StdoutOutput
}

func checkRange(field string, n, max int) error {
	if n <= 0 {
		return &ConfigError{Field: field, Value: strconv.Itoa(n), Reason: "must be positive"}
	}
	if n > max {
		return &ConfigError{Field: field, Value: strconv.Itoa(n), Reason: fmt.Sprintf("must not exceed %d", max)}
	}
	return nil
}

func parsePositiveInt(field, value string) (int, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, &ConfigError{Field: field, Value: value, Reason: "not an integer"}
	}
	if n <= 0 {
		return 0, &ConfigError{Field: field, Value: value, Reason: "must be positive"}
	}
	if n > math.MaxInt32 {
		return 0, &ConfigError{Field: field, Value: value, Reason: fmt.Sprintf("must not exceed %d", math.MaxInt32)}
	}
	return int(n), nil
}
