package renderer

import (
	"github.com/richinsley/shader2video/encoder"
)

// FrameRenderer produces one frame into the device framebuffer.
type FrameRenderer struct {
	device  Device
	program Program
	fps     int
}

func NewFrameRenderer(device Device, program Program, fps int) *FrameRenderer {
	return &FrameRenderer{device: device, program: program, fps: fps}
}

// Render binds the uniforms of frame and draws it. The framebuffer holds
// the finished frame when Render returns nil.
func (fr *FrameRenderer) Render(frame int) error {
	width, height := fr.device.Size()
	u := UniformsFor(frame, width, height, fr.fps)
	fr.program.SetUniforms(&u)
	if err := fr.device.Draw(fr.program); err != nil {
		return &RenderError{Frame: frame, Err: err}
	}
	return nil
}

// FrameEncoder reads the framebuffer back as RGB24 and hands it to the sink.
// The pixel block is reused between frames.
type FrameEncoder struct {
	device Device
	sink   encoder.Sink
	block  []byte
}

func NewFrameEncoder(device Device, sink encoder.Sink) *FrameEncoder {
	width, height := device.Size()
	return &FrameEncoder{
		device: device,
		sink:   sink,
		block:  make([]byte, width*height*3),
	}
}

// Emit writes frame to the sink in full or returns an error.
func (fe *FrameEncoder) Emit(frame int) error {
	if err := fe.device.ReadPixels(fe.block); err != nil {
		return &RenderError{Frame: frame, Err: err}
	}
	if err := fe.sink.WriteFrame(&encoder.Frame{Pixels: fe.block, PTS: int64(frame)}); err != nil {
		return &IOError{Frame: frame, Err: err}
	}
	return nil
}
