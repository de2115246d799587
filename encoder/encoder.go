package encoder

import (
	"errors"
	"fmt"
	"io"
)

// Frame is one rendered RGB24 pixel block and its presentation index.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// Sink consumes frames in presentation order. WriteFrame returns only after
// the whole block has been handed to the consumer, or with an error.
type Sink interface {
	WriteFrame(frame *Frame) error
	Close() error
}

var (
	// ErrFrameSize is returned for a block whose length is not width*height*3.
	ErrFrameSize = errors.New("pixel block has the wrong size")
	// ErrFrameOrder is returned when frames arrive out of presentation order.
	ErrFrameOrder = errors.New("frame out of order")
)

// StreamSink writes raw, headerless RGB24 blocks back to back to an
// io.Writer. It keeps no frames of its own: backpressure from the writer
// blocks the caller.
type StreamSink struct {
	w         io.Writer
	frameSize int
	next      int64
}

func NewStreamSink(w io.Writer, frameSize int) *StreamSink {
	return &StreamSink{w: w, frameSize: frameSize}
}

func (s *StreamSink) WriteFrame(frame *Frame) error {
	if len(frame.Pixels) != s.frameSize {
		return fmt.Errorf("%w: %d bytes, want %d", ErrFrameSize, len(frame.Pixels), s.frameSize)
	}
	if frame.PTS != s.next {
		return fmt.Errorf("%w: got %d, want %d", ErrFrameOrder, frame.PTS, s.next)
	}

	n, err := s.w.Write(frame.Pixels)
	if err == nil && n != len(frame.Pixels) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return err
	}
	s.next++
	return nil
}

// Frames is the number of complete blocks written so far.
func (s *StreamSink) Frames() int64 {
	return s.next
}

// Close does not close the underlying writer; its owner does.
func (s *StreamSink) Close() error {
	return nil
}
