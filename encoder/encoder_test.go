package encoder

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) - 1, nil }

type brokenPipe struct{ writes int }

func (w *brokenPipe) Write(p []byte) (int, error) {
	w.writes++
	return 0, io.ErrClosedPipe
}

func TestStreamSinkWritesRawBlocks(t *testing.T) {
	var out bytes.Buffer
	s := NewStreamSink(&out, 6)

	frames := [][]byte{
		{255, 0, 0, 255, 0, 0},
		{0, 255, 0, 0, 255, 0},
	}
	for i, px := range frames {
		if err := s.WriteFrame(&Frame{Pixels: px, PTS: int64(i)}); err != nil {
			t.Fatalf("WriteFrame(%d): %v", i, err)
		}
	}

	want := append(append([]byte{}, frames[0]...), frames[1]...)
	if !bytes.Equal(out.Bytes(), want) {
		t.Errorf("stream = %v, want %v", out.Bytes(), want)
	}
	if s.Frames() != 2 {
		t.Errorf("Frames = %d, want 2", s.Frames())
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestStreamSinkRejectsWrongSize(t *testing.T) {
	var out bytes.Buffer
	s := NewStreamSink(&out, 6)

	for _, px := range [][]byte{make([]byte, 5), make([]byte, 7)} {
		err := s.WriteFrame(&Frame{Pixels: px})
		if !errors.Is(err, ErrFrameSize) {
			t.Errorf("len %d: err = %v, want ErrFrameSize", len(px), err)
		}
	}
	if out.Len() != 0 {
		t.Errorf("%d bytes reached the writer", out.Len())
	}
}

func TestStreamSinkRejectsOutOfOrder(t *testing.T) {
	var out bytes.Buffer
	s := NewStreamSink(&out, 3)

	if err := s.WriteFrame(&Frame{Pixels: make([]byte, 3), PTS: 1}); !errors.Is(err, ErrFrameOrder) {
		t.Fatalf("err = %v, want ErrFrameOrder", err)
	}
	if out.Len() != 0 {
		t.Errorf("%d bytes reached the writer", out.Len())
	}
}

func TestStreamSinkShortWrite(t *testing.T) {
	s := NewStreamSink(shortWriter{}, 3)
	err := s.WriteFrame(&Frame{Pixels: make([]byte, 3)})
	if !errors.Is(err, io.ErrShortWrite) {
		t.Fatalf("err = %v, want io.ErrShortWrite", err)
	}
	if s.Frames() != 0 {
		t.Errorf("Frames = %d after failed write", s.Frames())
	}
}

func TestStreamSinkNoRetry(t *testing.T) {
	w := &brokenPipe{}
	s := NewStreamSink(w, 3)
	if err := s.WriteFrame(&Frame{Pixels: make([]byte, 3)}); !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("err = %v, want io.ErrClosedPipe", err)
	}
	if w.writes != 1 {
		t.Errorf("writer called %d times, want 1", w.writes)
	}
}
