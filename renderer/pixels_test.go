package renderer

import (
	"bytes"
	"testing"
)

func TestPackRGB24(t *testing.T) {
	// 2x2 RGBA, rows listed bottom row first as glReadPixels returns them.
	src := []byte{
		1, 2, 3, 255, 4, 5, 6, 255, // bottom
		7, 8, 9, 255, 10, 11, 12, 255, // top
	}

	dst := make([]byte, 12)
	if err := packRGB24(dst, src, 2, 2, true); err != nil {
		t.Fatalf("packRGB24: %v", err)
	}
	want := []byte{7, 8, 9, 10, 11, 12, 1, 2, 3, 4, 5, 6}
	if !bytes.Equal(dst, want) {
		t.Errorf("bottom-up: got %v, want %v", dst, want)
	}

	if err := packRGB24(dst, src, 2, 2, false); err != nil {
		t.Fatalf("packRGB24: %v", err)
	}
	want = []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	if !bytes.Equal(dst, want) {
		t.Errorf("top-down: got %v, want %v", dst, want)
	}
}

func TestPackRGB24RejectsBadSizes(t *testing.T) {
	src := make([]byte, 16)
	if err := packRGB24(make([]byte, 11), src, 2, 2, false); err == nil {
		t.Error("short destination accepted")
	}
	if err := packRGB24(make([]byte, 12), src[:15], 2, 2, false); err == nil {
		t.Error("short source accepted")
	}
}
