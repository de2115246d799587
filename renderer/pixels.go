package renderer

import "fmt"

// packRGB24 drops the alpha channel of an RGBA8 image. When bottomUp is set
// the source rows are in OpenGL order (bottom row first) and are reversed so
// that dst always starts with the top row.
func packRGB24(dst, src []byte, width, height int, bottomUp bool) error {
	if len(dst) != width*height*3 {
		return fmt.Errorf("pixel block is %d bytes, want %d", len(dst), width*height*3)
	}
	if len(src) < width*height*4 {
		return fmt.Errorf("readback buffer is %d bytes, want %d", len(src), width*height*4)
	}
	for y := 0; y < height; y++ {
		srcRow := y
		if bottomUp {
			srcRow = height - 1 - y
		}
		s := src[srcRow*width*4 : (srcRow+1)*width*4]
		d := dst[y*width*3 : (y+1)*width*3]
		for x := 0; x < width; x++ {
			d[x*3+0] = s[x*4+0]
			d[x*3+1] = s[x*4+1]
			d[x*3+2] = s[x*4+2]
		}
	}
	return nil
}
