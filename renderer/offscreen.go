package renderer

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// OffscreenRenderer is the single colour framebuffer every frame is drawn
// into. It is sized once and never reallocated.
type OffscreenRenderer struct {
	fbo       uint32
	textureID uint32
	width     int
	height    int
	readback  []byte // RGBA8 staging for glReadPixels
}

// checkFramebufferLimits rejects sizes the driver cannot back with a colour
// texture or cover with a single viewport.
func checkFramebufferLimits(width, height int, maxTexture int32, maxViewport [2]int32) error {
	if width > int(maxTexture) || height > int(maxTexture) {
		return fmt.Errorf("%dx%d exceeds GL_MAX_TEXTURE_SIZE %d", width, height, maxTexture)
	}
	if width > int(maxViewport[0]) || height > int(maxViewport[1]) {
		return fmt.Errorf("%dx%d exceeds GL_MAX_VIEWPORT_DIMS %dx%d", width, height, maxViewport[0], maxViewport[1])
	}
	return nil
}

func NewOffscreenRenderer(width, height int) (*OffscreenRenderer, error) {
	or := &OffscreenRenderer{
		width:    width,
		height:   height,
		readback: make([]byte, width*height*4),
	}

	gl.GenFramebuffers(1, &or.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, or.fbo)
	gl.GenTextures(1, &or.textureID)
	gl.BindTexture(gl.TEXTURE_2D, or.textureID)
	// RGBA8 is colour-renderable everywhere; RGB8 is not guaranteed.
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, or.textureID, 0)
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		or.Destroy()
		return nil, fmt.Errorf("offscreen fbo is not complete (status 0x%04X)", status)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return or, nil
}

func (or *OffscreenRenderer) Destroy() {
	if or.fbo != 0 {
		gl.DeleteFramebuffers(1, &or.fbo)
		or.fbo = 0
	}
	if or.textureID != 0 {
		gl.DeleteTextures(1, &or.textureID)
		or.textureID = 0
	}
}

// readRGB24 copies the colour attachment into dst as top-down RGB24.
func (or *OffscreenRenderer) readRGB24(dst []byte) error {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, or.fbo)
	gl.ReadBuffer(gl.COLOR_ATTACHMENT0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(or.width), int32(or.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&or.readback[0]))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	if code := gl.GetError(); code != gl.NO_ERROR {
		return &glError{Op: "glReadPixels", Code: code}
	}
	return packRGB24(dst, or.readback, or.width, or.height, true)
}
