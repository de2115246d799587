package renderer

import (
	"math"

	"github.com/richinsley/shader2video/inputs"
)

// TimeFor maps a frame index to simulated seconds. fps must be positive.
func TimeFor(frame, fps int) float64 {
	return float64(frame) / float64(fps)
}

// TotalFrames is round(fps × duration), rounding halves up.
func TotalFrames(fps int, duration float64) int {
	return int(math.Floor(float64(fps)*duration + 0.5))
}

// UniformsFor derives every per-frame uniform value for frame.
func UniformsFor(frame, width, height, fps int) inputs.Uniforms {
	return inputs.Uniforms{
		Resolution: [3]float32{float32(width), float32(height), 1.0},
		Time:       float32(TimeFor(frame, fps)),
		TimeDelta:  float32(1.0 / float64(fps)),
		FrameRate:  float32(fps),
		Frame:      int32(frame),
	}
}
