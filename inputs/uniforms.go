package inputs

// Uniforms holds the per-frame shader values. Every field is derived from
// the frame index and the render configuration; nothing here depends on the
// wall clock.
type Uniforms struct {
	Resolution [3]float32 // iResolution: width, height, pixel aspect 1.0
	Time       float32    // iTime: seconds since frame 0
	TimeDelta  float32    // iTimeDelta: 1/fps
	FrameRate  float32    // iFrameRate
	Frame      int32      // iFrame
	Mouse      [4]float32 // iMouse, always zero offline
}

// Names of the uniforms the renderer binds.
const (
	ResolutionName = "iResolution"
	TimeName       = "iTime"
	TimeDeltaName  = "iTimeDelta"
	FrameRateName  = "iFrameRate"
	FrameName      = "iFrame"
	MouseName      = "iMouse"
)

// Names lists every uniform the renderer resolves after linking.
var Names = []string{
	ResolutionName,
	TimeName,
	TimeDeltaName,
	FrameRateName,
	FrameName,
	MouseName,
}
