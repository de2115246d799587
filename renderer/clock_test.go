package renderer

import "testing"

func TestTimeForStartsAtZero(t *testing.T) {
	for _, fps := range []int{1, 24, 30, 60, 144} {
		if got := TimeFor(0, fps); got != 0 {
			t.Errorf("TimeFor(0, %d) = %v, want 0", fps, got)
		}
	}
}

func TestTimeForMonotonic(t *testing.T) {
	for _, fps := range []int{1, 7, 30, 60} {
		prev := TimeFor(0, fps)
		for i := 1; i < 10*fps; i++ {
			cur := TimeFor(i, fps)
			if cur < prev {
				t.Fatalf("fps %d: TimeFor(%d) = %v < TimeFor(%d) = %v", fps, i, cur, i-1, prev)
			}
			prev = cur
		}
	}
}

func TestTimeForValues(t *testing.T) {
	if got := TimeFor(30, 30); got != 1 {
		t.Errorf("TimeFor(30, 30) = %v, want 1", got)
	}
	if got := TimeFor(1, 4); got != 0.25 {
		t.Errorf("TimeFor(1, 4) = %v, want 0.25", got)
	}
}

func TestTotalFramesRoundsHalfUp(t *testing.T) {
	tests := []struct {
		fps      int
		duration float64
		want     int
	}{
		{1, 1, 1},
		{30, 10, 300},
		{3, 0.5, 2},   // 1.5 rounds up
		{24, 0.1, 2},  // 2.4 rounds down
		{10, 0.25, 3}, // 2.5 rounds up
		{60, 1.0 / 3, 20},
		{1, 0.4, 0},
	}
	for _, tt := range tests {
		if got := TotalFrames(tt.fps, tt.duration); got != tt.want {
			t.Errorf("TotalFrames(%d, %v) = %d, want %d", tt.fps, tt.duration, got, tt.want)
		}
	}
}

func TestUniformsFor(t *testing.T) {
	u := UniformsFor(15, 640, 360, 30)
	if u.Resolution != [3]float32{640, 360, 1} {
		t.Errorf("Resolution = %v, want [640 360 1]", u.Resolution)
	}
	if u.Time != 0.5 {
		t.Errorf("Time = %v, want 0.5", u.Time)
	}
	if u.Frame != 15 {
		t.Errorf("Frame = %d, want 15", u.Frame)
	}
	if u.FrameRate != 30 {
		t.Errorf("FrameRate = %v, want 30", u.FrameRate)
	}
	if u.TimeDelta != float32(1.0/30) {
		t.Errorf("TimeDelta = %v, want %v", u.TimeDelta, float32(1.0/30))
	}
	if u.Mouse != [4]float32{} {
		t.Errorf("Mouse = %v, want zero", u.Mouse)
	}
}
