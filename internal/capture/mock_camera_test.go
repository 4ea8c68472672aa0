package capture

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"
)

func testFrames(t *testing.T, n int) []*gocv.Mat {
	t.Helper()
	frames := make([]*gocv.Mat, n)
	for i := range frames {
		mat := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
		frames[i] = &mat
	}
	t.Cleanup(func() {
		for _, f := range frames {
			f.Close()
		}
	})
	return frames
}

func TestMockCamera_Playback(t *testing.T) {
	cam := NewMockCamera(testFrames(t, 2), false)
	if err := cam.Open(); err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer cam.Close()

	for i := 0; i < 2; i++ {
		frame, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		frame.Close()
	}

	if _, err := cam.ReadFrame(); err == nil {
		t.Error("expected error after last frame without loop")
	}
}

func TestMockCamera_Loop(t *testing.T) {
	cam := NewMockCamera(testFrames(t, 1), true)
	if err := cam.Open(); err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer cam.Close()

	for i := 0; i < 3; i++ {
		frame, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("loop read %d: %v", i, err)
		}
		frame.Close()
	}
}

func TestMockCamera_NotOpen(t *testing.T) {
	cam := NewMockCamera(testFrames(t, 1), false)
	if _, err := cam.ReadFrame(); !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("expected ErrCameraNotOpen, got %v", err)
	}
}
