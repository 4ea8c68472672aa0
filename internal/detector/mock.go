package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Base x positions for the four non-thumb fingers (index, middle, ring, pinky)
// on a right hand facing the camera.
var fingerBaseX = [4]float64{0.56, 0.50, 0.44, 0.38}

// FingerPose returns a synthetic HandLandmarks whose geometry encodes the
// given extension vector (thumb, index, middle, ring, pinky). An extended
// thumb has its tip past the IP joint in the handedness-dependent direction;
// an extended finger has its tip above the PIP joint in image space.
func FingerPose(extended [5]bool, handedness string) HandLandmarks {
	lm := HandLandmarks{
		Handedness: handedness,
		Score:      0.95,
	}

	lm.Points[Wrist] = Point3D{X: 0.50, Y: 0.90}

	// Thumb chain. The tip is placed relative to the IP joint so that the
	// mirrored-camera rule (Right: tip.x < ip.x when extended) holds.
	lm.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.85}
	lm.Points[ThumbMCP] = Point3D{X: 0.60, Y: 0.80}
	lm.Points[ThumbIP] = Point3D{X: 0.62, Y: 0.75}

	ipX := lm.Points[ThumbIP].X
	tipX := ipX + 0.04 // folded, right-hand convention
	if extended[0] {
		tipX = ipX - 0.06
	}
	if handedness == HandednessLeft {
		// Left hands extend the thumb in the opposite x direction.
		tipX = ipX - 0.04
		if extended[0] {
			tipX = ipX + 0.06
		}
	}
	lm.Points[ThumbTip] = Point3D{X: tipX, Y: 0.72}

	// Remaining fingers. Four landmarks per finger: MCP, PIP, DIP, Tip.
	for i := 0; i < 4; i++ {
		base := IndexMCP + i*4
		x := fingerBaseX[i]

		lm.Points[base] = Point3D{X: x, Y: 0.70}
		lm.Points[base+1] = Point3D{X: x, Y: 0.60} // PIP
		lm.Points[base+2] = Point3D{X: x, Y: 0.52} // DIP

		tipY := 0.66 // curled: tip below the PIP joint
		if extended[i+1] {
			tipY = 0.40
		}
		lm.Points[base+3] = Point3D{X: x, Y: tipY}
	}

	return lm
}

// OpenPalmLandmarks returns a hand with all five fingers extended.
func OpenPalmLandmarks(handedness string) HandLandmarks {
	return FingerPose([5]bool{true, true, true, true, true}, handedness)
}

// FistLandmarks returns a closed fist with no fingers extended.
func FistLandmarks(handedness string) HandLandmarks {
	return FingerPose([5]bool{}, handedness)
}

// PeaceSignLandmarks returns a hand with index and middle fingers extended.
func PeaceSignLandmarks(handedness string) HandLandmarks {
	return FingerPose([5]bool{false, true, true, false, false}, handedness)
}
