// Package detector provides hand detection interfaces and types for the Mudra gesture launcher.
package detector

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Handedness labels reported by the detector.
const (
	HandednessLeft    = "Left"
	HandednessRight   = "Right"
	HandednessUnknown = "Unknown"
)

// Point3D represents a 3D point in normalized image space.
// X and Y are in [0,1] with Y increasing downward; Z is relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left", "Right" or "Unknown"
	Score      float64               `json:"score"`
}

// Mirror returns a copy of the landmarks reflected about the vertical
// center of the frame, with the handedness label swapped. A mirrored
// right hand is geometrically a left hand, so finger classification
// must produce the same extension vector for both.
func (h *HandLandmarks) Mirror() *HandLandmarks {
	if h == nil {
		return nil
	}

	mirrored := &HandLandmarks{
		Score: h.Score,
	}

	switch h.Handedness {
	case HandednessLeft:
		mirrored.Handedness = HandednessRight
	case HandednessRight:
		mirrored.Handedness = HandednessLeft
	default:
		mirrored.Handedness = h.Handedness
	}

	for i := 0; i < NumLandmarks; i++ {
		mirrored.Points[i] = Point3D{
			X: 1.0 - h.Points[i].X,
			Y: h.Points[i].Y,
			Z: h.Points[i].Z,
		}
	}

	return mirrored
}
