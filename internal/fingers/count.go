// Package fingers classifies hand landmarks into a finger-extension vector.
package fingers

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// Vector holds the per-finger extension state, ordered
// thumb, index, middle, ring, pinky. 1 means extended.
type Vector [5]int

// Count returns the number of extended fingers in the vector.
func (v Vector) Count() int {
	total := 0
	for _, f := range v {
		total += f
	}
	return total
}

// Tip landmark indices, ordered thumb through pinky.
var tips = [5]int{
	detector.ThumbTip,
	detector.IndexTip,
	detector.MiddleTip,
	detector.RingTip,
	detector.PinkyTip,
}

// Count classifies each finger of the detected hand as extended or not and
// returns the extended-finger count together with the extension vector.
//
// The thumb extends sideways, so its rule depends on handedness under the
// mirrored camera convention: a right-hand thumb is extended when its tip is
// left of the IP joint, a left-hand thumb when it is right of it. Unknown
// handedness falls back to the right-hand rule. The remaining fingers are
// extended when the tip sits above the PIP joint in image space (smaller y).
//
// Classification is total: a malformed coordinate marks that finger as not
// extended rather than failing the extraction.
func Count(hand *detector.HandLandmarks) (int, Vector) {
	var v Vector
	if hand == nil {
		return 0, v
	}

	if thumbExtended(hand) {
		v[0] = 1
	}

	for i := 1; i < 5; i++ {
		tipY := hand.Points[tips[i]].Y
		pipY := hand.Points[tips[i]-2].Y
		if math.IsNaN(tipY) || math.IsNaN(pipY) {
			continue
		}
		if tipY < pipY {
			v[i] = 1
		}
	}

	return v.Count(), v
}

func thumbExtended(hand *detector.HandLandmarks) bool {
	tipX := hand.Points[detector.ThumbTip].X
	ipX := hand.Points[detector.ThumbIP].X
	if math.IsNaN(tipX) || math.IsNaN(ipX) {
		return false
	}

	if hand.Handedness == detector.HandednessLeft {
		return tipX > ipX
	}
	return tipX < ipX
}
