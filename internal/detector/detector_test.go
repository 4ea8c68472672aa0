package detector

import "testing"

func TestMirror_SwapsHandedness(t *testing.T) {
	right := OpenPalmLandmarks(HandednessRight)
	mirrored := right.Mirror()

	if mirrored.Handedness != HandednessLeft {
		t.Errorf("expected mirrored handedness %q, got %q", HandednessLeft, mirrored.Handedness)
	}

	back := mirrored.Mirror()
	if back.Handedness != HandednessRight {
		t.Errorf("expected double mirror handedness %q, got %q", HandednessRight, back.Handedness)
	}
}

func TestMirror_ReflectsX(t *testing.T) {
	hand := PeaceSignLandmarks(HandednessRight)
	mirrored := hand.Mirror()

	for i := 0; i < NumLandmarks; i++ {
		wantX := 1.0 - hand.Points[i].X
		if mirrored.Points[i].X != wantX {
			t.Errorf("landmark %d: expected x=%f, got %f", i, wantX, mirrored.Points[i].X)
		}
		if mirrored.Points[i].Y != hand.Points[i].Y {
			t.Errorf("landmark %d: y should be unchanged", i)
		}
	}
}

func TestMirror_UnknownHandednessUnchanged(t *testing.T) {
	hand := FistLandmarks(HandednessUnknown)
	if got := hand.Mirror().Handedness; got != HandednessUnknown {
		t.Errorf("expected handedness %q, got %q", HandednessUnknown, got)
	}
}

func TestMirror_Nil(t *testing.T) {
	var hand *HandLandmarks
	if hand.Mirror() != nil {
		t.Error("expected nil result for nil receiver")
	}
}

func TestFingerPose_ThumbDirection(t *testing.T) {
	// Right hand: extended thumb tip is left of the IP joint.
	right := FingerPose([5]bool{true, false, false, false, false}, HandednessRight)
	if right.Points[ThumbTip].X >= right.Points[ThumbIP].X {
		t.Error("right-hand extended thumb tip should be left of IP joint")
	}

	// Left hand: the inequality reverses.
	left := FingerPose([5]bool{true, false, false, false, false}, HandednessLeft)
	if left.Points[ThumbTip].X <= left.Points[ThumbIP].X {
		t.Error("left-hand extended thumb tip should be right of IP joint")
	}
}

func TestFingerPose_FingerHeights(t *testing.T) {
	hand := PeaceSignLandmarks(HandednessRight)

	// Index and middle tips above their PIP joints, ring and pinky below.
	if hand.Points[IndexTip].Y >= hand.Points[IndexPIP].Y {
		t.Error("extended index tip should be above PIP joint")
	}
	if hand.Points[MiddleTip].Y >= hand.Points[MiddlePIP].Y {
		t.Error("extended middle tip should be above PIP joint")
	}
	if hand.Points[RingTip].Y <= hand.Points[RingPIP].Y {
		t.Error("curled ring tip should be below PIP joint")
	}
	if hand.Points[PinkyTip].Y <= hand.Points[PinkyPIP].Y {
		t.Error("curled pinky tip should be below PIP joint")
	}
}
