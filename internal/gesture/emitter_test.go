package gesture

import (
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/action"
	"github.com/ayusman/mudra/internal/detector"
)

// fakeDispatcher records dispatched descriptors and reports acted according
// to its result queue (or its default for every call when the queue is empty).
type fakeDispatcher struct {
	calls   []action.Descriptor
	results []bool
	acted   bool
}

func (d *fakeDispatcher) Dispatch(desc action.Descriptor) bool {
	d.calls = append(d.calls, desc)
	if desc.Kind == action.KindNoOp {
		return false
	}
	if len(d.results) > 0 {
		result := d.results[0]
		d.results = d.results[1:]
		return result
	}
	return d.acted
}

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func at(offset float64) time.Time {
	return baseTime.Add(time.Duration(offset * float64(time.Second)))
}

func TestEmitter_EndToEndScenario(t *testing.T) {
	// STABLE_FRAMES=3, COOLDOWN=2s, mapping {2: open_url}.
	dispatcher := &fakeDispatcher{acted: true}
	mapping := Mapping{2: {Kind: action.KindOpenURL, Parameter: "https://example.com"}}
	emitter := NewEmitter(3, 2*time.Second, mapping, dispatcher)

	twoFingers := detector.PeaceSignLandmarks(detector.HandednessRight)

	// Ticks at t=0, 0.1, 0.2: the third tick fires.
	if ev := emitter.Tick(&twoFingers, at(0)); ev != nil {
		t.Fatal("tick 1: should not trigger")
	}
	if ev := emitter.Tick(&twoFingers, at(0.1)); ev != nil {
		t.Fatal("tick 2: should not trigger")
	}
	ev := emitter.Tick(&twoFingers, at(0.2))
	if ev == nil {
		t.Fatal("tick 3: expected trigger")
	}
	if ev.Count != 2 || !ev.Acted {
		t.Errorf("expected acted trigger for count 2, got %+v", ev)
	}
	if len(dispatcher.calls) != 1 || dispatcher.calls[0].Kind != action.KindOpenURL {
		t.Errorf("expected one open_url dispatch, got %v", dispatcher.calls)
	}

	// Same gesture again inside the cooldown window: must not re-fire.
	for _, offset := range []float64{1.0, 1.1, 1.2} {
		if ev := emitter.Tick(&twoFingers, at(offset)); ev != nil {
			t.Errorf("tick at +%.1fs: cooldown active, should not trigger", offset)
		}
	}

	// Cooldown expires at t=2.2; the still-held gesture re-fires.
	ev = emitter.Tick(&twoFingers, at(2.2))
	if ev == nil {
		t.Fatal("expected repeat trigger once cooldown expired")
	}
	if len(dispatcher.calls) != 2 {
		t.Errorf("expected 2 dispatches, got %d", len(dispatcher.calls))
	}
}

func TestEmitter_TriggersOnceAtSixthConsecutiveCount(t *testing.T) {
	dispatcher := &fakeDispatcher{acted: true}
	mapping := Mapping{1: {Kind: action.KindOpenURL, Parameter: "https://example.com"}}
	emitter := NewEmitter(6, time.Hour, mapping, dispatcher)

	oneFinger := detector.FingerPose([5]bool{false, true, false, false, false}, detector.HandednessRight)

	// Sequence: None, then six consecutive 1s.
	if ev := emitter.Tick(nil, at(0)); ev != nil {
		t.Fatal("no-hand tick should not trigger")
	}
	var fired int
	for i := 1; i <= 6; i++ {
		if ev := emitter.Tick(&oneFinger, at(float64(i)*0.1)); ev != nil {
			fired++
			if i != 6 {
				t.Errorf("triggered at tick %d, expected only the 6th", i)
			}
		}
	}
	if fired != 1 {
		t.Errorf("expected exactly one trigger, got %d", fired)
	}
}

func TestEmitter_NoHandResetsStability(t *testing.T) {
	dispatcher := &fakeDispatcher{acted: true}
	mapping := Mapping{5: {Kind: action.KindOpenURL, Parameter: "https://example.com"}}
	emitter := NewEmitter(3, 0, mapping, dispatcher)

	palm := detector.OpenPalmLandmarks(detector.HandednessRight)

	emitter.Tick(&palm, at(0))
	emitter.Tick(&palm, at(0.1))
	emitter.Tick(nil, at(0.2)) // hand leaves the frame

	// Two more ticks rebuild a run of only 2: no trigger.
	if ev := emitter.Tick(&palm, at(0.3)); ev != nil {
		t.Error("run should restart after hand left the frame")
	}
	if ev := emitter.Tick(&palm, at(0.4)); ev != nil {
		t.Error("run of 2 should not be stable with threshold 3")
	}
	if ev := emitter.Tick(&palm, at(0.5)); ev == nil {
		t.Error("third consecutive tick should trigger")
	}
}

func TestEmitter_UnmappedCountNeverConsumesCooldown(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	emitter := NewEmitter(1, time.Hour, Mapping{}, dispatcher)

	fist := detector.FistLandmarks(detector.HandednessRight)

	// The unmapped count dispatches NoOp every tick; acted stays false and
	// the cooldown gate never closes.
	for i := 0; i < 4; i++ {
		ev := emitter.Tick(&fist, at(float64(i)*0.1))
		if ev == nil {
			t.Fatalf("tick %d: expected a trigger decision", i)
		}
		if ev.Acted {
			t.Errorf("tick %d: noop must never report acted", i)
		}
		if ev.Descriptor.Kind != action.KindNoOp {
			t.Errorf("tick %d: expected noop descriptor, got %v", i, ev.Descriptor)
		}
	}
	if len(dispatcher.calls) != 4 {
		t.Errorf("expected 4 dispatch attempts, got %d", len(dispatcher.calls))
	}
}

func TestEmitter_FailedDispatchAllowsImmediateRetry(t *testing.T) {
	// First dispatch fails (e.g. unresolvable executable), the second
	// succeeds: no cooldown is consumed in between and stability holds.
	dispatcher := &fakeDispatcher{results: []bool{false, true}}
	mapping := Mapping{2: {Kind: action.KindOpenProgram, Parameter: "nonexistent"}}
	emitter := NewEmitter(2, time.Hour, mapping, dispatcher)

	twoFingers := detector.PeaceSignLandmarks(detector.HandednessRight)

	emitter.Tick(&twoFingers, at(0))

	ev := emitter.Tick(&twoFingers, at(0.1))
	if ev == nil || ev.Acted {
		t.Fatalf("expected non-acted trigger, got %+v", ev)
	}

	ev = emitter.Tick(&twoFingers, at(0.2))
	if ev == nil || !ev.Acted {
		t.Fatalf("expected acted trigger on immediate retry, got %+v", ev)
	}

	// Now the cooldown is recorded and the gate is closed.
	if ev := emitter.Tick(&twoFingers, at(0.3)); ev != nil {
		t.Error("cooldown should be active after the acted dispatch")
	}
}

func TestEmitter_OnEventObservesEveryDecision(t *testing.T) {
	dispatcher := &fakeDispatcher{acted: true}
	mapping := Mapping{5: {Kind: action.KindSayText, Parameter: "hello"}}
	emitter := NewEmitter(1, 0, mapping, dispatcher)

	var events []Event
	emitter.OnEvent = func(ev Event) { events = append(events, ev) }

	palm := detector.OpenPalmLandmarks(detector.HandednessLeft)
	emitter.Tick(&palm, at(0))
	emitter.Tick(&palm, at(0.1))

	if len(events) != 2 {
		t.Fatalf("expected 2 observed events, got %d", len(events))
	}
	if events[0].Count != 5 || events[0].Vector.Count() != 5 {
		t.Errorf("unexpected event payload: %+v", events[0])
	}
}

func TestEmitter_StatusAccessors(t *testing.T) {
	dispatcher := &fakeDispatcher{acted: true}
	mapping := Mapping{2: {Kind: action.KindOpenURL, Parameter: "https://example.com"}}
	emitter := NewEmitter(2, 3*time.Second, mapping, dispatcher)

	twoFingers := detector.PeaceSignLandmarks(detector.HandednessRight)
	emitter.Tick(&twoFingers, at(0))

	if emitter.StabilityRun() != 1 {
		t.Errorf("expected run 1, got %d", emitter.StabilityRun())
	}
	if emitter.CooldownRemaining(at(0)) != 0 {
		t.Error("expected no cooldown before first trigger")
	}

	emitter.Tick(&twoFingers, at(0.1))
	if got := emitter.CooldownRemaining(at(1.1)); got != 2*time.Second {
		t.Errorf("expected 2s cooldown remaining, got %v", got)
	}
}

func TestMapping_LookupMissIsNoOp(t *testing.T) {
	mapping := Mapping{1: {Kind: action.KindOpenURL, Parameter: "https://example.com"}}
	if got := mapping.Lookup(4); got != action.NoOp {
		t.Errorf("expected noop for unmapped count, got %v", got)
	}
	if got := mapping.Lookup(1); got.Kind != action.KindOpenURL {
		t.Errorf("expected mapped descriptor, got %v", got)
	}
}
