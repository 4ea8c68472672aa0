package gesture

import (
	"time"

	"github.com/ayusman/mudra/internal/action"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/fingers"
)

// Dispatcher is the capability boundary the emitter triggers into.
// Dispatch returns true only when the action was actually performed.
type Dispatcher interface {
	Dispatch(desc action.Descriptor) bool
}

// Mapping resolves a finger count to its configured action descriptor.
type Mapping map[int]action.Descriptor

// Lookup returns the descriptor for count, or NoOp when unmapped.
func (m Mapping) Lookup(count int) action.Descriptor {
	if d, ok := m[count]; ok {
		return d
	}
	return action.NoOp
}

// Event records one trigger decision: a finger count that was stable with
// the cooldown gate open. Acted reports whether the dispatched action was
// actually performed.
type Event struct {
	Count      int               `json:"count"`
	Vector     fingers.Vector    `json:"vector"`
	Descriptor action.Descriptor `json:"descriptor"`
	Acted      bool              `json:"acted"`
	Time       time.Time         `json:"time"`
}

// Emitter combines finger extraction, the stability tracker and the
// cooldown gate, and makes exactly one emission decision per tick.
//
// The stability run is deliberately not reset after a trigger: a gesture
// held across a cooldown window re-fires once the window expires.
//
// Like the tracker and gate it owns, an Emitter is single-threaded; hosts
// feeding it from multiple goroutines must serialize the ticks themselves.
type Emitter struct {
	stability  *StabilityTracker
	cooldown   *CooldownGate
	mapping    Mapping
	dispatcher Dispatcher

	// OnEvent, when set, observes every trigger decision. Advisory only;
	// it never influences the state machine.
	OnEvent func(Event)
}

// NewEmitter creates an emitter requiring stableFrames consecutive ticks of
// the same count and at least cooldown between acted dispatches.
func NewEmitter(stableFrames int, cooldown time.Duration, mapping Mapping, dispatcher Dispatcher) *Emitter {
	return &Emitter{
		stability:  NewStabilityTracker(stableFrames),
		cooldown:   NewCooldownGate(cooldown),
		mapping:    mapping,
		dispatcher: dispatcher,
	}
}

// SetMapping replaces the count-to-action mapping. Call only from the tick
// loop's goroutine.
func (e *Emitter) SetMapping(mapping Mapping) {
	e.mapping = mapping
}

// Tick processes one frame observation. A nil hand means nothing was
// detected this tick and resets stability. When the observed count is
// stable and the cooldown gate is open, the mapped action is dispatched;
// the cooldown is recorded only when the dispatcher reports it acted, so a
// failed or no-op dispatch leaves the window open for an immediate retry.
//
// Returns the trigger event for this tick, or nil if none fired.
func (e *Emitter) Tick(hand *detector.HandLandmarks, now time.Time) *Event {
	if hand == nil {
		e.stability.Reset()
		return nil
	}

	count, vector := fingers.Count(hand)
	stable := e.stability.Observe(count)
	if !stable || !e.cooldown.Allow(now) {
		return nil
	}

	desc := e.mapping.Lookup(count)
	acted := e.dispatcher.Dispatch(desc)
	if acted {
		e.cooldown.Record(now)
	}

	event := Event{
		Count:      count,
		Vector:     vector,
		Descriptor: desc,
		Acted:      acted,
		Time:       now,
	}
	if e.OnEvent != nil {
		e.OnEvent(event)
	}
	return &event
}

// StabilityRun returns the current unchanged-count streak length.
func (e *Emitter) StabilityRun() int {
	return e.stability.Run()
}

// CooldownRemaining returns how long until the next trigger is allowed.
func (e *Emitter) CooldownRemaining(now time.Time) time.Duration {
	return e.cooldown.Remaining(now)
}
