package gesture

import "time"

// CooldownGate enforces a minimum elapsed time between two dispatched
// actions, independent of stability. It knows nothing about finger counts.
type CooldownGate struct {
	interval time.Duration
	last     time.Time
}

// NewCooldownGate creates a gate with the given minimum interval.
// Negative intervals are clamped to zero.
func NewCooldownGate(interval time.Duration) *CooldownGate {
	if interval < 0 {
		interval = 0
	}
	return &CooldownGate{interval: interval}
}

// Allow reports whether enough time has passed since the last recorded
// trigger. Before the first trigger is recorded it always returns true.
func (g *CooldownGate) Allow(now time.Time) bool {
	if g.last.IsZero() {
		return true
	}
	return now.Sub(g.last) >= g.interval
}

// Record marks now as the last trigger time. Callers must record only
// after a dispatch attempt that actually acted, so a stable but
// undispatchable gesture never consumes the cooldown window.
func (g *CooldownGate) Record(now time.Time) {
	g.last = now
}

// Remaining returns how long until the gate opens again, or zero if it is
// already open.
func (g *CooldownGate) Remaining(now time.Time) time.Duration {
	if g.last.IsZero() {
		return 0
	}
	remaining := g.interval - now.Sub(g.last)
	if remaining < 0 {
		return 0
	}
	return remaining
}
