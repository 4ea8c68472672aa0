// Package app wires the capture, detection and gesture pipeline together.
package app

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

// Options carries the components the app runs with. Camera, Detector and
// Dispatcher are required; Store and Tray are optional.
type Options struct {
	Camera     capture.Camera
	Detector   detector.Detector
	Dispatcher gesture.Dispatcher
	Store      *store.Store
	Tray       *tray.Tray
}

// App runs the gesture pipeline: frames in, actions out.
type App struct {
	cfg        config.Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	emitter    *gesture.Emitter
	store      *store.Store
	tray       *tray.Tray
	dispatcher gesture.Dispatcher

	mu               sync.Mutex
	enabled          bool
	lastCount        int
	handPresent      bool
	cooldownDeadline time.Time

	// pendingMapping is applied to the emitter at the start of the next
	// tick, keeping the emitter single-threaded.
	pendingMapping gesture.Mapping

	stop chan struct{}
	done chan struct{}
}

// New creates the app from the configuration and components.
func New(cfg config.Config, opts Options) *App {
	a := &App{
		cfg:        cfg,
		camera:     opts.Camera,
		motion:     capture.NewMotionDetector(cfg.MotionThreshold),
		detector:   opts.Detector,
		store:      opts.Store,
		tray:       opts.Tray,
		dispatcher: opts.Dispatcher,
		enabled:    true,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}

	a.emitter = gesture.NewEmitter(cfg.StableFrames, cfg.Cooldown(), cfg.Mapping(), opts.Dispatcher)
	a.emitter.OnEvent = a.handleEvent

	return a
}

// SetEnabled pauses or resumes gesture detection. While paused, frames are
// still read but never reach the detector.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.enabled = enabled
	if !enabled {
		a.lastCount = 0
		a.handPresent = false
	}
}

// Enabled returns whether gesture detection is active.
func (a *App) Enabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}

// LastCount returns the most recent finger count and whether a hand is
// currently tracked.
func (a *App) LastCount() (int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastCount, a.handPresent
}

// CooldownRemaining returns the time until the next trigger is allowed.
func (a *App) CooldownRemaining() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()

	remaining := time.Until(a.cooldownDeadline)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// LoadMappings replaces the emitter's mapping with the rows stored in the
// database. Counts without a stored row fall back to no-op. The new mapping
// takes effect on the next tick.
func (a *App) LoadMappings() error {
	if a.store == nil {
		return fmt.Errorf("no store configured")
	}

	rows, err := a.store.Mappings().List()
	if err != nil {
		return fmt.Errorf("load mappings: %w", err)
	}

	mapping := make(gesture.Mapping, len(rows))
	for _, m := range rows {
		mapping[m.FingerCount] = m.Descriptor()
	}

	a.mu.Lock()
	a.pendingMapping = mapping
	a.mu.Unlock()

	log.Printf("Loaded %d mappings", len(mapping))
	return nil
}

// takePendingMapping returns the mapping queued by LoadMappings, if any.
func (a *App) takePendingMapping() gesture.Mapping {
	a.mu.Lock()
	defer a.mu.Unlock()

	m := a.pendingMapping
	a.pendingMapping = nil
	return m
}

// handleEvent records a trigger in the audit log and updates the tray.
// Called from the tick loop's goroutine.
func (a *App) handleEvent(event gesture.Event) {
	log.Printf("Triggered: %d fingers -> %s %q (acted=%v)",
		event.Count, event.Descriptor.Kind, event.Descriptor.Parameter, event.Acted)

	if event.Acted {
		a.mu.Lock()
		a.cooldownDeadline = event.Time.Add(a.cfg.Cooldown())
		a.mu.Unlock()
	}

	if a.store != nil {
		err := a.store.Events().Insert(&store.TriggerEvent{
			FingerCount: event.Count,
			Kind:        event.Descriptor.Kind,
			Parameter:   event.Descriptor.Parameter,
			Acted:       event.Acted,
			CreatedAt:   event.Time,
		})
		if err != nil {
			log.Printf("Failed to record trigger event: %v", err)
		}
	}

	if a.tray != nil && event.Acted {
		a.tray.SetLastTrigger(fmt.Sprintf("%d fingers: %s", event.Count, event.Descriptor.Kind))
	}
}

// setObserved updates the status snapshot served to overlays.
func (a *App) setObserved(count int, present bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastCount = count
	a.handPresent = present
}
