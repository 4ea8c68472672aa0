package app

import (
	"fmt"
	"log"
	"time"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/fingers"
)

// Frame pacing. The loop idles at a low rate and speeds up while motion or
// a hand keeps the pipeline busy, then falls back after a quiet period.
const (
	idleInterval   = 200 * time.Millisecond
	activeInterval = 66 * time.Millisecond
	activeGrace    = 2 * time.Second
)

// Run opens the camera and drives the pipeline until Stop is called.
func (a *App) Run() error {
	defer close(a.done)

	if a.camera == nil {
		return fmt.Errorf("no camera configured")
	}
	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	defer a.camera.Close()
	defer a.motion.Close()

	log.Printf("Pipeline started (stable_frames=%d cooldown=%s)",
		a.cfg.StableFrames, a.cfg.Cooldown())

	var lastActivity time.Time

	for {
		select {
		case <-a.stop:
			return nil
		default:
		}

		now := time.Now()
		active := a.tick(now, &lastActivity)

		interval := idleInterval
		if active {
			interval = activeInterval
		}

		select {
		case <-a.stop:
			return nil
		case <-time.After(interval):
		}
	}
}

// Stop asks the pipeline to exit and waits for it to finish.
func (a *App) Stop() {
	select {
	case <-a.stop:
	default:
		close(a.stop)
	}
	<-a.done
}

// tick reads and processes one frame. Returns whether the pipeline should
// keep running at the active frame rate.
func (a *App) tick(now time.Time, lastActivity *time.Time) bool {
	frame, err := a.camera.ReadFrame()
	if err != nil {
		log.Printf("Failed to read frame: %v", err)
		return false
	}
	defer frame.Close()

	if !a.Enabled() {
		a.emitter.Tick(nil, now)
		return false
	}

	moved, _ := a.motion.Detect(frame)
	if moved {
		*lastActivity = now
	}

	// Quiet frames never reach the detector. The emitter still ticks so a
	// hand that left the frame resets the stability run.
	if now.Sub(*lastActivity) > activeGrace {
		a.emitter.Tick(nil, now)
		a.setObserved(0, false)
		return false
	}

	hands, err := a.detector.Detect(frame)
	if err != nil {
		log.Printf("Hand detection failed: %v", err)
		a.emitter.Tick(nil, now)
		return true
	}

	var hand *detector.HandLandmarks
	if len(hands) > 0 {
		hand = &hands[0]
		*lastActivity = now
	}

	if m := a.takePendingMapping(); m != nil {
		a.emitter.SetMapping(m)
	}

	a.emitter.Tick(hand, now)

	if hand != nil {
		count, _ := fingers.Count(hand)
		a.setObserved(count, true)
	} else {
		a.setObserved(0, false)
	}

	return true
}
