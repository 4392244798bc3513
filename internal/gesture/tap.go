// Package gesture detects multi-tap gestures from discrete input events.
package gesture

import (
	"sync"
	"time"
)

// Default gesture parameters: three taps within half a second.
const (
	DefaultTaps   = 3
	DefaultWindow = 500 * time.Millisecond
)

// TapDetector recognizes Count taps that all land within Window of the
// first one.
type TapDetector struct {
	mu     sync.Mutex
	count  int
	window time.Duration
	taps   []time.Time
}

// NewTapDetector creates a detector. Non-positive arguments fall back to the
// defaults.
func NewTapDetector(count int, window time.Duration) *TapDetector {
	if count <= 0 {
		count = DefaultTaps
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &TapDetector{count: count, window: window}
}

// Tap records a tap at now and reports whether it completes the gesture.
// A completed gesture resets the detector.
func (d *TapDetector) Tap(now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	cutoff := now.Add(-d.window)
	kept := d.taps[:0]
	for _, t := range d.taps {
		if !t.Before(cutoff) {
			kept = append(kept, t)
		}
	}
	d.taps = append(kept, now)

	if len(d.taps) >= d.count {
		d.taps = d.taps[:0]
		return true
	}
	return false
}

// Reset forgets all recorded taps.
func (d *TapDetector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.taps = d.taps[:0]
}
