package gesture

import (
	"testing"
	"time"
)

func TestTapDetector(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	ms := func(n int) time.Time { return base.Add(time.Duration(n) * time.Millisecond) }

	tests := []struct {
		name string
		taps []time.Time
		want []bool
	}{
		{"three quick taps", []time.Time{ms(0), ms(100), ms(200)}, []bool{false, false, true}},
		{"too slow", []time.Time{ms(0), ms(300), ms(600)}, []bool{false, false, false}},
		{"slow start then quick", []time.Time{ms(0), ms(1000), ms(1100), ms(1200)}, []bool{false, false, false, true}},
		{"exactly at window edge", []time.Time{ms(0), ms(250), ms(500)}, []bool{false, false, true}},
		{"resets after gesture", []time.Time{ms(0), ms(10), ms(20), ms(30), ms(40)}, []bool{false, false, true, false, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewTapDetector(3, 500*time.Millisecond)
			for i, tap := range tt.taps {
				if got := d.Tap(tap); got != tt.want[i] {
					t.Errorf("tap %d = %v, want %v", i, got, tt.want[i])
				}
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	d := NewTapDetector(0, 0)
	if d.count != DefaultTaps || d.window != DefaultWindow {
		t.Errorf("defaults = %d/%v", d.count, d.window)
	}
}

func TestReset(t *testing.T) {
	d := NewTapDetector(2, time.Second)
	now := time.Now()
	d.Tap(now)
	d.Reset()
	if d.Tap(now.Add(time.Millisecond)) {
		t.Error("Tap() after Reset completed the gesture")
	}
}
