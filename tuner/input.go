package tuner

import (
	"sync"
	"time"
)

// Dial input timing.  Movements are applied at most once per debounce
// window; finer movements coalesce, not drop, because the dial counter
// is absolute and the next qualifying read picks up the accumulated
// travel.  A press held past holdDur classifies as a long press, on
// release.
const (
	debounce = 150 * time.Millisecond
	holdDur  = 800 * time.Millisecond
)

type press int

const (
	pressNone press = iota
	pressShort
	pressLong
)

// decoder turns raw dial readings into discrete intents.  It carries
// no state of its own beyond the dial basis and press timestamps; the
// menu decides what the intents mean.  The input loop polls it while
// remote intents re-base it, so it guards itself.
type decoder struct {
	mu        sync.Mutex
	ref       int // dial counter at last applied movement
	lastApply time.Time
	pressed   bool
	pressAt   time.Time
}

// Spin returns the dial travel since the last applied movement, or 0
// if nothing qualifies yet.  A movement qualifies when at least one
// detent accumulated and the debounce window has passed.
func (d *decoder) Spin(pos int, now time.Time) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	delta := pos - d.ref
	if delta == 0 {
		return 0
	}
	if now.Sub(d.lastApply) < debounce {
		return 0
	}
	d.lastApply = now
	return delta
}

// Project re-bases the decoder on a freshly projected dial counter and
// opens a fresh debounce window, so a read straddling the re-basing
// can't turn into a phantom movement
func (d *decoder) Project(pos int, now time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ref = pos
	d.lastApply = now
}

// Press tracks the button level and classifies the gesture on release.
// Nothing is emitted while the button is down.
func (d *decoder) Press(down bool, now time.Time) press {
	d.mu.Lock()
	defer d.mu.Unlock()
	if down && !d.pressed {
		d.pressed = true
		d.pressAt = now
		return pressNone
	}
	if !down && d.pressed {
		d.pressed = false
		if now.Sub(d.pressAt) >= holdDur {
			return pressLong
		}
		return pressShort
	}
	return pressNone
}
