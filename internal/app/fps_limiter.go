package app

import (
	"time"

	"softrast/internal/config"
)

// pausedFPS caps the loop while animation is paused; frames are still drawn
// so the HUD and toggles respond.
const pausedFPS = 30

// FPSLimiter paces the frame loop to config.GetFPSLimit.
type FPSLimiter struct {
	next  time.Time
	sleep func(time.Duration)
	now   func() time.Time
}

// NewFPSLimiter creates a new FPS limiter
func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{sleep: time.Sleep, now: time.Now}
}

// Wait blocks until the next frame is due. A limit of 0 returns at once.
// It sleeps most of the interval and spins for the last 200µs, which keeps
// high caps accurate.
func (f *FPSLimiter) Wait(paused bool) {
	limit := config.GetFPSLimit()
	if paused && (limit == 0 || limit > pausedFPS) {
		limit = pausedFPS
	}

	if limit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(limit)

	if f.next.IsZero() {
		f.next = f.now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := f.next.Sub(f.now())
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			f.sleep(remaining - 200*time.Microsecond)
		}
		if !f.next.After(f.now()) {
			break
		}
	}

	// Resync after a hitch instead of rushing to catch up.
	if late := f.now().Sub(f.next); late > target {
		f.next = f.now().Add(target)
	}
}
