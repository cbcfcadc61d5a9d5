package ramp

import (
	"time"

	"hapticcode-go/x/mathx"
)

// Step applies a new drive level in [0..255].
type Step func(level uint8)

// Tick waits for d and reports whether to continue (false => cancelled).
type Tick func(d time.Duration) bool

// Linear runs a synchronous (caller-driven) integer ramp from cur to target.
// The caller provides Tick to handle timing and cancellation. steps==0 or
// durationMs==0 snaps straight to target.
func Linear(cur, target uint8, durationMs uint32, steps uint8, tick Tick, set Step) {
	if steps == 0 || durationMs == 0 {
		set(target)
		return
	}
	d := int32(target) - int32(cur)
	st := int32(steps)
	acc := int32(0)
	cur32 := int32(cur)
	stepDurMs := durationMs / uint32(steps)
	if stepDurMs == 0 {
		stepDurMs = 1
	}
	stepDur := time.Duration(stepDurMs) * time.Millisecond

	for i := uint8(1); i < steps; i++ {
		if !tick(stepDur) {
			return
		}
		acc += d
		inc := acc / st
		if inc != 0 {
			acc -= inc * st
			cur32 = mathx.Clamp(cur32+inc, 0, 255)
			set(uint8(cur32))
		}
	}
	set(target)
}
