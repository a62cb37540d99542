package typewriter

import (
	"math/rand/v2"
	"time"
)

// Timing controls the reveal cadence. The zero value is not usable; start
// from DefaultTiming and override fields as needed.
type Timing struct {
	// CharsPerSecond sets the nominal reveal speed used to derive the
	// target duration of a full pass.
	CharsPerSecond float64
	// MinDuration and MaxDuration clamp the target duration so very short
	// content still animates and very long content does not crawl.
	MinDuration time.Duration
	MaxDuration time.Duration
	// FloorDelay is the minimum per-unit delay regardless of duration math.
	FloorDelay time.Duration
	// Jitter is the fraction of the base delay added as random positive
	// jitter per unit, in [0,1]. Zero disables jitter.
	Jitter float64
	// PausePoll is the backoff between paused-flag polls. This is a
	// low-priority poll, not a tight spin; cancellation wakes a parked
	// worker immediately.
	PausePoll time.Duration
	// ProgressEvery emits a progress snapshot every Nth unit. The final
	// 100% snapshot is emitted unconditionally.
	ProgressEvery int
}

// DefaultTiming returns the reference cadence.
func DefaultTiming() Timing {
	return Timing{
		CharsPerSecond: 40,
		MinDuration:    800 * time.Millisecond,
		MaxDuration:    8 * time.Second,
		FloorDelay:     8 * time.Millisecond,
		Jitter:         0.35,
		PausePoll:      100 * time.Millisecond,
		ProgressEvery:  10,
	}
}

// normalized fills unusable fields with defaults so a partially populated
// Timing cannot divide by zero or spin.
func (t Timing) normalized() Timing {
	def := DefaultTiming()
	if t.CharsPerSecond <= 0 {
		t.CharsPerSecond = def.CharsPerSecond
	}
	if t.MaxDuration <= 0 {
		t.MaxDuration = def.MaxDuration
	}
	if t.MinDuration < 0 {
		t.MinDuration = def.MinDuration
	}
	if t.MinDuration > t.MaxDuration {
		t.MinDuration = t.MaxDuration
	}
	if t.FloorDelay < 0 {
		t.FloorDelay = def.FloorDelay
	}
	if t.Jitter < 0 || t.Jitter > 1 {
		t.Jitter = def.Jitter
	}
	if t.PausePoll <= 0 {
		t.PausePoll = def.PausePoll
	}
	if t.ProgressEvery <= 0 {
		t.ProgressEvery = def.ProgressEvery
	}
	return t
}

// TargetDuration returns the clamped duration of a full pass over totalChars
// units. Zero units means an immediate pass.
func (t Timing) TargetDuration(totalChars int) time.Duration {
	if totalChars <= 0 {
		return 0
	}
	d := time.Duration(float64(totalChars) / t.CharsPerSecond * float64(time.Second))
	if d < t.MinDuration {
		d = t.MinDuration
	}
	if d > t.MaxDuration {
		d = t.MaxDuration
	}
	return d
}

// UnitDelay returns the base per-unit delay for a pass over totalChars units.
func (t Timing) UnitDelay(totalChars int) time.Duration {
	if totalChars <= 0 {
		return 0
	}
	d := t.TargetDuration(totalChars) / time.Duration(totalChars)
	if d < t.FloorDelay {
		d = t.FloorDelay
	}
	return d
}

// jittered adds a small positive random jitter to the base delay.
func (t Timing) jittered(base time.Duration) time.Duration {
	if base <= 0 || t.Jitter <= 0 {
		return base
	}
	span := int64(float64(base) * t.Jitter)
	if span <= 0 {
		return base
	}
	return base + time.Duration(rand.Int64N(span+1))
}
