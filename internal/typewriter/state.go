package typewriter

import "context"

// Phase represents the controller state machine.
//
// The state machine has three phases with the following valid transitions:
//
//	┌──────────┐      start      ┌──────────┐
//	│   Idle   │ ───────────────▶│  Active  │
//	└──────────┘                 └──────────┘
//	     ▲                            │ │
//	     │ complete/reset       pause │ │ complete/reset
//	     │ natural end                ▼ │
//	     │                       ┌───────────┐
//	     └───────────────────────│ Suspended │
//	          complete/reset     └───────────┘
//	                                  │
//	                           resume │
//	                                  ▼
//	                               Active
//
// A seek while Idle produces a Suspended session at the target position; a
// seek to either boundary is terminal and lands in Idle. The underlying flag
// pair (running, paused) admits a fourth combination (false, true) that is
// never reachable: every transition that clears running clears paused with
// it.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseSuspended
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseActive:
		return "Active"
	case PhaseSuspended:
		return "Suspended"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a reveal session exists (running or suspended).
func (p Phase) IsActive() bool {
	return p == PhaseActive || p == PhaseSuspended
}

// CanPause returns true if the phase allows pausing.
func (p Phase) CanPause() bool {
	return p == PhaseActive
}

// CanResume returns true if the phase allows resuming.
func (p Phase) CanResume() bool {
	return p == PhaseSuspended
}

// playbackState is the single mutable record shared between the controller
// and the worker. Every field is guarded by the controller mutex; the worker
// must always re-read through that lock, never through a copy captured at
// spawn time.
type playbackState struct {
	// epoch distinguishes successive reveal generations. A worker whose
	// captured epoch no longer matches must exit without touching state.
	epoch    uint64
	running  bool
	paused   bool
	cursor   int // index of the next unprocessed operation
	revealed int // units already rendered
	total    int // cached unit count of the current sequence

	// ctx/cancel form the cooperative cancellation handle for the current
	// generation's worker.
	ctx    context.Context
	cancel context.CancelFunc
}

func (st *playbackState) phase() Phase {
	switch {
	case st.running && st.paused:
		return PhaseSuspended
	case st.running:
		return PhaseActive
	default:
		return PhaseIdle
	}
}

// nextEpoch advances the generation counter and replaces the cancellation
// handle, waking any worker parked in a pause-poll sleep of a stale
// generation. Callers must invoke this before flipping flags or rebuilding
// position state that a stale worker could race against.
func (st *playbackState) nextEpoch() (uint64, context.Context) {
	st.epoch++
	if st.cancel != nil {
		st.cancel()
	}
	st.ctx, st.cancel = context.WithCancel(context.Background())
	return st.epoch, st.ctx
}
