package typewriter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// How long a materialization may block waiting for the surface.
const materializeTimeout = 5 * time.Second

// Controller is the public-facing playback state machine. One controller
// animates one sequence at a time: every public operation mutates the shared
// state under a single mutex, then spawns at most one worker tagged with the
// current generation. The mutex is never held across a render, a sleep or a
// materialization call.
type Controller struct {
	mu sync.Mutex
	st playbackState

	surface Surface
	seq     *Sequence
	timing  Timing
	log     *slog.Logger

	subs   []*Subscription
	subsMu sync.RWMutex
	closed bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithTiming overrides the reveal cadence.
func WithTiming(t Timing) Option {
	return func(c *Controller) { c.timing = t }
}

// WithLogger sets the logger for generation transitions and worker failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// New creates a controller driving the given surface.
func New(surface Surface, opts ...Option) *Controller {
	c := &Controller{
		surface: surface,
		timing:  DefaultTiming(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.timing = c.timing.normalized()
	if c.log == nil {
		c.log = slog.New(slog.DiscardHandler)
	}
	return c
}

// Start begins a reveal pass from the beginning. It is a no-op while a pass
// is already running unpaused, and delegates to Resume for a suspended
// session. The suspended-session check happens before any state rebuild so a
// Start never clobbers a paused position.
func (c *Controller) Start() {
	c.mu.Lock()
	switch c.st.phase() {
	case PhaseActive:
		c.mu.Unlock()
		return
	case PhaseSuspended:
		c.mu.Unlock()
		c.Resume()
		return
	case PhaseIdle:
		c.mu.Unlock()
	}

	seq := c.ensureSequence()

	c.mu.Lock()
	if c.closed || c.st.running {
		// A concurrent Start won the race; this one goes silent.
		c.mu.Unlock()
		return
	}
	epoch, ctx := c.st.nextEpoch()
	c.st.cursor = 0
	c.st.revealed = 0
	c.st.paused = false
	c.st.total = seq.TotalChars()
	if c.st.total == 0 {
		// Nothing to animate: report start, show everything, report done.
		c.mu.Unlock()
		c.emitLifecycle(LifecycleStarted)
		c.surface.RenderOriginal()
		c.emitLifecycle(LifecycleCompleted)
		return
	}
	c.st.running = true
	c.mu.Unlock()

	c.log.Debug("reveal started", "epoch", epoch, "chars", seq.TotalChars())
	c.emitLifecycle(LifecycleStarted)
	go c.animate(ctx, epoch, seq, 0)
}

// Pause suspends the running pass. Only the flag flips; the worker observes
// it on its next iteration, records its position and parks. The generation
// is untouched, so Resume continues the same logical session.
func (c *Controller) Pause() {
	c.mu.Lock()
	if !c.st.running || c.st.paused {
		c.mu.Unlock()
		return
	}
	c.st.paused = true
	c.mu.Unlock()

	c.emitLifecycle(LifecyclePaused)
}

// Resume continues a suspended session from the recorded cursor.
//
// The ordering here is the whole point of the epoch scheme: advance the
// generation and cancel the old handle FIRST, so a worker still parked in a
// stale pause-wait wakes, sees the mismatch and exits, then clear paused and
// spawn the replacement. Spawning before the old generation is invalidated
// lets two workers briefly coexist and the older one's pause-loop overwrite
// the cursor with a stale value.
func (c *Controller) Resume() {
	c.mu.Lock()
	if !c.st.running || !c.st.paused {
		c.mu.Unlock()
		return
	}
	epoch, ctx := c.st.nextEpoch()
	c.st.paused = false
	start := c.st.cursor
	seq := c.seq
	c.mu.Unlock()

	c.log.Debug("reveal resumed", "epoch", epoch, "cursor", start)
	c.emitLifecycle(LifecycleResumed)
	go c.animate(ctx, epoch, seq, start)
}

// Seek jumps to an arbitrary position in [0,1]. Out-of-range input is
// clamped. The rebuilt buffer is rendered as one atomic update; boundary
// seeks are terminal, any other seek leaves a suspended, resumable session.
func (c *Controller) Seek(position float64) {
	seq := c.ensureSequence()

	if position < 0 {
		position = 0
	}
	if position > 1 {
		position = 1
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	wasActive := c.st.running && !c.st.paused
	// Invalidate the old generation before touching position state: a
	// parked worker must die before the rebuild, or its pause-loop would
	// resurrect the pre-seek cursor.
	epoch, _ := c.st.nextEpoch()
	total := seq.TotalChars()
	c.st.total = total

	atStart := position <= 0
	atEnd := position >= 1
	switch {
	case atStart || atEnd:
		// Boundary seeks are terminal, not suspendable.
		c.st.running = false
		c.st.paused = false
	case c.st.running:
		c.st.paused = true
	default:
		// A seek while idle starts a suspended session at the target.
		c.st.running = true
		c.st.paused = true
	}

	// floor(position*total), nudged so ratios like 29/100 do not land one
	// unit short from float representation error.
	target := int(position*float64(total) + 1e-9)
	buffer, cursor, revealed := seq.Prefix(target)
	c.st.cursor = cursor
	c.st.revealed = revealed
	canResume := c.st.running && c.st.paused
	snap := snapshotFor(revealed, total)
	c.mu.Unlock()

	c.log.Debug("seek", "epoch", epoch, "position", position, "char", target)

	if atEnd {
		c.surface.RenderOriginal()
	} else {
		c.surface.Render(buffer)
	}

	c.emitSeek(SeekOutcome{
		Position:   position,
		CharIndex:  target,
		TotalChars: total,
		Percent:    snap.Percent,
		WasActive:  wasActive,
		CanResume:  canResume,
		AtStart:    atStart,
		AtEnd:      atEnd,
	})
	c.emitProgress(snap)
	if atEnd {
		c.emitLifecycle(LifecycleCompleted)
	}
}

// SeekToPercent jumps to a percentage in [0,100].
func (c *Controller) SeekToPercent(percent float64) {
	c.Seek(percent / 100)
}

// SeekToChar jumps so that exactly index units are revealed. No-op on an
// empty sequence.
func (c *Controller) SeekToChar(index int) {
	seq := c.ensureSequence()
	total := seq.TotalChars()
	if total == 0 {
		return
	}
	c.Seek(float64(index) / float64(total))
}

// Complete force-finishes the current session: the worker is invalidated,
// the full original content is rendered synchronously and completion is
// reported. No-op when idle.
func (c *Controller) Complete() {
	c.mu.Lock()
	if !c.st.running {
		c.mu.Unlock()
		return
	}
	epoch, _ := c.st.nextEpoch()
	c.st.running = false
	c.st.paused = false
	c.st.cursor = c.seq.Len()
	c.st.revealed = c.st.total
	snap := snapshotFor(c.st.total, c.st.total)
	c.mu.Unlock()

	c.log.Debug("reveal force-completed", "epoch", epoch)
	c.surface.RenderOriginal()
	c.emitProgress(snap)
	c.emitLifecycle(LifecycleCompleted)
}

// Reset unconditionally returns the controller to Idle: any worker is
// invalidated, counters clear, the sequence is discarded and the surface is
// emptied.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.st.nextEpoch()
	c.st.running = false
	c.st.paused = false
	c.st.cursor = 0
	c.st.revealed = 0
	c.st.total = 0
	c.seq = nil
	c.mu.Unlock()

	c.surface.Render("")
	c.emitProgress(ProgressSnapshot{})
	c.emitLifecycle(LifecycleReset)
}

// SetContent replaces the sequence source and implicitly resets.
func (c *Controller) SetContent(content string) {
	c.surface.SetContent(content)
	c.Reset()
}

// Progress returns the current progress. Pure read, no suspension.
func (c *Controller) Progress() ProgressSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return snapshotFor(c.st.revealed, c.st.total)
}

// Phase returns the current controller phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.phase()
}

// Subscribe creates a new event subscription.
func (c *Controller) Subscribe() *Subscription {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	sub := newSubscription()
	c.subs = append(c.subs, sub)
	return sub
}

// Close invalidates any worker and signals all subscriptions. Idempotent.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.st.nextEpoch()
	c.st.running = false
	c.st.paused = false
	c.mu.Unlock()

	c.subsMu.Lock()
	for _, sub := range c.subs {
		sub.close()
	}
	c.subs = nil
	c.subsMu.Unlock()
	return nil
}

// ensureSequence returns the current sequence, materializing it lazily. The
// external call runs without the state lock held. Materialization failure is
// not fatal: it degrades to an empty sequence, reported on the error channel.
func (c *Controller) ensureSequence() *Sequence {
	c.mu.Lock()
	seq := c.seq
	c.mu.Unlock()
	if seq != nil {
		return seq
	}

	ctx, cancel := context.WithTimeout(context.Background(), materializeTimeout)
	defer cancel()
	seq, err := c.surface.Materialize(ctx)
	if err != nil {
		c.log.Error("materialize failed", "err", err)
		c.emitError(ErrorEvent{Operation: "materialize", Err: err})
		seq = nil
	}
	if seq == nil {
		seq = NewSequence(nil)
	}

	c.mu.Lock()
	if c.seq == nil {
		c.seq = seq
		c.st.total = seq.TotalChars()
	}
	seq = c.seq
	c.mu.Unlock()
	return seq
}

func (c *Controller) emitLifecycle(kind LifecycleKind) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		sub.sendLifecycle(LifecycleEvent{Kind: kind})
	}
}

func (c *Controller) emitProgress(snap ProgressSnapshot) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		sub.sendProgress(snap)
	}
}

func (c *Controller) emitSeek(o SeekOutcome) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		sub.sendSeek(o)
	}
}

func (c *Controller) emitError(e ErrorEvent) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		sub.sendError(e)
	}
}
