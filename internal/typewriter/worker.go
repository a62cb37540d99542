package typewriter

import (
	"context"
	"strings"
	"time"
)

// animate is the cooperative background loop for one generation. It walks seq
// from the start cursor, rendering incrementally, and re-checks for
// supersession through the controller mutex on every iteration. A superseded
// worker exits without touching state: any write it could make belongs to a
// generation that no longer exists.
func (c *Controller) animate(ctx context.Context, epoch uint64, seq *Sequence, start int) {
	defer c.recoverWorker(epoch)

	delay := c.timing.UnitDelay(seq.TotalChars())

	// Replay the prefix silently so the buffer reflects true state before
	// live animation continues. A resumed worker does not inherit the
	// previous worker's in-memory buffer.
	var buf strings.Builder
	for i := 0; i < start && i < seq.Len(); i++ {
		buf.WriteString(seq.At(i).Text)
	}

	sinceProgress := 0
	i := start
	for i < seq.Len() {
		c.mu.Lock()
		if c.st.epoch != epoch || !c.st.running {
			c.mu.Unlock()
			return
		}
		if c.st.paused {
			// Record the position a future Resume starts from, then
			// park. The select wakes immediately on cancellation so a
			// seek never waits out the poll interval.
			c.st.cursor = i
			c.mu.Unlock()
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.timing.PausePoll):
			}
			continue // retry the same operation
		}
		op := seq.At(i)
		if op.Kind == KindUnit {
			c.st.revealed++
		}
		c.st.cursor = i + 1
		revealed := c.st.revealed
		total := c.st.total
		c.mu.Unlock()

		buf.WriteString(op.Text)
		i++

		if op.Kind != KindUnit {
			// Markers coalesce into the next unit's render.
			continue
		}

		c.surface.Render(buf.String())
		sinceProgress++
		if sinceProgress >= c.timing.ProgressEvery {
			sinceProgress = 0
			c.emitProgress(snapshotFor(revealed, total))
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(c.timing.jittered(delay)):
		}
	}

	// Natural completion. The modulo cadence may never land on the last
	// unit, so the final 100% snapshot is emitted unconditionally.
	c.mu.Lock()
	if c.st.epoch != epoch || !c.st.running {
		c.mu.Unlock()
		return
	}
	c.st.running = false
	c.st.paused = false
	c.st.revealed = c.st.total
	total := c.st.total
	c.mu.Unlock()

	c.log.Debug("reveal completed", "epoch", epoch, "chars", total)
	c.emitProgress(snapshotFor(total, total))
	c.surface.RenderOriginal()
	c.emitLifecycle(LifecycleCompleted)
}

// recoverWorker catches any failure inside the worker loop. The caller must
// never see a stuck running state: if this generation is still current, clear
// the flags, restore the original content and report completion.
func (c *Controller) recoverWorker(epoch uint64) {
	r := recover()
	if r == nil {
		return
	}

	c.mu.Lock()
	stale := c.st.epoch != epoch
	if !stale {
		c.st.running = false
		c.st.paused = false
	}
	c.mu.Unlock()

	c.log.Error("reveal worker failed", "epoch", epoch, "panic", r)
	if stale {
		return
	}
	c.emitError(ErrorEvent{Operation: "animate", Err: &workerPanicError{value: r}})
	c.surface.RenderOriginal()
	c.emitLifecycle(LifecycleCompleted)
}

type workerPanicError struct {
	value any
}

func (e *workerPanicError) Error() string {
	if s, ok := e.value.(string); ok {
		return "worker panic: " + s
	}
	if err, ok := e.value.(error); ok {
		return "worker panic: " + err.Error()
	}
	return "worker panic"
}
