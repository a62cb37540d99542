package typewriter

// A full natural pass emits one snapshot every progressEvery units plus the
// final one; the buffer is sized so a subscriber draining at its own pace
// does not lose the tail of a typical reveal.
const eventBufferSize = 64

// Subscription provides event channels for a subscriber. Sends are
// non-blocking: a slow subscriber loses events instead of stalling the
// worker.
type Subscription struct {
	Lifecycle <-chan LifecycleEvent
	Progress  <-chan ProgressSnapshot
	Seek      <-chan SeekOutcome
	Error     <-chan ErrorEvent
	Done      <-chan struct{}

	// Internal write channels
	lifecycleCh chan LifecycleEvent
	progressCh  chan ProgressSnapshot
	seekCh      chan SeekOutcome
	errorCh     chan ErrorEvent
	doneCh      chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		lifecycleCh: make(chan LifecycleEvent, eventBufferSize),
		progressCh:  make(chan ProgressSnapshot, eventBufferSize),
		seekCh:      make(chan SeekOutcome, eventBufferSize),
		errorCh:     make(chan ErrorEvent, eventBufferSize),
		doneCh:      make(chan struct{}),
	}
	s.Lifecycle = s.lifecycleCh
	s.Progress = s.progressCh
	s.Seek = s.seekCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// sendLifecycle sends a lifecycle event (non-blocking).
func (s *Subscription) sendLifecycle(e LifecycleEvent) {
	select {
	case s.lifecycleCh <- e:
	default:
		// Drop if buffer full
	}
}

// sendProgress sends a progress snapshot (non-blocking).
func (s *Subscription) sendProgress(snap ProgressSnapshot) {
	select {
	case s.progressCh <- snap:
	default:
	}
}

// sendSeek sends a seek outcome (non-blocking).
func (s *Subscription) sendSeek(o SeekOutcome) {
	select {
	case s.seekCh <- o:
	default:
	}
}

// sendError sends an error event (non-blocking).
func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}
