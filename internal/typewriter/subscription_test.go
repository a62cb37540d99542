package typewriter

import (
	"errors"
	"testing"
	"testing/synctest"
)

func TestNewSubscription_ChannelsReadable(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		sub := newSubscription()

		sub.sendLifecycle(LifecycleEvent{Kind: LifecycleStarted})
		sub.sendProgress(snapshotFor(25, 100))
		sub.sendSeek(SeekOutcome{Position: 0.5, CharIndex: 50, TotalChars: 100})
		sub.sendError(ErrorEvent{Operation: "materialize", Err: errors.New("boom")})

		e := <-sub.Lifecycle
		if e.Kind != LifecycleStarted {
			t.Errorf("Lifecycle.Kind = %v, want Started", e.Kind)
		}

		p := <-sub.Progress
		if p.Current != 25 || p.Percent != 25 {
			t.Errorf("Progress = %+v, want 25/100", p)
		}

		s := <-sub.Seek
		if s.CharIndex != 50 {
			t.Errorf("Seek.CharIndex = %d, want 50", s.CharIndex)
		}

		ev := <-sub.Error
		if ev.Operation != "materialize" {
			t.Errorf("Error.Operation = %q, want materialize", ev.Operation)
		}
	})
}

func TestSubscription_Close_SignalsDone(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		sub := newSubscription()
		sub.close()
		<-sub.Done
	})
}

func TestSubscription_NonBlocking_DropsWhenFull(t *testing.T) {
	sub := newSubscription()

	for range eventBufferSize + 5 {
		sub.sendProgress(ProgressSnapshot{})
	}

	count := 0
	for {
		select {
		case <-sub.Progress:
			count++
		default:
			goto done
		}
	}
done:
	if count != eventBufferSize {
		t.Errorf("received %d events, want %d (buffer size)", count, eventBufferSize)
	}
}
