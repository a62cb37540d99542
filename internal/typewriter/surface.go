package typewriter

import "context"

// Surface is the host rendering target the controller drives. Implementations
// must tolerate Render being called from the worker goroutine.
type Surface interface {
	// SetContent replaces the source content. The next materialization
	// reflects the new content.
	SetContent(content string)

	// Materialize extracts the current content as a flat operation
	// sequence. It may block until the surface is ready. A nil sequence or
	// an error both mean "nothing to animate"; neither is fatal.
	Materialize(ctx context.Context) (*Sequence, error)

	// Render pushes an accumulated buffer snapshot to the visible surface.
	Render(buffer string)

	// RenderOriginal restores the pristine, fully-formed original content.
	RenderOriginal()
}
