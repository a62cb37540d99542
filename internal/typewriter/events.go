package typewriter

// LifecycleKind identifies a fire-and-forget lifecycle notification.
type LifecycleKind int

const (
	LifecycleStarted LifecycleKind = iota
	LifecyclePaused
	LifecycleResumed
	LifecycleCompleted
	LifecycleReset
)

// String returns the lifecycle kind name.
func (k LifecycleKind) String() string {
	switch k {
	case LifecycleStarted:
		return "Started"
	case LifecyclePaused:
		return "Paused"
	case LifecycleResumed:
		return "Resumed"
	case LifecycleCompleted:
		return "Completed"
	case LifecycleReset:
		return "Reset"
	default:
		return "Unknown"
	}
}

// LifecycleEvent is emitted on every lifecycle transition.
type LifecycleEvent struct {
	Kind LifecycleKind
}

// ErrorEvent is emitted when an operation fails asynchronously.
type ErrorEvent struct {
	Operation string // e.g. "materialize", "animate"
	Err       error
}
