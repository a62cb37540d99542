package typewriter

// ProgressSnapshot is a point-in-time view of reveal progress. It is a pure
// function of (revealed, total) and safe to copy.
type ProgressSnapshot struct {
	Current  int
	Total    int
	Percent  float64 // 0-100
	Position float64 // 0.0-1.0
}

func snapshotFor(current, total int) ProgressSnapshot {
	if total <= 0 {
		return ProgressSnapshot{}
	}
	if current < 0 {
		current = 0
	}
	if current > total {
		current = total
	}
	pos := float64(current) / float64(total)
	return ProgressSnapshot{
		Current:  current,
		Total:    total,
		Percent:  pos * 100,
		Position: pos,
	}
}

// Done returns true once every unit has been revealed.
func (p ProgressSnapshot) Done() bool {
	return p.Total > 0 && p.Current >= p.Total
}

// SeekOutcome describes the result of a seek.
type SeekOutcome struct {
	Position   float64 // clamped target position, 0.0-1.0
	CharIndex  int     // target unit index
	TotalChars int
	Percent    float64
	WasActive  bool // playback was running unpaused before the seek
	CanResume  bool // the session is suspended and Resume will continue it
	AtStart    bool
	AtEnd      bool
}
