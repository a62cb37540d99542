package typewriter

import "strings"

// OpKind discriminates the three reveal step variants.
type OpKind int

const (
	// KindOpenMarker is opaque markup emitted verbatim before animatable
	// text. Markers do not count toward character progress.
	KindOpenMarker OpKind = iota
	// KindUnit is one animatable unit of content (a grapheme cluster).
	KindUnit
	// KindCloseMarker is opaque markup emitted verbatim after animatable text.
	KindCloseMarker
)

// String returns the kind name for debugging.
func (k OpKind) String() string {
	switch k {
	case KindOpenMarker:
		return "OpenMarker"
	case KindUnit:
		return "Unit"
	case KindCloseMarker:
		return "CloseMarker"
	default:
		return "Unknown"
	}
}

// IsMarker returns true for opaque markup steps.
func (k OpKind) IsMarker() bool {
	return k == KindOpenMarker || k == KindCloseMarker
}

// Operation is one discrete reveal step. Operations are immutable once
// produced.
type Operation struct {
	Kind OpKind
	Text string
}

// OpenMarker returns an opening markup operation.
func OpenMarker(text string) Operation {
	return Operation{Kind: KindOpenMarker, Text: text}
}

// Unit returns a single animatable unit operation.
func Unit(text string) Operation {
	return Operation{Kind: KindUnit, Text: text}
}

// CloseMarker returns a closing markup operation.
func CloseMarker(text string) Operation {
	return Operation{Kind: KindCloseMarker, Text: text}
}

// Sequence is an immutable ordered list of reveal steps. It is safe to share
// by reference between the controller and a worker.
type Sequence struct {
	ops        []Operation
	totalChars int
}

// NewSequence builds a sequence from ops. The slice is copied so later
// mutation by the caller cannot leak into a running reveal.
func NewSequence(ops []Operation) *Sequence {
	s := &Sequence{ops: make([]Operation, len(ops))}
	copy(s.ops, ops)
	for _, op := range s.ops {
		if op.Kind == KindUnit {
			s.totalChars++
		}
	}
	return s
}

// Len returns the number of operations.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ops)
}

// At returns the operation at index i.
func (s *Sequence) At(i int) Operation {
	return s.ops[i]
}

// TotalChars returns the number of Unit operations.
func (s *Sequence) TotalChars() int {
	if s == nil {
		return 0
	}
	return s.totalChars
}

// Prefix rebuilds the render buffer for the first chars units. It walks from
// the start, accumulating markers and exactly chars units; after the last
// requested unit it keeps accumulating markers until the next unit so that a
// buffer never ends inside an unclosed span. The returned cursor is the index
// of the next unprocessed operation.
//
// Prefix(0) is always ("", 0, 0): a seek to the very start shows nothing,
// not a shell of empty markup. Prefix(TotalChars()) returns the full content.
func (s *Sequence) Prefix(chars int) (buffer string, cursor, revealed int) {
	if s == nil || chars <= 0 {
		return "", 0, 0
	}
	if chars > s.totalChars {
		chars = s.totalChars
	}
	var b strings.Builder
	i := 0
	for ; i < len(s.ops); i++ {
		op := s.ops[i]
		if op.Kind == KindUnit {
			if revealed == chars {
				break
			}
			revealed++
		}
		b.WriteString(op.Text)
	}
	return b.String(), i, revealed
}
