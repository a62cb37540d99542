package typewriter

import (
	"context"
	"sync"
)

// MockSurface is a test double for Surface. It records every render so tests
// can assert on ordering; a mutex guards the records because renders arrive
// from the worker goroutine.
type MockSurface struct {
	mu sync.Mutex

	content        string
	seq            *Sequence
	materializeErr error
	panicOnRender  bool

	renders       []string
	originalCalls int
}

// NewMockSurface creates a new mock surface for testing.
func NewMockSurface() *MockSurface {
	return &MockSurface{}
}

func (m *MockSurface) SetContent(content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.content = content
	m.seq = nil
}

func (m *MockSurface) Materialize(_ context.Context) (*Sequence, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.materializeErr != nil {
		return nil, m.materializeErr
	}
	return m.seq, nil
}

func (m *MockSurface) Render(buffer string) {
	m.mu.Lock()
	if m.panicOnRender {
		m.panicOnRender = false
		m.mu.Unlock()
		panic("render failed")
	}
	m.renders = append(m.renders, buffer)
	m.mu.Unlock()
}

func (m *MockSurface) RenderOriginal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.originalCalls++
	m.renders = append(m.renders, m.content)
}

// Test helpers

// SetSequence configures the sequence Materialize returns and, when the
// content is still empty, derives the pristine content from it.
func (m *MockSurface) SetSequence(seq *Sequence) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq = seq
	if m.content == "" && seq != nil {
		buf, _, _ := seq.Prefix(seq.TotalChars())
		m.content = buf
	}
}

func (m *MockSurface) SetMaterializeError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.materializeErr = err
}

// PanicOnNextRender makes the next Render call panic once.
func (m *MockSurface) PanicOnNextRender() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panicOnRender = true
}

// Renders returns a copy of all recorded render buffers.
func (m *MockSurface) Renders() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.renders))
	copy(out, m.renders)
	return out
}

// LastRender returns the most recent render buffer, or "" if none.
func (m *MockSurface) LastRender() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.renders) == 0 {
		return ""
	}
	return m.renders[len(m.renders)-1]
}

// OriginalCalls returns how many times RenderOriginal was invoked.
func (m *MockSurface) OriginalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.originalCalls
}

// Verify MockSurface implements Surface at compile time.
var _ Surface = (*MockSurface)(nil)
