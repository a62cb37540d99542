package markup

import (
	"context"
	"strings"
	"sync"

	"github.com/llehouerou/typewriter/internal/typewriter"
)

// Surface adapts a markup fragment to the typewriter Surface contract. The
// render callback receives styled terminal text and must tolerate calls from
// the worker goroutine.
type Surface struct {
	mu      sync.Mutex
	content string
	render  func(text string)
}

// NewSurface creates a surface over content. render pushes styled text to
// the visible host.
func NewSurface(content string, render func(text string)) *Surface {
	return &Surface{content: content, render: render}
}

func (s *Surface) SetContent(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content = content
}

// Content returns the current source fragment.
func (s *Surface) Content() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content
}

func (s *Surface) Materialize(_ context.Context) (*typewriter.Sequence, error) {
	s.mu.Lock()
	content := s.content
	s.mu.Unlock()
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}
	return Flatten(content)
}

func (s *Surface) Render(buffer string) {
	s.render(ToANSI(buffer))
}

func (s *Surface) RenderOriginal() {
	s.mu.Lock()
	content := s.content
	s.mu.Unlock()
	s.render(ToANSI(content))
}

// Verify Surface implements the typewriter contract at compile time.
var _ typewriter.Surface = (*Surface)(nil)
