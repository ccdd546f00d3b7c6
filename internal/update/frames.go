package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llm-case-studies/whowhe2wha/internal/timeline"
)

// frameInterval approximates a 60Hz animation frame.
const frameInterval = time.Second / 60

type frameMsg struct{}

func frameTickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

// frameScheduler adapts the bubbletea tick loop to the pan controller's
// frame capability: Schedule parks the callback, and the Update handler for
// frameMsg fires it. A newer Schedule supersedes an unfired one, and the
// generation counter keeps a stale cancel from dropping a newer callback.
type frameScheduler struct {
	pending func()
	gen     uint64
}

func (s *frameScheduler) Schedule(fn func()) timeline.CancelFunc {
	s.pending = fn
	s.gen++
	gen := s.gen
	return func() {
		if s.gen == gen {
			s.pending = nil
		}
	}
}

func (s *frameScheduler) fire() {
	fn := s.pending
	s.pending = nil
	if fn != nil {
		fn()
	}
}
