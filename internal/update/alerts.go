package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llm-case-studies/whowhe2wha/internal/alerts"
)

// waitForAlertCmd blocks on the engine's channel and converts the next alert
// into a message. The update loop re-issues it after each AlertMsg so the
// subscription stays live for the program's lifetime.
func waitForAlertCmd(engine *alerts.Engine) tea.Cmd {
	return func() tea.Msg {
		a, ok := <-engine.C()
		if !ok {
			return nil
		}
		return AlertMsg(a)
	}
}
