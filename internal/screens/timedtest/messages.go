package timedtest

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// tickMsg is one second of the countdown for the session it names.
type tickMsg struct {
	SessionID string
}

func tickCmd(sessionID string) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{SessionID: sessionID}
	})
}
