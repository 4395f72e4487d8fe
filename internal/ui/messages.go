package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/folio/internal/contact"
)

// frameMsg asks the background to draw one frame. seq ties it to the chain
// that scheduled it so a stopped chain's pending frame is ignored.
type frameMsg struct {
	seq int
}

type typeMsg struct {
	seq int
}

type revealMsg struct{}

type statusExpiredMsg struct {
	seq int
}

type submitResultMsg struct {
	seq     int
	receipt contact.Receipt
	err     error
}

func frameCmd(interval time.Duration, seq int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return frameMsg{seq: seq}
	})
}

func typeCmd(delay time.Duration, seq int) tea.Cmd {
	if delay <= 0 {
		return nil
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return typeMsg{seq: seq}
	})
}

func revealCmd(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(time.Time) tea.Msg {
		return revealMsg{}
	})
}
