package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// searchCommitMsg asks the app to commit the search bar text. Only the
// message carrying the latest sequence number is honored.
type searchCommitMsg struct {
	seq  int
	text string
}

// debouncer delays search commits until typing pauses. Every Schedule or
// Cancel bumps the sequence, which turns all earlier ticks stale.
type debouncer struct {
	delay time.Duration
	seq   int
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay}
}

// Schedule returns a command that commits text after the delay
func (d *debouncer) Schedule(text string) tea.Cmd {
	d.seq++
	msg := searchCommitMsg{seq: d.seq, text: text}

	if d.delay <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return msg
	})
}

// Cancel drops any pending commit
func (d *debouncer) Cancel() {
	d.seq++
}

// Current reports whether msg is the most recently scheduled commit
func (d *debouncer) Current(msg searchCommitMsg) bool {
	return msg.seq == d.seq
}
