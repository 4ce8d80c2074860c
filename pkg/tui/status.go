package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatusType is the severity of a status line message
type StatusType int

const (
	StatusTypeSuccess StatusType = iota
	StatusTypeWarning
	StatusTypeError
	StatusTypeInfo
)

// statusExpiredMsg ends the flash with the same sequence number
type statusExpiredMsg struct {
	seq int
}

type statusEntry struct {
	text string
	kind StatusType
}

// StatusLine shows short-lived feedback on top of an optional sticky
// message. A newer flash always outlives the expiry tick of an older one.
type StatusLine struct {
	flash    *statusEntry
	sticky   *statusEntry
	duration time.Duration
	seq      int
}

// NewStatusLine creates a status line whose flashes last duration
func NewStatusLine(duration time.Duration) *StatusLine {
	return &StatusLine{duration: duration}
}

// Flash shows text until the returned command's tick arrives
func (s *StatusLine) Flash(kind StatusType, text string) tea.Cmd {
	s.seq++
	s.flash = &statusEntry{text: text, kind: kind}

	seq := s.seq
	return tea.Tick(s.duration, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}

func (s *StatusLine) Success(text string) tea.Cmd { return s.Flash(StatusTypeSuccess, text) }
func (s *StatusLine) Warning(text string) tea.Cmd { return s.Flash(StatusTypeWarning, text) }
func (s *StatusLine) Error(text string) tea.Cmd   { return s.Flash(StatusTypeError, text) }
func (s *StatusLine) Info(text string) tea.Cmd    { return s.Flash(StatusTypeInfo, text) }

// Expire clears the flash if msg belongs to it
func (s *StatusLine) Expire(msg statusExpiredMsg) {
	if msg.seq == s.seq {
		s.flash = nil
	}
}

// SetSticky sets the message shown whenever no flash is
func (s *StatusLine) SetSticky(kind StatusType, text string) {
	s.sticky = &statusEntry{text: text, kind: kind}
}

// Text returns the line to show, if any, with its icon
func (s *StatusLine) Text() (string, StatusType, bool) {
	entry := s.flash
	if entry == nil {
		entry = s.sticky
	}
	if entry == nil {
		return "", StatusTypeInfo, false
	}
	return statusIcon(entry.kind) + " " + entry.text, entry.kind, true
}

// View renders the status bar, or "" when there is nothing to say
func (s *StatusLine) View(width int) string {
	text, kind, ok := s.Text()
	if !ok {
		return ""
	}

	style := StatusBarStyle
	switch kind {
	case StatusTypeError:
		style = style.Foreground(lipgloss.Color(ColorError))
	case StatusTypeWarning:
		style = style.Foreground(lipgloss.Color(ColorWarning))
	}
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(text)
}

func statusIcon(t StatusType) string {
	switch t {
	case StatusTypeSuccess:
		return "✓"
	case StatusTypeWarning:
		return "⚠"
	case StatusTypeError:
		return "×"
	default:
		return "ℹ"
	}
}
