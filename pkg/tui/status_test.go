package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusLine_Flash(t *testing.T) {
	tests := []struct {
		name  string
		flash func(s *StatusLine)
		want  string
		kind  StatusType
	}{
		{name: "success", flash: func(s *StatusLine) { s.Success("Loaded 5 items") }, want: "✓ Loaded 5 items", kind: StatusTypeSuccess},
		{name: "warning", flash: func(s *StatusLine) { s.Warning("Nothing selected") }, want: "⚠ Nothing selected", kind: StatusTypeWarning},
		{name: "error", flash: func(s *StatusLine) { s.Error("Search failed") }, want: "× Search failed", kind: StatusTypeError},
		{name: "info", flash: func(s *StatusLine) { s.Info("Filters cleared") }, want: "ℹ Filters cleared", kind: StatusTypeInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStatusLine(time.Second)
			tt.flash(s)
			got, kind, ok := s.Text()
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestStatusLine_ExpiryTick(t *testing.T) {
	s := NewStatusLine(time.Millisecond)
	_, _, ok := s.Text()
	assert.False(t, ok)

	cmd := s.Success("Copied")
	require.NotNil(t, cmd)

	msg, ok := cmd().(statusExpiredMsg)
	require.True(t, ok)
	s.Expire(msg)

	_, _, ok = s.Text()
	assert.False(t, ok)
}

func TestStatusLine_OldTickKeepsNewerFlash(t *testing.T) {
	s := NewStatusLine(time.Second)
	s.Success("Loaded 5 items")
	s.Error("Clipboard unavailable")

	s.Expire(statusExpiredMsg{seq: 1})
	got, _, ok := s.Text()
	require.True(t, ok)
	assert.Equal(t, "× Clipboard unavailable", got)

	s.Expire(statusExpiredMsg{seq: 2})
	_, _, ok = s.Text()
	assert.False(t, ok)
}

func TestStatusLine_StickyUnderFlash(t *testing.T) {
	s := NewStatusLine(time.Second)
	s.SetSticky(StatusTypeInfo, "Watching data.json")
	s.Warning("Reload failed, keeping current data")

	got, _, _ := s.Text()
	assert.Equal(t, "⚠ Reload failed, keeping current data", got)

	s.Expire(statusExpiredMsg{seq: 1})
	got, _, _ = s.Text()
	assert.Equal(t, "ℹ Watching data.json", got)
	assert.Contains(t, s.View(80), "Watching data.json")

	assert.Empty(t, NewStatusLine(time.Second).View(80))
}
