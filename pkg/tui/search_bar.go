package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const searchPlaceholder = "Search items... (class:Weapon rarity:Epic level:10-20 has:set)"

// SearchBar is the free-text input above the grid. Typed text is only
// searched once the debounce commits it; until then the bar shows it as
// pending.
type SearchBar struct {
	input    textinput.Model
	isActive bool
	pending  bool
	width    int
}

// NewSearchBar creates a new search bar component
func NewSearchBar() *SearchBar {
	ti := textinput.New()
	ti.Placeholder = searchPlaceholder
	ti.CharLimit = 200
	ti.Prompt = ""

	return &SearchBar{input: ti}
}

// SetActive focuses or blurs the input
func (s *SearchBar) SetActive(active bool) {
	s.isActive = active
	if active {
		s.input.Focus()
	} else {
		s.input.Blur()
	}
}

// IsActive reports whether the search bar has focus
func (s *SearchBar) IsActive() bool {
	return s.isActive
}

// SetPending marks typed text that has not been searched yet
func (s *SearchBar) SetPending(pending bool) {
	s.pending = pending
}

// IsPending reports whether the text is waiting on the debounce
func (s *SearchBar) IsPending() bool {
	return s.pending
}

// SetWidth sets the outer width of the bar
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	// border and padding (6), icon and gap (4), pending marker (2)
	s.input.Width = max(width-12, 1)
}

// Value returns the current search text
func (s *SearchBar) Value() string {
	return s.input.Value()
}

// SetValue sets the search text
func (s *SearchBar) SetValue(value string) {
	s.input.SetValue(value)
}

// Update feeds msg to the input and reports whether the text changed
func (s *SearchBar) Update(msg tea.Msg) (tea.Cmd, bool) {
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd, s.input.Value() != before
}

// Reset clears the text
func (s *SearchBar) Reset() {
	s.input.SetValue("")
	s.pending = false
}

// View renders the search bar
func (s *SearchBar) View() string {
	borderColor, iconColor := ColorInactive, ColorNormal
	if s.isActive {
		borderColor, iconColor = ColorActive, ColorActive
	}

	icon := lipgloss.NewStyle().
		Foreground(lipgloss.Color(iconColor)).
		Bold(true).
		Render("⌕ ")

	marker := "  "
	if s.pending {
		marker = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDim)).Render(" …")
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Width(max(s.width-4, 1)).
		Padding(0, 1)

	return ContentPaddingStyle.Render(box.Render(icon + s.input.View() + marker))
}
