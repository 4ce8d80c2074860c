package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partialepoch/epochdb/pkg/filters"
	"github.com/partialepoch/epochdb/pkg/models"
)

func press(f *FilterBar, keys ...string) {
	for _, k := range keys {
		switch k {
		case "enter":
			f.Update(tea.KeyMsg{Type: tea.KeyEnter})
		case "esc":
			f.Update(tea.KeyMsg{Type: tea.KeyEsc})
		case "backspace":
			f.Update(tea.KeyMsg{Type: tea.KeyBackspace})
		default:
			f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
}

func newTestFilterBar() *FilterBar {
	f := NewFilterBar()
	f.SetOptions(filters.OptionSet{
		Classes:  []string{"Armor", "Weapon"},
		Rarities: []string{"Rare", "Epic"},
	})
	f.SetWidth(120)
	f.SetActive(true)
	return f
}

func TestFilterBar_CycleThroughOptions(t *testing.T) {
	f := newTestFilterBar()

	var seen []string
	for i := 0; i < 3; i++ {
		press(f, "enter")
		seen = append(seen, filters.StringValue(f.Filters(), models.FieldClass))
	}
	assert.Equal(t, []string{"Armor", "Weapon", ""}, seen)
	assert.Nil(t, f.Filters().Class)
}

func TestFilterBar_ResetField(t *testing.T) {
	f := newTestFilterBar()
	press(f, "l", "l", "enter")
	require.Equal(t, "Rare", filters.StringValue(f.Filters(), models.FieldRarity))

	press(f, "x")
	assert.Nil(t, f.Filters().Rarity)
}

func TestFilterBar_LevelInputAppliesPerKeystroke(t *testing.T) {
	f := newTestFilterBar()
	press(f, "l", "l", "l", "l") // Min level
	require.Equal(t, models.FieldRequiredLevelMin, f.focused().field)

	press(f, "enter")
	require.True(t, f.IsEditing())

	press(f, "1")
	require.NotNil(t, f.Filters().RequiredLevelMin)
	assert.Equal(t, 1, *f.Filters().RequiredLevelMin)

	press(f, "5")
	assert.Equal(t, 15, *f.Filters().RequiredLevelMin)

	press(f, "enter")
	assert.False(t, f.IsEditing())

	// editing again starts from the current value
	press(f, "enter", "backspace", "backspace")
	assert.Nil(t, f.Filters().RequiredLevelMin)
	press(f, "esc")
	assert.False(t, f.IsEditing())
}

func TestFilterBar_ClearAllOnlyWhenActive(t *testing.T) {
	f := newTestFilterBar()
	assert.Len(t, f.controls(), len(filterControls))
	assert.NotContains(t, f.View(), "Clear all")

	// Has name
	for i := 0; i < 7; i++ {
		press(f, "l")
	}
	press(f, "enter")
	require.True(t, filters.HasActiveFilters(f.Filters()))
	assert.Len(t, f.controls(), len(filterControls)+1)
	assert.Contains(t, f.View(), "Clear all")
	assert.Contains(t, f.View(), "[x] Has name")

	// move onto Clear all and use it
	for i := 0; i < 5; i++ {
		press(f, "l")
	}
	require.Equal(t, controlClear, f.focused().kind)
	press(f, "enter")

	assert.False(t, filters.HasActiveFilters(f.Filters()))
	assert.Len(t, f.controls(), len(filterControls))
	assert.Equal(t, len(filterControls)-1, f.cursor)
}

func TestFilterBar_ToggleTwiceUnsets(t *testing.T) {
	f := newTestFilterBar()
	for i := 0; i < 6; i++ {
		press(f, "l")
	}
	press(f, " ")
	require.NotNil(t, f.Filters().HasSet)
	press(f, " ")
	assert.Nil(t, f.Filters().HasSet)
}

func TestFilterBar_BlurStopsEditing(t *testing.T) {
	f := newTestFilterBar()
	press(f, "l", "l", "l", "l", "enter")
	require.True(t, f.IsEditing())

	f.SetActive(false)
	assert.False(t, f.IsEditing())
}
