package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/partialepoch/epochdb/pkg/filters"
	"github.com/partialepoch/epochdb/pkg/models"
)

type controlKind int

const (
	controlCycle controlKind = iota
	controlLevel
	controlToggle
	controlClear
)

type filterControl struct {
	field string
	label string
	kind  controlKind
}

var filterControls = []filterControl{
	{field: models.FieldClass, label: "Class", kind: controlCycle},
	{field: models.FieldSubclass, label: "Subclass", kind: controlCycle},
	{field: models.FieldRarity, label: "Rarity", kind: controlCycle},
	{field: models.FieldInventoryType, label: "Slot", kind: controlCycle},
	{field: models.FieldRequiredLevelMin, label: "Min level", kind: controlLevel},
	{field: models.FieldRequiredLevelMax, label: "Max level", kind: controlLevel},
	{field: models.FieldHasSet, label: "Has set", kind: controlToggle},
	{field: models.FieldHasName, label: "Has name", kind: controlToggle},
	{field: models.FieldHasIcon, label: "Has icon", kind: controlToggle},
	{field: models.FieldHasSpells, label: "Has spells", kind: controlToggle},
}

var clearControl = filterControl{label: "Clear all", kind: controlClear}

// FilterBar holds the structured filters and the controls that edit them
type FilterBar struct {
	filters  models.SearchFilters
	options  filters.OptionSet
	cursor   int
	isActive bool
	width    int

	editing    bool
	levelInput textinput.Model
}

// NewFilterBar creates a filter bar with nothing applied
func NewFilterBar() *FilterBar {
	ti := textinput.New()
	ti.CharLimit = 4
	ti.Width = 4
	ti.Prompt = ""

	return &FilterBar{
		levelInput: ti,
	}
}

// Filters returns the filters currently applied
func (f *FilterBar) Filters() models.SearchFilters {
	return f.filters
}

// SetOptions replaces the option vocabularies the cycle controls step through
func (f *FilterBar) SetOptions(options filters.OptionSet) {
	f.options = options
}

// SetActive sets whether the filter bar has focus
func (f *FilterBar) SetActive(active bool) {
	f.isActive = active
	if !active {
		f.stopEditing()
	}
}

// IsActive reports whether the filter bar has focus
func (f *FilterBar) IsActive() bool {
	return f.isActive
}

// IsEditing reports whether a level input is capturing keys
func (f *FilterBar) IsEditing() bool {
	return f.editing
}

// SetWidth sets the width available to the chips
func (f *FilterBar) SetWidth(width int) {
	f.width = width
}

// ClearAll removes every filter
func (f *FilterBar) ClearAll() {
	f.stopEditing()
	f.filters = filters.Clear()
	f.clampCursor()
}

// controls lists the visible controls. Clear all only shows when a
// filter is active.
func (f *FilterBar) controls() []filterControl {
	if filters.HasActiveFilters(f.filters) {
		return append(append([]filterControl{}, filterControls...), clearControl)
	}
	return filterControls
}

func (f *FilterBar) focused() filterControl {
	controls := f.controls()
	f.clampCursor()
	return controls[f.cursor]
}

func (f *FilterBar) clampCursor() {
	n := len(f.controls())
	if f.cursor >= n {
		f.cursor = n - 1
	}
	if f.cursor < 0 {
		f.cursor = 0
	}
}

// Update handles a key while the filter bar has focus
func (f *FilterBar) Update(msg tea.KeyMsg) tea.Cmd {
	if f.editing {
		return f.updateLevelInput(msg)
	}

	control := f.focused()
	switch msg.String() {
	case "left", "h":
		if f.cursor > 0 {
			f.cursor--
		}

	case "right", "l":
		if f.cursor < len(f.controls())-1 {
			f.cursor++
		}

	case "enter", " ":
		f.activate(control)

	case "backspace", "delete", "x":
		f.reset(control)
	}

	f.clampCursor()
	return nil
}

func (f *FilterBar) activate(control filterControl) {
	switch control.kind {
	case controlCycle:
		f.filters = filters.CycleString(f.filters, control.field, f.options.ForField(control.field))
	case controlToggle:
		f.filters = filters.ToggleBool(f.filters, control.field)
	case controlLevel:
		f.editing = true
		f.levelInput.SetValue(levelText(levelValue(f.filters, control.field)))
		f.levelInput.CursorEnd()
		f.levelInput.Focus()
	case controlClear:
		f.filters = filters.Clear()
	}
}

func (f *FilterBar) reset(control filterControl) {
	switch control.kind {
	case controlCycle:
		f.filters = filters.SetString(f.filters, control.field, "")
	case controlLevel:
		f.filters = filters.SetLevel(f.filters, control.field, "")
	case controlToggle:
		if boolValue(f.filters, control.field) {
			f.filters = filters.ToggleBool(f.filters, control.field)
		}
	}
}

// updateLevelInput applies the level bound on every keystroke
func (f *FilterBar) updateLevelInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "esc", "tab":
		f.stopEditing()
		return nil
	}

	var cmd tea.Cmd
	f.levelInput, cmd = f.levelInput.Update(msg)
	f.filters = filters.SetLevel(f.filters, f.focused().field, f.levelInput.Value())
	return cmd
}

func (f *FilterBar) stopEditing() {
	f.editing = false
	f.levelInput.Blur()
}

// View renders the controls as chips, wrapping to the available width
func (f *FilterBar) View() string {
	controls := f.controls()
	chips := make([]string, 0, len(controls))
	for i, control := range controls {
		focused := f.isActive && i == f.cursor
		chips = append(chips, GetChipStyle(f.applied(control), focused).Render(f.chipLabel(control, focused)))
	}

	width := f.width - 2
	if width < 20 {
		width = 20
	}

	var lines []string
	var line string
	for _, chip := range chips {
		if line != "" && lipgloss.Width(line)+1+lipgloss.Width(chip) > width {
			lines = append(lines, line)
			line = ""
		}
		if line != "" {
			line += " "
		}
		line += chip
	}
	if line != "" {
		lines = append(lines, line)
	}

	return ContentPaddingStyle.Render(strings.Join(lines, "\n"))
}

func (f *FilterBar) applied(control filterControl) bool {
	switch control.kind {
	case controlCycle:
		return filters.StringValue(f.filters, control.field) != ""
	case controlLevel:
		return levelValue(f.filters, control.field) != nil
	case controlToggle:
		return boolValue(f.filters, control.field)
	}
	return false
}

func (f *FilterBar) chipLabel(control filterControl, focused bool) string {
	switch control.kind {
	case controlCycle:
		value := filters.StringValue(f.filters, control.field)
		if value == "" {
			value = "All"
		}
		return control.label + ": " + value

	case controlLevel:
		if focused && f.editing {
			return control.label + ": " + f.levelInput.View()
		}
		value := levelText(levelValue(f.filters, control.field))
		if value == "" {
			value = "-"
		}
		return control.label + ": " + value

	case controlToggle:
		if boolValue(f.filters, control.field) {
			return "[x] " + control.label
		}
		return "[ ] " + control.label
	}
	return control.label
}

func levelValue(f models.SearchFilters, field string) *int {
	switch field {
	case models.FieldRequiredLevelMin:
		return f.RequiredLevelMin
	case models.FieldRequiredLevelMax:
		return f.RequiredLevelMax
	}
	return nil
}

func levelText(level *int) string {
	if level == nil {
		return ""
	}
	return strconv.Itoa(*level)
}

func boolValue(f models.SearchFilters, field string) bool {
	var v *bool
	switch field {
	case models.FieldHasSet:
		v = f.HasSet
	case models.FieldHasName:
		v = f.HasName
	case models.FieldHasIcon:
		v = f.HasIcon
	case models.FieldHasSpells:
		v = f.HasSpells
	}
	return v != nil && *v
}
