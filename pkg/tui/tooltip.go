package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/partialepoch/epochdb/pkg/models"
)

// RenderTooltip renders the full description of an item, wrapped to width
func RenderTooltip(item models.Item, width int) string {
	if width < 10 {
		width = 10
	}

	nameStyle := ItemNameStyle(item.Rarity)

	var lines []string
	add := func(style *lipgloss.Style, text string) {
		if strings.TrimSpace(text) == "" {
			return
		}
		wrapped := wordwrap.String(text, width)
		if style != nil {
			wrapped = style.Render(wrapped)
		}
		lines = append(lines, wrapped)
	}

	add(&nameStyle, item.DisplayName())
	add(nil, item.Bonding)
	add(nil, pairLine(item.TypeLine(), item.Subclass, width))
	add(nil, item.AddedDamage)
	add(nil, pairLine(item.Damage, item.Speed, width))
	add(nil, item.DPS)
	add(nil, item.Armor)
	for _, stat := range item.Stats {
		add(nil, stat)
	}
	add(&requirementStyle, item.LevelLine())
	for _, requirement := range item.Requires {
		add(&requirementStyle, requirement)
	}
	for _, spell := range item.Spells {
		add(&spellStyle, spell)
	}
	if item.Set != nil {
		add(&setStyle, item.Set.Name)
		for _, bonus := range item.Set.Spells {
			add(&mutedStyle, bonus.String())
		}
	}
	footer := fmt.Sprintf("Item #%d", item.ID)
	if code, ok := item.Class.Code(); ok {
		footer += fmt.Sprintf(" · class code %d", code)
	}
	add(&mutedStyle, footer)

	return strings.Join(lines, "\n")
}

// pairLine puts left and right on one line, right aligned to width when
// they fit
func pairLine(left, right string, width int) string {
	switch {
	case left == "":
		return right
	case right == "":
		return left
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left + " " + right
	}
	return left + strings.Repeat(" ", gap) + right
}

// Tooltip is the scrollable detail pane for the selected item
type Tooltip struct {
	viewport viewport.Model
	item     models.Item
	hasItem  bool
	isActive bool
	width    int
	height   int
}

// NewTooltip creates an empty tooltip pane
func NewTooltip() *Tooltip {
	return &Tooltip{
		viewport: viewport.New(0, 0),
	}
}

// SetSize sets the outer size of the pane
func (t *Tooltip) SetSize(width, height int) {
	t.width = width
	t.height = height
	// borders (2) and padding (2)
	t.viewport.Width = max(width-4, 10)
	t.viewport.Height = max(height-2, 1)
	t.refresh()
}

// SetItem shows item, or the empty message when ok is false
func (t *Tooltip) SetItem(item models.Item, ok bool) {
	if ok == t.hasItem && (!ok || item.ID == t.item.ID) {
		return
	}
	t.item = item
	t.hasItem = ok
	t.refresh()
	t.viewport.GotoTop()
}

// SetActive sets whether scroll keys go to the tooltip
func (t *Tooltip) SetActive(active bool) {
	t.isActive = active
}

func (t *Tooltip) refresh() {
	if !t.hasItem {
		t.viewport.SetContent(PlaceholderStyle.Render("No item selected"))
		return
	}
	t.viewport.SetContent(RenderTooltip(t.item, t.viewport.Width))
}

// Update scrolls the tooltip
func (t *Tooltip) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	t.viewport, cmd = t.viewport.Update(msg)
	return cmd
}

// View renders the pane with a border in the item's rarity color
func (t *Tooltip) View() string {
	border := InactiveBorderStyle
	if t.isActive {
		border = ActiveBorderStyle
	}
	if t.hasItem {
		border = border.BorderForeground(RarityColor(t.item.Rarity))
	}

	return border.
		Width(t.width-2).
		Height(t.height-2).
		Padding(0, 1).
		Render(t.viewport.View())
}
