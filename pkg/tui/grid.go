package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/partialepoch/epochdb/pkg/models"
)

// cardHeight is the outer height of a card, borders included
const cardHeight = 6

// Grid lays result cards out in columns and renders only the rows that fit
// on screen
type Grid struct {
	items      []models.Item
	cursor     int
	offset     int // first visible row
	columns    int
	rows       int // visible rows
	cardWidth  int
	maxColumns int
	isActive   bool
}

// NewGrid creates a grid of cardWidth wide cards, at most maxColumns across
func NewGrid(cardWidth, maxColumns int) *Grid {
	return &Grid{
		cardWidth:  cardWidth,
		maxColumns: maxColumns,
		columns:    1,
		rows:       1,
	}
}

// SetSize recomputes how many columns and rows fit
func (g *Grid) SetSize(width, height int) {
	g.columns = width / g.cardWidth
	if g.columns > g.maxColumns {
		g.columns = g.maxColumns
	}
	if g.columns < 1 {
		g.columns = 1
	}

	g.rows = height / cardHeight
	if g.rows < 1 {
		g.rows = 1
	}
	g.ensureVisible()
}

// SetItems replaces the results and moves the selection back to the top
func (g *Grid) SetItems(items []models.Item) {
	g.items = items
	g.cursor = 0
	g.offset = 0
}

// Len returns the number of results
func (g *Grid) Len() int {
	return len(g.items)
}

// SetActive sets whether navigation keys go to the grid
func (g *Grid) SetActive(active bool) {
	g.isActive = active
}

// Selected returns the item under the cursor
func (g *Grid) Selected() (models.Item, bool) {
	if g.cursor < 0 || g.cursor >= len(g.items) {
		return models.Item{}, false
	}
	return g.items[g.cursor], true
}

// HandleKey moves the selection. It reports whether the key was a
// navigation key.
func (g *Grid) HandleKey(key string) bool {
	if len(g.items) == 0 {
		return false
	}

	last := len(g.items) - 1
	switch key {
	case "left", "h":
		if g.cursor%g.columns > 0 {
			g.cursor--
		}
	case "right", "l":
		if g.cursor%g.columns < g.columns-1 && g.cursor < last {
			g.cursor++
		}
	case "up", "k":
		if g.cursor-g.columns >= 0 {
			g.cursor -= g.columns
		}
	case "down", "j":
		switch {
		case g.cursor+g.columns <= last:
			g.cursor += g.columns
		case g.cursor/g.columns < last/g.columns:
			// partial last row
			g.cursor = last
		}
	case "pgup":
		g.cursor = max(g.cursor-g.rows*g.columns, g.cursor%g.columns)
	case "pgdown":
		g.cursor = min(g.cursor+g.rows*g.columns, last)
	case "home", "g":
		g.cursor = 0
	case "end", "G":
		g.cursor = last
	default:
		return false
	}

	g.ensureVisible()
	return true
}

func (g *Grid) ensureVisible() {
	row := g.cursor / g.columns
	if row < g.offset {
		g.offset = row
	}
	if row >= g.offset+g.rows {
		g.offset = row - g.rows + 1
	}
}

// VisibleRange returns the half-open range of item indices on screen
func (g *Grid) VisibleRange() (start, end int) {
	start = g.offset * g.columns
	end = min((g.offset+g.rows)*g.columns, len(g.items))
	if start > end {
		start = end
	}
	return start, end
}

// View renders the visible rows
func (g *Grid) View() string {
	if len(g.items) == 0 {
		return PlaceholderStyle.Render("No items match your search")
	}

	start, end := g.VisibleRange()
	var rows []string
	for rowStart := start; rowStart < end; rowStart += g.columns {
		rowEnd := min(rowStart+g.columns, end)
		cards := make([]string, 0, rowEnd-rowStart)
		for i := rowStart; i < rowEnd; i++ {
			cards = append(cards, g.renderCard(g.items[i], i == g.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (g *Grid) renderCard(item models.Item, selected bool) string {
	inner := g.cardWidth - 4
	fit := func(s string) string {
		return truncate.StringWithTail(s, uint(max(inner, 1)), "…")
	}

	name := ItemNameStyle(item.Rarity).Render(fit(item.DisplayName()))

	kind := item.TypeLine()
	if item.Subclass != "" {
		kind += " · " + item.Subclass
	}

	slot := ""
	if item.InventoryType != "" && item.InventoryType != models.NoSlot {
		slot = item.InventoryType
	}

	body := strings.Join([]string{
		name,
		DescriptionStyle.Render(fit(kind)),
		DescriptionStyle.Render(fit(slot)),
		NormalStyle.Render(fit(item.LevelLine())),
	}, "\n")

	return CardStyle(item.Rarity, selected, g.isActive).
		Width(g.cardWidth - 2).
		Height(cardHeight - 2).
		Render(body)
}
