package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/partialepoch/epochdb/pkg/models"
)

// Interface colors
const (
	ColorActive   = "170"
	ColorInactive = "240"
	ColorSelected = "236"
	ColorNormal   = "245"
	ColorDim      = "241"
	ColorFaint    = "242"
	ColorWarning  = "214"
	ColorWhite    = "255"
	ColorError    = "196"
	ColorHeader   = "205"
)

// Tooltip colors
const (
	ColorRequirement = "#ff2020"
	ColorSpell       = "#1eff00"
	ColorSet         = "#ffd100"
	ColorMuted       = "#9d9d9d"
)

// rarityColors follow the in-game quality palette
var rarityColors = map[models.Rarity]string{
	models.RarityPoor:      "#9d9d9d",
	models.RarityCommon:    "#ffffff",
	models.RarityUncommon:  "#1eff00",
	models.RarityRare:      "#0070dd",
	models.RarityEpic:      "#a335ee",
	models.RarityLegendary: "#ff8000",
	models.RarityArtifact:  "#e6cc80",
}

// RarityColor returns the display color for a rarity. Matching is case
// insensitive and unknown rarities fall back to the poor color.
func RarityColor(r models.Rarity) lipgloss.Color {
	for known, color := range rarityColors {
		if strings.EqualFold(string(known), string(r)) {
			return lipgloss.Color(color)
		}
	}
	return lipgloss.Color(rarityColors[models.RarityPoor])
}

// ItemNameStyle renders an item name in its rarity color
func ItemNameStyle(r models.Rarity) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(RarityColor(r)).Bold(true)
}

// CardStyle frames a grid card. The border takes the rarity color and
// thickens when the card holds the cursor in a focused grid.
func CardStyle(r models.Rarity, selected, focused bool) lipgloss.Style {
	border := lipgloss.RoundedBorder()
	if selected && focused {
		border = lipgloss.ThickBorder()
	}
	style := lipgloss.NewStyle().
		Border(border).
		BorderForeground(RarityColor(r)).
		Padding(0, 1)
	if selected {
		style = style.Background(lipgloss.Color(ColorSelected))
	}
	return style
}

var (
	ActiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.ThickBorder()).
				BorderForeground(lipgloss.Color(ColorActive))

	InactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorInactive))

	NormalStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorNormal))
	DescriptionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDim))
	PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorFaint))
	ErrorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorDim))

	ContentPaddingStyle = lipgloss.NewStyle().Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1)

	// tooltip lines
	requirementStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRequirement))
	spellStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSpell))
	setStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSet))
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
)

// GetChipStyle styles a filter chip. Applied filters get the active color.
func GetChipStyle(applied, focused bool) lipgloss.Style {
	style := lipgloss.NewStyle().Padding(0, 1)
	switch {
	case focused:
		style = style.
			Background(lipgloss.Color(ColorActive)).
			Foreground(lipgloss.Color(ColorWhite)).
			Bold(true)
	case applied:
		style = style.
			Background(lipgloss.Color(ColorSelected)).
			Foreground(lipgloss.Color(ColorActive))
	default:
		style = style.Foreground(lipgloss.Color(ColorNormal))
	}
	return style
}
