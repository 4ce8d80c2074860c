package models

// Rarity is the ordinal quality tier of an item
type Rarity string

const (
	// RarityAll only exists to anchor option list sorting
	RarityAll       Rarity = "All"
	RarityPoor      Rarity = "Poor"
	RarityCommon    Rarity = "Common"
	RarityUncommon  Rarity = "Uncommon"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
	RarityArtifact  Rarity = "Artifact"
)

// RarityOrder is the fixed tier order, lowest first
var RarityOrder = []Rarity{
	RarityAll,
	RarityPoor,
	RarityCommon,
	RarityUncommon,
	RarityRare,
	RarityEpic,
	RarityLegendary,
	RarityArtifact,
}

// Rank returns the position of the rarity in RarityOrder.
// Values outside the vocabulary rank after Artifact.
func (r Rarity) Rank() int {
	for i, known := range RarityOrder {
		if known == r {
			return i
		}
	}
	return len(RarityOrder)
}
