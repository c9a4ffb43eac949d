package badges

// Rarity represents how hard a badge is to earn.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// AllRarities returns all rarities in order from lowest to highest.
func AllRarities() []Rarity {
	return []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}
}

// rank orders rarities; unknown values rank below common.
func (r Rarity) rank() int {
	for i, v := range AllRarities() {
		if v == r {
			return i
		}
	}
	return -1
}

// DisplayName returns a human-readable label for the rarity.
func (r Rarity) DisplayName() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	default:
		return string(r)
	}
}

// StreakRarity returns the rarity for a daily streak milestone.
func StreakRarity(days int) Rarity {
	switch {
	case days >= 30:
		return RarityLegendary
	case days >= 14:
		return RarityEpic
	case days >= 7:
		return RarityRare
	default:
		return RarityCommon
	}
}
