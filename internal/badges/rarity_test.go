package badges

import "testing"

func TestStreakRarity(t *testing.T) {
	tests := []struct {
		days int
		want Rarity
	}{
		{1, RarityCommon},
		{3, RarityCommon},
		{6, RarityCommon},
		{7, RarityRare},
		{13, RarityRare},
		{14, RarityEpic},
		{29, RarityEpic},
		{30, RarityLegendary},
		{365, RarityLegendary},
	}

	for _, tt := range tests {
		got := StreakRarity(tt.days)
		if got != tt.want {
			t.Errorf("StreakRarity(%d) = %q, want %q", tt.days, got, tt.want)
		}
	}
}

func TestAllRarities(t *testing.T) {
	rarities := AllRarities()
	if len(rarities) != 4 {
		t.Errorf("expected 4 rarities, got %d", len(rarities))
	}
	if rarities[0] != RarityCommon || rarities[3] != RarityLegendary {
		t.Errorf("unexpected order: %v", rarities)
	}
	for i := 1; i < len(rarities); i++ {
		if rarities[i].rank() <= rarities[i-1].rank() {
			t.Errorf("rank(%q) should exceed rank(%q)", rarities[i], rarities[i-1])
		}
	}
	if Rarity("mythic").rank() != -1 {
		t.Error("unknown rarity should rank below common")
	}
}

func TestRarityDisplayName(t *testing.T) {
	tests := []struct {
		r    Rarity
		want string
	}{
		{RarityCommon, "Common"},
		{RarityRare, "Rare"},
		{RarityEpic, "Epic"},
		{RarityLegendary, "Legendary"},
		{Rarity("mythic"), "mythic"},
	}
	for _, tt := range tests {
		if got := tt.r.DisplayName(); got != tt.want {
			t.Errorf("%q.DisplayName() = %q, want %q", tt.r, got, tt.want)
		}
	}
}
